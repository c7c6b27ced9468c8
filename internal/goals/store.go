package goals

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bohdan-kov/Obsessed-sub003/internal/catalog"
	"github.com/bohdan-kov/Obsessed-sub003/internal/sessions"
	"github.com/bohdan-kov/Obsessed-sub003/internal/telemetry/metrics"
	"github.com/bohdan-kov/Obsessed-sub003/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=goals_test

type goalsRepo interface {
	Create(ctx context.Context, goal *Goal) error
	Get(ctx context.Context, id string) (*Goal, error)
	List(ctx context.Context, params ListParams) ([]Goal, error)
	Update(ctx context.Context, id string, fields UpdateFields) (*Goal, error)
	AddMilestones(ctx context.Context, id string, thresholds []int) (*Goal, error)
	SetStatus(ctx context.Context, id string, from, to Status) (bool, error)
	Delete(ctx context.Context, id string) error
}

type sessionsProvider interface {
	ListCompleted(ctx context.Context, ownerID string) ([]sessions.Session, error)
}

type muscleIndexProvider interface {
	Index(ctx context.Context) (catalog.Index, error)
}

type notifier interface {
	NotifyMilestone(ctx context.Context, notification MilestoneNotification) error
}

type changeFeed interface {
	PublishChange(ctx context.Context, ownerID string) error
}

// MilestoneNotification is emitted once per newly crossed threshold.
type MilestoneNotification struct {
	GoalID    string    `json:"goalId"`
	OwnerID   string    `json:"ownerId"`
	GoalType  Type      `json:"goalType"`
	Threshold int       `json:"threshold"`
	Final     bool      `json:"final"`
	Progress  float64   `json:"progress"`
	At        time.Time `json:"at"`
}

type ListParams struct {
	OwnerID string
	Status  *Status
	Type    *Type
}

// Filter narrows List/Progress results; zero value means everything.
type Filter struct {
	Status *Status
	Type   *Type
}

// UpdateFields is a partial update; nil fields are left untouched.
type UpdateFields struct {
	Notes        *string    `json:"notes,omitempty"`
	TargetWeight *float64   `json:"targetWeight,omitempty"`
	VolumeTarget *float64   `json:"target,omitempty"`
	TargetCount  *int       `json:"targetCount,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
}

type GoalProgress struct {
	Goal     Goal     `json:"goal"`
	Snapshot Snapshot `json:"snapshot"`
}

type Stats struct {
	Total          int     `json:"total"`
	Active         int     `json:"active"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completionRate"`
	OnTrack        int     `json:"onTrack"`
	AtRisk         int     `json:"atRisk"`
}

// Store orchestrates one owner's goal collection: it composes the progress
// calculators with the persisted goals and the session history, applies
// milestone detection and the automatic lifecycle transitions, and is the
// only place in the engine performing I/O.
type Store struct {
	repo      goalsRepo
	sessions  sessionsProvider
	catalog   muscleIndexProvider
	notifier  notifier
	feed      changeFeed
	validator *Validator
	metrics   *metrics.Manager

	// injectable clock for tests
	Now func() time.Time

	goalLocks sync.Map // goal id -> *sync.Mutex

	listenersMu sync.Mutex
	listeners   []func(context.Context, []Goal)
}

type NewStoreParams struct {
	Repo     goalsRepo
	Sessions sessionsProvider
	Catalog  muscleIndexProvider
	Notifier notifier
	Feed     changeFeed
	Metrics  *metrics.Manager
}

func NewStore(params NewStoreParams) *Store {
	return &Store{
		repo:      params.Repo,
		sessions:  params.Sessions,
		catalog:   params.Catalog,
		notifier:  params.Notifier,
		feed:      params.Feed,
		validator: NewValidator(),
		metrics:   params.Metrics,
		Now:       time.Now,
	}
}

// Create validates the prospective goal and persists it with status active.
// Feasibility warnings come back alongside the created goal and never block.
func (s *Store) Create(ctx context.Context, goal *Goal) (_ *Goal, _ []Warning, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.goals.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("goal.type", goal.Type.String()))

	if goal.OwnerID == "" {
		return nil, nil, errors.New("owner id required")
	}

	now := s.Now()
	if goal.Type == TypeStrength && goal.Strength != nil && goal.Strength.StartDate.IsZero() {
		goal.Strength.StartDate = now
	}

	history, err := s.sessions.ListCompleted(ctx, goal.OwnerID)
	if err != nil {
		return nil, nil, fmt.Errorf("list sessions: %w", err)
	}
	muscles, err := s.catalog.Index(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog index: %w", err)
	}

	warnings, err := s.validator.Validate(goal, history, muscles, now)
	if err != nil {
		return nil, nil, err
	}

	goal.ID = uuid.NewString()
	goal.Status = StatusActive
	goal.MilestonesReached = []int{}
	goal.CreatedAt = now
	goal.UpdatedAt = now

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, nil, fmt.Errorf("create goal: %w", err)
	}

	if s.metrics != nil {
		s.metrics.CounterGoalsCreated.WithLabelValues(goal.Type.String()).Inc()
	}
	s.publishChange(ctx, goal.OwnerID)

	return goal, warnings, nil
}

func (s *Store) Get(ctx context.Context, ownerID, goalID string) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.getOwned(ctx, ownerID, goalID)
}

func (s *Store) List(ctx context.Context, ownerID string, filter Filter) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.goals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.List(ctx, ListParams{
		OwnerID: ownerID,
		Status:  filter.Status,
		Type:    filter.Type,
	})
}

// Update applies a partial update to an owned goal. I/O failures propagate to
// the caller, this is an explicit owner-invoked operation.
func (s *Store) Update(ctx context.Context, ownerID, goalID string, fields UpdateFields) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.goals.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.getOwned(ctx, ownerID, goalID); err != nil {
		return nil, err
	}

	if fields.TargetWeight != nil && *fields.TargetWeight <= 0 {
		return nil, &ValidationError{Reasons: []string{"target weight must be positive"}}
	}
	if fields.VolumeTarget != nil && *fields.VolumeTarget <= 0 {
		return nil, &ValidationError{Reasons: []string{"volume target must be positive"}}
	}
	if fields.TargetCount != nil && *fields.TargetCount <= 0 {
		return nil, &ValidationError{Reasons: []string{"target count must be positive"}}
	}
	if fields.Deadline != nil && !fields.Deadline.After(s.Now()) {
		return nil, &ValidationError{Reasons: []string{"deadline must be in the future"}}
	}

	unlock := s.lockGoal(goalID)
	defer unlock()

	updated, err := s.repo.Update(ctx, goalID, fields)
	if err != nil {
		return nil, fmt.Errorf("update goal %s: %w", goalID, err)
	}

	s.publishChange(ctx, ownerID)
	return updated, nil
}

func (s *Store) Pause(ctx context.Context, ownerID, goalID string) error {
	return s.transition(ctx, ownerID, goalID, StatusActive, StatusPaused)
}

func (s *Store) Resume(ctx context.Context, ownerID, goalID string) error {
	return s.transition(ctx, ownerID, goalID, StatusPaused, StatusActive)
}

// Fail marks an active goal failed on the owner's request.
func (s *Store) Fail(ctx context.Context, ownerID, goalID string) error {
	return s.transition(ctx, ownerID, goalID, StatusActive, StatusFailed)
}

func (s *Store) Delete(ctx context.Context, ownerID, goalID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.getOwned(ctx, ownerID, goalID); err != nil {
		return err
	}

	unlock := s.lockGoal(goalID)
	defer unlock()

	if err := s.repo.Delete(ctx, goalID); err != nil {
		return fmt.Errorf("delete goal %s: %w", goalID, err)
	}
	s.releaseGoalLock(goalID)

	s.publishChange(ctx, ownerID)
	return nil
}

func (s *Store) transition(ctx context.Context, ownerID, goalID string, from, to Status) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.goals.transition")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("from", string(from)),
		attribute.String("to", string(to)),
	)

	if !from.CanTransitionTo(to) {
		return ErrInvalidTransition
	}

	if _, err := s.getOwned(ctx, ownerID, goalID); err != nil {
		return err
	}

	unlock := s.lockGoal(goalID)
	defer unlock()

	applied, err := s.repo.SetStatus(ctx, goalID, from, to)
	if err != nil {
		return fmt.Errorf("set goal %s status: %w", goalID, err)
	}
	if !applied {
		return ErrInvalidTransition
	}

	s.publishChange(ctx, ownerID)
	return nil
}

// Progress returns every active goal of the owner mapped through its
// calculator.
func (s *Store) Progress(ctx context.Context, ownerID string) ([]GoalProgress, error) {
	return s.progress(ctx, ownerID, nil)
}

// ProgressForType narrows Progress to one goal type.
func (s *Store) ProgressForType(ctx context.Context, ownerID string, goalType Type) ([]GoalProgress, error) {
	if !goalType.IsValid() {
		return nil, fmt.Errorf("unknown goal type %q", goalType)
	}
	return s.progress(ctx, ownerID, &goalType)
}

func (s *Store) progress(ctx context.Context, ownerID string, goalType *Type) (_ []GoalProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.goals.progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	active := StatusActive
	goals, err := s.repo.List(ctx, ListParams{OwnerID: ownerID, Status: &active, Type: goalType})
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	history, muscles, err := s.loadInputs(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	result := make([]GoalProgress, 0, len(goals))
	for i := range goals {
		snapshot, err := Progress(&goals[i], history, muscles, now)
		if err != nil {
			return nil, err
		}
		result = append(result, GoalProgress{Goal: goals[i], Snapshot: snapshot})
	}
	return result, nil
}

// Stats aggregates over the owner's whole collection, historical goals
// included: completion rate is the mean progress percent across every
// evaluated goal.
func (s *Store) Stats(ctx context.Context, ownerID string) (_ *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.goals.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	goals, err := s.repo.List(ctx, ListParams{OwnerID: ownerID})
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	stats := &Stats{Total: len(goals)}
	if len(goals) == 0 {
		return stats, nil
	}

	history, muscles, err := s.loadInputs(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	var percentSum float64
	for i := range goals {
		goal := &goals[i]
		switch goal.Status {
		case StatusActive:
			stats.Active++
		case StatusCompleted:
			stats.Completed++
		}

		snapshot, err := Progress(goal, history, muscles, now)
		if err != nil {
			return nil, err
		}
		percentSum += snapshot.Percent

		switch snapshot.Pacing {
		case PacingAtRisk:
			stats.AtRisk++
		case PacingOnTrack, PacingOnPace, PacingAhead, PacingCompleted, PacingAchieved:
			stats.OnTrack++
		}
	}
	stats.CompletionRate = percentSum / float64(len(goals))

	return stats, nil
}

// RecomputeAll runs one recomputation pass over the owner's active goals:
// snapshot, milestone detection and persistence, auto-completion and
// auto-failure. A failure on one goal never aborts the pass for its siblings;
// the combined error is returned for the caller to log or surface, and the
// failed goals are simply retried on the next trigger.
func (s *Store) RecomputeAll(ctx context.Context, ownerID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.goals.recompute")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner.id", ownerID))

	start := time.Now()
	if s.metrics != nil {
		s.metrics.CounterRecomputePasses.Inc()
		defer func() {
			s.metrics.HistRecomputeDuration.Observe(time.Since(start).Seconds())
		}()
	}

	active := StatusActive
	goals, err := s.repo.List(ctx, ListParams{OwnerID: ownerID, Status: &active})
	if err != nil {
		return fmt.Errorf("list active goals: %w", err)
	}
	if len(goals) == 0 {
		return nil
	}

	history, muscles, err := s.loadInputs(ctx, ownerID)
	if err != nil {
		return err
	}

	var errs error
	for i := range goals {
		if goalErr := s.recomputeGoal(ctx, &goals[i], history, muscles); goalErr != nil {
			log.Errorf("recompute goal %s: %s", goals[i].ID, goalErr)
			if s.metrics != nil {
				s.metrics.CounterRecomputeErrors.Inc()
			}
			errs = multierr.Append(errs, fmt.Errorf("goal %s: %w", goals[i].ID, goalErr))
		}
	}
	return errs
}

func (s *Store) recomputeGoal(
	ctx context.Context,
	goal *Goal,
	history []sessions.Session,
	muscles catalog.Index,
) error {
	unlock := s.lockGoal(goal.ID)
	defer unlock()

	// guard every transition on the currently persisted status, never on the
	// listing we started from; this keeps repeated passes idempotent
	fresh, err := s.repo.Get(ctx, goal.ID)
	if err != nil {
		return fmt.Errorf("reload goal: %w", err)
	}
	if fresh.Status != StatusActive {
		return nil
	}

	now := s.Now()
	snapshot, err := Progress(fresh, history, muscles, now)
	if err != nil {
		return err
	}

	newMilestones := DetectMilestones(snapshot.Percent, fresh.MilestonesReached)
	if len(newMilestones) > 0 {
		// atomic union on the persisted record so concurrent passes cannot
		// lose each other's thresholds
		if _, err := s.repo.AddMilestones(ctx, fresh.ID, newMilestones); err != nil {
			return fmt.Errorf("persist milestones: %w", err)
		}
		if s.metrics != nil {
			s.metrics.CounterMilestonesReached.Add(float64(len(newMilestones)))
		}

		for _, threshold := range newMilestones {
			notification := MilestoneNotification{
				GoalID:    fresh.ID,
				OwnerID:   fresh.OwnerID,
				GoalType:  fresh.Type,
				Threshold: threshold,
				Final:     threshold == 100,
				Progress:  snapshot.Percent,
				At:        now,
			}
			if s.notifier != nil {
				// delivery is best effort, the milestone itself is already
				// persisted
				if err := s.notifier.NotifyMilestone(ctx, notification); err != nil {
					log.Errorf("notify milestone %d for goal %s: %s", threshold, fresh.ID, err)
				}
			}
		}
	}

	if snapshot.Percent >= 100 {
		applied, err := s.repo.SetStatus(ctx, fresh.ID, StatusActive, StatusCompleted)
		if err != nil {
			return fmt.Errorf("auto-complete: %w", err)
		}
		if applied {
			log.Infof("goal %s auto-completed", fresh.ID)
			if s.metrics != nil {
				s.metrics.CounterGoalsCompleted.Inc()
			}
			s.publishChange(ctx, fresh.OwnerID)
		}
		return nil
	}

	if fresh.HasDeadline() && fresh.Strength.Deadline.Before(now) {
		applied, err := s.repo.SetStatus(ctx, fresh.ID, StatusActive, StatusFailed)
		if err != nil {
			return fmt.Errorf("auto-fail: %w", err)
		}
		if applied {
			log.Infof("goal %s auto-failed, deadline passed at %.1f%%", fresh.ID, snapshot.Percent)
			if s.metrics != nil {
				s.metrics.CounterGoalsFailed.Inc()
			}
			s.publishChange(ctx, fresh.OwnerID)
		}
	}

	return nil
}

// SubscribeChanges registers a listener invoked with the owner's full goal
// list after every remote change signal.
func (s *Store) SubscribeChanges(listener func(context.Context, []Goal)) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// HandleRemoteChange reloads the owner's collection and fans it out to the
// registered listeners. Wired to the goal-change feed by the server.
func (s *Store) HandleRemoteChange(ctx context.Context, ownerID string) {
	goals, err := s.repo.List(ctx, ListParams{OwnerID: ownerID})
	if err != nil {
		log.Errorf("handle remote change for owner %s: %s", ownerID, err)
		return
	}

	s.listenersMu.Lock()
	listeners := make([]func(context.Context, []Goal), len(s.listeners))
	copy(listeners, s.listeners)
	s.listenersMu.Unlock()

	for _, listener := range listeners {
		listener(ctx, goals)
	}
}

func (s *Store) loadInputs(ctx context.Context, ownerID string) ([]sessions.Session, catalog.Index, error) {
	history, err := s.sessions.ListCompleted(ctx, ownerID)
	if err != nil {
		return nil, nil, fmt.Errorf("list sessions: %w", err)
	}
	muscles, err := s.catalog.Index(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog index: %w", err)
	}
	return history, muscles, nil
}

func (s *Store) getOwned(ctx context.Context, ownerID, goalID string) (*Goal, error) {
	goal, err := s.repo.Get(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return goal, nil
}

func (s *Store) lockGoal(goalID string) func() {
	v, _ := s.goalLocks.LoadOrStore(goalID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// releaseGoalLock drops the lock entry of a deleted goal so the map does not
// accumulate mutexes over the process lifetime. A goroutine still blocked on
// the old mutex proceeds against a goal that no longer exists and fails the
// owner lookup.
func (s *Store) releaseGoalLock(goalID string) {
	s.goalLocks.Delete(goalID)
}

func (s *Store) publishChange(ctx context.Context, ownerID string) {
	if s.feed == nil {
		return
	}
	if err := s.feed.PublishChange(ctx, ownerID); err != nil {
		log.Errorf("publish goal change for owner %s: %s", ownerID, err)
	}
}
