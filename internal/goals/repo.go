package goals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bohdan-kov/Obsessed-sub003/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Repo persists goals in postgres. The type-specific target lives in a jsonb
// payload column next to the envelope fields.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, goal *Goal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("goal.id", goal.ID))

	payloadJson, err := marshalPayload(goal)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO goal (id, owner_id, type, status, milestones, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`,
		goal.ID, goal.OwnerID, goal.Type, goal.Status,
		milestonesToInt32(goal.MilestonesReached), payloadJson,
		goal.CreatedAt, goal.UpdatedAt,
	)
	return err
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := r.db.QueryRow(ctx, `
		SELECT id, owner_id, type, status, milestones, payload, created_at, updated_at
		FROM goal
		WHERE id = $1;
	`, id)

	goal, err := scanGoal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner.id", params.OwnerID))

	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, type, status, milestones, payload, created_at, updated_at
		FROM goal
		WHERE owner_id = $1
		  AND ($2::text IS NULL OR status = $2)
		  AND ($3::text IS NULL OR type = $3)
		ORDER BY created_at ASC;
	`,
		params.OwnerID,
		statusParam(params.Status),
		typeParam(params.Type),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *goal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("goals.count", len(goals)))
	return goals, nil
}

// Update applies the partial fields inside one transaction, locking the row
// so concurrent updates to the same goal serialize.
func (r *Repo) Update(ctx context.Context, id string, fields UpdateFields) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("goal.id", id))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("rollback: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	row := tx.QueryRow(ctx, `
		SELECT id, owner_id, type, status, milestones, payload, created_at, updated_at
		FROM goal
		WHERE id = $1
		FOR UPDATE;
	`, id)

	goal, err := scanGoal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	applyFields(goal, fields)
	goal.UpdatedAt = time.Now()

	payloadJson, err := marshalPayload(goal)
	if err != nil {
		return nil, err
	}

	if _, err = tx.Exec(ctx, `
		UPDATE goal SET payload = $2, updated_at = $3 WHERE id = $1;
	`, goal.ID, payloadJson, goal.UpdatedAt); err != nil {
		return nil, err
	}

	return goal, nil
}

// AddMilestones unions the thresholds into the persisted set atomically, so
// concurrent recomputation passes cannot lose each other's updates.
func (r *Repo) AddMilestones(ctx context.Context, id string, thresholds []int) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.addmilestones")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("goal.id", id),
		attribute.IntSlice("thresholds", thresholds),
	)

	row := r.db.QueryRow(ctx, `
		UPDATE goal
		SET milestones = (
				SELECT ARRAY(SELECT DISTINCT m FROM unnest(milestones || $2::int[]) AS m ORDER BY m)
			),
			updated_at = $3
		WHERE id = $1
		RETURNING id, owner_id, type, status, milestones, payload, created_at, updated_at;
	`, id, milestonesToInt32(thresholds), time.Now())

	goal, err := scanGoal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// SetStatus transitions the goal only when its persisted status still equals
// from. Returns false when the guard did not match, which makes repeated
// passes over the same data idempotent.
func (r *Repo) SetStatus(ctx context.Context, id string, from, to Status) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.setstatus")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("goal.id", id),
		attribute.String("status.from", string(from)),
		attribute.String("status.to", string(to)),
	)

	tag, err := r.db.Exec(ctx, `
		UPDATE goal SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2;
	`, id, from, to, time.Now())
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Owners lists the distinct owner ids holding at least one goal.
func (r *Repo) Owners(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.owners")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT DISTINCT owner_id FROM goal;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var ownerID string
		if err := rows.Scan(&ownerID); err != nil {
			return nil, err
		}
		owners = append(owners, ownerID)
	}
	return owners, rows.Err()
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("goal.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM goal WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (*Goal, error) {
	goal := &Goal{}
	var milestones []int32
	var payloadJson []byte
	if err := row.Scan(
		&goal.ID, &goal.OwnerID, &goal.Type, &goal.Status,
		&milestones, &payloadJson, &goal.CreatedAt, &goal.UpdatedAt,
	); err != nil {
		return nil, err
	}

	goal.MilestonesReached = milestonesFromInt32(milestones)

	if err := unmarshalPayload(goal, payloadJson); err != nil {
		return nil, err
	}
	return goal, nil
}

func marshalPayload(goal *Goal) ([]byte, error) {
	var payload any
	switch goal.Type {
	case TypeStrength:
		payload = goal.Strength
	case TypeVolume:
		payload = goal.Volume
	case TypeFrequency:
		payload = goal.Frequency
	case TypeStreak:
		payload = goal.Streak
	default:
		return nil, fmt.Errorf("unknown goal type %q", goal.Type)
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal goal payload: %w", err)
	}
	return payloadJson, nil
}

func unmarshalPayload(goal *Goal, payloadJson []byte) error {
	var target any
	switch goal.Type {
	case TypeStrength:
		goal.Strength = &StrengthTarget{}
		target = goal.Strength
	case TypeVolume:
		goal.Volume = &VolumeTarget{}
		target = goal.Volume
	case TypeFrequency:
		goal.Frequency = &FrequencyTarget{}
		target = goal.Frequency
	case TypeStreak:
		goal.Streak = &StreakTarget{}
		target = goal.Streak
	default:
		return fmt.Errorf("unknown goal type %q", goal.Type)
	}

	if err := json.Unmarshal(payloadJson, target); err != nil {
		return fmt.Errorf("unmarshal goal payload: %w", err)
	}
	return nil
}

func applyFields(goal *Goal, fields UpdateFields) {
	if goal.Strength != nil {
		if fields.Notes != nil {
			goal.Strength.Notes = *fields.Notes
		}
		if fields.TargetWeight != nil {
			goal.Strength.TargetWeight = *fields.TargetWeight
		}
		if fields.Deadline != nil {
			goal.Strength.Deadline = *fields.Deadline
		}
	}
	if goal.Volume != nil && fields.VolumeTarget != nil {
		goal.Volume.Target = *fields.VolumeTarget
	}
	if goal.Frequency != nil && fields.TargetCount != nil {
		goal.Frequency.TargetCount = *fields.TargetCount
	}
}

func milestonesToInt32(milestones []int) []int32 {
	result := make([]int32, 0, len(milestones))
	for _, m := range milestones {
		result = append(result, int32(m))
	}
	return result
}

func milestonesFromInt32(milestones []int32) []int {
	result := make([]int, 0, len(milestones))
	for _, m := range milestones {
		result = append(result, int(m))
	}
	return result
}

func statusParam(s *Status) *string {
	if s == nil {
		return nil
	}
	str := string(*s)
	return &str
}

func typeParam(t *Type) *string {
	if t == nil {
		return nil
	}
	str := string(*t)
	return &str
}
