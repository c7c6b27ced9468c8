package goals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bohdan-kov/Obsessed-sub003/internal/auth"
	"github.com/bohdan-kov/Obsessed-sub003/internal/telemetry/tracing"
	"github.com/bohdan-kov/Obsessed-sub003/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=goals_test

type goalsService interface {
	Create(ctx context.Context, goal *Goal) (*Goal, []Warning, error)
	Get(ctx context.Context, ownerID, goalID string) (*Goal, error)
	List(ctx context.Context, ownerID string, filter Filter) ([]Goal, error)
	Update(ctx context.Context, ownerID, goalID string, fields UpdateFields) (*Goal, error)
	Pause(ctx context.Context, ownerID, goalID string) error
	Resume(ctx context.Context, ownerID, goalID string) error
	Fail(ctx context.Context, ownerID, goalID string) error
	Delete(ctx context.Context, ownerID, goalID string) error
	Progress(ctx context.Context, ownerID string) ([]GoalProgress, error)
	ProgressForType(ctx context.Context, ownerID string, goalType Type) ([]GoalProgress, error)
	Stats(ctx context.Context, ownerID string) (*Stats, error)
	RecomputeAll(ctx context.Context, ownerID string) error
}

type CreateGoalResponse struct {
	Goal     Goal      `json:"goal"`
	Warnings []Warning `json:"warnings,omitempty"`
}

type ListGoalsResponse struct {
	Goals []Goal `json:"goals"`
	Total int    `json:"total"`
}

type ProgressResponse struct {
	Progress []GoalProgress `json:"progress"`
}

type DeleteGoalResponse struct {
	DeletedID string `json:"deletedId"`
}

type StatusChangeResponse struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}

type validationErrorResponse struct {
	Error   string   `json:"error"`
	Reasons []string `json:"reasons"`
}

type Handler struct {
	service goalsService
}

func NewHandler(service goalsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("", handler.HandleCreate).Methods("POST", "OPTIONS")
	router.HandleFunc("", handler.HandleList).Methods("GET", "OPTIONS")
	router.HandleFunc("/progress", handler.HandleProgress).Methods("GET", "OPTIONS")
	router.HandleFunc("/progress/{type}", handler.HandleProgressForType).Methods("GET", "OPTIONS")
	router.HandleFunc("/stats", handler.HandleStats).Methods("GET", "OPTIONS")
	router.HandleFunc("/recompute", handler.HandleRecompute).Methods("POST", "OPTIONS")
	router.HandleFunc("/{id}", handler.HandleGet).Methods("GET", "OPTIONS")
	router.HandleFunc("/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS")
	router.HandleFunc("/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS")
	router.HandleFunc("/{id}/pause", handler.HandlePause).Methods("POST", "OPTIONS")
	router.HandleFunc("/{id}/resume", handler.HandleResume).Methods("POST", "OPTIONS")
	router.HandleFunc("/{id}/fail", handler.HandleFail).Methods("POST", "OPTIONS")
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.create")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var goal Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		log.Tracef("new goal, unmarshal json params: %s", err)
		http.Error(w, "create goal failed", http.StatusBadRequest)
		return
	}
	goal.OwnerID = ownerID

	createdGoal, warnings, err := handler.service.Create(ctx, &goal)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			writeValidationError(w, validationErr)
			return
		}
		log.Errorf("failed to create goal [%s] for %s: %s", goal.Type, ownerID, err)
		http.Error(w, "error, failed to create goal", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(CreateGoalResponse{
		Goal:     *createdGoal,
		Warnings: warnings,
	})
	if err != nil {
		log.Errorf("failed to marshal created goal: %s", err)
		http.Error(w, "error, failed to create goal", http.StatusInternalServerError)
		return
	}

	log.Debugf("new %s goal created: %s", createdGoal.Type, createdGoal.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.get")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	goalID := mux.Vars(r)["id"]
	if goalID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	goal, err := handler.service.Get(ctx, ownerID, goalID)
	if err != nil {
		writeServiceError(w, "get goal", goalID, err)
		return
	}

	goalJson, err := json.Marshal(goal)
	if err != nil {
		log.Errorf("failed to marshal goal: %s", err)
		http.Error(w, "failed to marshal goal", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, goalJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.list")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	goals, err := handler.service.List(ctx, ownerID, filter)
	if err != nil {
		log.Errorf("list goals for %s: %s", ownerID, err)
		http.Error(w, "failed to get goals", http.StatusInternalServerError)
		return
	}

	listRespJson, err := json.Marshal(ListGoalsResponse{
		Goals: goals,
		Total: len(goals),
	})
	if err != nil {
		log.Errorf("marshal goals error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listRespJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	goalID := mux.Vars(r)["id"]
	if goalID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	var fields UpdateFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		log.Tracef("update goal, unmarshal json params: %s", err)
		http.Error(w, "update goal failed", http.StatusBadRequest)
		return
	}

	updatedGoal, err := handler.service.Update(ctx, ownerID, goalID, fields)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			writeValidationError(w, validationErr)
			return
		}
		writeServiceError(w, "update goal", goalID, err)
		return
	}

	updatedJson, err := json.Marshal(updatedGoal)
	if err != nil {
		log.Errorf("failed to marshal updated goal: %s", err)
		http.Error(w, "failed to marshal updated goal", http.StatusInternalServerError)
		return
	}

	log.Debugf("goal updated: %s", goalID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, updatedJson, http.StatusOK)
}

func (handler *Handler) HandlePause(w http.ResponseWriter, r *http.Request) {
	handler.handleTransition(w, r, "pause", StatusPaused, handler.service.Pause)
}

func (handler *Handler) HandleResume(w http.ResponseWriter, r *http.Request) {
	handler.handleTransition(w, r, "resume", StatusActive, handler.service.Resume)
}

func (handler *Handler) HandleFail(w http.ResponseWriter, r *http.Request) {
	handler.handleTransition(w, r, "fail", StatusFailed, handler.service.Fail)
}

func (handler *Handler) handleTransition(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	newStatus Status,
	transition func(ctx context.Context, ownerID, goalID string) error,
) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals."+name)
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	goalID := mux.Vars(r)["id"]
	if goalID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := transition(ctx, ownerID, goalID); err != nil {
		writeServiceError(w, name+" goal", goalID, err)
		return
	}

	respJson, err := json.Marshal(StatusChangeResponse{
		ID:     goalID,
		Status: newStatus,
	})
	if err != nil {
		log.Errorf("failed to marshal %s response: %s", name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	log.Debugf("goal %s: %s", name, goalID)
	pkg.WriteJSONResponseOK(w, string(respJson))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.delete")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	goalID := mux.Vars(r)["id"]
	if goalID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, ownerID, goalID); err != nil {
		writeServiceError(w, "delete goal", goalID, err)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteGoalResponse{
		DeletedID: goalID,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	log.Debugf("goal deleted: %s", goalID)
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.progress")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	progress, err := handler.service.Progress(ctx, ownerID)
	if err != nil {
		log.Errorf("goals progress for %s: %s", ownerID, err)
		http.Error(w, "failed to compute progress", http.StatusInternalServerError)
		return
	}
	writeProgress(w, progress)
}

func (handler *Handler) HandleProgressForType(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.progress-for-type")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	goalType := Type(mux.Vars(r)["type"])
	if !goalType.IsValid() {
		http.Error(w, "error, invalid goal type", http.StatusBadRequest)
		return
	}

	progress, err := handler.service.ProgressForType(ctx, ownerID, goalType)
	if err != nil {
		log.Errorf("goals progress [%s] for %s: %s", goalType, ownerID, err)
		http.Error(w, "failed to compute progress", http.StatusInternalServerError)
		return
	}
	writeProgress(w, progress)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.stats")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	stats, err := handler.service.Stats(ctx, ownerID)
	if err != nil {
		log.Errorf("goals stats for %s: %s", ownerID, err)
		http.Error(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal stats: %s", err)
		http.Error(w, "failed to marshal stats", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}

func (handler *Handler) HandleRecompute(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.recompute")
	defer span.End()

	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := handler.service.RecomputeAll(ctx, ownerID); err != nil {
		log.Errorf("recompute goals for %s: %s", ownerID, err)
		http.Error(w, "failed to recompute goals", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"recomputed":true}`)
}

func filterFromQuery(r *http.Request) (Filter, error) {
	var filter Filter
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := Status(statusStr)
		if !status.IsValid() {
			return Filter{}, errors.New("error, invalid status filter")
		}
		filter.Status = &status
	}
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		goalType := Type(typeStr)
		if !goalType.IsValid() {
			return Filter{}, errors.New("error, invalid type filter")
		}
		filter.Type = &goalType
	}
	return filter, nil
}

func writeProgress(w http.ResponseWriter, progress []GoalProgress) {
	pkg.WriteJSON(w, ProgressResponse{
		Progress: progress,
	}, http.StatusOK)
}

func writeValidationError(w http.ResponseWriter, validationErr *ValidationError) {
	pkg.WriteJSON(w, validationErrorResponse{
		Error:   "goal validation failed",
		Reasons: validationErr.Reasons,
	}, http.StatusBadRequest)
}

func writeServiceError(w http.ResponseWriter, action, goalID string, err error) {
	switch {
	case errors.Is(err, ErrGoalNotFound):
		http.Error(w, "goal not found", http.StatusNotFound)
	case errors.Is(err, ErrNotOwner):
		http.Error(w, "no can do", http.StatusForbidden)
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, "invalid goal status transition", http.StatusConflict)
	default:
		log.Errorf("failed to %s %s: %s", action, goalID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
