package logs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/gymstreak/internal/gymstats"
	"github.com/2beens/gymstreak/internal/streak"
	"github.com/2beens/gymstreak/internal/telemetry/metrics"
	"github.com/2beens/gymstreak/internal/telemetry/tracing"
	"github.com/2beens/gymstreak/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=logs

type logsRepo interface {
	Add(ctx context.Context, workoutLog WorkoutLog) (*WorkoutLog, error)
	List(ctx context.Context, params ListParams) ([]WorkoutLog, error)
	Delete(ctx context.Context, id string) error
}

type AddLogRequest struct {
	// optional, client generated UUID so retried requests are not logged twice
	ID             string     `json:"id,omitempty"`
	ExerciseID     string     `json:"exerciseId"`
	MuscleGroup    string     `json:"muscleGroup"`
	WorkoutInstant *time.Time `json:"workoutInstant,omitempty"`
}

type ListResponse struct {
	Logs  []WorkoutLog `json:"logs"`
	Total int          `json:"total"`
}

type DeleteLogResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	repo           logsRepo
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(repo logsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.logs.add")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	if userID == "" {
		pkg.WriteJSONError(w, "error, user id empty", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("user_id", userID))

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add workout log, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "add workout log failed, invalid body", http.StatusBadRequest)
		return
	}
	if req.ExerciseID == "" {
		pkg.WriteJSONError(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}
	if req.ID != "" {
		if _, err := uuid.Parse(req.ID); err != nil {
			pkg.WriteJSONError(w, "error, log id is not a valid uuid", http.StatusBadRequest)
			return
		}
	}

	workoutInstant := handler.now()
	if req.WorkoutInstant != nil && !req.WorkoutInstant.IsZero() {
		workoutInstant = *req.WorkoutInstant
	}

	added, err := handler.repo.Add(ctx, WorkoutLog{
		ID:             req.ID,
		UserID:         userID,
		ExerciseID:     req.ExerciseID,
		MuscleGroup:    req.MuscleGroup,
		WorkoutInstant: workoutInstant.UTC(),
	})
	if errors.Is(err, ErrLogExists) {
		pkg.WriteJSONError(w, "workout log already exists", http.StatusConflict)
		return
	}
	if err != nil {
		gymstats.WriteError(w, upstreamErr(err), "add workout log failed")
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterWorkoutLogsAdded.Inc()
	}

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal new workout log: %s", err)
		pkg.WriteJSONError(w, "error, failed to marshal workout log", http.StatusInternalServerError)
		return
	}

	log.Debugf("new workout log added: %s", addedJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.logs.list")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	if userID == "" {
		pkg.WriteJSONError(w, "error, user id empty", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("user_id", userID))

	params := ListParams{UserID: userID}
	var err error
	if params.From, err = parseTimeParam(r, "from", false); err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if params.To, err = parseTimeParam(r, "to", true); err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	workoutLogs, err := handler.repo.List(ctx, params)
	if err != nil {
		gymstats.WriteError(w, upstreamErr(err), "list workout logs failed")
		return
	}

	logsJson, err := json.Marshal(ListResponse{
		Logs:  workoutLogs,
		Total: len(workoutLogs),
	})
	if err != nil {
		log.Errorf("failed to marshal workout logs: %s", err)
		pkg.WriteJSONError(w, "failed to marshal workout logs", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, logsJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.logs.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		pkg.WriteJSONError(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrLogNotFound) {
			pkg.WriteJSONError(w, "workout log not found", http.StatusNotFound)
			return
		}
		gymstats.WriteError(w, upstreamErr(err), "delete workout log failed")
		return
	}

	deletedJson, err := json.Marshal(DeleteLogResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		pkg.WriteJSONError(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, deletedJson, http.StatusOK)
}

// parseTimeParam reads an RFC 3339 instant or a YYYY-MM-DD date (UTC). With endOfDay set,
// a bare date resolves to the last instant postgres can store for that day, so an
// inclusive upper bound covers the whole date.
func parseTimeParam(r *http.Request, name string, endOfDay bool) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	d, err := streak.ParseCalendarDate(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s param [%s]", name, raw)
	}
	t := d.StartIn(time.UTC)
	if endOfDay {
		t = d.AddDays(1).StartIn(time.UTC).Add(-time.Microsecond)
	}
	return &t, nil
}

func upstreamErr(err error) error {
	return fmt.Errorf("workout log store: %w: %w", streak.ErrUpstreamUnavailable, err)
}
