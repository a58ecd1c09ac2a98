package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2beens/gymstreak/internal/gymstats"
	"github.com/2beens/gymstreak/internal/streak"
	"github.com/2beens/gymstreak/internal/telemetry/tracing"
	"github.com/2beens/gymstreak/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type settingsStore interface {
	Get(ctx context.Context, userID string) (streak.Settings, error)
	Set(ctx context.Context, userID string, restDaysBuffer int, timezone string) (streak.Settings, error)
	Delete(ctx context.Context, userID string) error
}

type PutSettingsRequest struct {
	RestDaysBuffer int    `json:"restDaysBuffer"`
	Timezone       string `json:"timezone"`
}

type Handler struct {
	store settingsStore
}

func NewHandler(store settingsStore) *Handler {
	return &Handler{
		store: store,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.settings.get")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	if userID == "" {
		pkg.WriteJSONError(w, "error, user id empty", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("user_id", userID))

	s, err := handler.store.Get(ctx, userID)
	if err != nil {
		gymstats.WriteError(w, upstreamErr(err), "get settings failed")
		return
	}

	settingsJson, err := json.Marshal(FromSettings(userID, s))
	if err != nil {
		log.Errorf("failed to marshal settings: %s", err)
		pkg.WriteJSONError(w, "failed to marshal settings", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, settingsJson, http.StatusOK)
}

func (handler *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.settings.put")
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

	var req PutSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("put settings, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "put settings failed, invalid body", http.StatusBadRequest)
		return
	}
	if req.Timezone == "" {
		req.Timezone = streak.DefaultTimezone
	}

	s, err := handler.store.Set(ctx, userID, req.RestDaysBuffer, req.Timezone)
	if err != nil {
		gymstats.WriteError(w, upstreamErr(err), "put settings failed")
		return
	}

	settingsJson, err := json.Marshal(FromSettings(userID, s))
	if err != nil {
		log.Errorf("failed to marshal settings: %s", err)
		pkg.WriteJSONError(w, "failed to marshal settings", http.StatusInternalServerError)
		return
	}

	log.Debugf("settings updated for user [%s]: %s", userID, settingsJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, settingsJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.settings.delete")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	if userID == "" {
		pkg.WriteJSONError(w, "error, user id empty", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("user_id", userID))

	if err := handler.store.Delete(ctx, userID); err != nil {
		gymstats.WriteError(w, upstreamErr(err), "delete settings failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// upstreamErr marks store failures as upstream unavailability, leaving settings errors as they are.
func upstreamErr(err error) error {
	if streak.IsValidationError(err) || streak.IsConfigurationError(err) {
		return err
	}
	return fmt.Errorf("settings store: %w: %w", streak.ErrUpstreamUnavailable, err)
}
