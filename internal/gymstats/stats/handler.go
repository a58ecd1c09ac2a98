package stats

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/gymstreak/internal/gymstats"
	"github.com/2beens/gymstreak/internal/streak"
	"github.com/2beens/gymstreak/internal/telemetry/tracing"
	"github.com/2beens/gymstreak/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type statsService interface {
	GetStats(ctx context.Context, userID string) (streak.LogStats, error)
}

type Handler struct {
	service statsService
}

func NewHandler(service statsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.stats.get")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	if userID == "" {
		pkg.WriteJSONError(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	logStats, err := handler.service.GetStats(ctx, userID)
	if err != nil {
		gymstats.WriteError(w, err, "get stats failed")
		return
	}

	statsJson, err := json.Marshal(logStats)
	if err != nil {
		log.Errorf("failed to marshal stats: %s", err)
		pkg.WriteJSONError(w, "failed to marshal stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}
