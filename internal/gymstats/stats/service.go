package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymstreak/internal/gymstats/logs"
	"github.com/2beens/gymstreak/internal/streak"
	"github.com/2beens/gymstreak/internal/telemetry/metrics"
	"github.com/2beens/gymstreak/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=stats

type logsRepo interface {
	ListByUser(ctx context.Context, userID string) ([]logs.WorkoutLog, error)
}

type settingsStore interface {
	Get(ctx context.Context, userID string) (streak.Settings, error)
}

// Clock supplies the current instant. Tests pin it.
type Clock func() time.Time

type Service struct {
	logsRepo       logsRepo
	settingsStore  settingsStore
	metricsManager *metrics.Manager
	clock          Clock
}

func NewService(
	logsRepo logsRepo,
	settingsStore settingsStore,
	metricsManager *metrics.Manager,
	clock Clock,
) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		logsRepo:       logsRepo,
		settingsStore:  settingsStore,
		metricsManager: metricsManager,
		clock:          clock,
	}
}

// GetStats fetches the user's logs and settings and computes their current LogStats.
// Nothing is computed unless both fetches succeed.
func (s *Service) GetStats(ctx context.Context, userID string) (_ streak.LogStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.stats.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	defer func(begin time.Time) {
		if s.metricsManager == nil {
			return
		}
		s.metricsManager.HistStatsDuration.Observe(time.Since(begin).Seconds())
		s.metricsManager.CounterStatsComputations.WithLabelValues(outcome(err)).Inc()
	}(time.Now())

	var (
		workoutLogs []logs.WorkoutLog
		settings    streak.Settings
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetched, err := s.logsRepo.ListByUser(gCtx, userID)
		if err != nil {
			return fmt.Errorf("fetch logs: %w: %w", streak.ErrUpstreamUnavailable, err)
		}
		workoutLogs = fetched
		return nil
	})
	g.Go(func() error {
		fetched, err := s.settingsStore.Get(gCtx, userID)
		if err != nil {
			if streak.IsConfigurationError(err) || streak.IsValidationError(err) {
				return fmt.Errorf("stored settings: %w", err)
			}
			return fmt.Errorf("fetch settings: %w: %w", streak.ErrUpstreamUnavailable, err)
		}
		settings = fetched
		return nil
	})
	if err := g.Wait(); err != nil {
		return streak.LogStats{}, err
	}

	now := s.clock()
	logStats, err := streak.ComputeStats(logs.ToEngineLogs(workoutLogs), settings, now)
	if err != nil {
		return streak.LogStats{}, fmt.Errorf("compute stats: %w", err)
	}

	span.SetAttributes(
		attribute.Int("logs.count", logStats.TotalLogs),
		attribute.Int("streak", logStats.Streak),
		attribute.Int("buffer_days_used", logStats.BufferDaysUsed),
	)
	if s.metricsManager != nil {
		s.metricsManager.HistStreakLength.Observe(float64(logStats.Streak))
	}
	log.Tracef("stats for user [%s]: logs %d, streak %d, buffer used %d/%d",
		userID, logStats.TotalLogs, logStats.Streak, logStats.BufferDaysUsed, logStats.RestDaysBuffer)

	return logStats, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case streak.IsValidationError(err):
		return metrics.OutcomeValidation
	case streak.IsConfigurationError(err):
		return metrics.OutcomeConfiguration
	case errors.Is(err, streak.ErrUpstreamUnavailable):
		return metrics.OutcomeUpstreamFailure
	default:
		return metrics.OutcomeUnexpectedFailure
	}
}
