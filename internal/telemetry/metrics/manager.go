package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// stats computation outcomes, used as the "outcome" label
const (
	OutcomeOK                = "ok"
	OutcomeValidation        = "validation_error"
	OutcomeConfiguration     = "configuration_error"
	OutcomeUpstreamFailure   = "upstream_unavailable"
	OutcomeUnexpectedFailure = "error"
)

type Manager struct {
	factory   promauto.Factory
	namespace string
	subsystem string

	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter
	CounterStatsComputations   *prometheus.CounterVec
	CounterWorkoutLogsAdded    prometheus.Counter

	// gauges
	GaugeRequests        prometheus.Gauge
	GaugeOpenConnections prometheus.Gauge
	GaugeLifeSignal      prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
	HistStatsDuration        prometheus.Histogram
	HistStreakLength         prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("gymstreak", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("gymstreak", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})
	counterStatsComputations := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "stats_computations",
		Help:      "The total number of log stats computations, by outcome",
	}, []string{"outcome"})
	counterWorkoutLogsAdded := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workout_logs_added",
		Help:      "The total number of added workout logs",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeOpenConnections := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "open_connections",
		Help:      "Current number of open client connections",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})

	histStatsDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "stats_computation_duration_seconds",
		Help:      "Duration of a single log stats computation (fetch included) in seconds",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	})
	histStreakLength := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "streak_length_days",
		Help:      "Computed streak lengths in days",
		Buckets:   []float64{0, 1, 2, 3, 5, 7, 14, 30, 60, 90, 180, 365},
	})

	return &Manager{
		factory:                    factory,
		namespace:                  namespace,
		subsystem:                  subsystem,
		CounterRequests:            counterRequests,
		CounterHandleRequestPanic:  counterHandleRequestPanic,
		CounterRateLimitedRequests: counterRateLimitedRequests,
		CounterStatsComputations:   counterStatsComputations,
		CounterWorkoutLogsAdded:    counterWorkoutLogsAdded,
		GaugeRequests:              gaugeRequests,
		GaugeOpenConnections:       gaugeOpenConnections,
		GaugeLifeSignal:            gaugeLifeSignal,
		HistogramRequestDuration:   histogramRequestDuration,
		HistStatsDuration:          histStatsDuration,
		HistStreakLength:           histStreakLength,
	}
}

// RegisterSettingsCacheStats exposes the settings read cache hit and miss counts.
func (m *Manager) RegisterSettingsCacheStats(hitCount, missCount func() int64) {
	m.factory.NewCounterFunc(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "settings_cache_hits",
		Help:      "The total number of settings cache hits",
	}, func() float64 {
		return float64(hitCount())
	})
	m.factory.NewCounterFunc(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "settings_cache_misses",
		Help:      "The total number of settings cache misses",
	}, func() float64 {
		return float64(missCount())
	})
}
