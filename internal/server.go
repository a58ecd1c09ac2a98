package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/2beens/gymstreak/internal/config"
	"github.com/2beens/gymstreak/internal/db"
	"github.com/2beens/gymstreak/internal/gymstats/logs"
	"github.com/2beens/gymstreak/internal/gymstats/settings"
	"github.com/2beens/gymstreak/internal/gymstats/stats"
	"github.com/2beens/gymstreak/internal/middleware"
	"github.com/2beens/gymstreak/internal/telemetry/metrics"
	"github.com/2beens/gymstreak/internal/telemetry/tracing"
	"github.com/2beens/gymstreak/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string
	clock             stats.Clock

	config        *config.Config
	dbPool        *pgxpool.Pool
	redisClient   *redis.Client
	logsRepo      *logs.Repo
	settingsStore *settings.Store

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
	// optional, defaults to time.Now
	Clock stats.Clock
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	tracingEnabled := params.HoneycombTracingEnabled || params.Config.TracingEnabled

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.PostgresPassword,
		MaxConns:       params.Config.PostgresMaxConns,
		TracingEnabled: tracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	logsRepo := logs.NewRepo(dbPool)
	if err := logsRepo.EnsureSchema(ctx); err != nil {
		log.Errorf("failed to ensure workout log schema: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("gymstreak", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(tracingEnabled, "gymstreak-backend", rdb)
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	settingsStore := settings.NewStore(
		rdb,
		params.Config.SettingsCacheSizeMB*1024*1024,
		params.Config.SettingsCacheTTL,
	)
	metricsManager.RegisterSettingsCacheStats(settingsStore.CacheHitCount, settingsStore.CacheMissCount)

	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Server{
		config:        params.Config,
		versionInfo:   params.VersionInfo,
		clock:         clock,
		dbPool:        dbPool,
		redisClient:   rdb,
		logsRepo:      logsRepo,
		settingsStore: settingsStore,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gymstreak-router"))

	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")

	statsService := stats.NewService(s.logsRepo, s.settingsStore, s.metricsManager, s.clock)
	statsHandler := stats.NewHandler(statsService)
	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	statsRouter := r.NewRoute().Subrouter()
	statsRouter.HandleFunc("/gymstats/users/{userId}/stats", statsHandler.HandleGetStats).Methods("GET", "OPTIONS").Name("get-stats")
	statsRouter.Use(middleware.RateLimit(reqRateLimiter, s.metricsManager, "stats", s.config.StatsRateLimitPerMin))

	settingsHandler := settings.NewHandler(s.settingsStore)
	r.HandleFunc("/gymstats/users/{userId}/settings", settingsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-settings")
	r.HandleFunc("/gymstats/users/{userId}/settings", settingsHandler.HandlePut).Methods("PUT", "OPTIONS").Name("put-settings")
	r.HandleFunc("/gymstats/users/{userId}/settings", settingsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-settings")

	logsHandler := logs.NewHandler(s.logsRepo, s.metricsManager)
	r.HandleFunc("/gymstats/users/{userId}/logs", logsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("add-log")
	r.HandleFunc("/gymstats/users/{userId}/logs", logsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-logs")
	r.HandleFunc("/gymstats/logs/{id}", logsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-log")

	// all the rest - unhandled paths
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSONError(w, "not found", http.StatusNotFound)
	})

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if s.versionInfo == "" {
		pkg.WriteTextResponseOK(w, "ok")
		return
	}
	pkg.WriteTextResponseOK(w, "ok "+s.versionInfo)
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      otelhttp.NewHandler(s.routerSetup(), "gymstreak-server"),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	// stop taking requests first, then release what the handlers use
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		}
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics http server: %w", shutdownErr))
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if closeErr := s.redisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", closeErr))
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return err
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeOpenConnections.Add(1)
	case http.StateClosed, http.StateHijacked:
		s.metricsManager.GaugeOpenConnections.Add(-1)
	default:
		// do nothing
	}
}
