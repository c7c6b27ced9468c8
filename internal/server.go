package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/bohdan-kov/Obsessed-sub003/internal/auth"
	"github.com/bohdan-kov/Obsessed-sub003/internal/catalog"
	"github.com/bohdan-kov/Obsessed-sub003/internal/config"
	"github.com/bohdan-kov/Obsessed-sub003/internal/db"
	"github.com/bohdan-kov/Obsessed-sub003/internal/goals"
	"github.com/bohdan-kov/Obsessed-sub003/internal/middleware"
	"github.com/bohdan-kov/Obsessed-sub003/internal/sessions"
	"github.com/bohdan-kov/Obsessed-sub003/internal/telemetry/metrics"
	metricsmiddleware "github.com/bohdan-kov/Obsessed-sub003/internal/telemetry/metrics/middleware"
	"github.com/bohdan-kov/Obsessed-sub003/internal/telemetry/tracing"
	"github.com/bohdan-kov/Obsessed-sub003/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service
	accountsRepo *auth.AccountsRepo

	goalsRepo  *goals.Repo
	goalsStore *goals.Store
	pubSub     *goals.PubSub

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()

	subscribersCancel context.CancelFunc
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewPool(ctx, db.PoolParams{
		Host:           params.Config.PostgresHost,
		Port:           params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": "goals_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("goals", "backend", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})
	if params.HoneycombTracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewAuthService(auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "goals-backend")
	if err != nil {
		return nil, err
	}

	pubSub := goals.NewPubSub(goals.NewPubSubParams{
		Client:               rdb,
		NotificationsChannel: params.Config.NotificationsChannel,
		GoalChangesChannel:   params.Config.GoalChangesChannelBase,
		SessionEventsChannel: params.Config.SessionEventsChannel,
	})

	goalsRepo := goals.NewRepo(dbPool)
	goalsStore := goals.NewStore(goals.NewStoreParams{
		Repo:     goalsRepo,
		Sessions: sessions.NewRepo(dbPool),
		Catalog:  catalog.NewCached(catalog.NewRepo(dbPool)),
		Notifier: pubSub,
		Feed:     pubSub,
		Metrics:  metricsManager,
	})

	s := &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),
		accountsRepo: auth.NewAccountsRepo(dbPool),

		goalsRepo:  goalsRepo,
		goalsStore: goalsStore,
		pubSub:     pubSub,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("goals-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
	}).Methods("GET", "OPTIONS").Name("root")
	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	authHandler := auth.NewHandler(s.accountsRepo, s.authService)
	authHandler.SetupRoutes(r,
		middleware.RateLimit(reqRateLimiter, "login", s.config.LoginRateLimitAllowedPerMin),
		middleware.Cors(),
	)

	goalsHandler := goals.NewHandler(s.goalsStore)
	goalsSubrouter := r.PathPrefix("/goals").Subrouter()
	goalsHandler.SetupRoutes(goalsSubrouter)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", metricsmiddleware.
		New(s.promRegistry, nil).
		WrapHandler("/metrics", promhttp.HandlerFor(
			s.promRegistry,
			promhttp.HandlerOpts{}),
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
			log.Fatalf("goals service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.startSubscribers(ctx)

	if s.config.RecomputeOnStart {
		go s.recomputeAllOwners(ctx)
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// startSubscribers wires the redis feeds into the goals store: completed
// training sessions trigger a recomputation pass for that owner, and goal
// change events from other instances refresh the in-process subscribers.
func (s *Server) startSubscribers(ctx context.Context) {
	subscribersCtx, cancel := context.WithCancel(ctx)
	s.subscribersCancel = cancel

	go s.pubSub.SubscribeSessionEvents(subscribersCtx, func(ctx context.Context, event sessions.CompletedEvent) {
		log.Debugf("session %s completed for %s, recomputing goals", event.SessionID, event.OwnerID)
		if err := s.goalsStore.RecomputeAll(ctx, event.OwnerID); err != nil {
			log.Errorf("recompute goals for %s: %s", event.OwnerID, err)
		}
	})

	go s.pubSub.SubscribeGoalChanges(subscribersCtx, s.goalsStore.HandleRemoteChange)
}

func (s *Server) recomputeAllOwners(ctx context.Context) {
	owners, err := s.goalsRepo.Owners(ctx)
	if err != nil {
		log.Errorf("recompute on start, list owners: %s", err)
		return
	}
	log.Debugf("recompute on start for %d owners", len(owners))
	for _, ownerID := range owners {
		if err := s.goalsStore.RecomputeAll(ctx, ownerID); err != nil {
			log.Errorf("recompute on start for %s: %s", ownerID, err)
		}
	}
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.subscribersCancel != nil {
		s.subscribersCancel()
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
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

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
