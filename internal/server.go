package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"time"

	"github.com/foracure/backend/internal/auth"
	"github.com/foracure/backend/internal/cache"
	"github.com/foracure/backend/internal/config"
	"github.com/foracure/backend/internal/db"
	"github.com/foracure/backend/internal/middleware"
	"github.com/foracure/backend/internal/misc"
	"github.com/foracure/backend/internal/news"
	"github.com/foracure/backend/internal/notify"
	"github.com/foracure/backend/internal/ratelimit"
	"github.com/foracure/backend/internal/submission"
	"github.com/foracure/backend/internal/telemetry/metrics"
	"github.com/foracure/backend/internal/telemetry/tracing"
	"github.com/foracure/backend/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	newsRepo    *news.Repo
	newsCache   cache.Cache
	dispatcher  *notify.Dispatcher
	redisClient *redis.Client
	rateLimiter ratelimit.Limiter
	tokens      *auth.TokenService
	authService *auth.Service

	// peers allowed to report the client address in forwarding headers
	trustedProxies []netip.Prefix

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	VersionInfo string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	tracingEnabled := cfg.Secrets.HoneycombEnabled

	if cfg.AutoMigrate {
		version, err := db.SetupSchema(cfg.Secrets.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("setup db schema: %w", err)
		}
		log.Debugf("db schema version: %d", version)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DatabaseURL:    cfg.Secrets.DatabaseURL,
		TracingEnabled: tracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": dbPool.Config().ConnConfig.Database},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(tracingEnabled, "foracure-backend")
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	if cfg.Secrets.ResendAPIKey == "" {
		log.Warnln("RESEND_API_KEY not set, form submissions will fail")
	}
	if cfg.Secrets.InboxAddress == "" {
		log.Warnln("EMAIL_USER not set, form submissions will fail")
	}
	dispatcher := notify.NewDispatcher(
		notify.NewResendSender(cfg.Secrets.ResendAPIKey, tracedHttpClient, cfg.MailTimeout),
		cfg.MailFrom,
		cfg.Secrets.InboxAddress,
		metricsManager,
	)

	tokens, err := auth.NewTokenService(cfg.Secrets.SessionSecret, auth.DefaultTTL)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("new token service: %w", err)
	}

	trustedProxies, err := pkg.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	s := &Server{
		config:      cfg,
		versionInfo: params.VersionInfo,
		dbPool:      dbPool,
		newsRepo:    news.NewRepo(dbPool),
		newsCache:   cache.NewBytesCache(cfg.NewsCacheSizeMB),
		dispatcher:  dispatcher,
		tokens:      tokens,

		trustedProxies: trustedProxies,
		authService: auth.NewAuthService(&auth.Admin{
			Username:     cfg.Secrets.AdminUsername,
			PasswordHash: cfg.Secrets.AdminPasswordHash,
		}, tokens),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	s.rateLimiter = s.newLoginRateLimiter(ctx)

	return s, nil
}

func (s *Server) newLoginRateLimiter(ctx context.Context) ratelimit.Limiter {
	attempts := s.config.LoginRateLimitAttempts
	window := s.config.LoginRateLimitWindow

	if s.config.RateLimitBackend != "redis" {
		log.Debugf("login rate limit: in memory, %d per %s", attempts, window)
		return ratelimit.NewMemoryLimiter(attempts, window)
	}

	s.redisClient = redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(s.config.RedisHost, s.config.RedisPort),
		Password: s.config.Secrets.RedisPassword,
		DB:       0, // use default DB
	})
	if s.config.Secrets.HoneycombEnabled {
		s.redisClient.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := s.redisClient.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	log.Debugf("login rate limit: redis, %d per %s", attempts, window)
	return ratelimit.NewRedisLimiter(s.redisClient, attempts, window)
}

func (s *Server) routerSetup() http.Handler {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	adminGuard := middleware.AdminGuard(s.tokens)

	miscHandler := misc.NewHandler(s.versionInfo, s.authService, s.metricsManager)
	miscHandler.SetupRoutes(r, s.rateLimiter, s.trustedProxies, adminGuard)

	submissionHandler := submission.NewHandler(s.dispatcher)
	submissionHandler.SetupRoutes(r)

	newsHandler := news.NewHandler(s.newsRepo, s.newsCache, s.config.NewsCacheTTL, s.metricsManager)
	newsHandler.SetupRoutes(r, adminGuard)

	// all the rest - unhandled paths
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSONError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.DrainAndCloseRequest())

	// preflight requests never match a route, so CORS has to wrap the whole router
	return middleware.Cors(s.config.AllowedOrigins)(r)
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
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

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests first, the handlers still need the db and redis
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown http server: %s", err)
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown metrics http server: %s", err)
		}
		log.Warnln("metrics server shut down")
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

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
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed, http.StateHijacked:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
