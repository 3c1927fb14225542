package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/shelflog/backend/internal/application/catalog"
	appdashboard "github.com/shelflog/backend/internal/application/dashboard"
	appfeed "github.com/shelflog/backend/internal/application/feed"
	appidentity "github.com/shelflog/backend/internal/application/identity"
	appreport "github.com/shelflog/backend/internal/application/report"
	appshelf "github.com/shelflog/backend/internal/application/shelf"
	"github.com/shelflog/backend/internal/domain/feed"
	"github.com/shelflog/backend/internal/infrastructure/auth"
	"github.com/shelflog/backend/internal/infrastructure/cache"
	"github.com/shelflog/backend/internal/infrastructure/config"
	"github.com/shelflog/backend/internal/infrastructure/event"
	"github.com/shelflog/backend/internal/infrastructure/logger"
	"github.com/shelflog/backend/internal/infrastructure/persistence"
	"github.com/shelflog/backend/internal/infrastructure/scheduler"
	"github.com/shelflog/backend/internal/infrastructure/telemetry"
	"github.com/shelflog/backend/internal/interfaces/http/handler"
	"github.com/shelflog/backend/internal/interfaces/http/middleware"
	"github.com/shelflog/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// idempotencyTTL bounds how long a submission's Idempotency-Key is remembered
const idempotencyTTL = 24 * time.Hour

//	@title			ShelfLog API
//	@version		1.0
//	@description	Shelf inventory event log: submissions, feeds and trends.

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Logs are teed to OTLP once the log provider exists
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	if loggerProvider.IsEnabled() {
		log, err = logger.New(logCfg, loggerProvider.ZapCore(logger.ParseLevel(cfg.Log.Level)))
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer logger.Sync(log)

	log.Info("Starting ShelfLog backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if cfg.Database.Driver == config.DriverSQLite {
		// sqlite has no migration set; the schema is derived from the models
		if err := db.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to prepare sqlite schema", zap.Error(err))
		}
	}
	if err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, cfg.Database.Driver, tracerProvider.Provider(), log); err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	stores, err := cache.NewStores(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	var revocations auth.RevocationStore = auth.NewInMemoryRevocationStore()
	if stores.Client != nil {
		revocations = auth.NewRedisRevocationStore(stores.Client)
	}

	shelfMetrics, err := telemetry.NewShelfMetrics(meterProvider.Meter("shelflog"))
	if err != nil {
		log.Fatal("Failed to register shelf metrics", zap.Error(err))
	}

	items := persistence.NewGormItemRepository(db.DB)
	profiles := persistence.NewGormProfileRepository(db.DB)
	events := persistence.NewGormEventRepository(db.DB)

	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(appshelf.NewRevisionBumpHandler(stores.Revisions, log))
	if err := bus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := appidentity.NewAuthService(profiles, profiles, jwtService, revocations,
		appidentity.DefaultAuthServiceConfig(), log)
	feeds := appfeed.NewFeedService(events, items, profiles, stores.Revisions, cfg.Feed, log).
		WithMetrics(shelfMetrics)
	trends := appreport.NewTrendService(events, items, stores.Revisions, stores.Trends, cfg.Report, log).
		WithMetrics(shelfMetrics)
	submissions := appshelf.NewSubmissionService(items, events, bus, log).
		WithIdempotency(stores.Idempotency, idempotencyTTL).
		WithMetrics(shelfMetrics)
	dashboards := appdashboard.NewDashboardService(feeds, trends, log)

	var (
		warmScheduler *scheduler.Scheduler
		warmTrigger   *scheduler.RevisionTrigger
	)
	if cfg.Report.WarmInterval > 0 {
		warmScheduler, err = scheduler.NewScheduler(scheduler.DefaultSchedulerConfig(),
			appreport.NewTrendWarmExecutor(trends, log), log)
		if err != nil {
			log.Fatal("Failed to create trend warmer", zap.Error(err))
		}
		if err := warmScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start trend warmer", zap.Error(err))
		}
		warmTrigger = scheduler.NewRevisionTrigger(scheduler.RevisionTriggerConfig{
			Key:           feed.StoreScope().Key(),
			Kind:          appreport.JobKindTrendWarm,
			CheckInterval: cfg.Report.WarmInterval,
		}, warmScheduler, stores.Revisions, log)
		if err := warmTrigger.Start(ctx); err != nil {
			log.Fatal("Failed to start trend warm trigger", zap.Error(err))
		}
		log.Info("Trend warming enabled", zap.Duration("interval", cfg.Report.WarmInterval))
	}

	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to configure validator", zap.Error(err))
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	httpMetrics, err := middleware.HTTPMetrics(meterProvider.Meter("shelflog/http"))
	if err != nil {
		log.Fatal("Failed to register HTTP metrics", zap.Error(err))
	}

	// Order matters: the request ID must exist before tracing and logging read it
	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			Enabled:        tracerProvider.IsEnabled(),
			TracerProvider: tracerProvider.Provider(),
		}),
		middleware.SpanErrorMarker(),
		logger.GinMiddleware(log),
		httpMetrics,
		middleware.Secure(),
		middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if profiler.IsEnabled() {
		engine.Use(middleware.ProfileLabels())
	}

	var authLimiter *middleware.RateLimiter
	if cfg.HTTP.AuthRateLimit > 0 {
		authLimiter = middleware.NewRateLimiter(cfg.HTTP.AuthRateLimit, cfg.HTTP.AuthRateWindow)
		defer authLimiter.Stop()
	}

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, map[string]handler.Pinger{
		"database": db,
		"cache":    stores,
	})
	router.SetupAPI(engine, router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Items:       handler.NewItemHandler(appcatalog.NewItemService(items)),
		Events:      handler.NewEventHandler(submissions),
		Feeds:       handler.NewFeedHandler(feeds),
		Trends:      handler.NewTrendHandler(trends),
		Dashboard:   handler.NewDashboardHandler(dashboards),
		System:      systemHandler,
		AuthLimiter: authLimiter,
	}, authService, log, router.WithAPIVersion("v1"))

	// Load balancer health check outside API versioning
	engine.GET("/health", systemHandler.Health)
	router.SetupSwagger(engine, cfg.Swagger, authService, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if warmTrigger != nil {
		if err := warmTrigger.Stop(shutdownCtx); err != nil {
			log.Warn("Error stopping trend warm trigger", zap.Error(err))
		}
	}
	if warmScheduler != nil {
		if err := warmScheduler.Stop(shutdownCtx); err != nil {
			log.Warn("Error stopping trend warmer", zap.Error(err))
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := bus.Stop(shutdownCtx); err != nil {
		log.Warn("Error stopping event bus", zap.Error(err))
	}
	if err := stores.Close(); err != nil {
		log.Warn("Error closing Redis", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down tracer provider", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down meter provider", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Error stopping profiler", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down logger provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
