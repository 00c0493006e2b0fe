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
	articleapp "github.com/laiyolobaru/backend/internal/application/article"
	auditapp "github.com/laiyolobaru/backend/internal/application/auditlog"
	demographyapp "github.com/laiyolobaru/backend/internal/application/demography"
	identityapp "github.com/laiyolobaru/backend/internal/application/identity"
	mediaapp "github.com/laiyolobaru/backend/internal/application/media"
	stuntingapp "github.com/laiyolobaru/backend/internal/application/stunting"
	travelapp "github.com/laiyolobaru/backend/internal/application/travel"
	umkmapp "github.com/laiyolobaru/backend/internal/application/umkm"
	writerapp "github.com/laiyolobaru/backend/internal/application/writer"
	"github.com/laiyolobaru/backend/internal/domain/identity"
	"github.com/laiyolobaru/backend/internal/infrastructure/auth"
	"github.com/laiyolobaru/backend/internal/infrastructure/cache"
	"github.com/laiyolobaru/backend/internal/infrastructure/config"
	"github.com/laiyolobaru/backend/internal/infrastructure/logger"
	"github.com/laiyolobaru/backend/internal/infrastructure/persistence"
	"github.com/laiyolobaru/backend/internal/infrastructure/predictor"
	"github.com/laiyolobaru/backend/internal/infrastructure/printing"
	"github.com/laiyolobaru/backend/internal/infrastructure/storage"
	"github.com/laiyolobaru/backend/internal/infrastructure/telemetry"
	"github.com/laiyolobaru/backend/internal/interfaces/http/handler"
	"github.com/laiyolobaru/backend/internal/interfaces/http/middleware"
	"github.com/laiyolobaru/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/laiyolobaru/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Desa Laiyolo Baru API
//	@version		1.0
//	@description	Backend for the Desa Laiyolo Baru public site and admin dashboard
//	@contact.name	Pemerintah Desa Laiyolo Baru

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const appVersion = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	bootLog, logLevel, err := logger.NewWithLevel(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	telemetryCfg := telemetry.FromAppConfig(cfg)

	// Telemetry providers are created with the boot logger, then zap is teed into OTLP
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetryCfg, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize log export", zap.Error(err))
	}
	baseCore, err := logger.NewCore(logCfg, logLevel)
	if err != nil {
		bootLog.Fatal("Failed to open log output", zap.Error(err))
	}
	log := zap.New(
		zapcore.NewTee(baseCore, logProvider.ZapCore(cfg.Telemetry.ServiceName, logLevel)),
		logger.Options()...,
	)
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Desa Laiyolo Baru backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Hot reload of the log level
	watcher := config.NewWatcher(log)
	watcher.OnChange(func(next *config.Config) {
		level := logger.ParseLevel(next.Log.Level)
		if level != logLevel.Level() {
			logLevel.SetLevel(level)
			log.Info("Log level changed", zap.String("level", level.String()))
		}
	})
	if err := watcher.Start(); err != nil {
		log.Warn("Config hot reload unavailable", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.PyroscopeAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	telemetryCfg.SpanProfiles = profiler.IsEnabled()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL && !cfg.App.IsProduction()),
	)

	db, err := persistence.Open(ctx, &cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Warn("Database tracing unavailable", zap.Error(err))
	}

	// Cache and token blacklist share Redis when it is reachable
	cacheBackend := cache.NewBackend(ctx, cfg.Redis, cfg.Cache, log)
	defer func() {
		if err := cacheBackend.Close(); err != nil {
			log.Error("Error closing cache", zap.Error(err))
		}
	}()
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if cacheBackend.Client != nil {
		blacklist = auth.NewRedisTokenBlacklist(cacheBackend.Client, cfg.Cache.KeyPrefix)
	}

	villageMetrics, err := telemetry.NewVillageMetrics(telemetry.VillageMetricsConfig{
		Meter:    meterProvider.Meter(telemetry.InstrumentationName),
		Logger:   log,
		Provider: telemetry.NewGormContentStats(db.DB),
	})
	if err != nil {
		log.Fatal("Failed to initialize village metrics", zap.Error(err))
	}
	villageMetrics.Start(ctx)

	// Repositories
	adminRepo := persistence.NewGormAdminRepository(db.DB)
	writerRepo := persistence.NewGormWriterRepository(db.DB)
	articleRepo := persistence.NewGormArticleRepository(db.DB)
	umkmRepo := persistence.NewGormUMKMRepository(db.DB)
	travelCategoryRepo := persistence.NewGormTravelCategoryRepository(db.DB)
	travelRepo := persistence.NewGormTravelRepository(db.DB)
	logRepo := persistence.NewGormLogRepository(db.DB)
	demographyRepo := persistence.NewGormDemographyRepository(db.DB)

	// Outbound adapters
	jwtService := auth.NewJWTService(cfg.JWT)
	printer := newMonografisPrinter(cfg, log)
	objectStorage := newObjectStorage(ctx, cfg, log)
	predictorClient := predictor.NewClient(cfg.Predictor, log)

	// Application services
	auditService := auditapp.NewService(logRepo, log)
	authService := identityapp.NewAuthService(adminRepo, jwtService, blacklist, auditService,
		villageMetrics, identityapp.DefaultAuthServiceConfig(), log)
	adminService := identityapp.NewAdminService(adminRepo, auditService, log,
		identityapp.WithSessionRevoker(blacklist, jwtService.GetRefreshTokenExpiration()))
	writerService := writerapp.NewService(writerRepo, articleRepo, auditService)
	articleService := articleapp.NewService(articleRepo, writerRepo, auditService, log)
	umkmService := umkmapp.NewService(umkmRepo, auditService)
	travelCategoryService := travelapp.NewCategoryService(travelCategoryRepo, travelRepo, auditService)
	travelService := travelapp.NewService(travelRepo, travelCategoryRepo, auditService)
	demographyService := demographyapp.NewService(demographyRepo, cacheBackend.Cache, printer, auditService,
		demographyapp.Config{CacheTTL: cfg.Cache.TTL, DebounceInterval: cfg.Cache.DebounceInterval}, log)
	defer demographyService.Close()
	stuntingService := stuntingapp.NewService(predictorClient, villageMetrics, log)
	mediaService := mediaapp.NewService(objectStorage, storage.NewImageResizer(),
		mediaapp.Config{MaxUploadSize: cfg.Storage.MaxUploadSize, MaxImageWidth: cfg.Storage.MaxImageWidth},
		villageMetrics, log)

	// Health checks
	checks := []handler.HealthCheck{{Name: "database", Check: db.Check}}
	if cacheBackend.Client != nil {
		checks = append(checks, handler.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return cacheBackend.Client.Ping(ctx).Err() },
		})
	}

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Admin:      handler.NewAdminHandler(adminService),
		Writer:     handler.NewWriterHandler(writerService),
		Article:    handler.NewArticleHandler(articleService),
		UMKM:       handler.NewUMKMHandler(umkmService),
		Travel:     handler.NewTravelHandler(travelService, travelCategoryService),
		AuditLog:   handler.NewAuditLogHandler(auditService),
		Demography: handler.NewDemographyHandler(demographyService),
		Stunting:   handler.NewStuntingHandler(stuntingService),
		Upload:     handler.NewUploadHandler(mediaService),
		System:     handler.NewSystemHandler(cfg.App.Name, appVersion, checks...),
	}

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if err := middleware.TrustProxies(engine, cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Strings("trusted_proxies", cfg.HTTP.TrustedProxies), zap.Error(err))
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Tracing - Server span per request, annotated after the handlers
	// 3. Metrics and profiling labels
	// 4. Recovery - Catch panics
	// 5. Logger - Log requests
	// 6. Security - Add security headers
	// 7. CORS - Handle cross-origin requests
	// 8. BodyLimit - Limit request body size
	// 9. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, tracerProvider.IsEnabled()), middleware.SpanDecorator())
	engine.Use(middleware.HTTPMetrics(meterProvider.Meter(telemetry.InstrumentationName), log))
	engine.Use(middleware.Profiling(profiler.IsEnabled()))
	engine.Use(logger.Recovery(log))
	engine.Use(logger.AccessLog(log))
	security := middleware.DefaultSecurityConfig()
	if cfg.App.IsProduction() {
		security.HSTSMaxAge = 365 * 24 * time.Hour
	}
	engine.Use(middleware.SecureWithConfig(security))

	// Configure CORS from config
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Uploads are bounded by the media service
	engine.Use(middleware.BodyLimit(max(cfg.HTTP.MaxBodySize, cfg.Storage.MaxUploadSize+(1<<20))))

	var limiters []*middleware.RateLimiter
	newLimiter := func(limit int, window time.Duration) *middleware.RateLimiter {
		l := middleware.NewRateLimiter(limit, window)
		limiters = append(limiters, l)
		return l
	}
	defer func() {
		for _, l := range limiters {
			l.Stop()
		}
	}()

	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(newLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	jwtMiddleware := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})

	guards := router.Guards{
		Auth:       jwtMiddleware,
		SuperAdmin: middleware.RequireRole(string(identity.RoleSuperAdmin)),
	}
	if cfg.HTTP.AuthRateLimitRequests > 0 {
		guards.LoginLimit = middleware.RateLimit(newLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow))
	}
	if cfg.HTTP.PredictRateLimit > 0 {
		guards.PredictLimit = middleware.RateLimit(newLimiter(cfg.HTTP.PredictRateLimit, cfg.HTTP.PredictRateWindow))
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", handlers.System.Health)

	// Swagger documentation endpoint
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.App.IsProduction(),
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, jwtMiddleware),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.RegisterAPI(r, handlers, guards)
	r.Setup()
	for _, route := range r.Routes() {
		log.Debug("Route registered",
			zap.String("group", route.Group),
			zap.String("method", route.Method),
			zap.String("path", route.Path),
		)
	}
	log.Info("API routes registered", zap.Int("count", len(r.Routes())), zap.String("prefix", r.Prefix()))

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	villageMetrics.Stop()
	if closer, ok := printer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Warn("Error closing PDF renderer", zap.Error(err))
		}
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Error stopping profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error flushing metrics", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error flushing traces", zap.Error(err))
	}
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error flushing logs", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// closingPrinter stops the browser behind a MonografisPrinter
type closingPrinter struct {
	*printing.MonografisPrinter
	chrome *printing.Chrome
}

func (p closingPrinter) Close() error {
	return p.chrome.Close()
}

func newMonografisPrinter(cfg *config.Config, log *zap.Logger) demographyapp.Printer {
	if !cfg.Printing.Enabled {
		log.Info("Monografis PDF rendering disabled")
		return printing.DisabledPrinter{}
	}
	chrome := printing.NewChrome(printing.ChromeOptions{
		RemoteURL: cfg.Printing.RemoteURL,
		NoSandbox: cfg.Printing.NoSandbox,
		Timeout:   cfg.Printing.Timeout,
	}, log)
	return closingPrinter{
		MonografisPrinter: printing.NewMonografisPrinter(printing.NewTemplateEngine(), chrome, cfg.Printing.Timeout, log),
		chrome:            chrome,
	}
}

func newObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) mediaapp.ObjectStorage {
	if !cfg.Storage.Enabled {
		log.Warn("Object storage disabled, uploads are kept in memory")
		return storage.NewMemoryObjectStorage(cfg.Storage.PublicBaseURL)
	}
	s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	if err := s3Storage.EnsureBucket(ctx); err != nil {
		log.Warn("Could not verify storage bucket", zap.String("bucket", s3Storage.GetBucket()), zap.Error(err))
	}
	return s3Storage
}
