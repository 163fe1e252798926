package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcontract "github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/contract"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/dashboard"
	appexport "github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/export"
	appfinance "github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/finance"
	apphr "github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/hr"
	appidentity "github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/identity"
	appsales "github.com/EstalynD/only-top-frontend-nest-sub005/internal/application/sales"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/apiclient"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/auth"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/cache"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/config"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/logger"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/printing"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/remote"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/session"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/storage"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/telemetry"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/handler"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/middleware"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/router"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/interfaces/http/web"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	loc := cfg.App.Location()
	log.Info("Starting OnlyTop admin",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("api", cfg.API.BaseURL),
		zap.String("timezone", loc.String()),
	)

	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startCancel()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(startCtx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Environment:       cfg.App.Env,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(startCtx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Environment:       cfg.App.Env,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(startCtx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Environment:       cfg.App.Env,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Telemetry.LogsLevel))

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingServer,
		ApplicationName: cfg.Telemetry.ServiceName,
		Environment:     cfg.App.Env,
		ProfileTypes:    cfg.Telemetry.ProfileTypes,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		// before otelgin and otelhttp capture the global provider
		tracerProvider.LinkProfiles()
	}

	apiMetrics, err := telemetry.NewAPICallMetrics(meterProvider.Meter("onlytop-admin/apiclient"))
	if err != nil {
		log.Fatal("Failed to create API metrics", zap.Error(err))
	}

	// Sessions and form tokens
	stores, err := cache.NewStoreFactory(cfg, cache.WithLogger(log)).CreateStores(startCtx)
	if err != nil {
		log.Fatal("Failed to create session store", zap.Error(err))
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error("Error closing stores", zap.Error(err))
		}
	}()
	sessions := session.NewManager(stores.Sessions, auth.NewTokenInspector(), cfg.Session)

	// Backend client and gateways
	client, err := apiclient.New(apiclient.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
	}, apiclient.WithMetrics(apiMetrics))
	if err != nil {
		log.Fatal("Failed to create API client", zap.Error(err))
	}
	authGateway := remote.NewAuthGateway(client)
	modeloGateway := remote.NewModeloGateway(client)
	contractGateway := remote.NewContractGateway(client)
	financeGateway := remote.NewFinanceGateway(client)
	salesGateway := remote.NewSalesGateway(client)
	hrGateway := remote.NewHRGateway(client)
	trafficGateway := remote.NewTrafficGateway(client)

	// Contract documents: PDF through headless Chrome when enabled, HTML otherwise
	var pdf printing.PDFRenderer
	if cfg.Print.Enabled {
		chrome, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.Print.Timeout,
			RemoteURL:      cfg.Print.RemoteURL,
			NoSandbox:      cfg.Print.NoSandbox,
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to create PDF renderer", zap.Error(err))
		}
		defer func() {
			_ = chrome.Close()
		}()
		pdf = chrome
	}
	contractDocument, err := printing.NewContractDocument(loc, pdf)
	if err != nil {
		log.Fatal("Failed to load contract template", zap.Error(err))
	}

	// Exports: stored with a signed link when storage is enabled, streamed otherwise
	var exportStore appexport.ObjectStore
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3Store(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to create object storage", zap.Error(err))
		}
		if err := s3Store.EnsureBucket(startCtx); err != nil {
			log.Fatal("Export bucket unavailable", zap.Error(err), zap.String("bucket", s3Store.Bucket()))
		}
		exportStore = s3Store
	}

	// Application services
	authService := appidentity.NewAuthService(authGateway, sessions, log)
	contractService := appcontract.NewContractService(contractGateway, modeloGateway, contractDocument, cfg.App.Name, loc, log)
	financeService := appfinance.NewFinanceService(financeGateway, loc, log)
	salesService := appsales.NewSalesService(salesGateway, loc, log)
	scheduleService := apphr.NewScheduleService(hrGateway, log)
	overtimeService := apphr.NewOvertimeService(hrGateway, log)
	exportService := appexport.NewExportService(exportStore, loc, log)
	overviewService := dashboard.NewOverviewService(dashboard.Gateways{
		Modelos:  modeloGateway,
		Sales:    salesGateway,
		Finance:  financeGateway,
		HR:       hrGateway,
		Campaign: trafficGateway,
	}, loc, log)

	// Pages
	views, err := web.NewRenderer(loc)
	if err != nil {
		log.Fatal("Failed to parse templates", zap.Error(err))
	}
	base := handler.NewBaseHandler(views, sessions, stores.Forms, log)

	authHandler := handler.NewAuthHandler(base, authService)
	dashboardHandler := handler.NewDashboardHandler(base, overviewService)
	modeloHandler := handler.NewModeloHandler(base, modeloGateway)
	contractHandler := handler.NewContractHandler(base, contractService, modeloGateway)
	financeHandler := handler.NewFinanceHandler(base, financeService, exportService)
	salesHandler := handler.NewSalesHandler(base, salesService, exportService, modeloGateway, loc)
	hrHandler := handler.NewHRHandler(base, scheduleService, overtimeService)
	trafficHandler := handler.NewTrafficHandler(base, trafficGateway, modeloGateway, loc)
	optionsHandler := handler.NewOptionsHandler(base, modeloGateway, hrGateway)
	themeHandler := handler.NewThemeHandler(base)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, telemetry.ServiceVersion,
		handler.HealthCheck{Name: "backend", Check: client.Ping},
		handler.HealthCheck{Name: "sessions", Check: stores.Ping},
	)

	// Set Gin mode
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Validation messages use the form field names
	middleware.SetupValidator()

	// Create Gin engine
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName:  cfg.Telemetry.ServiceName,
		Enabled:      tracerProvider.IsEnabled(),
		SkipPrefixes: middleware.DefaultTracingConfig().SkipPrefixes,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.Profiling(profiler.IsEnabled()))
	engine.Use(middleware.Secure())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       meterProvider.IsEnabled(),
	}))
	flashKey, err := cfg.Session.FlashKeyBytes()
	if err != nil {
		log.Fatal("Invalid flash key", zap.Error(err))
	}
	engine.Use(middleware.Flash(cfg.Session.Secure, flashKey))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Session(sessions))
	engine.Use(middleware.TracingAttributeInjector())

	engine.StaticFS("/static", web.Static())
	engine.NoRoute(base.NoRoute)

	// Login attempts are limited per client
	loginLimit := func(c *gin.Context) { c.Next() }
	if cfg.HTTP.LoginRateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.LoginRateLimitRequests, cfg.HTTP.LoginRateLimitWindow)
		defer limiter.Close()
		loginLimit = middleware.RateLimitByKey(limiter, middleware.ClientIPKey, authHandler.LoginRateLimited)
	}

	// Public pages and probes
	router.NewRouter(engine).
		Register(authHandler.PublicRoutes(loginLimit)).
		Register(systemHandler.Routes()).
		Setup()

	// Pages behind the session
	router.NewRouter(engine, router.WithMiddleware(middleware.RequireSession(handler.LoginPath))).
		Register(dashboardHandler.Routes()).
		Register(modeloHandler.Routes()).
		Register(contractHandler.Routes()).
		Register(financeHandler.Routes()).
		Register(salesHandler.Routes()).
		Register(hrHandler.Routes()).
		Register(trafficHandler.Routes()).
		Register(authHandler.Routes()).
		Setup()

	// Browser helpers; the theme switch also serves anonymous visitors
	router.NewRouter(engine, router.WithPrefix("/ui"), router.WithMiddleware(middleware.RequireSession(handler.LoginPath))).
		Register(optionsHandler.Routes()).
		Setup()
	router.NewRouter(engine, router.WithPrefix("/ui"), router.WithMiddleware(middleware.NoStore())).
		Register(themeHandler.Routes()).
		Setup()

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := meterProvider.Shutdown(ctx); err != nil {
		log.Warn("Meter shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(ctx); err != nil {
		log.Warn("Tracer shutdown failed", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(ctx); err != nil {
		log.Warn("Log export shutdown failed", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Profiler stop failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
