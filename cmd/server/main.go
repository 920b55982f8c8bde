package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"

	"github.com/stormnotes/suite/internal/cache"
	"github.com/stormnotes/suite/internal/config"
	"github.com/stormnotes/suite/internal/database"
	"github.com/stormnotes/suite/internal/extract"
	"github.com/stormnotes/suite/internal/handlers"
	"github.com/stormnotes/suite/internal/logger"
	"github.com/stormnotes/suite/internal/middleware"
	"github.com/stormnotes/suite/internal/services/ai"
	"github.com/stormnotes/suite/internal/services/mail"
	"github.com/stormnotes/suite/internal/telemetry"
	"github.com/stormnotes/suite/internal/workflows"
)

const serviceName = "storm-notes-suite"

func main() {
	// Parse command-line flags
	debugFlag := flag.Bool("debug", false, "Enable debug mode for LLM API logging")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override debug mode if flag is set
	debugMode := cfg.ServerDebugMode || *debugFlag

	// Initialize logger
	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.String("ai_model", cfg.AIModel),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// Initialize OpenTelemetry if enabled
	var tracerProvider interface{ Shutdown(context.Context) error }
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), serviceName, cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				tracerProvider = tp
				zapLogger.Info("otel_tracer_initialized",
					zap.String("endpoint", cfg.OTELEndpoint),
				)
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	// Storage backends. An empty DATABASE_URL selects in-memory mode:
	// memory repositories, in-process cache and rate limiting, no Redis.
	var (
		db           *database.DB
		cacheStore   cache.Store
		healthCache  handlers.Pinger
		cardRepo     database.TimezoneCardRepositoryInterface
		contactRepo  database.ContactRepositoryInterface
		documentRepo database.DocumentRepositoryInterface
		chatRepo     database.ChatHistoryRepositoryInterface
		rateLimitMW  func(http.Handler) http.Handler
	)
	if cfg.DatabaseURL == "" {
		zapLogger.Info("running_with_in_memory_storage")

		cacheStore = cache.NewMemoryStore()
		cardRepo = database.NewMemoryTimezoneCardRepository()
		contactRepo = database.NewMemoryContactRepository()
		documentRepo = database.NewMemoryDocumentRepository()
		chatRepo = database.NewMemoryChatHistoryRepository()

		rateLimitMW, err = middleware.RateLimitInMemory(cfg.RateLimit)
		if err != nil {
			zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
		}
	} else {
		db, err = database.New(cfg.DatabaseURL)
		if err != nil {
			zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
			}
		}()
		zapLogger.Info("connected_to_database")

		// Connect to Redis. One client backs both the lookup cache and
		// the rate limiter.
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zapLogger.Fatal("invalid_redis_url", zap.Error(err))
		}
		redisClient := redis.NewClient(redisOpts)
		defer func() {
			if err := redisClient.Close(); err != nil {
				zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
			}
		}()

		redisStore := cache.NewRedisStoreWithClient(redisClient, cfg.CacheTTL)
		if err := redisStore.Ping(context.Background()); err != nil {
			zapLogger.Fatal("failed_to_connect_to_redis", zap.Error(err))
		}
		zapLogger.Info("connected_to_redis")
		cacheStore = redisStore
		healthCache = redisStore

		cardRepo = database.NewTimezoneCardRepository(db)
		contactRepo = database.NewContactRepository(db)
		documentRepo = database.NewDocumentRepository(db)
		chatRepo = database.NewChatHistoryRepository(db)

		rateLimitMW, err = middleware.RateLimit(redisClient, cfg.RateLimit)
		if err != nil {
			zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
		}
	}

	lookupCache := cache.New(cacheStore, cfg.CacheTTL, zapLogger)

	// Initialize services
	aiProvider := ai.NewOpenAIProvider(cfg.OpenAIKey, cfg.AIBaseURL, cfg.AIModel, zapLogger, debugMode)
	mailer := mail.NewResendMailer(cfg.ResendAPIKey, cfg.SenderName, cfg.SenderEmail, zapLogger)
	extractor := extract.NewFileExtractor()

	// Initialize the orchestrator; it owns the reminder scheduler
	orch := workflows.New(workflows.Deps{
		Cards:     cardRepo,
		Contacts:  contactRepo,
		Documents: documentRepo,
		Chats:     chatRepo,
		Cache:     lookupCache,
		AI:        aiProvider,
		Mailer:    mailer,
		Extractor: extractor,
		Logger:    zapLogger,
	})
	defer orch.Close()

	// Initialize handlers
	healthChecker := handlers.NewHealthChecker(db, healthCache)
	timezoneHandler := handlers.NewTimezoneHandler(orch)
	converterHandler := handlers.NewConverterHandler(orch)
	reminderHandler := handlers.NewReminderHandler(orch)
	contactHandler := handlers.NewContactHandler(orch)
	documentHandler := handlers.NewDocumentHandler(orch)
	chatHandler := handlers.NewChatHandler(orch)
	contentHandler := handlers.NewContentHandler(orch)

	// Setup router
	r := mux.NewRouter()

	// Apply middleware (order matters - executed in reverse order of registration)
	// Note: In gorilla/mux, middleware executes in reverse order of registration
	// Middleware registered LAST executes FIRST (outermost wrapper)
	if cfg.OTELEnabled && tracerProvider != nil {
		r.Use(otelmux.Middleware(serviceName))
		zapLogger.Info("otel_middleware_enabled")
	}
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.CORSFromEnv(cfg.FrontendURL))
	r.Use(middleware.MaxRequestSize(cfg.MaxUploadBytes + middleware.DefaultMaxRequestSize))
	r.Use(middleware.ContentType)
	r.Use(middleware.Timeout(middleware.DefaultRequestTimeout))
	r.Use(middleware.ErrorHandler(zapLogger))
	r.Use(middleware.Logging(zapLogger))

	// Public routes (no rate limiting for health checks)
	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")

	// API v1 routes (rate limited; auth gate is open unless AUTH_JWKS_URL is set)
	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(middleware.Auth(cfg.AuthJWKSURL, zapLogger))
	apiRouter.Use(rateLimitMW)

	timezoneHandler.RegisterRoutes(apiRouter.PathPrefix("/timezones").Subrouter())
	converterHandler.RegisterRoutes(apiRouter.PathPrefix("/convert").Subrouter())
	reminderHandler.RegisterRoutes(apiRouter.PathPrefix("/reminders").Subrouter())
	contactHandler.RegisterRoutes(apiRouter.PathPrefix("/contacts").Subrouter())
	documentHandler.RegisterRoutes(apiRouter.PathPrefix("/documents").Subrouter())
	chatHandler.RegisterRoutes(apiRouter.PathPrefix("/chat").Subrouter())
	contentHandler.RegisterRoutes(apiRouter.PathPrefix("/content").Subrouter())

	// The CORS middleware answers preflight requests itself. Plain
	// OPTIONS requests pass through it and land here.
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Setup server
	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   130 * time.Second, // outlasts the request timeout
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("server_starting",
			zap.String("port", cfg.ServerPort),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}
