package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/horizonit/backend/internal/auth"
	"github.com/horizonit/backend/internal/background"
	"github.com/horizonit/backend/internal/config"
	"github.com/horizonit/backend/internal/database"
	"github.com/horizonit/backend/internal/handlers"
	middlewareCustom "github.com/horizonit/backend/internal/middleware"
	"github.com/horizonit/backend/internal/repositories"
	"github.com/horizonit/backend/internal/routes"
	"github.com/horizonit/backend/internal/services"
	pkghttp "github.com/horizonit/backend/pkg/http"
)

func main() {
	// Load configuration first; the log level comes from it
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Server.LogLevel),
	}))
	slog.SetDefault(logger)

	logger.Info("configuration loaded",
		slog.String("env", cfg.Server.Env),
		slog.Bool("database_configured", cfg.Database.URL != ""),
		slog.String("throttle_backend", cfg.Abuse.ThrottleBackend))

	// The hosted store is optional. Without it the public endpoints serve
	// the built-in fallback dataset and writes answer 503.
	var db *database.DB
	if cfg.Database.URL != "" {
		db, err = database.NewConnection(&cfg.Database, logger)
		if err != nil {
			logger.Error("failed to connect to database", slog.Any("error", err))
			os.Exit(1)
		}
		defer db.Close()
	} else {
		logger.Warn("DATABASE_URL not set, running in fallback mode")
	}

	// Repositories
	reviewRepo := repositories.NewReviewRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	statsRepo := repositories.NewStatsRepository(db)

	// Throttle and limiter state, backend per configuration
	var attemptStore services.AttemptStore
	var submissionWindow services.SubmissionWindow
	if cfg.Abuse.ThrottleBackend == "postgres" && db != nil {
		attemptStore = repositories.NewLoginAttemptRepository(db)
		submissionWindow = repositories.NewReviewSubmissionWindow(reviewRepo)
	} else {
		attemptStore = services.NewMemoryAttemptStore()
		submissionWindow = services.NewMemorySubmissionWindow()
	}

	throttle := services.NewLoginThrottle(attemptStore, services.ThrottleConfig{
		MaxAttempts:     cfg.Abuse.MaxLoginAttempts,
		LockoutDuration: cfg.Abuse.LockoutDuration,
	}, logger)

	limiter := services.NewSubmissionLimiter(submissionWindow, services.LimiterConfig{
		Limit:  cfg.Abuse.ReviewRateLimit,
		Window: cfg.Abuse.ReviewRateWindow,
	}, logger)

	// Token manager
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	// Optional new-lead email notification
	var notifier services.LeadNotifier
	if cfg.Notify.NotificationsEnabled() {
		sesNotifier, err := services.NewAWSSESLeadNotifier(
			cfg.Notify.AWSRegion,
			cfg.Notify.FromAddress,
			cfg.Notify.ToAddress,
			logger,
		)
		if err != nil {
			logger.Error("failed to initialize lead notifier", slog.Any("error", err))
			os.Exit(1)
		}
		notifier = sesNotifier
	}

	// Services
	authService, err := services.NewAuthService(
		cfg.Auth.AdminPassword,
		cfg.Auth.TOTPSecret,
		tokenManager,
		throttle,
		cfg.Abuse.IPHashSalt,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize auth service", slog.Any("error", err))
		os.Exit(1)
	}
	reviewService := services.NewReviewService(reviewRepo, limiter, cfg.Abuse.IPHashSalt, logger)
	leadService := services.NewLeadService(leadRepo, notifier, logger)
	statsService := services.NewStatsService(statsRepo, reviewRepo, leadRepo, logger)

	// Handlers
	ipConfig := &pkghttp.IPConfig{TrustedProxies: cfg.Server.TrustedProxies}
	authHandler := handlers.NewAuthHandler(authService, ipConfig)
	reviewHandler := handlers.NewReviewHandler(reviewService, ipConfig)
	contactHandler := handlers.NewContactHandler(leadService)
	statsHandler := handlers.NewStatsHandler(statsService)
	adminReviewHandler := handlers.NewAdminReviewHandler(reviewService)
	adminLeadHandler := handlers.NewAdminLeadHandler(leadService)
	adminStatsHandler := handlers.NewAdminStatsHandler(statsService)

	// Background cleanup of throttle and limiter state
	cleanupManager := background.NewCleanupManager(
		attemptStore,
		submissionWindow,
		cfg.Abuse.ReviewRateWindow,
		logger,
		cfg.Abuse.CleanupInterval,
	)

	// Router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(middlewareCustom.DefaultCORSConfig(cfg.Server.SiteOrigin)))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(router,
		authHandler,
		reviewHandler,
		contactHandler,
		statsHandler,
		adminReviewHandler,
		adminLeadHandler,
		adminStatsHandler,
		tokenManager,
	)

	// Health check; fallback mode is healthy by definition
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.HealthCheck(ctx); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()

	go cleanupManager.Start(cleanupCtx)

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	cleanupCancel()
	cleanupManager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
