package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/embermatch/api/internal/bank"
	"github.com/embermatch/api/internal/config"
	"github.com/embermatch/api/internal/database"
	"github.com/embermatch/api/internal/handler"
	"github.com/embermatch/api/internal/jobs"
	"github.com/embermatch/api/internal/middleware"
	"github.com/embermatch/api/internal/repository"
	"github.com/embermatch/api/internal/service"
	"github.com/embermatch/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load the question bank before accepting any traffic. A broken
	// bank file is a startup failure, not a runtime one.
	initialBank, err := bank.LoadFile(cfg.Bank.Path)
	if err != nil {
		slog.Error("failed to load question bank",
			slog.String("path", cfg.Bank.Path),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
	catalog := bank.NewCatalog(initialBank)

	slog.Info("question bank loaded",
		slog.String("path", cfg.Bank.Path),
		slog.Int("questions", initialBank.Len()),
	)

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	responseRepo := repository.NewResponseRepository(db)

	// Initialize services
	assessmentService := service.NewAssessmentService(service.AssessmentServiceConfig{
		Catalog: catalog,
		Store:   responseRepo,
	})

	compatibilityService := service.NewCompatibilityService(service.CompatibilityServiceConfig{
		Catalog: catalog,
		Store:   responseRepo,
	})

	// Optional background bank file watcher
	if cfg.Bank.ReloadInterval > 0 {
		refresher := jobs.NewBankRefresher(catalog, cfg.Bank.Path, cfg.Bank.ReloadInterval)
		refresher.Start()
		defer refresher.Stop()
	}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   100, // 100 requests per minute
		Window: time.Minute,
		Burst:  20, // Allow bursts up to 20
	})
	defer rateLimiter.Stop()

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db, catalog)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService)
	matchingHandler := handler.NewMatchingHandler(compatibilityService)
	adminHandler := handler.NewAdminHandler(catalog, cfg.Bank.Path)

	// Middleware for protected routes
	authMiddleware := middleware.Auth(jwtService)
	adminMiddleware := middleware.AdminAuth(jwtService)

	// Setup HTTP routes
	mux := http.NewServeMux()

	// Health endpoints
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)

	// Question bank endpoints
	mux.Handle("GET /v1/questions", authMiddleware(http.HandlerFunc(assessmentHandler.ListQuestions)))
	mux.HandleFunc("GET /v1/questions/categories", assessmentHandler.GetCategories)
	mux.Handle("GET /v1/questions/next", authMiddleware(http.HandlerFunc(assessmentHandler.NextQuestion)))
	mux.Handle("GET /v1/questions/next/batch", authMiddleware(http.HandlerFunc(assessmentHandler.NextQuestionBatch)))
	mux.HandleFunc("GET /v1/questions/{questionId}", assessmentHandler.GetQuestion)

	// Profile answer endpoints
	mux.Handle("POST /v1/profile/answers", authMiddleware(http.HandlerFunc(assessmentHandler.SubmitAnswers)))
	mux.HandleFunc("POST /v1/profile/answers/validate", assessmentHandler.ValidateAnswer)
	mux.Handle("GET /v1/profile/progress", authMiddleware(http.HandlerFunc(assessmentHandler.GetProgress)))

	// Matching endpoints
	mux.Handle("GET /v1/matches/{userId}/compatibility", authMiddleware(http.HandlerFunc(matchingHandler.GetCompatibility)))
	mux.Handle("GET /v1/matches/{userId}/explanation", authMiddleware(http.HandlerFunc(matchingHandler.GetExplanation)))

	// Admin endpoints - requires admin role
	mux.Handle("POST /v1/admin/questions/reload", adminMiddleware(http.HandlerFunc(adminHandler.ReloadBank)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
