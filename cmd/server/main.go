package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codeclimb/unirank/api/internal/config"
	"github.com/codeclimb/unirank/api/internal/handler"
	"github.com/codeclimb/unirank/api/internal/jobs"
	"github.com/codeclimb/unirank/api/internal/middleware"
	"github.com/codeclimb/unirank/api/internal/service"
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

	// Initialize engines and services
	weightEngine := service.NewWeightEngine(service.WeightEngineConfig{
		Alpha:       cfg.Engine.Alpha,
		Beta:        cfg.Engine.Beta,
		Gamma:       cfg.Engine.Gamma,
		DecayLambda: cfg.Engine.DecayLambda,
	})

	fusionEngine := service.NewFusionEngine(service.FusionEngineConfig{
		ImputeWindow:        cfg.Engine.ImputeWindow,
		BaseBonus:           cfg.Course.BaseBonus,
		MaxBonus:            cfg.Course.MaxBonus,
		CourseDecayLambda:   cfg.Course.DecayLambda,
		SourceWeights:       cfg.Course.SourceWeights,
		TopicWeights:        cfg.Course.TopicWeights,
		DefaultSourceWeight: cfg.Course.DefaultSourceWeight,
		DefaultTopicWeight:  cfg.Course.DefaultTopicWeight,
	})

	registryService := service.NewRegistryService(service.RegistryServiceConfig{
		WeightEngine: weightEngine,
		FusionEngine: fusionEngine,
		Verifier:     service.NewCourseVerifier(),
		DriftWindow:  cfg.Engine.DriftWindow,
	})

	analyticsService := service.NewAnalyticsService(registryService)

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   100,
		Window: time.Minute,
		Burst:  20,
	})
	defer rateLimiter.Stop()

	// Start the periodic score refresher
	refresher := jobs.NewScoreRefresher(registryService, cfg.Jobs.RefreshInterval)
	refresher.Start()
	defer refresher.Stop()

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(registryService)
	platformHandler := handler.NewPlatformHandler(registryService, analyticsService)
	courseHandler := handler.NewCourseHandler(registryService)
	rankingHandler := handler.NewRankingHandler(registryService)
	userHandler := handler.NewUserHandler(registryService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Check)

	// Platform endpoints
	mux.HandleFunc("POST /v1/platforms", platformHandler.Register)
	mux.HandleFunc("POST /v1/platforms/{name}/snapshots", platformHandler.ApplySnapshot)
	mux.HandleFunc("GET /v1/platforms/{name}/stats", platformHandler.Stats)

	// Weight and leaderboard endpoints
	mux.HandleFunc("GET /v1/weights", rankingHandler.Weights)
	mux.HandleFunc("GET /v1/rankings", rankingHandler.List)

	// Course endpoints
	mux.HandleFunc("POST /v1/courses/completions", courseHandler.RecordCompletions)

	// User endpoints
	mux.HandleFunc("GET /v1/users/{userId}", userHandler.Get)
	mux.HandleFunc("PUT /v1/users/{userId}/ratings/{platform}", userHandler.RecordRating)

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
