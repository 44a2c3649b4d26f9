package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"talent-be/internal/config"
	"talent-be/internal/container"
	"talent-be/internal/handler"
	"talent-be/internal/middleware"
	"talent-be/internal/repository"
	"talent-be/internal/service"
	"talent-be/pkg/database"
	"talent-be/pkg/logger"
	"talent-be/pkg/redis"
)

// Resources holds all resources that need cleanup
type Resources struct {
	db          *database.PostgresDB
	redisClient *redis.Client
	server      *http.Server
	log         *logger.Logger
	mu          sync.Mutex
	closed      bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errors []error

	r.log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first to stop accepting new requests
	if r.server != nil {
		r.log.Info("Shutting down HTTP server...")
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errors = append(errors, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	// Close Redis connection with health check
	if r.redisClient != nil {
		r.log.Info("Closing Redis connection...")

		healthCtx, healthCancel := context.WithTimeout(ctx, 2*time.Second)
		if err := r.redisClient.Health(healthCtx); err != nil {
			r.log.WithError(err).Warn("Redis health check failed before closing")
		}
		healthCancel()

		if err := r.redisClient.Close(); err != nil {
			r.log.WithError(err).Error("Failed to close Redis connection")
			errors = append(errors, fmt.Errorf("Redis close: %w", err))
		} else {
			r.log.Info("Redis connection closed successfully")
		}
	}

	// Close database connection pools with health check
	if r.db != nil {
		r.log.Info("Closing database connection pools...")

		healthCtx, healthCancel := context.WithTimeout(ctx, 2*time.Second)
		if err := r.db.Health(healthCtx); err != nil {
			r.log.WithError(err).Warn("Database health check failed before closing")
		}
		healthCancel()

		r.db.Close()
		r.log.Info("Database connection pools closed successfully")
	}

	if len(errors) > 0 {
		r.log.WithField("error_count", len(errors)).Error("Cleanup completed with errors")
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errors), errors)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting talent-be server")

	// Create dependency injection container
	container, err := container.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	// Initialize database connections
	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, cfg.DatabaseReadURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	redisClient := container.GetRedisClient()

	// Initialize repositories
	competitionRepo := repository.NewCompetitionRepository(db)
	contestantRepo := repository.NewContestantRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	cacheService := container.GetCacheService()
	votingService := service.NewVotingService(voteRepo, competitionRepo, contestantRepo, settingsRepo, redisClient, log.Logger)
	settlementService := service.NewSettlementService(purchaseRepo, voteRepo, competitionRepo, contestantRepo, settingsRepo, redisClient, log.Logger)
	workflowService := service.NewWorkflowService(submissionRepo, competitionRepo, settingsRepo, container.GetPaymentGateway(), cacheService, log.Logger)
	competitionService := service.NewCompetitionService(competitionRepo, contestantRepo, settingsRepo, cacheService, log.Logger)

	// Setup router
	router := setupRouter(container, db, votingService, settlementService, workflowService, competitionService)

	// Create HTTP server
	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	// Create resources manager for cleanup
	resources := &Resources{
		db:          db,
		redisClient: redisClient,
		server:      server,
		log:         log,
	}

	// Setup graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	// Wait for interrupt signal or server error
	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	log.Info("Initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(
	container *container.Container,
	db *database.PostgresDB,
	votingService *service.VotingService,
	settlementService *service.SettlementService,
	workflowService *service.WorkflowService,
	competitionService *service.CompetitionService,
) *chi.Mux {
	cfg := container.GetConfig()
	log := container.GetLogger()
	authService := container.GetAuthService()

	r := chi.NewRouter()

	corsConfig := &middleware.CORSConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization"},
		ExposedHeaders:   []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}

	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Create handlers
	healthHandler := handler.NewHealthHandler(container, db)
	votingHandler := handler.NewVotingHandler(votingService, log)
	settlementHandler := handler.NewSettlementHandler(settlementService, log)
	submissionHandler := handler.NewSubmissionHandler(workflowService, log)
	competitionHandler := handler.NewCompetitionHandler(competitionService, log)

	// Health check (no auth required)
	r.Get("/health", healthHandler.Check)

	r.Route("/api/v1", func(r chi.Router) {
		// Public voting and read endpoints
		r.Post("/votes", votingHandler.CastVote)
		r.Get("/competitions/{competitionID}", competitionHandler.Get)
		r.Get("/competitions/{competitionID}/breakdown", votingHandler.GetBreakdown)
		r.Get("/competitions/{competitionID}/leaderboard", votingHandler.GetLeaderboard)
		r.Get("/competitions/{competitionID}/contestants", competitionHandler.ListContestants)

		// Public intake endpoints
		r.Post("/applications", submissionHandler.SubmitApplication)
		r.Post("/nominations", submissionHandler.SubmitNomination)

		// Payment provider settlement callback
		r.Post("/purchases/settle", settlementHandler.SettlePurchase)

		// Authenticated admin/host endpoints
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(authService, log))

			r.Post("/competitions", competitionHandler.Create)
			r.Patch("/competitions/{competitionID}/status", competitionHandler.UpdateStatus)
			r.Patch("/competitions/{competitionID}/tier", competitionHandler.UpdateTier)
			r.Post("/competitions/{competitionID}/contestants", competitionHandler.AddContestant)
			r.Patch("/contestants/{contestantID}/status", competitionHandler.UpdateContestantStatus)
			r.Get("/competitions/{competitionID}/revenue", settlementHandler.GetRevenueReport)
			r.Patch("/submissions/{submissionID}/status", submissionHandler.UpdateStatus)
			r.Patch("/submissions/{submissionID}/outcome", submissionHandler.UpdateNominationOutcome)

			// Admin-only endpoints
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly(log))

				r.Delete("/competitions/{competitionID}", competitionHandler.Delete)
				r.Get("/settings", competitionHandler.GetSettings)
				r.Patch("/settings", competitionHandler.UpdateSettings)
			})
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"type":"not_found","message":"Endpoint not found"}}`))
	})

	log.Info("Router configured successfully")
	return r
}
