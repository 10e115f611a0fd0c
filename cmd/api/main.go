package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tescilofisi-backend/config"
	v1 "tescilofisi-backend/internal/delivery/http/v1"
	"tescilofisi-backend/internal/repository/postgres"
	"tescilofisi-backend/internal/usecase"
	"tescilofisi-backend/internal/viewtracker"
	"tescilofisi-backend/pkg/auth"
	"tescilofisi-backend/pkg/database"
	"tescilofisi-backend/pkg/logger"
	"tescilofisi-backend/pkg/redis"
	"tescilofisi-backend/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// @title           Tescilofisi Backend API
// @version         1.0
// @description     Marketing site and CMS backend for a trademark and patent consultancy.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting tescilofisi backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}

	// 5. Setup Repositories
	postRepo := postgres.NewPostRepository(dbPool)
	contactRepo := postgres.NewContactRepository(dbPool)
	statsRepo := postgres.NewStatsRepository(dbPool)

	// 6. Register custom validators on gin's binding engine
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// 7. Setup UseCases
	postUC := usecase.NewPostUsecase(postRepo)
	contactUC := usecase.NewContactUsecase(contactRepo)
	statsUC := usecase.NewStatsUsecase(statsRepo)

	// 8. View tracker: dedup per visitor IP, roughly one browsing session.
	// The settle delay runs in the browser, so the endpoint applies none.
	tracker := viewtracker.NewWithDelay(postUC, viewtracker.NewExpiringMarkers(30*time.Minute), 0)

	// 9. Setup Auth Provider (JWKS)
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		PostUC:       postUC,
		ContactUC:    contactUC,
		StatsUC:      statsUC,
		Tracker:      tracker,
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
