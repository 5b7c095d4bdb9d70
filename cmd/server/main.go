package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/analysis"
	"github.com/scoutlens/scoutlens/internal/api"
	"github.com/scoutlens/scoutlens/internal/api/handlers"
	"github.com/scoutlens/scoutlens/internal/api/middleware"
	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/scoring"
	"github.com/scoutlens/scoutlens/internal/services"
	"github.com/scoutlens/scoutlens/internal/stats"
	"github.com/scoutlens/scoutlens/internal/store"
	"github.com/scoutlens/scoutlens/internal/tactics"
	"github.com/scoutlens/scoutlens/pkg/config"
	"github.com/scoutlens/scoutlens/pkg/database"
	"github.com/scoutlens/scoutlens/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	logLevel := "info"
	if cfg.IsDevelopment() {
		logLevel = "debug"
	}
	log := logger.InitLogger(logLevel, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment(), cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.ScoutReport{}); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Load the player snapshot
	playerStore, err := store.Load(cfg.SnapshotPath, cfg.MinMinutesPlayed, log)
	if err != nil {
		logrus.Fatalf("Failed to load player snapshot: %v", err)
	}
	logrus.Infof("Loaded %d players from %s", playerStore.Size(), cfg.SnapshotPath)

	// Initialize services
	cacheService := services.NewCacheService(redisClient)

	model := llm.NewClient(cfg, log)
	model.SetCache(cacheService)

	percentileEngine := stats.NewPercentileEngine(log)
	searchEngine := scoring.NewEngine(log)
	rankingEngine := scoring.NewRankingEngine(playerStore, percentileEngine, log)
	fitEngine := tactics.NewFitEngine(percentileEngine, log)
	comparisonEngine := analysis.NewComparisonEngine(log)
	swotEngine := analysis.NewSwotEngine(model, log)

	reportService := services.NewScoutReportService(db, log)
	searchService := services.NewSearchService(playerStore, searchEngine, model, cacheService, cfg, log)
	comparisonService := services.NewComparisonService(playerStore, comparisonEngine, model, cacheService, cfg, log)
	explainService := services.NewExplainService(model, log)
	analysisService := services.NewPlayerAnalysisService(playerStore, percentileEngine, fitEngine, rankingEngine, swotEngine, cacheService, cfg, log)
	intentRouter := services.NewIntentRouter(model, log)
	aiLimiter := services.NewAIRateLimiter(redisClient, cfg.AIRateLimit, time.Minute)
	assistantService := services.NewAssistantService(intentRouter, searchService, comparisonService, explainService, reportService, aiLimiter, model, cfg, log)

	// Start background jobs
	refresher := services.NewRefresherService(playerStore, reportService, cacheService, cfg, log)
	if cfg.EnableBackgroundJobs {
		if err := refresher.Start(); err != nil {
			logrus.Errorf("Failed to start refresher: %v", err)
		}
		defer refresher.Stop()
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Health check endpoint
	healthHandler := handlers.NewHealthHandler(db, redisClient, playerStore, model, refresher)
	router.GET("/health", healthHandler.Health)

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, cfg, api.Deps{
		Store:      playerStore,
		Analysis:   analysisService,
		Assistant:  assistantService,
		Search:     searchService,
		Comparison: comparisonService,
		Explain:    explainService,
		Reports:    reportService,
		Limiter:    aiLimiter,
		Logger:     log,
	})

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
