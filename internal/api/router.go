package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/api/handlers"
	"github.com/scoutlens/scoutlens/internal/api/middleware"
	"github.com/scoutlens/scoutlens/internal/services"
	"github.com/scoutlens/scoutlens/internal/store"
	"github.com/scoutlens/scoutlens/pkg/config"
)

// Deps carries everything the route tree needs.
type Deps struct {
	Store      *store.Store
	Analysis   *services.PlayerAnalysisService
	Assistant  *services.AssistantService
	Search     *services.SearchService
	Comparison *services.ComparisonService
	Explain    *services.ExplainService
	Reports    *services.ScoutReportService
	Limiter    *services.AIRateLimiter
	Logger     *logrus.Logger
}

// SetupRoutes configures all API routes on the given router group.
func SetupRoutes(group *gin.RouterGroup, cfg *config.Config, deps Deps) {
	playerHandler := handlers.NewPlayerHandler(deps.Store, deps.Analysis, deps.Logger)
	assistantHandler := handlers.NewAssistantHandler(deps.Assistant, deps.Search, deps.Comparison, deps.Explain, deps.Limiter, deps.Logger)
	reportHandler := handlers.NewReportHandler(deps.Reports, deps.Logger)

	// Player endpoints
	group.GET("/players", playerHandler.ListPlayers)
	group.GET("/players/:id", playerHandler.GetPlayer)
	group.GET("/players/:id/percentiles", playerHandler.GetPercentiles)
	group.GET("/players/:id/rankings", playerHandler.GetRankings)
	group.GET("/players/:id/profile", playerHandler.GetTacticalProfile)

	// Glossary endpoint
	group.GET("/explain", assistantHandler.Explain)

	// Assistant endpoints (optional auth: anonymous users share one rate
	// limit bucket)
	assistant := group.Group("")
	assistant.Use(middleware.OptionalAuth(cfg.JWTSecret))
	{
		assistant.POST("/query", assistantHandler.Query)
		assistant.POST("/search", assistantHandler.Search)
		assistant.POST("/compare", assistantHandler.Compare)
		assistant.GET("/players/:id/swot", playerHandler.GetSwot)
	}

	// Authenticated routes
	auth := group.Group("")
	auth.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		auth.GET("/reports", reportHandler.History)
		auth.GET("/reports/:id", reportHandler.GetReport)
	}
}
