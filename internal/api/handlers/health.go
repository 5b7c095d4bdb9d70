package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/scoutlens/scoutlens/internal/llm"
	"github.com/scoutlens/scoutlens/internal/services"
	"github.com/scoutlens/scoutlens/internal/store"
	"github.com/scoutlens/scoutlens/pkg/database"
)

// HealthHandler reports service health and dependency state.
type HealthHandler struct {
	db        *database.DB
	redis     *redis.Client
	store     *store.Store
	model     *llm.Client
	refresher *services.RefresherService
}

func NewHealthHandler(db *database.DB, redisClient *redis.Client, s *store.Store, model *llm.Client, refresher *services.RefresherService) *HealthHandler {
	return &HealthHandler{
		db:        db,
		redis:     redisClient,
		store:     s,
		model:     model,
		refresher: refresher,
	}
}

// Health returns the overall status and per-dependency detail. The service
// reports degraded rather than down when only the language model is
// unavailable, since numeric endpoints keep working.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	checks := gin.H{
		"snapshot_players": h.store.Size(),
	}

	if h.db != nil {
		if sqlDB, err := h.db.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["database"] = "down"
			status = "degraded"
		} else {
			checks["database"] = "ok"
		}
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down"
			status = "degraded"
		} else {
			checks["redis"] = "ok"
		}
	}

	if h.model != nil {
		checks["llm_circuit"] = h.model.CircuitState()
		if !h.model.IsHealthy() {
			status = "degraded"
		}
	}

	if h.refresher != nil {
		checks["scheduler"] = h.refresher.Status()
	}

	code := http.StatusOK
	if h.store.Size() == 0 {
		status = "down"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status": status,
		"time":   time.Now().UTC(),
		"checks": checks,
	})
}
