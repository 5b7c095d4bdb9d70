package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/api/middleware"
	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/services"
	"github.com/scoutlens/scoutlens/pkg/utils"
)

// AssistantHandler serves the conversational endpoint and the structured
// search, compare and explain endpoints.
type AssistantHandler struct {
	assistant  *services.AssistantService
	search     *services.SearchService
	comparison *services.ComparisonService
	explain    *services.ExplainService
	limiter    *services.AIRateLimiter
	logger     *logrus.Logger
}

func NewAssistantHandler(
	assistant *services.AssistantService,
	search *services.SearchService,
	comparison *services.ComparisonService,
	explain *services.ExplainService,
	limiter *services.AIRateLimiter,
	logger *logrus.Logger,
) *AssistantHandler {
	return &AssistantHandler{
		assistant:  assistant,
		search:     search,
		comparison: comparison,
		explain:    explain,
		limiter:    limiter,
		logger:     logger,
	}
}

type queryRequest struct {
	Query    string `json:"query" binding:"required"`
	Language string `json:"language"`
}

// Query answers one natural-language scouting query.
func (h *AssistantHandler) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		utils.SendValidationError(c, "Query must not be empty", "")
		return
	}

	userID := middleware.GetUserID(c)
	reply, err := h.assistant.Handle(c.Request.Context(), userID, req.Query, req.Language)
	if h.limiter != nil {
		remaining := h.limiter.Remaining(c.Request.Context(), fmt.Sprintf("%d", userID))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	}
	if err != nil {
		if strings.Contains(err.Error(), "rate limit exceeded") {
			utils.SendRateLimited(c, err.Error())
			return
		}
		if errors.Is(err, services.ErrUnknownPositions) {
			utils.SendValidationError(c, "Unrecognized position codes in query", err.Error())
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.SendNotFound(c, err.Error())
			return
		}
		h.logger.WithError(err).Error("Assistant query failed")
		utils.SendInternalError(c, "Failed to process query")
		return
	}
	utils.SendSuccess(c, reply)
}

type searchRequest struct {
	Query      string                   `json:"query"`
	Parameters *models.SearchParameters `json:"parameters" binding:"required"`
	Language   string                   `json:"language"`
}

// Search runs a structured search with pre-extracted parameters, bypassing
// intent classification.
func (h *AssistantHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.search.Search(c.Request.Context(), req.Query, req.Parameters, req.Language)
	if err != nil {
		h.logger.WithError(err).Error("Search failed")
		utils.SendInternalError(c, "Failed to run search")
		return
	}
	utils.SendSuccess(c, result)
}

type compareRequest struct {
	Player1  string `json:"player1" binding:"required"`
	Player2  string `json:"player2" binding:"required"`
	Language string `json:"language"`
}

// Compare runs a head-to-head between two named players.
func (h *AssistantHandler) Compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	report, err := h.comparison.CompareByName(c.Request.Context(), req.Player1, req.Player2, req.Language)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.SendNotFound(c, err.Error())
			return
		}
		if strings.Contains(err.Error(), "themselves") {
			utils.SendValidationError(c, err.Error(), "")
			return
		}
		h.logger.WithError(err).Error("Comparison failed")
		utils.SendInternalError(c, "Failed to compare players")
		return
	}
	utils.SendSuccess(c, report)
}

// Explain defines a metric or scouting concept.
func (h *AssistantHandler) Explain(c *gin.Context) {
	topic := c.Query("topic")
	if topic == "" {
		utils.SendValidationError(c, "Missing topic parameter", "")
		return
	}
	language := c.DefaultQuery("language", "en")

	explanation := h.explain.Explain(c.Request.Context(), topic, language)
	utils.SendSuccess(c, explanation)
}
