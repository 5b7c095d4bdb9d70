package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/services"
	"github.com/scoutlens/scoutlens/internal/stats"
	"github.com/scoutlens/scoutlens/internal/store"
	"github.com/scoutlens/scoutlens/pkg/utils"
)

// PlayerHandler serves the player detail and analysis endpoints.
type PlayerHandler struct {
	store    *store.Store
	analysis *services.PlayerAnalysisService
	logger   *logrus.Logger
}

func NewPlayerHandler(s *store.Store, analysis *services.PlayerAnalysisService, logger *logrus.Logger) *PlayerHandler {
	return &PlayerHandler{store: s, analysis: analysis, logger: logger}
}

// ListPlayers returns the snapshot, optionally filtered by position code.
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	position := c.Query("position")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	players := h.store.AllPlayers()
	if position != "" {
		if !stats.ValidPositionCodes[position] {
			utils.SendValidationError(c, "Unknown position code", position)
			return
		}
		players = h.store.PlayersWithPosition(position)
	}
	if len(players) > limit {
		players = players[:limit]
	}

	utils.SendSuccessWithMeta(c, players, &utils.Meta{Total: int64(h.store.Size()), PerPage: limit})
}

// GetPlayer returns one player's bio and raw statistics.
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid player id", c.Param("id"))
		return
	}

	player, err := h.store.GetPlayer(id)
	if err != nil {
		utils.SendNotFound(c, err.Error())
		return
	}
	utils.SendSuccess(c, player)
}

// GetPercentiles returns the player's percentile report against positional
// peers.
func (h *PlayerHandler) GetPercentiles(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid player id", c.Param("id"))
		return
	}

	report, err := h.analysis.Percentiles(id)
	if err != nil {
		if errors.Is(err, stats.ErrInsufficientData) {
			utils.SendValidationError(c, "Player has not played enough minutes for a statistical profile", err.Error())
			return
		}
		utils.SendNotFound(c, err.Error())
		return
	}
	utils.SendSuccess(c, report)
}

// GetRankings returns the player's rank in each of their positions.
func (h *PlayerHandler) GetRankings(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid player id", c.Param("id"))
		return
	}

	ranks, err := h.analysis.Rankings(id)
	if err != nil {
		if errors.Is(err, stats.ErrInsufficientData) {
			utils.SendValidationError(c, "Player has not played enough minutes to be ranked", err.Error())
			return
		}
		utils.SendNotFound(c, err.Error())
		return
	}
	utils.SendSuccess(c, ranks)
}

// GetTacticalProfile returns role and style fits for the player.
func (h *PlayerHandler) GetTacticalProfile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid player id", c.Param("id"))
		return
	}

	profile, err := h.analysis.TacticalProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, stats.ErrInsufficientData) {
			utils.SendValidationError(c, "Player has not played enough minutes for a tactical profile", err.Error())
			return
		}
		utils.SendNotFound(c, err.Error())
		return
	}
	utils.SendSuccess(c, profile)
}

// GetSwot returns the four-quadrant analysis for the player.
func (h *PlayerHandler) GetSwot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid player id", c.Param("id"))
		return
	}
	language := c.DefaultQuery("language", "en")

	result, err := h.analysis.Swot(c.Request.Context(), id, language)
	if err != nil {
		utils.SendNotFound(c, err.Error())
		return
	}
	utils.SendSuccess(c, result)
}
