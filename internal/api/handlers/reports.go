package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/api/middleware"
	"github.com/scoutlens/scoutlens/internal/services"
	"github.com/scoutlens/scoutlens/pkg/utils"
)

// ReportHandler serves the per-user report history.
type ReportHandler struct {
	reports *services.ScoutReportService
	logger  *logrus.Logger
}

func NewReportHandler(reports *services.ScoutReportService, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// History lists the user's recent reports, newest first.
func (h *ReportHandler) History(c *gin.Context) {
	userID := middleware.GetUserID(c)
	reportType := c.Query("type")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	reports, err := h.reports.History(userID, reportType, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load report history")
		utils.SendInternalError(c, "Failed to load report history")
		return
	}
	utils.SendSuccess(c, reports)
}

// GetReport returns one report owned by the user.
func (h *ReportHandler) GetReport(c *gin.Context) {
	userID := middleware.GetUserID(c)
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid report id", c.Param("id"))
		return
	}

	report, err := h.reports.GetReport(userID, uint(reportID))
	if err != nil {
		utils.SendNotFound(c, "Report not found")
		return
	}
	utils.SendSuccess(c, report)
}
