package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/pkg/database"
)

// ScoutReportService persists generated analyses so users can revisit them
// and so degraded responses can be audited.
type ScoutReportService struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewScoutReportService(db *database.DB, logger *logrus.Logger) *ScoutReportService {
	return &ScoutReportService{db: db, logger: logger}
}

// Record persists one report. Failures are logged and swallowed: history is
// a convenience, never a reason to fail the request that produced it.
func (s *ScoutReportService) Record(userID uint, playerID int, playerName, reportType, language string, request, response any, narrative string, degraded bool) {
	reqJSON, err := json.Marshal(request)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to marshal report request")
		return
	}
	respJSON, err := json.Marshal(response)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to marshal report response")
		return
	}

	report := models.ScoutReport{
		UserID:     userID,
		PlayerID:   playerID,
		PlayerName: playerName,
		ReportType: reportType,
		Language:   language,
		Request:    datatypes.JSON(reqJSON),
		Response:   datatypes.JSON(respJSON),
		Narrative:  narrative,
		Degraded:   degraded,
	}
	if err := s.db.Create(&report).Error; err != nil {
		s.logger.WithError(err).Warn("Failed to persist scout report")
	}
}

// History returns the user's most recent reports, newest first, optionally
// filtered by report type.
func (s *ScoutReportService) History(userID uint, reportType string, limit int) ([]models.ScoutReport, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := s.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit)
	if reportType != "" {
		query = query.Where("report_type = ?", reportType)
	}

	var reports []models.ScoutReport
	if err := query.Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to load report history: %w", err)
	}
	return reports, nil
}

// GetReport loads one report, scoped to its owner.
func (s *ScoutReportService) GetReport(userID uint, reportID uint) (*models.ScoutReport, error) {
	var report models.ScoutReport
	if err := s.db.Where("id = ? AND user_id = ?", reportID, userID).First(&report).Error; err != nil {
		return nil, fmt.Errorf("report not found: %w", err)
	}
	return &report, nil
}

// PruneOlderThan deletes reports past the retention window and returns how
// many rows went.
func (s *ScoutReportService) PruneOlderThan(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.ScoutReport{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune reports: %w", result.Error)
	}
	return result.RowsAffected, nil
}
