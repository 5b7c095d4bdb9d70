package models

import (
	"time"

	"gorm.io/datatypes"
)

// ScoutReport is the persisted record of one generated analysis, kept for the
// per-user history endpoints and for auditing what the model was asked and
// answered.
type ScoutReport struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"index" json:"user_id"`
	PlayerID   int            `gorm:"index" json:"player_id"`
	PlayerName string         `json:"player_name"`
	ReportType string         `gorm:"index" json:"report_type"` // "search", "comparison", "swot", "scout_report", "explain"
	Language   string         `json:"language"`
	Request    datatypes.JSON `json:"request"`
	Response   datatypes.JSON `json:"response"`
	Narrative  string         `json:"narrative"`
	Degraded   bool           `json:"degraded"` // numeric payload returned without LLM prose
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (ScoutReport) TableName() string {
	return "scout_reports"
}
