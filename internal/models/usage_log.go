package models

import (
	"time"

	"github.com/google/uuid"
)

// UsageLogEntry is an append-only record of a single metered AI action.
// Rows are written once and never updated.
type UsageLogEntry struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       string    `gorm:"type:varchar(64);not null" json:"action"`
	PromptText   string    `gorm:"type:text" json:"prompt_text,omitempty"`
	CostEstimate float64   `gorm:"not null;default:0" json:"cost_estimate"`
	MonthKey     string    `gorm:"type:varchar(7);not null;index" json:"month_key"`
	CreatedAt    time.Time `json:"created_at"`
}

func (UsageLogEntry) TableName() string {
	return "usage_logs"
}
