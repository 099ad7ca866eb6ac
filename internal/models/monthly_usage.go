package models

import (
	"time"

	"github.com/google/uuid"
)

// MonthlyUsage is the per-user AI usage counter for one calendar month.
// MonthKey is a "YYYY-MM" string derived from UTC time; at most one row
// exists per (user, month) and TotalPrompts only increases within a month.
type MonthlyUsage struct {
	ID           uint      `gorm:"primarykey" json:"-"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usage_user_month" json:"user_id"`
	MonthKey     string    `gorm:"type:varchar(7);not null;uniqueIndex:idx_usage_user_month" json:"month_key"`
	TotalPrompts int       `gorm:"not null;default:0" json:"total_prompts"`
	TotalCost    float64   `gorm:"not null;default:0" json:"total_cost"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (MonthlyUsage) TableName() string {
	return "monthly_usages"
}
