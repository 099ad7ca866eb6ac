package repository

import (
	"context"
	"errors"
	"time"

	"quizforge-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsageRepository interface {
	GetMonthlyUsage(ctx context.Context, userID uuid.UUID, monthKey string) (*models.MonthlyUsage, error)
	IncrementMonthlyUsage(ctx context.Context, userID uuid.UUID, monthKey string, cost float64) error
	AppendLog(ctx context.Context, entry *models.UsageLogEntry) error
}

type usageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &usageRepository{db: db}
}

func (r *usageRepository) GetMonthlyUsage(ctx context.Context, userID uuid.UUID, monthKey string) (*models.MonthlyUsage, error) {
	var usage models.MonthlyUsage
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND month_key = ?", userID, monthKey).
		First(&usage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &usage, nil
}

// IncrementMonthlyUsage is a single INSERT .. ON CONFLICT DO UPDATE, so
// concurrent increments for the same (user, month) never lose updates and
// the unique index guarantees a single row per key.
func (r *usageRepository) IncrementMonthlyUsage(ctx context.Context, userID uuid.UUID, monthKey string, cost float64) error {
	now := time.Now()
	usage := models.MonthlyUsage{
		UserID:       userID,
		MonthKey:     monthKey,
		TotalPrompts: 1,
		TotalCost:    cost,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "month_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_prompts": gorm.Expr("monthly_usages.total_prompts + 1"),
			"total_cost":    gorm.Expr("monthly_usages.total_cost + ?", cost),
			"updated_at":    now,
		}),
	}).Create(&usage).Error
}

func (r *usageRepository) AppendLog(ctx context.Context, entry *models.UsageLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
