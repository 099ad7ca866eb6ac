package repository

import (
	"context"

	"quizforge-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.QuizAttempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *attemptRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&attempts).Error

	return attempts, err
}
