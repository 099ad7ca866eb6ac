package repository

import (
	"context"
	"errors"

	"quizforge-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Quiz, error)
	Create(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountAttempts(ctx context.Context, quizIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	var quiz models.Quiz

	err := r.db.WithContext(ctx).First(&quiz, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quiz, err
}

func (r *quizRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Quiz, error) {
	var quizzes []models.Quiz

	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&quizzes).Error

	return quizzes, err
}

func (r *quizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	return r.db.WithContext(ctx).Create(quiz).Error
}

func (r *quizRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Quiz{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountAttempts returns the attempt count per quiz for the given ids.
// Quizzes with no attempts are absent from the result map.
func (r *quizRepository) CountAttempts(ctx context.Context, quizIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(quizIDs))
	if len(quizIDs) == 0 {
		return counts, nil
	}

	rows := []struct {
		QuizID uuid.UUID
		Total  int64
	}{}

	err := r.db.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Select("quiz_id, count(*) as total").
		Where("quiz_id IN ?", quizIDs).
		Group("quiz_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.QuizID] = row.Total
	}
	return counts, nil
}
