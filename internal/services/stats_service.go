package services

import (
	"context"
	"math"

	"quizforge-api/internal/pkg/errors"
	"quizforge-api/internal/repository"

	"github.com/google/uuid"
)

// UserStats feeds the dashboard: how many quizzes a user owns, how many
// attempts they made, and the rounded mean of their attempt percentages.
type UserStats struct {
	TotalQuizzes  int `json:"total_quizzes"`
	TotalAttempts int `json:"total_attempts"`
	AverageScore  int `json:"average_score"`
}

type StatsService interface {
	GetUserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error)
}

type statsService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.AttemptRepository
}

func NewStatsService(quizRepo repository.QuizRepository, attemptRepo repository.AttemptRepository) StatsService {
	return &statsService{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
	}
}

func (s *statsService) GetUserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
	quizzes, err := s.quizRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list quizzes")
	}

	attempts, err := s.attemptRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list attempts")
	}

	stats := &UserStats{
		TotalQuizzes:  len(quizzes),
		TotalAttempts: len(attempts),
	}

	if len(attempts) > 0 {
		sum := 0.0
		for _, attempt := range attempts {
			sum += float64(ScorePercentage(attempt.Score, attempt.TotalQuestions))
		}
		stats.AverageScore = int(math.Round(sum / float64(len(attempts))))
	}

	return stats, nil
}
