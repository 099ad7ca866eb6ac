package services

import (
	"context"
	"time"

	"quizforge-api/internal/models"
	"quizforge-api/internal/pkg/errors"
	"quizforge-api/internal/repository"

	"github.com/google/uuid"
)

// AttemptResult is what a submission returns to the client.
type AttemptResult struct {
	AttemptID      uuid.UUID `json:"attempt_id"`
	QuizID         uuid.UUID `json:"quiz_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     int       `json:"percentage"`
	CompletedAt    time.Time `json:"completed_at"`
}

type AttemptService interface {
	SubmitAttempt(ctx context.Context, userID, quizID uuid.UUID, answers map[string]string) (*AttemptResult, error)
	ListAttempts(ctx context.Context, userID uuid.UUID) ([]models.QuizAttempt, error)
}

type attemptService struct {
	attemptRepo repository.AttemptRepository
	quizRepo    repository.QuizRepository
}

func NewAttemptService(attemptRepo repository.AttemptRepository, quizRepo repository.QuizRepository) AttemptService {
	return &attemptService{
		attemptRepo: attemptRepo,
		quizRepo:    quizRepo,
	}
}

func (s *attemptService) SubmitAttempt(ctx context.Context, userID, quizID uuid.UUID, answers map[string]string) (*AttemptResult, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch quiz")
	}
	if quiz == nil {
		return nil, errors.ErrNotFound
	}

	if answers == nil {
		answers = map[string]string{}
	}

	score, total := ScoreAttempt(quiz, answers)

	attempt := &models.QuizAttempt{
		ID:             uuid.New(),
		UserID:         userID,
		QuizID:         quizID,
		Answers:        models.JSON(answers),
		Score:          score,
		TotalQuestions: total,
		CompletedAt:    time.Now(),
	}

	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		return nil, errors.Wrap(err, "failed to save attempt")
	}

	return &AttemptResult{
		AttemptID:      attempt.ID,
		QuizID:         quizID,
		Score:          score,
		TotalQuestions: total,
		Percentage:     ScorePercentage(score, total),
		CompletedAt:    attempt.CompletedAt,
	}, nil
}

func (s *attemptService) ListAttempts(ctx context.Context, userID uuid.UUID) ([]models.QuizAttempt, error) {
	attempts, err := s.attemptRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list attempts")
	}
	return attempts, nil
}
