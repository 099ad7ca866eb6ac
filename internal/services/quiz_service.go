package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"quizforge-api/internal/models"
	"quizforge-api/internal/pkg/errors"
	"quizforge-api/internal/repository"

	"github.com/google/uuid"
)

// QuizSummary is the list projection of a quiz: metadata plus how many
// times it has been attempted.
type QuizSummary struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	QuestionCount int       `json:"question_count"`
	AttemptCount  int64     `json:"attempt_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type QuizService interface {
	CreateQuiz(ctx context.Context, ownerID uuid.UUID, title, description string, questions []models.Question) (*models.Quiz, error)
	GetQuiz(ctx context.Context, id uuid.UUID) (*models.Quiz, error)
	ListQuizzes(ctx context.Context, ownerID uuid.UUID) ([]QuizSummary, error)
	DeleteQuiz(ctx context.Context, ownerID, id uuid.UUID) error
}

type quizService struct {
	quizRepo repository.QuizRepository
	cache    CacheService
	cacheTTL time.Duration
}

func NewQuizService(quizRepo repository.QuizRepository, cache CacheService, cacheTTL time.Duration) QuizService {
	return &quizService{
		quizRepo: quizRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func quizCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("quiz:%s", id)
}

// ValidateQuestions rejects malformed question payloads at the storage
// boundary, before anything reaches scoring. Questions without an id get
// one assigned; order is preserved.
func ValidateQuestions(questions []models.Question) ([]models.Question, error) {
	if len(questions) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "quiz must contain at least one question")
	}

	validated := make([]models.Question, 0, len(questions))
	seen := make(map[string]bool, len(questions))

	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			return nil, errors.Wrap(errors.ErrInvalidInput, fmt.Sprintf("question %d is missing text", i+1))
		}
		if len(q.Options) == 0 {
			return nil, errors.Wrap(errors.ErrInvalidInput, fmt.Sprintf("question %d has no answer options", i+1))
		}
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			return nil, errors.Wrap(errors.ErrInvalidInput, fmt.Sprintf("question %d has no correct answer", i+1))
		}

		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if seen[q.ID] {
			return nil, errors.Wrap(errors.ErrInvalidInput, fmt.Sprintf("duplicate question id %q", q.ID))
		}
		seen[q.ID] = true

		validated = append(validated, q)
	}

	return validated, nil
}

func (s *quizService) CreateQuiz(ctx context.Context, ownerID uuid.UUID, title, description string, questions []models.Question) (*models.Quiz, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "quiz title is required")
	}

	validated, err := ValidateQuestions(questions)
	if err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Questions:   validated,
	}

	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, errors.Wrap(err, "failed to create quiz")
	}

	return quiz, nil
}

func (s *quizService) GetQuiz(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, quizCacheKey(id)); err == nil && cached != "" {
			var quiz models.Quiz
			if err := json.Unmarshal([]byte(cached), &quiz); err == nil {
				return &quiz, nil
			}
		}
	}

	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch quiz")
	}
	if quiz == nil {
		return nil, errors.ErrNotFound
	}

	if s.cache != nil {
		// Best-effort; a cache failure never fails the read.
		_ = s.cache.Set(ctx, quizCacheKey(id), quiz, s.cacheTTL)
	}

	return quiz, nil
}

func (s *quizService) ListQuizzes(ctx context.Context, ownerID uuid.UUID) ([]QuizSummary, error) {
	quizzes, err := s.quizRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list quizzes")
	}

	ids := make([]uuid.UUID, len(quizzes))
	for i, q := range quizzes {
		ids[i] = q.ID
	}

	counts, err := s.quizRepo.CountAttempts(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count attempts")
	}

	summaries := make([]QuizSummary, len(quizzes))
	for i, q := range quizzes {
		summaries[i] = QuizSummary{
			ID:            q.ID,
			Title:         q.Title,
			Description:   q.Description,
			QuestionCount: len(q.Questions),
			AttemptCount:  counts[q.ID],
			CreatedAt:     q.CreatedAt,
		}
	}

	return summaries, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, ownerID, id uuid.UUID) error {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to fetch quiz")
	}
	if quiz == nil {
		return errors.ErrNotFound
	}

	if quiz.OwnerID != ownerID {
		return errors.ErrInsufficientPermission
	}

	if err := s.quizRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete quiz")
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, quizCacheKey(id))
	}

	return nil
}
