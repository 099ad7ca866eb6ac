package services

import (
	"context"
	"testing"

	"quizforge-api/internal/models"
	"quizforge-api/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestions() []models.Question {
	return []models.Question{
		{Text: "What is 2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4"},
		{Text: "What is 3+3?", Options: []string{"5", "6"}, CorrectAnswer: "6"},
	}
}

func TestCreateQuizAssignsQuestionIDs(t *testing.T) {
	repo := newFakeQuizRepo()
	svc := NewQuizService(repo, nil, 0)
	ownerID := uuid.New()

	quiz, err := svc.CreateQuiz(context.Background(), ownerID, "Math", "basics", validQuestions())
	require.NoError(t, err)

	assert.Equal(t, ownerID, quiz.OwnerID)
	require.Len(t, quiz.Questions, 2)
	for _, q := range quiz.Questions {
		assert.NotEmpty(t, q.ID)
	}
	assert.NotEqual(t, quiz.Questions[0].ID, quiz.Questions[1].ID)
}

func TestCreateQuizRejectsMalformedInput(t *testing.T) {
	svc := NewQuizService(newFakeQuizRepo(), nil, 0)
	ownerID := uuid.New()
	ctx := context.Background()

	_, err := svc.CreateQuiz(ctx, ownerID, "  ", "", validQuestions())
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = svc.CreateQuiz(ctx, ownerID, "Title", "", nil)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = svc.CreateQuiz(ctx, ownerID, "Title", "", []models.Question{
		{Text: "", Options: []string{"A"}, CorrectAnswer: "A"},
	})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = svc.CreateQuiz(ctx, ownerID, "Title", "", []models.Question{
		{Text: "Q", Options: nil, CorrectAnswer: "A"},
	})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = svc.CreateQuiz(ctx, ownerID, "Title", "", []models.Question{
		{Text: "Q", Options: []string{"A"}, CorrectAnswer: ""},
	})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = svc.CreateQuiz(ctx, ownerID, "Title", "", []models.Question{
		{ID: "dup", Text: "Q1", Options: []string{"A"}, CorrectAnswer: "A"},
		{ID: "dup", Text: "Q2", Options: []string{"B"}, CorrectAnswer: "B"},
	})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestDeleteQuizOwnerOnly(t *testing.T) {
	repo := newFakeQuizRepo()
	svc := NewQuizService(repo, nil, 0)
	ctx := context.Background()

	owner, stranger := uuid.New(), uuid.New()
	quiz, err := svc.CreateQuiz(ctx, owner, "Math", "", validQuestions())
	require.NoError(t, err)

	err = svc.DeleteQuiz(ctx, stranger, quiz.ID)
	assert.ErrorIs(t, err, errors.ErrInsufficientPermission)

	require.NoError(t, svc.DeleteQuiz(ctx, owner, quiz.ID))

	_, err = svc.GetQuiz(ctx, quiz.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestGetQuizNotFound(t *testing.T) {
	svc := NewQuizService(newFakeQuizRepo(), nil, 0)

	_, err := svc.GetQuiz(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errors.ErrNotFound)
}
