package services

import (
	"context"
	"testing"

	"quizforge-api/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserStatsEmpty(t *testing.T) {
	svc := NewStatsService(newFakeQuizRepo(), &fakeAttemptRepo{})

	stats, err := svc.GetUserStats(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalQuizzes)
	assert.Equal(t, 0, stats.TotalAttempts)
	assert.Equal(t, 0, stats.AverageScore)
}

func TestGetUserStatsAveragesAttemptPercentages(t *testing.T) {
	quizRepo := newFakeQuizRepo()
	attemptRepo := &fakeAttemptRepo{}
	svc := NewStatsService(quizRepo, attemptRepo)
	ctx := context.Background()

	userID := uuid.New()
	quiz := fiveQuestionQuiz()
	quiz.ID = uuid.New()
	quiz.OwnerID = userID
	require.NoError(t, quizRepo.Create(ctx, quiz))

	// 60% and 100% average to 80%.
	require.NoError(t, attemptRepo.Create(ctx, &models.QuizAttempt{
		UserID: userID, QuizID: quiz.ID, Score: 3, TotalQuestions: 5,
	}))
	require.NoError(t, attemptRepo.Create(ctx, &models.QuizAttempt{
		UserID: userID, QuizID: quiz.ID, Score: 5, TotalQuestions: 5,
	}))

	stats, err := svc.GetUserStats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalQuizzes)
	assert.Equal(t, 2, stats.TotalAttempts)
	assert.Equal(t, 80, stats.AverageScore)
}

func TestGetUserStatsZeroQuestionAttemptsDoNotDivideByZero(t *testing.T) {
	quizRepo := newFakeQuizRepo()
	attemptRepo := &fakeAttemptRepo{}
	svc := NewStatsService(quizRepo, attemptRepo)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, attemptRepo.Create(ctx, &models.QuizAttempt{
		UserID: userID, QuizID: uuid.New(), Score: 0, TotalQuestions: 0,
	}))

	stats, err := svc.GetUserStats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalAttempts)
	assert.Equal(t, 0, stats.AverageScore)
}
