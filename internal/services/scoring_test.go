package services

import (
	"testing"

	"quizforge-api/internal/models"

	"github.com/stretchr/testify/assert"
)

func fiveQuestionQuiz() *models.Quiz {
	return &models.Quiz{
		Title: "Capitals",
		Questions: models.QuestionList{
			{ID: "q1", Text: "1", Options: []string{"A", "B"}, CorrectAnswer: "A"},
			{ID: "q2", Text: "2", Options: []string{"B", "C"}, CorrectAnswer: "B"},
			{ID: "q3", Text: "3", Options: []string{"C", "D"}, CorrectAnswer: "C"},
			{ID: "q4", Text: "4", Options: []string{"D", "E"}, CorrectAnswer: "D"},
			{ID: "q5", Text: "5", Options: []string{"E", "F"}, CorrectAnswer: "E"},
		},
	}
}

func TestScoreAttempt(t *testing.T) {
	quiz := fiveQuestionQuiz()

	answers := map[string]string{
		"q1": "A",
		"q2": "X",
		"q3": "C",
		"q4": "D",
		"q5": "Z",
	}

	score, total := ScoreAttempt(quiz, answers)
	assert.Equal(t, 3, score)
	assert.Equal(t, 5, total)
	assert.Equal(t, 60, ScorePercentage(score, total))
}

func TestScoreAttemptMissingAnswersCountIncorrect(t *testing.T) {
	quiz := fiveQuestionQuiz()

	score, total := ScoreAttempt(quiz, map[string]string{"q1": "A"})
	assert.Equal(t, 1, score)
	assert.Equal(t, 5, total)
}

func TestScoreAttemptStrictEquality(t *testing.T) {
	quiz := &models.Quiz{
		Questions: models.QuestionList{
			{ID: "q1", Text: "1", Options: []string{"Paris", "London"}, CorrectAnswer: "Paris"},
		},
	}

	// No case folding or whitespace normalization.
	score, _ := ScoreAttempt(quiz, map[string]string{"q1": "paris"})
	assert.Equal(t, 0, score)

	score, _ = ScoreAttempt(quiz, map[string]string{"q1": "Paris "})
	assert.Equal(t, 0, score)
}

func TestScoreAttemptAnswersForUnknownQuestionsIgnored(t *testing.T) {
	quiz := fiveQuestionQuiz()

	answers := map[string]string{
		"q1":      "A",
		"unknown": "A",
	}

	score, total := ScoreAttempt(quiz, answers)
	assert.Equal(t, 1, score)
	assert.Equal(t, 5, total)
}

func TestScoreAttemptZeroQuestions(t *testing.T) {
	quiz := &models.Quiz{Title: "Empty", Questions: models.QuestionList{}}

	score, total := ScoreAttempt(quiz, map[string]string{})
	assert.Equal(t, 0, score)
	assert.Equal(t, 0, total)
	assert.Equal(t, 0, ScorePercentage(score, total))

	// Submitted answers against a zero-question quiz degrade to 0/0 as well.
	score, total = ScoreAttempt(quiz, map[string]string{"q1": "A"})
	assert.Equal(t, 0, score)
	assert.Equal(t, 0, total)
}

func TestScorePercentageRounds(t *testing.T) {
	assert.Equal(t, 67, ScorePercentage(2, 3))
	assert.Equal(t, 33, ScorePercentage(1, 3))
	assert.Equal(t, 100, ScorePercentage(5, 5))
	assert.Equal(t, 0, ScorePercentage(0, 5))
}

func TestScoreAttemptInsertionOrderInvariant(t *testing.T) {
	quiz := fiveQuestionQuiz()
	keys := []string{"q1", "q2", "q3", "q4", "q5"}
	values := map[string]string{"q1": "A", "q2": "X", "q3": "C", "q4": "D", "q5": "Z"}

	// Build the answers map in several insertion orders.
	for shift := 0; shift < len(keys); shift++ {
		answers := make(map[string]string, len(keys))
		for i := range keys {
			k := keys[(i+shift)%len(keys)]
			answers[k] = values[k]
		}

		score, total := ScoreAttempt(quiz, answers)
		assert.Equal(t, 3, score)
		assert.Equal(t, 5, total)
	}
}
