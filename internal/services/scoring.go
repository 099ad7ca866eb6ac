package services

import (
	"math"

	"quizforge-api/internal/models"
)

// ScoreAttempt counts the questions whose submitted answer strictly equals
// the stored correct answer. Missing answers count as incorrect; the result
// does not depend on iteration order. A quiz with zero questions scores
// 0 out of 0 regardless of what was submitted.
func ScoreAttempt(quiz *models.Quiz, answers map[string]string) (score, totalQuestions int) {
	totalQuestions = len(quiz.Questions)

	for _, question := range quiz.Questions {
		submitted, ok := answers[question.ID]
		if ok && submitted == question.CorrectAnswer {
			score++
		}
	}

	return score, totalQuestions
}

// ScorePercentage converts a score into a rounded integer percentage.
// A zero-question attempt is 0%, never a division by zero.
func ScorePercentage(score, totalQuestions int) int {
	if totalQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(totalQuestions) * 100))
}
