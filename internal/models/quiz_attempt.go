package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizAttempt is one completed submission of answers to a quiz. It is
// created exactly once per submission and immutable thereafter.
type QuizAttempt struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	QuizID         uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Answers        JSON      `gorm:"type:jsonb" json:"answers"`
	Score          int       `gorm:"not null" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"total_questions"`
	CompletedAt    time.Time `gorm:"not null" json:"completed_at"`
	User           User      `gorm:"foreignKey:UserID" json:"-"`
	Quiz           Quiz      `gorm:"foreignKey:QuizID" json:"-"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

func (a *QuizAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CompletedAt.IsZero() {
		a.CompletedAt = time.Now()
	}
	return nil
}
