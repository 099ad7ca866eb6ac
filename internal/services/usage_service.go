package services

import (
	"context"
	"time"

	"quizforge-api/internal/config"
	"quizforge-api/internal/models"
	"quizforge-api/internal/pkg/errors"
	"quizforge-api/internal/repository"

	"github.com/google/uuid"
)

// ActionQuizGeneration is the metered action recorded for every AI
// quiz-generation call.
const ActionQuizGeneration = "quiz_generation"

// UsageService enforces the fixed monthly ceiling on AI-generation actions
// per user and tracks an approximate cost. CheckLimit and RecordUsage are
// deliberately separate calls: the caller performs the gated AI call between
// them, so the limit is soft — concurrent requests may both pass the check.
type UsageService interface {
	CheckLimit(ctx context.Context, userID uuid.UUID) (bool, error)
	GetUsage(ctx context.Context, userID uuid.UUID) (*UsageStats, error)
	RecordUsage(ctx context.Context, userID uuid.UUID, action, promptText string, costEstimate float64) error
}

type UsageStats struct {
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	MonthKey  string `json:"month_key"`
}

type usageService struct {
	repo        repository.UsageRepository
	quotaConfig *config.QuotaConfig
	now         func() time.Time
}

func NewUsageService(repo repository.UsageRepository, quotaConfig *config.QuotaConfig) UsageService {
	return &usageService{
		repo:        repo,
		quotaConfig: quotaConfig,
		now:         time.Now,
	}
}

// currentMonthKey truncates wall-clock time to a UTC "YYYY-MM" key. The
// quota resets at calendar-month boundaries, not on a rolling window.
func (s *usageService) currentMonthKey() string {
	return s.now().UTC().Format("2006-01")
}

func (s *usageService) CheckLimit(ctx context.Context, userID uuid.UUID) (bool, error) {
	usage, err := s.repo.GetMonthlyUsage(ctx, userID, s.currentMonthKey())
	if err != nil {
		// An unreadable usage row must not silently count as "no usage".
		return false, errors.Wrap(err, "failed to read monthly usage")
	}

	used := 0
	if usage != nil {
		used = usage.TotalPrompts
	}

	return used < s.quotaConfig.MonthlyLimit, nil
}

func (s *usageService) GetUsage(ctx context.Context, userID uuid.UUID) (*UsageStats, error) {
	monthKey := s.currentMonthKey()

	usage, err := s.repo.GetMonthlyUsage(ctx, userID, monthKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read monthly usage")
	}

	used := 0
	if usage != nil {
		used = usage.TotalPrompts
	}

	remaining := s.quotaConfig.MonthlyLimit - used
	if remaining < 0 {
		remaining = 0
	}

	return &UsageStats{
		Used:      used,
		Limit:     s.quotaConfig.MonthlyLimit,
		Remaining: remaining,
		MonthKey:  monthKey,
	}, nil
}

func (s *usageService) RecordUsage(ctx context.Context, userID uuid.UUID, action, promptText string, costEstimate float64) error {
	monthKey := s.currentMonthKey()

	entry := &models.UsageLogEntry{
		UserID:       userID,
		Action:       action,
		PromptText:   promptText,
		CostEstimate: costEstimate,
		MonthKey:     monthKey,
		CreatedAt:    s.now(),
	}

	if err := s.repo.AppendLog(ctx, entry); err != nil {
		return errors.Wrap(err, "failed to append usage log")
	}

	if err := s.repo.IncrementMonthlyUsage(ctx, userID, monthKey, costEstimate); err != nil {
		return errors.Wrap(err, "failed to increment monthly usage")
	}

	return nil
}
