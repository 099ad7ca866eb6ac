package handlers

import (
	"encoding/json"
	"net/http"

	"quizforge-api/internal/logger"
	"quizforge-api/internal/pkg/errors"
	"quizforge-api/internal/services"

	"github.com/sirupsen/logrus"
)

type GenerateHandler struct {
	generationService services.GenerationService
	usageService      services.UsageService
}

func NewGenerateHandler(generationService services.GenerationService, usageService services.UsageService) *GenerateHandler {
	return &GenerateHandler{
		generationService: generationService,
		usageService:      usageService,
	}
}

type generateResponse struct {
	Quiz  *services.GeneratedQuiz `json:"quiz"`
	Usage *services.UsageStats    `json:"usage"`
}

// GenerateQuiz gates the AI call on the monthly quota, performs the
// generation, then records usage. The check and the record are separate
// calls, so the quota is a soft limit under concurrency.
func (h *GenerateHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := services.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req services.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	allowed, err := h.usageService.CheckLimit(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !allowed {
		writeError(w, errors.ErrQuotaExceeded)
		return
	}

	draft, costEstimate, err := h.generationService.GenerateQuiz(r.Context(), req)
	if err != nil {
		logger.Logger.WithFields(logrus.Fields{
			"user":  user.ID,
			"error": err,
		}).Error("Quiz generation failed")
		writeError(w, err)
		return
	}

	promptText := req.Prompt
	if promptText == "" {
		promptText = req.DocumentText
	}

	if err := h.usageService.RecordUsage(r.Context(), user.ID, services.ActionQuizGeneration, promptText, costEstimate); err != nil {
		// The AI spend already happened; surface the failure rather than
		// silently under-counting.
		logger.Logger.WithFields(logrus.Fields{
			"user":  user.ID,
			"error": err,
		}).Error("Failed to record usage")
		writeError(w, err)
		return
	}

	stats, err := h.usageService.GetUsage(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Quiz:  draft,
		Usage: stats,
	})
}
