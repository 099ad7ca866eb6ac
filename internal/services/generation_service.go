package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"quizforge-api/internal/config"
	"quizforge-api/internal/models"
	"quizforge-api/internal/pkg/errors"

	"github.com/google/uuid"
)

// GenerationRequest describes one AI quiz-generation call. Exactly one of
// Prompt (a topic) or DocumentText (text extracted from an upload) drives
// the generation.
type GenerationRequest struct {
	Prompt       string `json:"prompt,omitempty"`
	DocumentText string `json:"document_text,omitempty"`
	NumQuestions int    `json:"num_questions,omitempty"`
}

// GeneratedQuiz is the draft returned to the client. It is not persisted;
// the client saves it through the quiz endpoint if the user keeps it.
type GeneratedQuiz struct {
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Questions   []models.Question `json:"questions"`
}

// GenerationService is the opaque external AI collaborator. The returned
// quiz is only checked for structural shape, never for factual quality.
type GenerationService interface {
	GenerateQuiz(ctx context.Context, req GenerationRequest) (*GeneratedQuiz, float64, error)
}

type openAIGenerationService struct {
	cfg        *config.GenerationConfig
	httpClient *http.Client
}

func NewGenerationService(cfg *config.GenerationConfig) GenerationService {
	return &openAIGenerationService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

type chatCompletionRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const systemPrompt = `You are a quiz generator. Respond with a single JSON object:
{"title": string, "description": string, "questions": [{"text": string, "options": [string, ...], "correct_answer": string, "explanation": string}]}
Each question must have 4 options, and correct_answer must be one of the options verbatim.`

func (s *openAIGenerationService) GenerateQuiz(ctx context.Context, req GenerationRequest) (*GeneratedQuiz, float64, error) {
	source := strings.TrimSpace(req.Prompt)
	userPrompt := fmt.Sprintf("Create a quiz about the following topic: %s", source)
	if source == "" {
		source = strings.TrimSpace(req.DocumentText)
		userPrompt = fmt.Sprintf("Create a quiz from the following document text:\n\n%s", source)
	}
	if source == "" {
		return nil, 0, errors.Wrap(errors.ErrInvalidInput, "a topic prompt or document text is required")
	}

	numQuestions := req.NumQuestions
	if numQuestions <= 0 {
		numQuestions = 5
	}
	userPrompt = fmt.Sprintf("%s\n\nGenerate exactly %d questions.", userPrompt, numQuestions)

	payload := chatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}
	payload.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, 0, fmt.Errorf("failed to decode generation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if completion.Error != nil {
			return nil, 0, fmt.Errorf("generation provider error: %s", completion.Error.Message)
		}
		return nil, 0, fmt.Errorf("generation provider returned status %d", resp.StatusCode)
	}

	if len(completion.Choices) == 0 {
		return nil, 0, fmt.Errorf("generation provider returned no choices")
	}

	var draft GeneratedQuiz
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &draft); err != nil {
		return nil, 0, fmt.Errorf("failed to parse generated quiz: %w", err)
	}

	if err := validateDraft(&draft); err != nil {
		return nil, 0, err
	}

	costEstimate := float64(completion.Usage.TotalTokens) * s.cfg.CostPerToken

	return &draft, costEstimate, nil
}

// validateDraft checks structural shape only: a title and a non-empty
// question sequence. Question ids are assigned here so a saved draft keeps
// stable ids across clients.
func validateDraft(draft *GeneratedQuiz) error {
	if strings.TrimSpace(draft.Title) == "" {
		return errors.Wrap(errors.ErrInvalidInput, "generated quiz has no title")
	}
	if len(draft.Questions) == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "generated quiz has no questions")
	}

	for i := range draft.Questions {
		if draft.Questions[i].ID == "" {
			draft.Questions[i].ID = uuid.NewString()
		}
	}

	return nil
}
