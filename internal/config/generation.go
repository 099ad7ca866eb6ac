package config

import "time"

// GenerationConfig configures the external AI quiz-generation provider.
type GenerationConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	RequestTimeout time.Duration
	CostPerToken   float64
}

func NewGenerationConfig() *GenerationConfig {
	return &GenerationConfig{
		APIKey:         getEnv("OPENAI_API_KEY", ""),
		BaseURL:        getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		RequestTimeout: 60 * time.Second,
		CostPerToken:   0.0000006,
	}
}
