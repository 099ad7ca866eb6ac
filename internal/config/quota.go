package config

// QuotaConfig carries the fixed monthly ceiling on metered AI-generation
// actions per user. The limit resets at UTC calendar-month boundaries.
type QuotaConfig struct {
	MonthlyLimit int
}

func NewQuotaConfig() *QuotaConfig {
	return &QuotaConfig{
		MonthlyLimit: 10,
	}
}
