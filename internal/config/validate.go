package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks Config for production-critical problems.
// It collects all errors into a single joined error.
func (c *Config) Validate() error {
	var errs []string

	if c.OpenAI.APIKey == "" {
		errs = append(errs, "OPENAI_API_KEY is required")
	}
	if c.DB.Password == "" {
		errs = append(errs, "DB_PASSWORD is required")
	}

	// Port ranges
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT must be 1-65535, got %d", c.Server.Port))
	}
	if c.DB.Port < 1 || c.DB.Port > 65535 {
		errs = append(errs, fmt.Sprintf("DB_PORT must be 1-65535, got %d", c.DB.Port))
	}
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		errs = append(errs, fmt.Sprintf("REDIS_PORT must be 1-65535, got %d", c.Redis.Port))
	}

	// Retrieval pipeline bounds
	if c.Chat.TopK < 1 || c.Chat.TopK > 100 {
		errs = append(errs, fmt.Sprintf("CHAT_TOP_K must be 1-100, got %d", c.Chat.TopK))
	}
	if c.Chat.TokenBudget < 1000 {
		errs = append(errs, fmt.Sprintf("CHAT_TOKEN_BUDGET must be at least 1000, got %d", c.Chat.TokenBudget))
	}
	if c.Chat.SiteURL != "" && !strings.HasPrefix(c.Chat.SiteURL, "http") {
		errs = append(errs, "CHAT_SITE_URL must be an absolute http(s) URL")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  - " + strings.Join(errs, "\n  - "))
	}
	return nil
}
