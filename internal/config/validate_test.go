package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		DB: DBConfig{
			Host: "localhost", Port: 5432, User: "personalsite",
			Password: "secret", Name: "personalsite", SSLMode: "disable", MaxConns: 10,
		},
		Redis:  RedisConfig{Host: "localhost", Port: 6379},
		OpenAI: OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o", EmbeddingModel: "text-embedding-ada-002"},
		Chat: ChatConfig{
			TopK:        10,
			TokenBudget: 120000,
			OwnerName:   "Karthik Thyagarajan",
			SiteURL:     "https://www.karthikthyagarajan.com",
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.OpenAI.APIKey = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Fatalf("expected OPENAI_API_KEY error, got: %v", err)
	}
}

func TestValidate_MissingDBPassword(t *testing.T) {
	cfg := validConfig()
	cfg.DB.Password = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "DB_PASSWORD") {
		t.Fatalf("expected DB_PASSWORD error, got: %v", err)
	}
}

func TestValidate_BadServerPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Fatalf("expected SERVER_PORT error, got: %v", err)
	}
}

func TestValidate_TopKOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Chat.TopK = 0
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "CHAT_TOP_K") {
		t.Fatalf("expected CHAT_TOP_K error, got: %v", err)
	}
}

func TestValidate_TokenBudgetTooSmall(t *testing.T) {
	cfg := validConfig()
	cfg.Chat.TokenBudget = 100
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "CHAT_TOKEN_BUDGET") {
		t.Fatalf("expected CHAT_TOKEN_BUDGET error, got: %v", err)
	}
}

func TestValidate_RelativeSiteURL(t *testing.T) {
	cfg := validConfig()
	cfg.Chat.SiteURL = "www.example.com"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "CHAT_SITE_URL") {
		t.Fatalf("expected CHAT_SITE_URL error, got: %v", err)
	}
}

func TestValidate_CollectsMultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.OpenAI.APIKey = ""
	cfg.DB.Password = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") || !strings.Contains(err.Error(), "DB_PASSWORD") {
		t.Fatalf("expected both errors reported, got: %v", err)
	}
}
