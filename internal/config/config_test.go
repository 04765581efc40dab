package config

import (
	"errors"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "gsk_test")
	t.Setenv("DATABASE_URL", "postgres://localhost/interviewiq")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.AppPort != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.AppPort)
	}
	if cfg.OpenAIBaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("unexpected default base URL: %s", cfg.OpenAIBaseURL)
	}
	if cfg.AIModel != "llama-3.3-70b-versatile" {
		t.Errorf("unexpected default model: %s", cfg.AIModel)
	}
	if cfg.LLMMaxTokens != 2048 {
		t.Errorf("expected default max tokens 2048, got %d", cfg.LLMMaxTokens)
	}
	if cfg.CacheTTL != 6*time.Hour {
		t.Errorf("expected default cache TTL 6h, got %s", cfg.CacheTTL)
	}
	if !cfg.HistoryEnabled {
		t.Error("expected history enabled by default")
	}
	if !cfg.CORSAllowAll() {
		t.Error("expected wildcard CORS by default")
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OPENAI_BASE_URL", "https://api.openai.com/v1")
	t.Setenv("AI_MODEL", "gpt-4o-mini")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.OpenAIBaseURL != "https://api.openai.com/v1" {
		t.Errorf("unexpected base URL: %s", cfg.OpenAIBaseURL)
	}
	if cfg.AIModel != "gpt-4o-mini" {
		t.Errorf("unexpected model: %s", cfg.AIModel)
	}
	if cfg.LLMTimeout != 15*time.Second {
		t.Errorf("unexpected LLM timeout: %s", cfg.LLMTimeout)
	}
	if !cfg.IsProduction() {
		t.Error("expected production mode")
	}
}

func TestGetCORSAllowedOrigins(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"empty", "", nil},
		{"wildcard", "*", nil},
		{"single", "https://app.example.com", []string{"https://app.example.com"}},
		{"multiple with spaces", "https://a.com, https://b.com ,", []string{"https://a.com", "https://b.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{CORSAllowedOrigins: tt.value}
			got := cfg.GetCORSAllowedOrigins()
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d origins, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("origin %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}
