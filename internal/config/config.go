// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// ErrMissingAPIKey is returned when no upstream API key is configured.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Upstream LLM API (OpenAI-compatible; Groq by default)
	OpenAIAPIKey  string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	AIModel       string        `env:"AI_MODEL" envDefault:"llama-3.3-70b-versatile"`
	LLMMaxTokens  int           `env:"LLM_MAX_TOKENS" envDefault:"2048"`
	LLMTimeout    time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
	LLMMaxRetries int           `env:"LLM_MAX_RETRIES" envDefault:"2"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts. WriteTimeout must cover the slowest upstream
	// completion call, so it is generous.
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"90s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting (per client IP, applied to /api/v1)
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPM     int  `env:"RATE_LIMIT_RPM" envDefault:"30"`
	RateLimitBurst   int  `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// Result cache TTL for JD-keyed features
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"6h"`

	// Async persistence of analysis results
	HistoryEnabled bool `env:"HISTORY_ENABLED" envDefault:"true"`

	// CORS configuration
	// Comma-separated list of allowed origins, or "*" to allow any origin.
	// The static frontend is served from an arbitrary host, so "*" is the
	// development default.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Request body size limit in bytes (default 256KB; inputs are plain text)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"262144"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CORSAllowAll reports whether cross-origin requests from any origin are allowed.
func (c *Config) CORSAllowAll() bool {
	return strings.TrimSpace(c.CORSAllowedOrigins) == "*"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
// Returns nil when the wildcard is configured.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" || c.CORSAllowAll() {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return cfg, nil
}
