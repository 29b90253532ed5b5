// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/subosito/gotenv"

	"github.com/emotionlog/emotionlog/internal/sentiment"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Redis is optional; without it key locks are process-local.
	RedisURL string `env:"REDIS_URL"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"40s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 64KB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"65536"`

	// Sentiment provider
	SentimentBaseURL   string        `env:"SENTIMENT_API_BASE_URL" envDefault:"https://router.huggingface.co"`
	SentimentModelPath string        `env:"SENTIMENT_API_MODEL_PATH" envDefault:"/hf-inference/models/distilbert/distilbert-base-uncased-finetuned-sst-2-english"`
	SentimentToken     string        `env:"SENTIMENT_API_TOKEN"`
	SentimentTimeout   time.Duration `env:"SENTIMENT_API_TIMEOUT" envDefault:"15s"`

	// Key locks
	LockTTL  time.Duration `env:"LOCK_TTL" envDefault:"30s"`
	LockWait time.Duration `env:"LOCK_WAIT" envDefault:"20s"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
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

// Sentiment returns the provider client settings.
func (c *Config) Sentiment() sentiment.ClientConfig {
	return sentiment.ClientConfig{
		BaseURL:   c.SentimentBaseURL,
		ModelPath: c.SentimentModelPath,
		Token:     c.SentimentToken,
		Timeout:   c.SentimentTimeout,
	}
}

// HasSentimentToken reports whether a non-blank provider token is configured.
func (c *Config) HasSentimentToken() bool {
	return strings.TrimSpace(c.SentimentToken) != ""
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing or settings conflict.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	if c.SentimentTimeout <= 0 {
		return fmt.Errorf("SENTIMENT_API_TIMEOUT must be positive, got %s", c.SentimentTimeout)
	}
	if c.LockWait <= 0 || c.LockTTL <= 0 {
		return errors.New("LOCK_TTL and LOCK_WAIT must be positive")
	}
	// The text lock is held across the provider call.
	if c.LockTTL <= c.SentimentTimeout {
		return fmt.Errorf("LOCK_TTL (%s) must exceed SENTIMENT_API_TIMEOUT (%s)", c.LockTTL, c.SentimentTimeout)
	}
	if c.LockWait <= c.SentimentTimeout {
		return fmt.Errorf("LOCK_WAIT (%s) must exceed SENTIMENT_API_TIMEOUT (%s)", c.LockWait, c.SentimentTimeout)
	}
	// A create request may wait out the lock and then call the provider.
	if c.WriteTimeout <= c.LockWait+c.SentimentTimeout {
		return fmt.Errorf("WRITE_TIMEOUT (%s) must exceed LOCK_WAIT + SENTIMENT_API_TIMEOUT (%s)",
			c.WriteTimeout, c.LockWait+c.SentimentTimeout)
	}
	return nil
}

// LoadDotEnv loads variables from a .env file without overriding ones already set.
// A missing file is not an error; loaded reports whether the file was read.
func LoadDotEnv(path string) (loaded bool, err error) {
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return true, nil
}
