package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Generation providers.
const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
)

// Config holds all application configuration.
type Config struct {
	// Database
	DatabasePath string

	// Generation
	Provider        string // "gemini" or "claude" (default: gemini)
	GeminiAPIKey    string
	AnthropicAPIKey string
	Model           string // Empty uses the provider default
	Temperature     float64

	// HTTP API
	HTTPAddr    string
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string

	// History
	HistoryLimit int

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:    getEnv("DATABASE_PATH", "data/descricoes.db"),
		Provider:        strings.ToLower(getEnv("GENERATOR_PROVIDER", ProviderGemini)),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		Model:           getEnv("GENERATOR_MODEL", ""),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	var err error
	cfg.Temperature, err = strconv.ParseFloat(getEnv("TEMPERATURE", "0.7"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TEMPERATURE: %w", err)
	}

	cfg.TokenTTL, err = time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	cfg.HistoryLimit, err = strconv.Atoi(getEnv("HISTORY_LIMIT", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid HISTORY_LIMIT: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("TEMPERATURE must be between 0 and 1")
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive")
	}
	return nil
}

// APIKey returns the credential for the selected provider.
func (c *Config) APIKey() string {
	if c.Provider == ProviderClaude {
		return c.AnthropicAPIKey
	}
	return c.GeminiAPIKey
}

// ValidateForGeneration checks configuration needed to call the provider.
func (c *Config) ValidateForGeneration() error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when GENERATOR_PROVIDER is gemini")
		}
	case ProviderClaude:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when GENERATOR_PROVIDER is claude")
		}
	default:
		return fmt.Errorf("invalid GENERATOR_PROVIDER: %s (must be 'gemini' or 'claude')", c.Provider)
	}
	return nil
}

// ValidateForServe checks all configuration needed for serve mode. A missing
// provider key is allowed; generation requests then fail with a validation
// error.
func (c *Config) ValidateForServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Provider != ProviderGemini && c.Provider != ProviderClaude {
		return fmt.Errorf("invalid GENERATOR_PROVIDER: %s (must be 'gemini' or 'claude')", c.Provider)
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET is required for serve (at least 16 characters)")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
