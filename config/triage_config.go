package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// TaxonomyMode selects how incoming email is classified.
type TaxonomyMode string

const (
	// ModeFixed classifies into the built-in Produtivo/Improdutivo taxonomy.
	ModeFixed TaxonomyMode = "fixed"
	// ModeDynamic classifies into user-defined categories with worked examples.
	ModeDynamic TaxonomyMode = "dynamic"
)

type Config struct {
	Port        string
	Environment string

	// Database
	DatabaseURL string
	RedisURL    string

	// JWT
	JWTSecret        string
	JWTExpiryMinutes int

	// OpenAI
	OpenAIAPIKey      string
	LLMModel          string
	LLMClassifyTokens int
	LLMReplyTokens    int
	LLMClassifyTemp   float64
	LLMReplyTemp      float64
	LLMTimeoutSec     int

	// Triage pipeline
	TaxonomyMode    TaxonomyMode
	SLAHours        int
	MaxContentChars int

	// CORS
	AllowedOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTExpiryMinutes: getEnvInt("JWT_EXPIRY_MINUTES", 60),

		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMClassifyTokens: getEnvInt("LLM_CLASSIFY_MAX_TOKENS", 200),
		LLMReplyTokens:    getEnvInt("RESPONSE_MAX_TOKENS", 350),
		LLMClassifyTemp:   getEnvFloat("LLM_CLASSIFY_TEMPERATURE", 0.0),
		LLMReplyTemp:      getEnvFloat("LLM_REPLY_TEMPERATURE", 0.2),
		LLMTimeoutSec:     getEnvInt("LLM_TIMEOUT_SEC", 60),

		TaxonomyMode:    TaxonomyMode(getEnv("TAXONOMY_MODE", string(ModeFixed))),
		SLAHours:        getEnvInt("SLA_HOURS", 24),
		MaxContentChars: getEnvInt("MAX_CONTENT_CHARS", 20000),

		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.TaxonomyMode != ModeFixed && cfg.TaxonomyMode != ModeDynamic {
		return nil, fmt.Errorf("TAXONOMY_MODE must be %q or %q, got %q", ModeFixed, ModeDynamic, cfg.TaxonomyMode)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
