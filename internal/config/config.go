package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	ServerPort      string
	FrontendURL     string
	OpenAIKey       string
	AIModel         string
	AIBaseURL       string
	ResendAPIKey    string
	SenderName      string
	SenderEmail     string
	RedisURL        string
	CacheTTL        time.Duration
	AuthJWKSURL     string
	RateLimit       string
	MaxUploadBytes  int64
	ServerDebugMode bool
	EnableHSTS      bool
	OTELEnabled     bool
	OTELEndpoint    string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
		OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
		AIModel:         getEnv("AI_MODEL", ""),
		AIBaseURL:       getEnv("AI_BASE_URL", ""),
		ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
		SenderName:      getEnv("SENDER_NAME", "Storm Notes"),
		SenderEmail:     getEnv("SENDER_EMAIL", "onboarding@resend.dev"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		CacheTTL:        getEnvDuration("CACHE_TTL", 10*time.Minute),
		AuthJWKSURL:     getEnv("AUTH_JWKS_URL", ""),
		RateLimit:       getEnv("RATE_LIMIT", "10-S"),
		MaxUploadBytes:  getEnvInt64("MAX_UPLOAD_BYTES", 2*1024*1024),
		ServerDebugMode: getEnvBool("SERVER_DEBUG_MODE", false),
		EnableHSTS:      getEnvBool("ENABLE_HSTS", false),
		OTELEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	// An empty DATABASE_URL selects in-memory storage; nothing survives
	// a restart in that mode.
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("CACHE_TTL must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
