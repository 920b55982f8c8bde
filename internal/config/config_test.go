package config

import (
	"testing"
	"time"
)

func TestLoad_AllowsMissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("Expected empty DatabaseURL to select in-memory storage, got %s", cfg.DatabaseURL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/suite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.ServerPort)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("Expected default cache TTL of 10m, got %s", cfg.CacheTTL)
	}
	if cfg.SenderEmail != "onboarding@resend.dev" {
		t.Errorf("Expected default sender email, got %s", cfg.SenderEmail)
	}
	if cfg.MaxUploadBytes != 2*1024*1024 {
		t.Errorf("Expected 2MB default upload cap, got %d", cfg.MaxUploadBytes)
	}
	if cfg.RateLimit != "10-S" {
		t.Errorf("Expected default rate limit 10-S, got %s", cfg.RateLimit)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/suite")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("SERVER_DEBUG_MODE", "true")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("Expected cache TTL 5m, got %s", cfg.CacheTTL)
	}
	if !cfg.ServerDebugMode {
		t.Error("Expected debug mode to be enabled")
	}
	if cfg.MaxUploadBytes != 1048576 {
		t.Errorf("Expected 1MB upload cap, got %d", cfg.MaxUploadBytes)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/suite")
	t.Setenv("CACHE_TTL", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("Expected fallback to 10m, got %s", cfg.CacheTTL)
	}
}
