package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Env != "dev" {
		t.Errorf("expected default env dev, got %q", cfg.Env)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}

	if cfg.TokenTTLDays != 7 {
		t.Errorf("expected default token ttl of 7 days, got %d", cfg.TokenTTLDays)
	}

	if cfg.TokenTTL() != 7*24*time.Hour {
		t.Errorf("unexpected token ttl duration: %v", cfg.TokenTTL())
	}

	if cfg.LLMModel != "gpt-3.5-turbo" {
		t.Errorf("unexpected default model: %q", cfg.LLMModel)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL_DAYS", "1")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/trips?sslmode=disable")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port override 9090, got %d", cfg.Port)
	}

	if cfg.TokenTTLDays != 1 {
		t.Errorf("expected ttl override 1, got %d", cfg.TokenTTLDays)
	}

	if cfg.DBURL != "postgres://u:p@db:5432/trips?sslmode=disable" {
		t.Errorf("DATABASE_URL should win over DB_* parts, got %q", cfg.DBURL)
	}

	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestGetEnvIntBadValueFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("bad PORT should fall back to 8080, got %d", cfg.Port)
	}
}
