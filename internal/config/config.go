package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env  string
	Port int

	DBURL string

	JWTSecret    string
	TokenTTLDays int

	// Itinerary generation upstream (OpenAI-compatible).
	LLMBaseURL        string
	LLMModel          string
	LLMTimeoutSeconds int

	// Destination photo lookup upstream (Unsplash-compatible).
	PhotoAPIBaseURL     string
	PhotoAPIKey         string
	PhotoTimeoutSeconds int
	PhotoCacheTTLMins   int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CORSAllowedOrigins []string

	RateLimitRequests int
	RateLimitWindowS  int

	OTLPEndpoint string
}

func Load() Config {
	return Config{
		Env:   getEnv("APP_ENV", "dev"),
		Port:  getEnvInt("PORT", 8080),
		DBURL: buildDBURL(),

		JWTSecret:    getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTLDays: getEnvInt("TOKEN_TTL_DAYS", 7),

		LLMBaseURL:        getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:          getEnv("LLM_MODEL", "gpt-3.5-turbo"),
		LLMTimeoutSeconds: getEnvInt("LLM_TIMEOUT_SECONDS", 60),

		PhotoAPIBaseURL:     getEnv("PHOTO_API_BASE_URL", "https://api.unsplash.com"),
		PhotoAPIKey:         getEnv("PHOTO_API_KEY", ""),
		PhotoTimeoutSeconds: getEnvInt("PHOTO_TIMEOUT_SECONDS", 5),
		PhotoCacheTTLMins:   getEnvInt("PHOTO_CACHE_TTL_MINUTES", 60),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindowS:  getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),

		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),
	}
}

// TokenTTL is the validity window for issued session tokens.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLDays) * 24 * time.Hour
}

func buildDBURL() string {
	// A full DATABASE_URL wins over the individual parts.
	if url := getEnv("DATABASE_URL", ""); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "triphub")
	pass := getEnv("DB_PASSWORD", "triphub")
	name := getEnv("DB_NAME", "triphub")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnv(key, fallback)

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
