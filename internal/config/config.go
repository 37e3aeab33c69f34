package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration

	PlacesAPIKey    string
	PlacesBaseURL   string
	DefaultLocation string
	PhoneRegion     string
	DetailsCacheTTL time.Duration

	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	RateLimitChat   RateLimitConfig
	FrontendOrigins []string
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:        parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),
		PlacesAPIKey:    strings.TrimSpace(os.Getenv("GOOGLE_PLACES_API_KEY")),
		PlacesBaseURL:   os.Getenv("PLACES_BASE_URL"),
		DefaultLocation: getEnv("DEFAULT_LOCATION", "40.7128,-74.0060"),
		PhoneRegion:     getEnv("PHONE_REGION", "US"),
		DetailsCacheTTL: parseDuration(getEnv("DETAILS_CACHE_TTL", "5m"), 5*time.Minute),
		LLMAPIKey:       strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
		LLMBaseURL:      os.Getenv("GROQ_BASE_URL"),
		LLMModel:        getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
		FrontendOrigins: splitOrigins(os.Getenv("FRONTEND_ORIGINS")),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_CHAT", "20/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_CHAT value: %w", err)
	}
	cfg.RateLimitChat = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func splitOrigins(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return fallback
	}
	return d
}
