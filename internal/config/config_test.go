package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DATABASE_URL", "JWT_SECRET", "JWT_TTL",
		"GOOGLE_PLACES_API_KEY", "PLACES_BASE_URL", "DEFAULT_LOCATION",
		"PHONE_REGION", "DETAILS_CACHE_TTL", "GROQ_API_KEY", "GROQ_BASE_URL",
		"GROQ_MODEL", "RATE_LIMIT_CHAT", "FRONTEND_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected default token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.DefaultLocation != "40.7128,-74.0060" {
		t.Fatalf("unexpected default location %q", cfg.DefaultLocation)
	}
	if cfg.PhoneRegion != "US" {
		t.Fatalf("unexpected phone region %q", cfg.PhoneRegion)
	}
	if cfg.DetailsCacheTTL != 5*time.Minute {
		t.Fatalf("unexpected cache ttl %v", cfg.DetailsCacheTTL)
	}
	if cfg.RateLimitChat.Requests != 20 || cfg.RateLimitChat.Interval != time.Minute {
		t.Fatalf("unexpected chat rate limit %+v", cfg.RateLimitChat)
	}
	if cfg.FrontendOrigins != nil {
		t.Fatalf("expected no origins, got %v", cfg.FrontendOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("GOOGLE_PLACES_API_KEY", "  places-key  ")
	t.Setenv("GROQ_API_KEY", "llm-key")
	t.Setenv("RATE_LIMIT_CHAT", "5/sec")
	t.Setenv("FRONTEND_ORIGINS", "https://app.example.com, https://staging.example.com ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9999" || cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
	if cfg.PlacesAPIKey != "places-key" {
		t.Fatalf("expected trimmed api key, got %q", cfg.PlacesAPIKey)
	}
	if cfg.LLMAPIKey != "llm-key" {
		t.Fatalf("unexpected llm key %q", cfg.LLMAPIKey)
	}
	if cfg.RateLimitChat.Requests != 5 || cfg.RateLimitChat.Interval != time.Second {
		t.Fatalf("unexpected rate limit %+v", cfg.RateLimitChat)
	}
	if len(cfg.FrontendOrigins) != 2 || cfg.FrontendOrigins[0] != "https://app.example.com" {
		t.Fatalf("unexpected origins %v", cfg.FrontendOrigins)
	}
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_CHAT", "a lot")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for malformed rate limit")
	}
}

func TestParseRateLimit(t *testing.T) {
	tests := map[string]struct {
		input    string
		requests int
		interval time.Duration
		wantErr  bool
	}{
		"per second":      {input: "10/s", requests: 10, interval: time.Second},
		"per minute":      {input: "20/min", requests: 20, interval: time.Minute},
		"per hour":        {input: "100/hour", requests: 100, interval: time.Hour},
		"spaces":          {input: " 3 / min ", requests: 3, interval: time.Minute},
		"bad unit":        {input: "5/day", wantErr: true},
		"bad count":       {input: "x/min", wantErr: true},
		"zero count":      {input: "0/min", wantErr: true},
		"missing divider": {input: "25", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rl, err := parseRateLimit(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rl.Requests != tt.requests || rl.Interval != tt.interval {
				t.Fatalf("expected %d/%v, got %+v", tt.requests, tt.interval, rl)
			}
		})
	}
}
