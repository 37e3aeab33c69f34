package service

import "testing"

func TestFormatPhone(t *testing.T) {
	tests := map[string]struct {
		raw      string
		region   string
		expected string
	}{
		"empty":                {"", "US", ""},
		"whitespace only":      {"   ", "US", ""},
		"valid us number":      {"(415) 555-2671", "US", "+1 415-555-2671"},
		"already e164":         {"+14155552671", "", "+1 415-555-2671"},
		"region default":       {"415-555-2671", "", "+1 415-555-2671"},
		"garbage passthrough":  {"call us!", "US", "call us!"},
		"too short passthrough": {"12345", "US", "12345"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := FormatPhone(tt.raw, tt.region); got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSanitizeWebsite(t *testing.T) {
	tests := map[string]struct {
		raw      string
		expected string
	}{
		"empty":                 {"", ""},
		"bare domain":           {"example.com", "https://example.com"},
		"keeps http":            {"http://example.com/menu", "http://example.com/menu"},
		"lowercases host":       {"https://EXAMPLE.com/Menu", "https://example.com/Menu"},
		"strips tracking":       {"https://example.com/?utm_source=maps&table=4", "https://example.com/?table=4"},
		"strips fragment":       {"https://example.com/menu#hours", "https://example.com/menu"},
		"keeps port":            {"https://example.com:8443/", "https://example.com:8443/"},
		"rejects other scheme":  {"ftp://example.com", ""},
		"rejects unparseable":   {"https://", ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := SanitizeWebsite(tt.raw); got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
