package service

import (
	"net/url"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

const (
	trackingPrefix     = "utm_"
	DefaultPhoneRegion = "US"
)

// FormatPhone normalizes a provider phone number into international
// formatting. Unparseable input is returned trimmed rather than dropped;
// the details page prefers a raw phone over none.
func FormatPhone(raw, region string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if region == "" {
		region = DefaultPhoneRegion
	}
	parsed, err := phonenumbers.Parse(trimmed, region)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return trimmed
	}
	return phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL)
}

// SanitizeWebsite canonicalizes a provider website URL: https scheme added
// when missing, host lower-cased and punycoded, tracking query parameters
// and fragments stripped. Returns "" when the value cannot be parsed as a
// usable URL.
func SanitizeWebsite(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return ""
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}

	host := strings.ToLower(parsed.Hostname())
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return ""
	}
	if port := parsed.Port(); port != "" {
		ascii += ":" + port
	}
	parsed.Host = ascii

	query := parsed.Query()
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
		}
	}
	parsed.RawQuery = query.Encode()
	parsed.Fragment = ""

	return parsed.String()
}
