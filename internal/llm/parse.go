package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ComparisonInsight is one per-category verdict in a comparison answer.
type ComparisonInsight struct {
	Category  string `json:"category"`
	Winner    string `json:"winner"`
	Rationale string `json:"rationale"`
}

// ComparisonResult is the structured body of a comparison answer.
type ComparisonResult struct {
	Overview string              `json:"overview,omitempty"`
	Insights []ComparisonInsight `json:"insights"`
}

// StructuredAnswer is the structured body of a concierge answer.
type StructuredAnswer struct {
	Summary    string   `json:"summary,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
	Filters    []string `json:"filters,omitempty"`
	FollowUp   string   `json:"followUp,omitempty"`
}

var fencedJSONExpr = regexp.MustCompile("(?is)```json(.*?)```")

// extractJSONBlock returns the fenced ```json body when present, otherwise
// the trimmed answer itself.
func extractJSONBlock(answer string) string {
	trimmed := strings.TrimSpace(answer)
	if match := fencedJSONExpr.FindStringSubmatch(trimmed); match != nil {
		return strings.TrimSpace(match[1])
	}
	return trimmed
}

// ParseComparison tolerantly extracts a comparison result from a model
// answer. Malformed or useless JSON yields ok=false, never an error; the
// caller falls back to the local scorer hints.
func ParseComparison(answer string) (ComparisonResult, bool) {
	block := extractJSONBlock(answer)
	if block == "" {
		return ComparisonResult{}, false
	}

	var raw struct {
		Overview string `json:"overview"`
		Insights []struct {
			Category  string `json:"category"`
			Winner    string `json:"winner"`
			Rationale string `json:"rationale"`
		} `json:"insights"`
	}
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		return ComparisonResult{}, false
	}

	result := ComparisonResult{Overview: strings.TrimSpace(raw.Overview)}
	for _, entry := range raw.Insights {
		category := strings.TrimSpace(entry.Category)
		winner := strings.TrimSpace(entry.Winner)
		rationale := strings.TrimSpace(entry.Rationale)
		if category == "" || winner == "" || rationale == "" {
			continue
		}
		result.Insights = append(result.Insights, ComparisonInsight{
			Category:  category,
			Winner:    winner,
			Rationale: rationale,
		})
	}
	if len(result.Insights) == 0 && result.Overview == "" {
		return ComparisonResult{}, false
	}
	return result, true
}

// ParseStructured tolerantly extracts a structured concierge answer. String
// lists are trimmed and capped at three entries.
func ParseStructured(answer string) (StructuredAnswer, bool) {
	block := extractJSONBlock(answer)
	if block == "" {
		return StructuredAnswer{}, false
	}

	var raw struct {
		Summary    string   `json:"summary"`
		Highlights []string `json:"highlights"`
		Filters    []string `json:"filters"`
		FollowUp   string   `json:"followUp"`
	}
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		return StructuredAnswer{}, false
	}

	result := StructuredAnswer{
		Summary:    strings.TrimSpace(raw.Summary),
		Highlights: coerceList(raw.Highlights),
		Filters:    coerceList(raw.Filters),
		FollowUp:   strings.TrimSpace(raw.FollowUp),
	}
	if result.Summary == "" && result.FollowUp == "" && len(result.Highlights) == 0 && len(result.Filters) == 0 {
		return StructuredAnswer{}, false
	}
	return result, true
}

func coerceList(values []string) []string {
	out := make([]string, 0, 3)
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
		if len(out) == 3 {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
