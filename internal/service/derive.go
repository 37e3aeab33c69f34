package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Domain filler words removed before a question's tokens are treated as
// search keywords.
var stopWords = map[string]bool{
	"restaurant":      true,
	"restaurants":     true,
	"food":            true,
	"foods":           true,
	"place":           true,
	"places":          true,
	"spot":            true,
	"spots":           true,
	"eat":             true,
	"eats":            true,
	"eating":          true,
	"dining":          true,
	"dinner":          true,
	"lunch":           true,
	"breakfast":       true,
	"cuisine":         true,
	"cuisines":        true,
	"recommendation":  true,
	"recommendations": true,
	"find":            true,
	"finding":         true,
	"looking":         true,
	"nearby":          true,
	"around":          true,
	"good":            true,
	"best":            true,
	"please":          true,
	"thanks":          true,
	"another":         true,
	"option":          true,
	"options":         true,
}

// priceWordGroups maps colloquial price words to price-range selections.
// Order matters: the first word contained in the question wins.
var priceWordGroups = []struct {
	word   string
	ranges []string
}{
	{"cheap", []string{"$"}},
	{"budget", []string{"$"}},
	{"affordable", []string{"$", "$$"}},
	{"casual", []string{"$", "$$"}},
	{"moderate", []string{"$$"}},
	{"mid", []string{"$$"}},
	{"pricey", []string{"$$$", "$$$$"}},
	{"expensive", []string{"$$$", "$$$$"}},
	{"fancy", []string{"$$$", "$$$$"}},
	{"upscale", []string{"$$$", "$$$$"}},
	{"luxury", []string{"$$$", "$$$$"}},
}

var (
	nonAlnumExpr    = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceExpr  = regexp.MustCompile(`\s+`)
	dollarTokenExpr = regexp.MustCompile(`\${1,4}`)
	priceValueExpr  = regexp.MustCompile(`(?i)(?:under|below|less than)\s*\$?\s*(\d+)`)
	distanceExpr    = regexp.MustCompile(`(?i)(?:within|under|less than)\s*(\d+)\s*(?:miles?|mi)\b`)
	ratingExpr      = regexp.MustCompile(`(?i)(\d(?:\.\d)?)\s*(?:stars?|rating)`)
	nearMeExpr      = regexp.MustCompile(`\bnear me\b|\bnearby\b`)
	highRatedExpr   = regexp.MustCompile(`\bhighly rated\b|\bhigher rated\b|\bfive star\b`)
	openNowExpr     = regexp.MustCompile(`\bopen now\b|\bcurrently open\b`)
)

// DerivedFilters is the outcome of parsing a free-text question.
type DerivedFilters struct {
	Filters    FilterOptions
	Keywords   []string
	SearchTerm string
}

// DeriveFilters extracts a filter update from a free-text question, starting
// from a clone of the previous state. It is a deterministic keyword/regex
// heuristic; conflicting phrases resolve through the fixed step order below,
// never through an error.
func DeriveFilters(question string, previous FilterOptions) DerivedFilters {
	normalized := strings.ToLower(question)
	tokens := tokenizeQuestion(question)
	semanticTokens := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !stopWords[token] {
			semanticTokens = append(semanticTokens, token)
		}
	}
	filters := previous.Clone()

	// Cuisine mentions replace the selection wholesale.
	mentioned := make([]string, 0, 2)
	for _, cuisine := range KnownCuisines {
		if strings.Contains(normalized, strings.ToLower(cuisine)) {
			mentioned = append(mentioned, cuisine)
		}
	}
	if len(mentioned) > 0 {
		filters.Cuisines = dedupeStrings(mentioned)
	}

	// Dietary mentions are unioned into the existing selection.
	dietaryMatches := make([]string, 0, 2)
	for _, option := range KnownDietaryOptions {
		if strings.Contains(normalized, strings.ToLower(option)) {
			dietaryMatches = append(dietaryMatches, option)
		}
	}
	if len(dietaryMatches) > 0 {
		filters.Dietary = dedupeStrings(append(filters.Dietary, dietaryMatches...))
	}

	// Price, in priority order: literal $ tokens, then price words, then a
	// numeric "under $N" threshold.
	if symbols := dollarTokenExpr.FindAllString(question, -1); len(symbols) > 0 {
		filters.PriceRanges = dedupeStrings(symbols)
	} else {
		for _, group := range priceWordGroups {
			if strings.Contains(normalized, group.word) {
				filters.PriceRanges = append([]string(nil), group.ranges...)
				break
			}
		}
		if match := priceValueExpr.FindStringSubmatch(question); match != nil {
			if value, err := strconv.Atoi(match[1]); err == nil {
				switch {
				case value <= 20:
					filters.PriceRanges = []string{"$"}
				case value <= 40:
					filters.PriceRanges = []string{"$", "$$"}
				case value <= 70:
					filters.PriceRanges = []string{"$$", "$$$"}
				default:
					filters.PriceRanges = []string{"$$$", "$$$$"}
				}
			}
		}
	}

	if match := distanceExpr.FindStringSubmatch(question); match != nil {
		if miles, err := strconv.Atoi(match[1]); err == nil {
			filters.SetDistanceMiles(math.Round(float64(miles)))
		}
	} else if nearMeExpr.MatchString(normalized) {
		filters.SetDistanceMiles(math.Min(filters.DistanceMiles, 5))
	}

	if match := ratingExpr.FindStringSubmatch(question); match != nil {
		if rating, err := strconv.ParseFloat(match[1], 64); err == nil {
			filters.SetMinRating(rating)
		}
	} else if highRatedExpr.MatchString(normalized) {
		filters.SetMinRating(math.Max(filters.MinRating, 4.5))
	}

	if openNowExpr.MatchString(normalized) {
		filters.OpenNow = true
	}

	// Keyword priority: cuisines and dietary tags first, then up to five
	// semantic tokens, capped at eight with first-occurrence order.
	keywords := make([]string, 0, 8)
	seen := make(map[string]bool)
	appendKeyword := func(value string) {
		if value == "" || seen[value] {
			return
		}
		seen[value] = true
		keywords = append(keywords, value)
	}
	for _, item := range filters.Cuisines {
		appendKeyword(strings.ToLower(item))
	}
	for _, item := range filters.Dietary {
		appendKeyword(strings.ToLower(item))
	}
	for i, token := range semanticTokens {
		if i >= 5 {
			break
		}
		appendKeyword(token)
	}
	if len(keywords) > 8 {
		keywords = keywords[:8]
	}

	searchTerm := strings.Join(semanticTokens, " ")
	if searchTerm == "" && len(filters.Cuisines) > 0 {
		searchTerm = filters.Cuisines[0]
	}
	if searchTerm == "" {
		searchTerm = question
	}

	return DerivedFilters{Filters: filters, Keywords: keywords, SearchTerm: searchTerm}
}

// tokenizeQuestion lower-cases, strips punctuation, collapses whitespace and
// keeps tokens of at least three characters.
func tokenizeQuestion(value string) []string {
	normalized := strings.ToLower(value)
	normalized = nonAlnumExpr.ReplaceAllString(normalized, " ")
	normalized = strings.TrimSpace(whitespaceExpr.ReplaceAllString(normalized, " "))
	if normalized == "" {
		return nil
	}
	tokens := make([]string, 0, 8)
	for _, token := range strings.Split(normalized, " ") {
		if len(token) >= 3 {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
