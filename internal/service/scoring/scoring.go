package scoring

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Comparison categories, order-significant.
const (
	CategoryBestValue    = "Best value"
	CategoryDietary      = "Most options for dietary needs"
	CategoryGroups       = "Best for groups"
	CategoryQuickService = "Best for quick service"
	CategoryPopular      = "Most popular dishes"
)

// Categories lists every comparison category in presentation order.
var Categories = []string{
	CategoryBestValue,
	CategoryDietary,
	CategoryGroups,
	CategoryQuickService,
	CategoryPopular,
}

const (
	// tieWindow is the score gap under which the top two candidates are
	// reported as a split decision.
	tieWindow = 0.05
	// defaultPriceLevel substitutes a missing or zero price level in the
	// value calculation.
	defaultPriceLevel = 2.5

	minCandidates = 2
	maxCandidates = 5
)

// ErrCandidateCount is returned when the comparison set is not 2-5 entries.
var ErrCandidateCount = errors.New("comparison requires between 2 and 5 candidates")

var groupFriendlyTypes = []string{"bar", "restaurant", "cafe", "meal_takeaway"}

var quickServiceTypes = []string{"meal_takeaway", "meal_delivery", "meal_takeout", "fast_food"}

// Candidate carries the signals the scorer reads for one restaurant.
type Candidate struct {
	ID          string
	Name        string
	Rating      *float64
	ReviewCount int
	PriceLevel  *int
	Types       []string
	Dietary     []string
}

// Hint is the winner-and-evidence outcome for one category.
type Hint struct {
	Category string `json:"category"`
	Winner   string `json:"winner"`
	Evidence string `json:"evidence"`
	Tie      bool   `json:"tie"`
}

// Result reports one hint per category plus a one-line summary.
type Result struct {
	Hints   []Hint `json:"hints"`
	Summary string `json:"summary"`
}

// Hint returns the hint for the given category, if present.
func (r Result) Hint(category string) (Hint, bool) {
	for _, h := range r.Hints {
		if h.Category == category {
			return h, true
		}
	}
	return Hint{}, false
}

// Compare scores every candidate against the fixed category set and picks a
// winner (or a split decision) per category. It is pure and deterministic;
// ties are evaluated on the clamped, defaulted scores so missing ratings or
// price levels never poison a comparison.
func Compare(candidates []Candidate) (Result, error) {
	if len(candidates) < minCandidates || len(candidates) > maxCandidates {
		return Result{}, ErrCandidateCount
	}

	hints := make([]Hint, 0, len(Categories))
	for _, category := range Categories {
		hints = append(hints, pickWinner(category, candidates))
	}

	summaryParts := make([]string, 0, len(hints))
	for _, h := range hints {
		summaryParts = append(summaryParts, fmt.Sprintf("%s: %s", h.Category, h.Winner))
	}

	return Result{Hints: hints, Summary: strings.Join(summaryParts, " · ")}, nil
}

func pickWinner(category string, candidates []Candidate) Hint {
	type scored struct {
		candidate Candidate
		score     float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, scored{candidate: c, score: categoryScore(category, c)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	top, second := ranked[0], ranked[1]
	if top.score-second.score < tieWindow {
		return Hint{
			Category: category,
			Winner:   "Split decision",
			Evidence: fmt.Sprintf("Split decision between %s and %s", top.candidate.Name, second.candidate.Name),
			Tie:      true,
		}
	}

	return Hint{
		Category: category,
		Winner:   top.candidate.Name,
		Evidence: evidence(category, top.candidate, top.score),
	}
}

func categoryScore(category string, c Candidate) float64 {
	rating := ratingOf(c)
	switch category {
	case CategoryBestValue:
		return rating / effectivePrice(c)
	case CategoryDietary:
		return float64(len(c.Dietary)) + rating/10
	case CategoryGroups:
		score := rating
		if hasAnyType(c, groupFriendlyTypes) {
			score++
		}
		return score
	case CategoryQuickService:
		score := rating / 2
		if hasAnyType(c, quickServiceTypes) {
			score += 1.5
		}
		return score
	case CategoryPopular:
		return float64(c.ReviewCount) + rating
	default:
		return 0
	}
}

func evidence(category string, c Candidate, score float64) string {
	rating := ratingOf(c)
	switch category {
	case CategoryBestValue:
		return fmt.Sprintf("Value score %.2f (rating %.1f, price %s)", score, rating, priceSymbol(c))
	case CategoryDietary:
		return fmt.Sprintf("%d dietary tags covered (rating %.1f)", len(c.Dietary), rating)
	case CategoryGroups:
		if hasAnyType(c, groupFriendlyTypes) {
			return fmt.Sprintf("Group-friendly venue rated %.1f", rating)
		}
		return fmt.Sprintf("Rated %.1f", rating)
	case CategoryQuickService:
		if hasAnyType(c, quickServiceTypes) {
			return fmt.Sprintf("Takeaway or delivery available, rated %.1f", rating)
		}
		return fmt.Sprintf("Rated %.1f", rating)
	case CategoryPopular:
		return fmt.Sprintf("%d reviews at %.1f stars", c.ReviewCount, rating)
	default:
		return ""
	}
}

func ratingOf(c Candidate) float64 {
	if c.Rating == nil {
		return 0
	}
	return *c.Rating
}

func effectivePrice(c Candidate) float64 {
	if c.PriceLevel != nil && *c.PriceLevel > 0 {
		return float64(*c.PriceLevel)
	}
	return defaultPriceLevel
}

func priceSymbol(c Candidate) string {
	if c.PriceLevel == nil || *c.PriceLevel <= 0 {
		return "unknown"
	}
	level := *c.PriceLevel
	if level > 4 {
		level = 4
	}
	return strings.Repeat("$", level)
}

func hasAnyType(c Candidate, wanted []string) bool {
	for _, t := range c.Types {
		for _, w := range wanted {
			if strings.EqualFold(t, w) {
				return true
			}
		}
	}
	return false
}
