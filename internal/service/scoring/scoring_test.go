package scoring

import (
	"errors"
	"strings"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func TestCompare_CandidateCount(t *testing.T) {
	one := []Candidate{{Name: "Solo"}}
	if _, err := Compare(one); !errors.Is(err, ErrCandidateCount) {
		t.Fatalf("expected ErrCandidateCount for one candidate, got %v", err)
	}

	six := make([]Candidate, 6)
	if _, err := Compare(six); !errors.Is(err, ErrCandidateCount) {
		t.Fatalf("expected ErrCandidateCount for six candidates, got %v", err)
	}
}

func TestCompare_BestValue(t *testing.T) {
	a := Candidate{ID: "a", Name: "Cheap Gem", Rating: floatPtr(4.8), PriceLevel: intPtr(1)}
	b := Candidate{ID: "b", Name: "Splurge", Rating: floatPtr(4.0), PriceLevel: intPtr(4)}

	result, err := Compare([]Candidate{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hint, ok := result.Hint(CategoryBestValue)
	if !ok {
		t.Fatalf("expected a best value hint")
	}
	if hint.Tie {
		t.Fatalf("4.8 vs 1.0 value scores must not tie")
	}
	if hint.Winner != "Cheap Gem" {
		t.Fatalf("expected Cheap Gem to win, got %q", hint.Winner)
	}
	if !strings.Contains(hint.Evidence, "rating 4.8") || !strings.Contains(hint.Evidence, "price $") {
		t.Fatalf("unexpected evidence %q", hint.Evidence)
	}
}

func TestCompare_MissingSignalsUseDefaults(t *testing.T) {
	// No price level scores as 2.5; no rating as 0.
	a := Candidate{ID: "a", Name: "Unknown Price", Rating: floatPtr(5)}
	b := Candidate{ID: "b", Name: "Unrated", PriceLevel: intPtr(1)}

	result, err := Compare([]Candidate{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hint, _ := result.Hint(CategoryBestValue)
	// 5/2.5 = 2.0 beats 0/1 = 0.
	if hint.Winner != "Unknown Price" {
		t.Fatalf("expected defaulted price to still win, got %q", hint.Winner)
	}
	if !strings.Contains(hint.Evidence, "price unknown") {
		t.Fatalf("expected unknown price in evidence, got %q", hint.Evidence)
	}
}

func TestCompare_TieWindow(t *testing.T) {
	// Popularity scores 104.5 vs 104.46: inside the 0.05 window.
	a := Candidate{ID: "a", Name: "First", Rating: floatPtr(4.5), ReviewCount: 100}
	b := Candidate{ID: "b", Name: "Second", Rating: floatPtr(4.46), ReviewCount: 100}

	result, err := Compare([]Candidate{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hint, _ := result.Hint(CategoryPopular)
	if !hint.Tie {
		t.Fatalf("expected a tie inside the window, got %+v", hint)
	}
	if hint.Winner != "Split decision" {
		t.Fatalf("expected split decision winner, got %q", hint.Winner)
	}
	if !strings.Contains(hint.Evidence, "Split decision between First and Second") {
		t.Fatalf("unexpected tie evidence %q", hint.Evidence)
	}
}

func TestCompare_DietaryCount(t *testing.T) {
	a := Candidate{ID: "a", Name: "Flexible", Rating: floatPtr(4.0), Dietary: []string{"Vegan", "Gluten-Free", "Nut-Free"}}
	b := Candidate{ID: "b", Name: "Plain", Rating: floatPtr(4.9), Dietary: []string{"Vegetarian"}}

	result, err := Compare([]Candidate{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hint, _ := result.Hint(CategoryDietary)
	if hint.Winner != "Flexible" {
		t.Fatalf("expected tag count to outweigh rating, got %q", hint.Winner)
	}
	if !strings.Contains(hint.Evidence, "3 dietary tags") {
		t.Fatalf("unexpected evidence %q", hint.Evidence)
	}
}

func TestCompare_TypeBonuses(t *testing.T) {
	bar := Candidate{ID: "a", Name: "Taproom", Rating: floatPtr(4.0), Types: []string{"bar"}}
	office := Candidate{ID: "b", Name: "Desk Cafe", Rating: floatPtr(4.2)}

	result, err := Compare([]Candidate{bar, office})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	groups, _ := result.Hint(CategoryGroups)
	// 4.0 + 1 bonus beats 4.2.
	if groups.Winner != "Taproom" {
		t.Fatalf("expected group bonus to win, got %q", groups.Winner)
	}

	takeaway := Candidate{ID: "c", Name: "Grab N Go", Rating: floatPtr(3.8), Types: []string{"MEAL_TAKEAWAY"}}
	sitDown := Candidate{ID: "d", Name: "Linger", Rating: floatPtr(4.9)}

	result, err = Compare([]Candidate{takeaway, sitDown})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	quick, _ := result.Hint(CategoryQuickService)
	// 1.9 + 1.5 beats 2.45; type matching folds case.
	if quick.Winner != "Grab N Go" {
		t.Fatalf("expected quick-service bonus to win, got %q", quick.Winner)
	}
}

func TestCompare_SummaryCoversAllCategories(t *testing.T) {
	a := Candidate{ID: "a", Name: "Alpha", Rating: floatPtr(4.9), ReviewCount: 500, PriceLevel: intPtr(1), Types: []string{"restaurant"}, Dietary: []string{"Vegan"}}
	b := Candidate{ID: "b", Name: "Beta", Rating: floatPtr(3.0), ReviewCount: 10, PriceLevel: intPtr(4)}

	result, err := Compare([]Candidate{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Hints) != len(Categories) {
		t.Fatalf("expected %d hints, got %d", len(Categories), len(result.Hints))
	}
	for _, category := range Categories {
		if !strings.Contains(result.Summary, category) {
			t.Fatalf("summary missing category %q: %s", category, result.Summary)
		}
	}
}

func TestCompare_DeterministicOrderOnEqualScores(t *testing.T) {
	a := Candidate{ID: "a", Name: "Twin A", Rating: floatPtr(4.0), ReviewCount: 100}
	b := Candidate{ID: "b", Name: "Twin B", Rating: floatPtr(4.0), ReviewCount: 100}

	first, err := Compare([]Candidate{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Compare([]Candidate{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	popFirst, _ := first.Hint(CategoryPopular)
	popSecond, _ := second.Hint(CategoryPopular)
	if popFirst.Evidence != popSecond.Evidence {
		t.Fatalf("expected stable tie ordering, got %q vs %q", popFirst.Evidence, popSecond.Evidence)
	}
	if !popFirst.Tie {
		t.Fatalf("identical scores must report a tie")
	}
}
