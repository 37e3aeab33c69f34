package service

import (
	"reflect"
	"testing"
)

func TestDeriveFilters_PrimaryExample(t *testing.T) {
	derived := DeriveFilters("vegan tacos under $20 near me", DefaultFilterOptions())

	if !reflect.DeepEqual(derived.Filters.Dietary, []string{"Vegan"}) {
		t.Fatalf("expected Vegan dietary match, got %v", derived.Filters.Dietary)
	}
	// The literal "$" in "$20" wins over the numeric threshold.
	if !reflect.DeepEqual(derived.Filters.PriceRanges, []string{"$"}) {
		t.Fatalf("expected single-dollar price range, got %v", derived.Filters.PriceRanges)
	}
	if derived.Filters.DistanceMiles != 5 {
		t.Fatalf("expected near-me distance of 5, got %v", derived.Filters.DistanceMiles)
	}
	if derived.SearchTerm == "" {
		t.Fatalf("expected a non-empty search term")
	}
}

func TestDeriveFilters_CuisinesReplaceSelection(t *testing.T) {
	previous := DefaultFilterOptions()
	previous.Cuisines = []string{"Italian", "French"}

	derived := DeriveFilters("actually show me thai or korean food", previous)
	if !reflect.DeepEqual(derived.Filters.Cuisines, []string{"Thai", "Korean"}) {
		t.Fatalf("expected cuisines replaced, got %v", derived.Filters.Cuisines)
	}

	// No cuisine mention keeps the previous selection.
	derived = DeriveFilters("somewhere open now please", previous)
	if !reflect.DeepEqual(derived.Filters.Cuisines, []string{"Italian", "French"}) {
		t.Fatalf("expected cuisines untouched, got %v", derived.Filters.Cuisines)
	}
}

func TestDeriveFilters_DietaryIsUnioned(t *testing.T) {
	previous := DefaultFilterOptions()
	previous.Dietary = []string{"Vegetarian"}

	derived := DeriveFilters("needs gluten-free options", previous)
	if !reflect.DeepEqual(derived.Filters.Dietary, []string{"Vegetarian", "Gluten-Free"}) {
		t.Fatalf("expected dietary union, got %v", derived.Filters.Dietary)
	}

	// A repeated mention does not duplicate the tag.
	derived = DeriveFilters("vegetarian vegetarian", previous)
	if !reflect.DeepEqual(derived.Filters.Dietary, []string{"Vegetarian"}) {
		t.Fatalf("expected deduped dietary, got %v", derived.Filters.Dietary)
	}
}

func TestDeriveFilters_PriceResolution(t *testing.T) {
	tests := map[string]struct {
		question string
		expected []string
	}{
		"dollar tokens":           {"looking for $$ spots", []string{"$$"}},
		"mixed tokens deduped":    {"$ or $$ works", []string{"$", "$$"}},
		"price word cheap":        {"cheap eats tonight", []string{"$"}},
		"price word upscale":      {"somewhere upscale for a date", []string{"$$$", "$$$$"}},
		"first word wins":         {"cheap but fancy", []string{"$"}},
		"threshold low":           {"dinner under 20 dollars", []string{"$"}},
		"threshold mid":           {"meals below 35", []string{"$", "$$"}},
		"threshold upper mid":     {"less than 60 per person", []string{"$$", "$$$"}},
		"threshold high":          {"under 100 a head", []string{"$$$", "$$$$"}},
		"word then threshold": {"affordable, under 60", []string{"$$", "$$$"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			derived := DeriveFilters(tt.question, DefaultFilterOptions())
			if !reflect.DeepEqual(derived.Filters.PriceRanges, tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, derived.Filters.PriceRanges)
			}
		})
	}

	t.Run("no price mention leaves selection empty", func(t *testing.T) {
		derived := DeriveFilters("italian please", DefaultFilterOptions())
		if len(derived.Filters.PriceRanges) != 0 {
			t.Fatalf("expected no price ranges, got %v", derived.Filters.PriceRanges)
		}
	})
}

func TestDeriveFilters_DistanceAndRating(t *testing.T) {
	t.Run("explicit distance", func(t *testing.T) {
		derived := DeriveFilters("pizza within 3 miles", DefaultFilterOptions())
		if derived.Filters.DistanceMiles != 3 {
			t.Fatalf("expected 3 miles, got %v", derived.Filters.DistanceMiles)
		}
	})

	t.Run("distance is clamped", func(t *testing.T) {
		derived := DeriveFilters("anything within 90 miles", DefaultFilterOptions())
		if derived.Filters.DistanceMiles != MaxDistanceMiles {
			t.Fatalf("expected clamp to %v, got %v", MaxDistanceMiles, derived.Filters.DistanceMiles)
		}
	})

	t.Run("near me only tightens", func(t *testing.T) {
		previous := DefaultFilterOptions()
		previous.DistanceMiles = 3
		derived := DeriveFilters("sushi near me", previous)
		if derived.Filters.DistanceMiles != 3 {
			t.Fatalf("expected distance to stay at 3, got %v", derived.Filters.DistanceMiles)
		}
	})

	t.Run("explicit rating", func(t *testing.T) {
		derived := DeriveFilters("at least 4.5 stars", DefaultFilterOptions())
		if derived.Filters.MinRating != 4.5 {
			t.Fatalf("expected 4.5, got %v", derived.Filters.MinRating)
		}
	})

	t.Run("highly rated only raises", func(t *testing.T) {
		previous := DefaultFilterOptions()
		previous.MinRating = 4.8
		derived := DeriveFilters("something highly rated", previous)
		if derived.Filters.MinRating != 4.8 {
			t.Fatalf("expected rating to stay at 4.8, got %v", derived.Filters.MinRating)
		}

		derived = DeriveFilters("something highly rated", DefaultFilterOptions())
		if derived.Filters.MinRating != 4.5 {
			t.Fatalf("expected rating raised to 4.5, got %v", derived.Filters.MinRating)
		}
	})
}

func TestDeriveFilters_OpenNow(t *testing.T) {
	derived := DeriveFilters("what is currently open", DefaultFilterOptions())
	if !derived.Filters.OpenNow {
		t.Fatalf("expected open now set")
	}

	// The flag is sticky: no mention keeps the previous value.
	previous := DefaultFilterOptions()
	previous.OpenNow = true
	derived = DeriveFilters("italian food", previous)
	if !derived.Filters.OpenNow {
		t.Fatalf("expected open now preserved")
	}
}

func TestDeriveFilters_KeywordsAndSearchTerm(t *testing.T) {
	derived := DeriveFilters("best italian restaurants nearby", DefaultFilterOptions())

	if len(derived.Keywords) == 0 || derived.Keywords[0] != "italian" {
		t.Fatalf("expected cuisine first in keywords, got %v", derived.Keywords)
	}
	for _, kw := range derived.Keywords {
		if kw == "best" || kw == "nearby" || kw == "restaurants" {
			t.Fatalf("stop word leaked into keywords: %v", derived.Keywords)
		}
	}
	if derived.SearchTerm != "italian" {
		t.Fatalf("expected search term from semantic tokens, got %q", derived.SearchTerm)
	}
}

func TestDeriveFilters_SearchTermFallbacks(t *testing.T) {
	t.Run("cuisine fallback", func(t *testing.T) {
		previous := DefaultFilterOptions()
		previous.Cuisines = []string{"Greek"}
		derived := DeriveFilters("best spot around", previous)
		if derived.SearchTerm != "Greek" {
			t.Fatalf("expected cuisine fallback, got %q", derived.SearchTerm)
		}
	})

	t.Run("question fallback", func(t *testing.T) {
		derived := DeriveFilters("best spot around", DefaultFilterOptions())
		if derived.SearchTerm != "best spot around" {
			t.Fatalf("expected raw question fallback, got %q", derived.SearchTerm)
		}
	})
}

func TestDeriveFilters_PreviousStateUntouched(t *testing.T) {
	previous := DefaultFilterOptions()
	previous.Cuisines = []string{"Italian"}
	previous.Dietary = []string{"Vegetarian"}

	_ = DeriveFilters("vegan thai under $20 near me open now", previous)

	if previous.Cuisines[0] != "Italian" || len(previous.Dietary) != 1 || previous.DistanceMiles != DefaultDistanceMiles {
		t.Fatalf("derivation mutated the previous state: %+v", previous)
	}
}

func TestTokenizeQuestion(t *testing.T) {
	tokens := tokenizeQuestion("Hey!  Find me GOOD pizza, fast... ok?")
	expected := []string{"hey", "find", "good", "pizza", "fast"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Fatalf("expected %v, got %v", expected, tokens)
	}

	if len(tokenizeQuestion("a b c !!")) != 0 {
		t.Fatalf("expected no usable tokens")
	}
	if tokenizeQuestion("   ") != nil {
		t.Fatalf("expected nil for blank input")
	}
}
