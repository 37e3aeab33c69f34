package service

import (
	"testing"

	"github.com/dinevalley/discovery-api/internal/entity"
)

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func TestBuildPlacesQuery(t *testing.T) {
	t.Run("empty filters default to restaurant keyword", func(t *testing.T) {
		query := BuildPlacesQuery(DefaultFilterOptions(), "")
		if query.Keyword != "restaurant" {
			t.Fatalf("expected restaurant keyword, got %q", query.Keyword)
		}
		if query.MinPrice != nil || query.MaxPrice != nil {
			t.Fatalf("expected no price bounds")
		}
		// 10 miles at 1609.34 m/mi.
		if query.RadiusMeters != 16093 {
			t.Fatalf("expected radius 16093, got %d", query.RadiusMeters)
		}
	})

	t.Run("free text and cuisines join the keyword", func(t *testing.T) {
		filters := DefaultFilterOptions()
		filters.Cuisines = []string{"Thai", "Vietnamese"}
		query := BuildPlacesQuery(filters, "noodle soup")
		if query.Keyword != "noodle soup Thai Vietnamese" {
			t.Fatalf("unexpected keyword %q", query.Keyword)
		}
	})

	t.Run("price ranges map to min and max levels", func(t *testing.T) {
		filters := DefaultFilterOptions()
		filters.PriceRanges = []string{"$$$", "$"}
		query := BuildPlacesQuery(filters, "")
		if query.MinPrice == nil || *query.MinPrice != 1 {
			t.Fatalf("expected min price 1, got %v", query.MinPrice)
		}
		if query.MaxPrice == nil || *query.MaxPrice != 3 {
			t.Fatalf("expected max price 3, got %v", query.MaxPrice)
		}
	})

	t.Run("unknown price ranges are skipped", func(t *testing.T) {
		filters := DefaultFilterOptions()
		filters.PriceRanges = []string{"$$$$$", "free"}
		query := BuildPlacesQuery(filters, "")
		if query.MinPrice != nil || query.MaxPrice != nil {
			t.Fatalf("expected unknown ranges to be ignored")
		}
	})

	t.Run("open now propagates", func(t *testing.T) {
		filters := DefaultFilterOptions()
		filters.OpenNow = true
		if !BuildPlacesQuery(filters, "").OpenNow {
			t.Fatalf("expected open now to propagate")
		}
	})

	t.Run("same input yields same query", func(t *testing.T) {
		filters := DefaultFilterOptions()
		filters.Cuisines = []string{"Greek"}
		filters.PriceRanges = []string{"$$"}
		a := BuildPlacesQuery(filters, "gyros")
		b := BuildPlacesQuery(filters, "gyros")
		if a.Keyword != b.Keyword || a.RadiusMeters != b.RadiusMeters || *a.MinPrice != *b.MinPrice {
			t.Fatalf("expected identical queries, got %+v vs %+v", a, b)
		}
	})
}

func TestApplyPostFilters(t *testing.T) {
	results := []entity.Restaurant{
		{ID: "a", Name: "Green Leaf", Rating: floatPtr(4.6), Dietary: []string{"Vegan", "Gluten-Free"}},
		{ID: "b", Name: "Corner Grill", Rating: floatPtr(4.8)},
		{ID: "c", Name: "Pasta Nook", Rating: floatPtr(3.9), Dietary: []string{"Vegetarian"}},
		{ID: "d", Name: "No Rating", Dietary: []string{"Vegan"}},
	}

	t.Run("no facets keep everything", func(t *testing.T) {
		filtered := ApplyPostFilters(results, DefaultFilterOptions())
		if len(filtered) != len(results) {
			t.Fatalf("expected all results, got %d", len(filtered))
		}
	})

	t.Run("min rating drops low and unrated entries", func(t *testing.T) {
		filters := DefaultFilterOptions()
		filters.MinRating = 4.5
		filtered := ApplyPostFilters(results, filters)
		if len(filtered) != 2 || filtered[0].ID != "a" || filtered[1].ID != "b" {
			t.Fatalf("unexpected survivors: %+v", filtered)
		}
	})

	t.Run("dietary selection is conjunctive and unknown never matches", func(t *testing.T) {
		filters := DefaultFilterOptions()
		filters.Dietary = []string{"Vegan"}
		filtered := ApplyPostFilters(results, filters)
		for _, r := range filtered {
			if r.ID == "b" {
				t.Fatalf("entry without dietary data must not match")
			}
		}
		if len(filtered) != 2 {
			t.Fatalf("expected two vegan entries, got %+v", filtered)
		}
	})

	t.Run("dietary matching folds case and underscores", func(t *testing.T) {
		filters := DefaultFilterOptions()
		filters.Dietary = []string{"Gluten-Free"}
		input := []entity.Restaurant{{ID: "x", Dietary: []string{"gluten-free"}}}
		if len(ApplyPostFilters(input, filters)) != 1 {
			t.Fatalf("expected case-insensitive dietary match")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		filters := DefaultFilterOptions()
		filters.MinRating = 4
		filters.Dietary = []string{"Vegan"}
		once := ApplyPostFilters(results, filters)
		twice := ApplyPostFilters(once, filters)
		if len(once) != len(twice) {
			t.Fatalf("expected idempotent filtering, got %d then %d", len(once), len(twice))
		}
	})
}
