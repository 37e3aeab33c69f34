package service

import (
	"math"
	"strings"

	"github.com/dinevalley/discovery-api/internal/dto"
)

// KnownCuisines is the cuisine vocabulary matched by the search facets and
// the chat deriver.
var KnownCuisines = []string{
	"American",
	"Italian",
	"Mexican",
	"Chinese",
	"Japanese",
	"Indian",
	"Thai",
	"French",
	"Mediterranean",
	"Greek",
	"Spanish",
	"Korean",
	"Vietnamese",
	"Lebanese",
	"Turkish",
	"Brazilian",
	"Caribbean",
	"Ethiopian",
	"Moroccan",
	"BBQ",
	"Seafood",
	"Sushi",
	"Steakhouse",
}

// KnownDietaryOptions is the dietary-tag vocabulary.
var KnownDietaryOptions = []string{
	"Vegetarian",
	"Vegan",
	"Gluten-Free",
	"Dairy-Free",
	"Nut-Free",
	"Egg-Free",
	"Soy-Free",
	"Shellfish-Free",
}

// PriceRangeToLevel maps the "$".."$$$$" facets to provider price levels.
var PriceRangeToLevel = map[string]int{
	"$":    1,
	"$$":   2,
	"$$$":  3,
	"$$$$": 4,
}

const (
	MinDistanceMiles     = 1.0
	MaxDistanceMiles     = 30.0
	DefaultDistanceMiles = 10.0
)

// FilterOptions is the canonical in-memory filter state. DistanceMiles stays
// in [1,30] and MinRating in [0,5]; use the setters for untrusted values.
type FilterOptions struct {
	Cuisines      []string `json:"cuisines"`
	PriceRanges   []string `json:"priceRanges"`
	Dietary       []string `json:"dietary"`
	MinRating     float64  `json:"minRating"`
	OpenNow       bool     `json:"openNow"`
	DistanceMiles float64  `json:"distanceMiles"`
}

// DefaultFilterOptions returns the initial filter state.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		Cuisines:      []string{},
		PriceRanges:   []string{},
		Dietary:       []string{},
		MinRating:     0,
		OpenNow:       false,
		DistanceMiles: DefaultDistanceMiles,
	}
}

// Clone returns an independent copy. Mutating the clone's slices must never
// leak into the original; aliasing here was a recurring defect upstream.
func (f FilterOptions) Clone() FilterOptions {
	clone := f
	clone.Cuisines = append([]string(nil), f.Cuisines...)
	clone.PriceRanges = append([]string(nil), f.PriceRanges...)
	clone.Dietary = append([]string(nil), f.Dietary...)
	return clone
}

// SetDistanceMiles assigns the radius facet, clamped to [1,30].
func (f *FilterOptions) SetDistanceMiles(miles float64) {
	f.DistanceMiles = clampFloat(miles, MinDistanceMiles, MaxDistanceMiles)
}

// SetMinRating assigns the rating facet, clamped to [0,5].
func (f *FilterOptions) SetMinRating(rating float64) {
	f.MinRating = clampFloat(rating, 0, 5)
}

// FiltersFromPayload converts an untrusted payload into clamped options.
func FiltersFromPayload(payload *dto.FilterPayload) FilterOptions {
	filters := DefaultFilterOptions()
	if payload == nil {
		return filters
	}
	filters.Cuisines = append([]string{}, payload.Cuisines...)
	filters.PriceRanges = append([]string{}, payload.PriceRanges...)
	filters.Dietary = append([]string{}, payload.Dietary...)
	filters.OpenNow = payload.OpenNow
	filters.SetMinRating(payload.MinRating)
	if payload.DistanceMiles != 0 {
		filters.SetDistanceMiles(payload.DistanceMiles)
	}
	return filters
}

// Payload converts the options back into their wire representation.
func (f FilterOptions) Payload() dto.FilterPayload {
	return dto.FilterPayload{
		Cuisines:      append([]string{}, f.Cuisines...),
		PriceRanges:   append([]string{}, f.PriceRanges...),
		Dietary:       append([]string{}, f.Dietary...),
		MinRating:     f.MinRating,
		OpenNow:       f.OpenNow,
		DistanceMiles: f.DistanceMiles,
	}
}

// normalizeTag folds a dietary tag for matching: underscores become spaces
// and the result is lower-cased.
func normalizeTag(tag string) string {
	return strings.ToLower(strings.ReplaceAll(tag, "_", " "))
}

// clampFloat keeps value inside [min,max]; non-finite input collapses to the
// nearest bound rather than being rejected.
func clampFloat(value, min, max float64) float64 {
	if math.IsNaN(value) {
		return min
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
