package service

import (
	"math"
	"strings"

	"github.com/dinevalley/discovery-api/internal/entity"
	"github.com/dinevalley/discovery-api/internal/places"
)

const metersPerMile = 1609.34

// BuildPlacesQuery translates the filter state plus a free-text search into
// the upstream query. The translation is referentially transparent: the same
// inputs always produce the same query, which the paging controller relies
// on when re-issuing requests.
func BuildPlacesQuery(filters FilterOptions, freeText string) places.Query {
	parts := make([]string, 0, 2)
	if trimmed := strings.TrimSpace(freeText); trimmed != "" {
		parts = append(parts, trimmed)
	}
	if len(filters.Cuisines) > 0 {
		parts = append(parts, strings.Join(filters.Cuisines, " "))
	}
	keyword := strings.TrimSpace(strings.Join(parts, " "))
	if keyword == "" {
		keyword = "restaurant"
	}

	query := places.Query{
		Keyword:      keyword,
		OpenNow:      filters.OpenNow,
		RadiusMeters: int(math.Round(math.Max(1, filters.DistanceMiles) * metersPerMile)),
	}

	levels := make([]int, 0, len(filters.PriceRanges))
	for _, pr := range filters.PriceRanges {
		if level, ok := PriceRangeToLevel[pr]; ok {
			levels = append(levels, level)
		}
	}
	if len(levels) > 0 {
		minLevel, maxLevel := levels[0], levels[0]
		for _, level := range levels[1:] {
			if level < minLevel {
				minLevel = level
			}
			if level > maxLevel {
				maxLevel = level
			}
		}
		query.MinPrice = &minLevel
		query.MaxPrice = &maxLevel
	}

	return query
}

// ApplyPostFilters drops entities that fail the facets the provider cannot
// filter natively: minimum rating and dietary tags. Order is preserved and
// nothing is added, so the operation is idempotent.
//
// A non-empty dietary selection is conjunctive, and an entity without any
// dietary data never matches it. That is deliberate: unknown is not a match.
func ApplyPostFilters(results []entity.Restaurant, filters FilterOptions) []entity.Restaurant {
	wanted := make([]string, 0, len(filters.Dietary))
	for _, tag := range filters.Dietary {
		wanted = append(wanted, normalizeTag(tag))
	}

	filtered := make([]entity.Restaurant, 0, len(results))
	for _, r := range results {
		if r.RatingOrZero() < filters.MinRating {
			continue
		}
		if len(wanted) > 0 {
			if len(r.Dietary) == 0 {
				continue
			}
			have := make(map[string]bool, len(r.Dietary))
			for _, tag := range r.Dietary {
				have[normalizeTag(tag)] = true
			}
			matchesAll := true
			for _, tag := range wanted {
				if !have[tag] {
					matchesAll = false
					break
				}
			}
			if !matchesAll {
				continue
			}
		}
		filtered = append(filtered, r)
	}
	return filtered
}
