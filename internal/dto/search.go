package dto

// FilterPayload mirrors the client-side filter state. Values are clamped by
// the service layer before use; the payload itself is untrusted input.
type FilterPayload struct {
	Cuisines      []string `json:"cuisines"`
	PriceRanges   []string `json:"priceRanges"`
	Dietary       []string `json:"dietary"`
	MinRating     float64  `json:"minRating"`
	OpenNow       bool     `json:"openNow"`
	DistanceMiles float64  `json:"distanceMiles"`
}

// AssistantFiltersRequest asks the server to derive filters from a free-text
// question, starting from the caller's current filter state.
type AssistantFiltersRequest struct {
	Question string         `json:"question"`
	Filters  *FilterPayload `json:"filters,omitempty"`
}

// AssistantFiltersResponse returns the derived filter state along with the
// grounding keywords and the condensed search term.
type AssistantFiltersResponse struct {
	Filters    FilterPayload `json:"filters"`
	Keywords   []string      `json:"keywords"`
	SearchTerm string        `json:"searchTerm"`
}

// AssistantSearchRequest runs a filtered, aggregated search server-side.
// Pages bounds how many provider pages are fetched (first page included).
type AssistantSearchRequest struct {
	Search  string         `json:"search"`
	Filters *FilterPayload `json:"filters,omitempty"`
	Pages   int            `json:"pages,omitempty"`
}
