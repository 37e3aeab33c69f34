package entity

// Coordinates is a WGS84 point for the details map view.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Review is a single provider review attached to a place.
type Review struct {
	Author       string  `json:"author"`
	Rating       float64 `json:"rating"`
	Text         string  `json:"text"`
	RelativeTime string  `json:"relativeTime"`
}

// ReviewSummary aggregates the review volume and average for display.
type ReviewSummary struct {
	Total   int      `json:"total"`
	Average *float64 `json:"average"`
}

// PlaceDetails is the full record returned for a single place.
type PlaceDetails struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Rating        *float64      `json:"rating"`
	Address       string        `json:"address"`
	Phone         string        `json:"phone"`
	Website       string        `json:"website"`
	OpeningHours  []string      `json:"openingHours"`
	Reviews       []Review      `json:"reviews"`
	ImageURL      string        `json:"imageUrl"`
	PhotoURLs     []string      `json:"photoUrls"`
	GoogleMapsURL string        `json:"googleMapsUrl,omitempty"`
	MapImageURL   string        `json:"mapImageUrl,omitempty"`
	Coordinates   *Coordinates  `json:"coordinates"`
	Types         []string      `json:"types"`
	ReviewSummary ReviewSummary `json:"reviewSummary"`

	// PhotoReferences are the raw provider photo handles, rewritten into
	// proxy URLs by the handler layer.
	PhotoReferences []string `json:"-"`
}
