package entity

// Restaurant is the summary record built from one Places Provider search hit.
// Values are never mutated in place; merging produces a fresh copy.
type Restaurant struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	ImageURL       string   `json:"imageUrl"`
	Rating         *float64 `json:"rating"`
	ReviewCount    int      `json:"reviewCount"`
	Address        string   `json:"address"`
	PriceLevel     *int     `json:"priceLevel"`
	BusinessStatus string   `json:"businessStatus"`
	Types          []string `json:"types"`
	Dietary        []string `json:"dietary,omitempty"`
	IsFavorite     bool     `json:"isFavorite"`

	// PhotoReference is the provider photo handle before it is rewritten
	// into a proxy URL. Not part of the API payload.
	PhotoReference string `json:"-"`
}

// RatingOrZero returns the rating with the nil case defaulted to 0.
func (r Restaurant) RatingOrZero() float64 {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

// MergeSnapshot fills fields the provider omitted from a previously cached
// copy (for example a favorited snapshot) and returns the merged value. The
// receiver and the snapshot are left untouched.
func (r Restaurant) MergeSnapshot(snapshot Restaurant) Restaurant {
	merged := r
	if merged.Name == "" {
		merged.Name = snapshot.Name
	}
	if merged.ImageURL == "" {
		merged.ImageURL = snapshot.ImageURL
	}
	if merged.Rating == nil {
		merged.Rating = snapshot.Rating
	}
	if merged.ReviewCount == 0 {
		merged.ReviewCount = snapshot.ReviewCount
	}
	if merged.Address == "" {
		merged.Address = snapshot.Address
	}
	if merged.PriceLevel == nil {
		merged.PriceLevel = snapshot.PriceLevel
	}
	if merged.BusinessStatus == "" {
		merged.BusinessStatus = snapshot.BusinessStatus
	}
	if len(merged.Types) == 0 && len(snapshot.Types) > 0 {
		merged.Types = append([]string(nil), snapshot.Types...)
	}
	if len(merged.Dietary) == 0 && len(snapshot.Dietary) > 0 {
		merged.Dietary = append([]string(nil), snapshot.Dietary...)
	}
	merged.IsFavorite = r.IsFavorite || snapshot.IsFavorite
	return merged
}
