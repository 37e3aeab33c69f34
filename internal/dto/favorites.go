package dto

// SaveVisitRequest records a restaurant visit in the user's history.
type SaveVisitRequest struct {
	RestaurantID   string `json:"restaurantId"`
	RestaurantName string `json:"restaurantName"`
	VisitedAt      string `json:"visitedAt,omitempty"`
}
