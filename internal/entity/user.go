package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a diner account used to sync favorites and visit history.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Favorite stores a restaurant snapshot pinned by a user. The snapshot keeps
// fields the provider may omit on later fetches (dietary tags in particular).
type Favorite struct {
	UserID       uuid.UUID  `json:"-"`
	RestaurantID string     `json:"restaurantId"`
	Snapshot     Restaurant `json:"snapshot"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Visit records one entry in a user's visit history.
type Visit struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"-"`
	RestaurantID   string    `json:"restaurantId"`
	RestaurantName string    `json:"restaurantName"`
	VisitedAt      time.Time `json:"visitedAt"`
}
