package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dinevalley/discovery-api/internal/entity"
	"github.com/dinevalley/discovery-api/internal/repository"
)

// FavoritesService manages per-user restaurant snapshots and visit history.
// The snapshots double as a local cache: when the provider later omits
// fields (dietary tags in particular), the stored copy fills them back in.
type FavoritesService struct {
	favorites repository.FavoritesRepository
	visits    repository.VisitsRepository
}

// NewFavoritesService constructs a FavoritesService.
func NewFavoritesService(favorites repository.FavoritesRepository, visits repository.VisitsRepository) *FavoritesService {
	return &FavoritesService{favorites: favorites, visits: visits}
}

// List returns the user's favorites, newest first.
func (s *FavoritesService) List(ctx context.Context, userID uuid.UUID) ([]entity.Favorite, error) {
	favorites, err := s.favorites.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(favorites, func(i, j int) bool {
		return favorites[i].CreatedAt.After(favorites[j].CreatedAt)
	})
	return favorites, nil
}

// Save pins a restaurant snapshot for the user.
func (s *FavoritesService) Save(ctx context.Context, userID uuid.UUID, snapshot entity.Restaurant) error {
	if snapshot.ID == "" {
		return errors.New("restaurant id is required")
	}
	snapshot.IsFavorite = true
	return s.favorites.Upsert(ctx, userID, snapshot)
}

// Remove unpins a restaurant.
func (s *FavoritesService) Remove(ctx context.Context, userID uuid.UUID, restaurantID string) error {
	if restaurantID == "" {
		return errors.New("restaurant id is required")
	}
	return s.favorites.Delete(ctx, userID, restaurantID)
}

// Annotate marks favorites in a result list and merges stored snapshot
// fields into entries the provider returned incomplete. The input slice is
// not mutated; annotated copies are returned.
func (s *FavoritesService) Annotate(ctx context.Context, userID uuid.UUID, results []entity.Restaurant) ([]entity.Restaurant, error) {
	favorites, err := s.favorites.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Restaurant, len(favorites))
	for _, f := range favorites {
		byID[f.RestaurantID] = f.Snapshot
	}

	annotated := make([]entity.Restaurant, 0, len(results))
	for _, r := range results {
		if snapshot, ok := byID[r.ID]; ok {
			r = r.MergeSnapshot(snapshot)
			r.IsFavorite = true
		}
		annotated = append(annotated, r)
	}
	return annotated, nil
}

// History returns the user's visit history, newest first.
func (s *FavoritesService) History(ctx context.Context, userID uuid.UUID) ([]entity.Visit, error) {
	return s.visits.List(ctx, userID)
}

// RecordVisit appends one visit to the user's history. A zero visitedAt
// means "now".
func (s *FavoritesService) RecordVisit(ctx context.Context, userID uuid.UUID, restaurantID, restaurantName string, visitedAt time.Time) (*entity.Visit, error) {
	if restaurantID == "" || restaurantName == "" {
		return nil, errors.New("restaurant id and name are required")
	}
	if visitedAt.IsZero() {
		visitedAt = time.Now().UTC()
	}
	return s.visits.Add(ctx, userID, restaurantID, restaurantName, visitedAt)
}
