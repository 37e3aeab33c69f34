package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dinevalley/discovery-api/internal/entity"
)

// ErrFavoriteNotFound is returned when deleting a favorite that is not set.
var ErrFavoriteNotFound = errors.New("favorite not found")

// FavoritesRepository persists per-user restaurant snapshots.
type FavoritesRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]entity.Favorite, error)
	Upsert(ctx context.Context, userID uuid.UUID, snapshot entity.Restaurant) error
	Delete(ctx context.Context, userID uuid.UUID, restaurantID string) error
}

// VisitsRepository persists per-user visit history.
type VisitsRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]entity.Visit, error)
	Add(ctx context.Context, userID uuid.UUID, restaurantID, restaurantName string, visitedAt time.Time) (*entity.Visit, error)
}

// PGXFavoritesRepository implements FavoritesRepository with pgx; snapshots
// are stored as jsonb.
type PGXFavoritesRepository struct {
	pool DBPool
}

// NewPGXFavoritesRepository instantiates a favorites repository.
func NewPGXFavoritesRepository(pool DBPool) *PGXFavoritesRepository {
	return &PGXFavoritesRepository{pool: pool}
}

// List returns every favorite of the user.
func (r *PGXFavoritesRepository) List(ctx context.Context, userID uuid.UUID) ([]entity.Favorite, error) {
	rows, err := r.pool.Query(ctx, `SELECT restaurant_id, snapshot, created_at FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []entity.Favorite
	for rows.Next() {
		var (
			favorite entity.Favorite
			snapshot []byte
		)
		if err := rows.Scan(&favorite.RestaurantID, &snapshot, &favorite.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite row: %w", err)
		}
		if err := json.Unmarshal(snapshot, &favorite.Snapshot); err != nil {
			return nil, fmt.Errorf("decode favorite snapshot: %w", err)
		}
		favorite.UserID = userID
		favorites = append(favorites, favorite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	return favorites, nil
}

// Upsert stores or refreshes the snapshot for one restaurant.
func (r *PGXFavoritesRepository) Upsert(ctx context.Context, userID uuid.UUID, snapshot entity.Restaurant) error {
	encoded, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode favorite snapshot: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
        INSERT INTO favorites (user_id, restaurant_id, snapshot)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, restaurant_id) DO UPDATE SET snapshot = EXCLUDED.snapshot
    `, userID, snapshot.ID, encoded)
	if err != nil {
		return fmt.Errorf("upsert favorite: %w", err)
	}
	return nil
}

// Delete removes one favorite.
func (r *PGXFavoritesRepository) Delete(ctx context.Context, userID uuid.UUID, restaurantID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND restaurant_id = $2`, userID, restaurantID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// PGXVisitsRepository implements VisitsRepository with pgx.
type PGXVisitsRepository struct {
	pool DBPool
}

// NewPGXVisitsRepository instantiates a visits repository.
func NewPGXVisitsRepository(pool DBPool) *PGXVisitsRepository {
	return &PGXVisitsRepository{pool: pool}
}

// List returns the user's visit history, newest first.
func (r *PGXVisitsRepository) List(ctx context.Context, userID uuid.UUID) ([]entity.Visit, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, restaurant_id, restaurant_name, visited_at FROM visits WHERE user_id = $1 ORDER BY visited_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var visits []entity.Visit
	for rows.Next() {
		var visit entity.Visit
		if err := rows.Scan(&visit.ID, &visit.RestaurantID, &visit.RestaurantName, &visit.VisitedAt); err != nil {
			return nil, fmt.Errorf("scan visit row: %w", err)
		}
		visit.UserID = userID
		visits = append(visits, visit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visits: %w", err)
	}
	return visits, nil
}

// Add appends one visit row.
func (r *PGXVisitsRepository) Add(ctx context.Context, userID uuid.UUID, restaurantID, restaurantName string, visitedAt time.Time) (*entity.Visit, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO visits (user_id, restaurant_id, restaurant_name, visited_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, restaurant_id, restaurant_name, visited_at
    `, userID, restaurantID, restaurantName, visitedAt)

	var visit entity.Visit
	if err := row.Scan(&visit.ID, &visit.RestaurantID, &visit.RestaurantName, &visit.VisitedAt); err != nil {
		return nil, fmt.Errorf("insert visit: %w", err)
	}
	visit.UserID = userID
	return &visit, nil
}

var (
	_ FavoritesRepository = (*PGXFavoritesRepository)(nil)
	_ VisitsRepository    = (*PGXVisitsRepository)(nil)
)
