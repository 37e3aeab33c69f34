package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dinevalley/discovery-api/internal/dto"
	"github.com/dinevalley/discovery-api/internal/entity"
	"github.com/dinevalley/discovery-api/internal/middleware"
	"github.com/dinevalley/discovery-api/internal/repository"
	"github.com/dinevalley/discovery-api/internal/service"
)

// FavoritesHandler exposes the per-user favorites and visit history
// endpoints. All routes require an authenticated user.
type FavoritesHandler struct {
	favorites *service.FavoritesService
}

// NewFavoritesHandler constructs a FavoritesHandler.
func NewFavoritesHandler(favorites *service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

// List handles GET /me/favorites requests.
func (h *FavoritesHandler) List(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "invalid user")
	}

	favorites, err := h.favorites.List(c.Request().Context(), userID)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list favorites")
	}

	return Success(c, http.StatusOK, "favorites retrieved", favorites)
}

// Save handles PUT /me/favorites/:id requests. The body is the restaurant
// snapshot to keep alongside the favorite.
func (h *FavoritesHandler) Save(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "invalid user")
	}

	restaurantID := strings.TrimSpace(c.Param("id"))
	if restaurantID == "" {
		return Error(c, http.StatusBadRequest, "restaurant id is required")
	}

	var snapshot entity.Restaurant
	if err := c.Bind(&snapshot); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	snapshot.ID = restaurantID

	if err := h.favorites.Save(c.Request().Context(), userID, snapshot); err != nil {
		return Error(c, http.StatusInternalServerError, "failed to save favorite")
	}

	return Success(c, http.StatusOK, "favorite saved", nil)
}

// Remove handles DELETE /me/favorites/:id requests.
func (h *FavoritesHandler) Remove(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "invalid user")
	}

	restaurantID := strings.TrimSpace(c.Param("id"))
	if restaurantID == "" {
		return Error(c, http.StatusBadRequest, "restaurant id is required")
	}

	if err := h.favorites.Remove(c.Request().Context(), userID, restaurantID); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return Error(c, http.StatusNotFound, "favorite not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to remove favorite")
	}

	return Success(c, http.StatusOK, "favorite removed", nil)
}

// History handles GET /me/visits requests.
func (h *FavoritesHandler) History(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "invalid user")
	}

	visits, err := h.favorites.History(c.Request().Context(), userID)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list visits")
	}

	return Success(c, http.StatusOK, "visits retrieved", visits)
}

// RecordVisit handles POST /me/visits requests.
func (h *FavoritesHandler) RecordVisit(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "invalid user")
	}

	var req dto.SaveVisitRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.RestaurantID = strings.TrimSpace(req.RestaurantID)
	req.RestaurantName = strings.TrimSpace(req.RestaurantName)
	if req.RestaurantID == "" || req.RestaurantName == "" {
		return Error(c, http.StatusBadRequest, "restaurantId and restaurantName are required")
	}

	var visitedAt time.Time
	if raw := strings.TrimSpace(req.VisitedAt); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return Error(c, http.StatusBadRequest, "invalid visitedAt (use RFC3339)")
		}
		visitedAt = parsed
	}

	visit, err := h.favorites.RecordVisit(c.Request().Context(), userID, req.RestaurantID, req.RestaurantName, visitedAt)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to record visit")
	}

	return Success(c, http.StatusCreated, "visit recorded", visit)
}

func userIDFromContext(c echo.Context) (uuid.UUID, error) {
	raw, _ := c.Get(middleware.ContextKeyUserID).(string)
	return uuid.Parse(raw)
}
