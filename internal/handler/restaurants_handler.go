package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dinevalley/discovery-api/internal/entity"
	"github.com/dinevalley/discovery-api/internal/places"
	"github.com/dinevalley/discovery-api/internal/service"
)

// fallbackImageURL is served when the provider has no photo for a place.
const fallbackImageURL = "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=800"

const defaultPhotoWidth = 800

// RestaurantsHandler exposes the restaurant search and details endpoints.
type RestaurantsHandler struct {
	places      places.Client
	favorites   *service.FavoritesService
	phoneRegion string
}

// NewRestaurantsHandler constructs a RestaurantsHandler.
func NewRestaurantsHandler(client places.Client, favorites *service.FavoritesService, phoneRegion string) *RestaurantsHandler {
	return &RestaurantsHandler{places: client, favorites: favorites, phoneRegion: phoneRegion}
}

// List handles GET /restaurants requests.
func (h *RestaurantsHandler) List(c echo.Context) error {
	query := places.Query{
		Keyword:      strings.TrimSpace(c.QueryParam("keyword")),
		OpenNow:      c.QueryParam("openNow") == "true",
		RadiusMeters: parseIntDefault(c.QueryParam("radius"), 0),
		PageToken:    strings.TrimSpace(c.QueryParam("pageToken")),
	}
	if query.Keyword == "" {
		query.Keyword = "restaurant"
	}
	if raw := strings.TrimSpace(c.QueryParam("minPrice")); raw != "" {
		if level, err := strconv.Atoi(raw); err == nil {
			query.MinPrice = &level
		}
	}
	if raw := strings.TrimSpace(c.QueryParam("maxPrice")); raw != "" {
		if level, err := strconv.Atoi(raw); err == nil {
			query.MaxPrice = &level
		}
	}

	page, err := h.places.Nearby(c.Request().Context(), query)
	if err != nil {
		return providerError(c, err)
	}

	results := make([]entity.Restaurant, len(page.Results))
	for i, r := range page.Results {
		results[i] = withProxyPhoto(c, r)
	}
	results = annotateForUser(c, h.favorites, results)

	return Success(c, http.StatusOK, "restaurants retrieved", map[string]any{
		"results":       results,
		"nextPageToken": page.NextPageToken,
	})
}

// Details handles GET /restaurants/:id requests.
func (h *RestaurantsHandler) Details(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return Error(c, http.StatusBadRequest, "place id is required")
	}

	details, err := h.places.Details(c.Request().Context(), id)
	if err != nil {
		return providerError(c, err)
	}

	details.Phone = service.FormatPhone(details.Phone, h.phoneRegion)
	details.Website = service.SanitizeWebsite(details.Website)
	if len(details.PhotoReferences) > 0 {
		details.ImageURL = photoProxyURL(c, details.PhotoReferences[0], defaultPhotoWidth)
		urls := make([]string, 0, len(details.PhotoReferences))
		for _, ref := range details.PhotoReferences {
			urls = append(urls, photoProxyURL(c, ref, defaultPhotoWidth))
		}
		details.PhotoURLs = urls
	} else if details.ImageURL == "" {
		details.ImageURL = fallbackImageURL
	}

	return Success(c, http.StatusOK, "restaurant retrieved", details)
}

// Photo handles GET /place-photo/:reference requests, streaming the provider
// image through so the provider API key never reaches the client.
func (h *RestaurantsHandler) Photo(c echo.Context) error {
	reference := strings.TrimSpace(c.Param("reference"))
	if reference == "" {
		return Error(c, http.StatusBadRequest, "photo reference is required")
	}
	maxWidth := parseIntDefault(c.QueryParam("maxwidth"), defaultPhotoWidth)

	body, contentType, err := h.places.Photo(c.Request().Context(), reference, maxWidth)
	if err != nil {
		return providerError(c, err)
	}
	defer body.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Stream(http.StatusOK, contentType, body)
}

// withProxyPhoto rewrites the provider photo reference into a proxy URL,
// falling back to a stock image when the place has no photo at all.
func withProxyPhoto(c echo.Context, r entity.Restaurant) entity.Restaurant {
	if r.PhotoReference != "" {
		r.ImageURL = photoProxyURL(c, r.PhotoReference, defaultPhotoWidth)
	} else if r.ImageURL == "" {
		r.ImageURL = fallbackImageURL
	}
	return r
}

// annotateForUser merges favorite snapshots into the results when the
// request carries a signed-in user. Annotation failures fall back to the
// unannotated results rather than failing the search.
func annotateForUser(c echo.Context, favorites *service.FavoritesService, results []entity.Restaurant) []entity.Restaurant {
	if favorites == nil {
		return results
	}
	userID, err := userIDFromContext(c)
	if err != nil {
		return results
	}
	annotated, err := favorites.Annotate(c.Request().Context(), userID, results)
	if err != nil {
		return results
	}
	return annotated
}

func photoProxyURL(c echo.Context, reference string, maxWidth int) string {
	return fmt.Sprintf("%s://%s/place-photo/%s?maxwidth=%d",
		c.Scheme(), c.Request().Host, url.PathEscape(reference), maxWidth)
}

func providerError(c echo.Context, err error) error {
	var statusErr *places.StatusError
	if errors.As(err, &statusErr) {
		return Error(c, http.StatusBadGateway, statusErr.Error())
	}
	return Error(c, http.StatusBadGateway, "places provider request failed")
}

func parseIntDefault(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
