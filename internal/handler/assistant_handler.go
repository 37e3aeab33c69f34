package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dinevalley/discovery-api/internal/dto"
	"github.com/dinevalley/discovery-api/internal/entity"
	"github.com/dinevalley/discovery-api/internal/places"
	"github.com/dinevalley/discovery-api/internal/service"
)

// maxAggregatedPages bounds how many provider pages one aggregated search
// request may fetch.
const maxAggregatedPages = 3

// AssistantHandler exposes the filter derivation and aggregated search
// endpoints.
type AssistantHandler struct {
	places    places.Client
	favorites *service.FavoritesService
}

// NewAssistantHandler constructs an AssistantHandler.
func NewAssistantHandler(client places.Client, favorites *service.FavoritesService) *AssistantHandler {
	return &AssistantHandler{places: client, favorites: favorites}
}

// Filters handles POST /assistant/filters requests.
func (h *AssistantHandler) Filters(c echo.Context) error {
	var req dto.AssistantFiltersRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return Error(c, http.StatusBadRequest, "question is required")
	}

	derived := service.DeriveFilters(req.Question, service.FiltersFromPayload(req.Filters))

	return Success(c, http.StatusOK, "filters derived", dto.AssistantFiltersResponse{
		Filters:    derived.Filters.Payload(),
		Keywords:   derived.Keywords,
		SearchTerm: derived.SearchTerm,
	})
}

// Search handles POST /assistant/search requests. It runs the full paging
// session server-side: first page plus up to Pages-1 continuations, with the
// client-side facets applied to every page.
func (h *AssistantHandler) Search(c echo.Context) error {
	var req dto.AssistantSearchRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	pages := req.Pages
	if pages < 1 {
		pages = 1
	}
	if pages > maxAggregatedPages {
		pages = maxAggregatedPages
	}

	controller := service.NewSearchController(h.places)
	controller.SetFilters(service.FiltersFromPayload(req.Filters))
	controller.SetSearch(strings.TrimSpace(req.Search))

	ctx := c.Request().Context()
	results, err := controller.Search(ctx)
	if err != nil {
		return providerError(c, err)
	}

	for fetched := 1; fetched < pages && controller.HasMore(); fetched++ {
		results, err = controller.LoadMore(ctx)
		if errors.Is(err, service.ErrNoMoreResults) {
			break
		}
		if err != nil {
			return providerError(c, err)
		}
	}

	rewritten := make([]entity.Restaurant, len(results))
	for i, r := range results {
		rewritten[i] = withProxyPhoto(c, r)
	}
	rewritten = annotateForUser(c, h.favorites, rewritten)

	return Success(c, http.StatusOK, "restaurants retrieved", map[string]any{
		"results": rewritten,
		"hasMore": controller.HasMore(),
	})
}
