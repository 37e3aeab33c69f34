package service

import (
	"context"
	"errors"

	"github.com/dinevalley/discovery-api/internal/entity"
	"github.com/dinevalley/discovery-api/internal/places"
)

// SearchState tracks where a search session is in its lifecycle.
type SearchState int

const (
	StateIdle SearchState = iota
	StateLoading
	StateLoaded
	StateLoadingMore
	StateExhausted
	StateError
)

// String names the state for logs and errors.
func (s SearchState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateLoadingMore:
		return "loading_more"
	case StateExhausted:
		return "exhausted"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

var (
	// ErrNoMoreResults signals that LoadMore has nothing to do: a fetch is
	// already in flight, the session is exhausted, or no continuation token
	// is held.
	ErrNoMoreResults = errors.New("no more results")
	// ErrSuperseded signals that a filter or search change reset the session
	// while a fetch was in flight; the fetched page was discarded.
	ErrSuperseded = errors.New("search superseded by a newer request")
)

// SearchController orchestrates paginated provider fetches for one search
// session: first page, load-more continuation, post-filtering and result
// accumulation. It is meant for a single logical caller; a filter or search
// change at any point resets the session and discards in-flight pages via
// the generation counter rather than by aborting the request.
type SearchController struct {
	client places.Client

	filters    FilterOptions
	search     string
	state      SearchState
	results    []entity.Restaurant
	pageToken  string
	generation uint64
}

// NewSearchController builds an idle controller with default filters.
func NewSearchController(client places.Client) *SearchController {
	return &SearchController{
		client:  client,
		filters: DefaultFilterOptions(),
		state:   StateIdle,
	}
}

// State reports the current session state.
func (c *SearchController) State() SearchState {
	return c.state
}

// Results returns a copy of the accumulated, post-filtered results.
func (c *SearchController) Results() []entity.Restaurant {
	return append([]entity.Restaurant(nil), c.results...)
}

// HasMore reports whether a continuation token is held.
func (c *SearchController) HasMore() bool {
	return c.pageToken != ""
}

// SetFilters replaces the filter state and resets the session.
func (c *SearchController) SetFilters(filters FilterOptions) {
	c.filters = filters.Clone()
	c.reset()
}

// SetSearch replaces the free-text search and resets the session when the
// text actually changed.
func (c *SearchController) SetSearch(text string) {
	if c.search == text {
		return
	}
	c.search = text
	c.reset()
}

func (c *SearchController) reset() {
	c.generation++
	c.state = StateIdle
	c.results = nil
	c.pageToken = ""
}

// Search fetches the first page for the current filters and search text,
// discarding anything accumulated so far.
func (c *SearchController) Search(ctx context.Context) ([]entity.Restaurant, error) {
	c.generation++
	gen := c.generation
	c.state = StateLoading
	c.results = nil
	c.pageToken = ""

	page, err := c.client.Nearby(ctx, BuildPlacesQuery(c.filters, c.search))
	if gen != c.generation {
		return nil, ErrSuperseded
	}
	if err != nil {
		c.state = StateError
		return nil, err
	}

	c.results = ApplyPostFilters(page.Results, c.filters)
	c.pageToken = page.NextPageToken
	if c.pageToken == "" {
		c.state = StateExhausted
	} else {
		c.state = StateLoaded
	}
	return c.Results(), nil
}

// LoadMore fetches the next page using the held continuation token and
// appends the post-filtered results. It is a no-op returning
// ErrNoMoreResults while a fetch is in flight, once the session is
// exhausted, or when no token is held; this is what prevents duplicate
// concurrent page fetches.
func (c *SearchController) LoadMore(ctx context.Context) ([]entity.Restaurant, error) {
	if c.state == StateLoading || c.state == StateLoadingMore {
		return nil, ErrNoMoreResults
	}
	if c.state == StateExhausted || c.pageToken == "" {
		return nil, ErrNoMoreResults
	}

	gen := c.generation
	c.state = StateLoadingMore

	query := BuildPlacesQuery(c.filters, c.search)
	query.PageToken = c.pageToken

	page, err := c.client.Nearby(ctx, query)
	if gen != c.generation {
		return nil, ErrSuperseded
	}
	if err != nil {
		c.state = StateError
		return nil, err
	}

	c.results = append(c.results, ApplyPostFilters(page.Results, c.filters)...)
	c.pageToken = page.NextPageToken
	if c.pageToken == "" {
		c.state = StateExhausted
	} else {
		c.state = StateLoaded
	}
	return c.Results(), nil
}

// DetailsLoader fetches place details with last-request-wins semantics: a
// fetch superseded by a newer navigation has its result discarded when it
// resolves, without aborting the underlying request.
type DetailsLoader struct {
	client     places.Client
	generation uint64
}

// NewDetailsLoader builds a loader around the provider client.
func NewDetailsLoader(client places.Client) *DetailsLoader {
	return &DetailsLoader{client: client}
}

// Load fetches details for id. If a newer Load started before this one
// resolved, the result is dropped and ErrSuperseded is returned.
func (l *DetailsLoader) Load(ctx context.Context, id string) (entity.PlaceDetails, error) {
	l.generation++
	gen := l.generation

	details, err := l.client.Details(ctx, id)
	if gen != l.generation {
		return entity.PlaceDetails{}, ErrSuperseded
	}
	if err != nil {
		return entity.PlaceDetails{}, err
	}
	return details, nil
}
