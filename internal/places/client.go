package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dinevalley/discovery-api/internal/entity"
)

const (
	defaultBaseURL = "https://maps.googleapis.com"

	// Radius bounds accepted by the nearby-search endpoint, in meters.
	MinRadiusMeters     = 500
	MaxRadiusMeters     = 50000
	DefaultRadiusMeters = 20000
)

// Query is the upstream search request. MinPrice/MaxPrice are unset when no
// price facet is selected. PageToken is an opaque continuation token and is
// never parsed locally.
type Query struct {
	Keyword      string
	MinPrice     *int
	MaxPrice     *int
	OpenNow      bool
	RadiusMeters int
	PageToken    string
}

// Page is one page of search results plus the continuation token, empty when
// the result set is exhausted.
type Page struct {
	Results       []entity.Restaurant `json:"results"`
	NextPageToken string              `json:"nextPageToken"`
}

// StatusError reports a provider-level failure: any status other than OK or
// ZERO_RESULTS. It is never folded into an empty result set.
type StatusError struct {
	Status  string
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("places status %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("places status %s", e.Status)
}

// Client is the Places Provider contract consumed by this service.
type Client interface {
	Nearby(ctx context.Context, query Query) (Page, error)
	Details(ctx context.Context, id string) (entity.PlaceDetails, error)
	Photo(ctx context.Context, reference string, maxWidth int) (io.ReadCloser, string, error)
}

// HTTPClient talks to the Google Places REST endpoints. Place details are
// cached briefly to absorb repeated detail views of the same place.
type HTTPClient struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	location string
	details  *gocache.Cache
}

// Option configures the HTTP client.
type Option func(*HTTPClient)

// WithBaseURL overrides the provider base URL (used in tests).
func WithBaseURL(baseURL string) Option {
	return func(c *HTTPClient) { c.baseURL = baseURL }
}

// WithDetailsCacheTTL sets how long place details are cached.
func WithDetailsCacheTTL(ttl time.Duration) Option {
	return func(c *HTTPClient) { c.details = gocache.New(ttl, 2*ttl) }
}

// NewHTTPClient builds a provider client. location is the "lat,lng" bias
// point for nearby searches.
func NewHTTPClient(client *http.Client, apiKey, location string, opts ...Option) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	c := &HTTPClient{
		client:   client,
		baseURL:  defaultBaseURL,
		apiKey:   apiKey,
		location: location,
		details:  gocache.New(5*time.Minute, 10*time.Minute),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type nearbyResponse struct {
	Status        string         `json:"status"`
	ErrorMessage  string         `json:"error_message"`
	Results       []nearbyResult `json:"results"`
	NextPageToken string         `json:"next_page_token"`
}

type nearbyResult struct {
	PlaceID        string       `json:"place_id"`
	Name           string       `json:"name"`
	Rating         *float64     `json:"rating"`
	UserRatings    int          `json:"user_ratings_total"`
	Vicinity       string       `json:"vicinity"`
	PriceLevel     *int         `json:"price_level"`
	BusinessStatus string       `json:"business_status"`
	Types          []string     `json:"types"`
	Photos         []placePhoto `json:"photos"`
}

type placePhoto struct {
	PhotoReference string `json:"photo_reference"`
}

// Nearby runs one page of a nearby search. ZERO_RESULTS is success with an
// empty page.
func (c *HTTPClient) Nearby(ctx context.Context, query Query) (Page, error) {
	params := url.Values{}
	params.Set("location", c.location)
	params.Set("radius", strconv.Itoa(clampRadius(query.RadiusMeters)))
	params.Set("type", "restaurant")
	params.Set("key", c.apiKey)
	if query.Keyword != "" {
		params.Set("keyword", query.Keyword)
	}
	if query.MinPrice != nil {
		params.Set("minprice", strconv.Itoa(*query.MinPrice))
	}
	if query.MaxPrice != nil {
		params.Set("maxprice", strconv.Itoa(*query.MaxPrice))
	}
	if query.OpenNow {
		params.Set("opennow", "true")
	}
	if query.PageToken != "" {
		params.Set("pagetoken", query.PageToken)
	}

	var payload nearbyResponse
	if err := c.getJSON(ctx, "/maps/api/place/nearbysearch/json", params, &payload); err != nil {
		return Page{}, err
	}
	if err := checkStatus(payload.Status, payload.ErrorMessage); err != nil {
		return Page{}, err
	}

	results := make([]entity.Restaurant, 0, len(payload.Results))
	for _, r := range payload.Results {
		restaurant := entity.Restaurant{
			ID:             r.PlaceID,
			Name:           r.Name,
			Rating:         r.Rating,
			ReviewCount:    r.UserRatings,
			Address:        r.Vicinity,
			PriceLevel:     r.PriceLevel,
			BusinessStatus: r.BusinessStatus,
			Types:          r.Types,
		}
		if restaurant.BusinessStatus == "" {
			restaurant.BusinessStatus = "UNKNOWN"
		}
		if len(r.Photos) > 0 {
			restaurant.PhotoReference = r.Photos[0].PhotoReference
		}
		results = append(results, restaurant)
	}

	return Page{Results: results, NextPageToken: payload.NextPageToken}, nil
}

type detailsResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Result       detailsResult `json:"result"`
}

type detailsResult struct {
	PlaceID      string   `json:"place_id"`
	Name         string   `json:"name"`
	Rating       *float64 `json:"rating"`
	Address      string   `json:"formatted_address"`
	Phone        string   `json:"formatted_phone_number"`
	Website      string   `json:"website"`
	URL          string   `json:"url"`
	UserRatings  *int     `json:"user_ratings_total"`
	Types        []string `json:"types"`
	OpeningHours struct {
		WeekdayText []string `json:"weekday_text"`
	} `json:"opening_hours"`
	Photos   []placePhoto `json:"photos"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Reviews []struct {
		AuthorName      string  `json:"author_name"`
		Rating          float64 `json:"rating"`
		Text            string  `json:"text"`
		RelativeTimeTxt string  `json:"relative_time_description"`
	} `json:"reviews"`
}

// Details fetches (or returns the cached copy of) the full place record.
func (c *HTTPClient) Details(ctx context.Context, id string) (entity.PlaceDetails, error) {
	if cached, ok := c.details.Get(id); ok {
		if details, ok := cached.(entity.PlaceDetails); ok {
			return details, nil
		}
	}

	params := url.Values{}
	params.Set("place_id", id)
	params.Set("key", c.apiKey)
	params.Set("fields", "place_id,name,rating,formatted_address,formatted_phone_number,opening_hours,website,review,photo,url,geometry,types,user_ratings_total")

	var payload detailsResponse
	if err := c.getJSON(ctx, "/maps/api/place/details/json", params, &payload); err != nil {
		return entity.PlaceDetails{}, err
	}
	if err := checkStatus(payload.Status, payload.ErrorMessage); err != nil {
		return entity.PlaceDetails{}, err
	}

	r := payload.Result
	details := entity.PlaceDetails{
		ID:            r.PlaceID,
		Name:          r.Name,
		Rating:        r.Rating,
		Address:       r.Address,
		Phone:         r.Phone,
		Website:       r.Website,
		OpeningHours:  r.OpeningHours.WeekdayText,
		GoogleMapsURL: r.URL,
		Types:         r.Types,
	}
	if details.ID == "" {
		details.ID = id
	}

	for i, photo := range r.Photos {
		if i >= 8 {
			break
		}
		details.PhotoReferences = append(details.PhotoReferences, photo.PhotoReference)
	}

	if r.Geometry.Location.Lat != 0 || r.Geometry.Location.Lng != 0 {
		details.Coordinates = &entity.Coordinates{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng}
		details.MapImageURL = fmt.Sprintf(
			"%s/maps/api/staticmap?center=%f,%f&zoom=14&size=600x320&scale=2&maptype=roadmap&markers=color:red%%7C%f,%f&key=%s",
			c.baseURL, r.Geometry.Location.Lat, r.Geometry.Location.Lng, r.Geometry.Location.Lat, r.Geometry.Location.Lng, c.apiKey,
		)
	}

	for _, review := range r.Reviews {
		details.Reviews = append(details.Reviews, entity.Review{
			Author:       review.AuthorName,
			Rating:       review.Rating,
			Text:         review.Text,
			RelativeTime: review.RelativeTimeTxt,
		})
	}

	total := len(details.Reviews)
	if r.UserRatings != nil {
		total = *r.UserRatings
	}
	details.ReviewSummary = entity.ReviewSummary{Total: total, Average: r.Rating}

	c.details.SetDefault(id, details)
	return details, nil
}

// Photo streams the provider photo bytes. The caller must close the body.
func (c *HTTPClient) Photo(ctx context.Context, reference string, maxWidth int) (io.ReadCloser, string, error) {
	if maxWidth <= 0 {
		maxWidth = 400
	}
	params := url.Values{}
	params.Set("photo_reference", reference)
	params.Set("maxwidth", strconv.Itoa(maxWidth))
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/maps/api/place/photo?"+params.Encode(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("create photo request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("photo request failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, "", fmt.Errorf("photo request returned status %d", resp.StatusCode)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create places request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("places request returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode places response: %w", err)
	}
	return nil
}

func checkStatus(status, message string) error {
	if status == "OK" || status == "ZERO_RESULTS" {
		return nil
	}
	return &StatusError{Status: status, Message: message}
}

func clampRadius(meters int) int {
	if meters <= 0 {
		return DefaultRadiusMeters
	}
	if meters < MinRadiusMeters {
		return MinRadiusMeters
	}
	if meters > MaxRadiusMeters {
		return MaxRadiusMeters
	}
	return meters
}

var _ Client = (*HTTPClient)(nil)
