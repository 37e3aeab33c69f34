package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dinevalley/discovery-api/internal/auth"
	"github.com/dinevalley/discovery-api/internal/config"
	"github.com/dinevalley/discovery-api/internal/handler"
	middlewarepkg "github.com/dinevalley/discovery-api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Restaurants *handler.RestaurantsHandler
	Assistant   *handler.AssistantHandler
	Chat        *handler.ChatHandler
	Favorites   *handler.FavoritesHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	// Public discovery routes; favorite annotation kicks in when a valid
	// bearer token is supplied.
	public := e.Group("", middlewarepkg.OptionalJWT(jwtManager))
	public.GET("/restaurants", handlers.Restaurants.List)
	public.GET("/restaurants/:id", handlers.Restaurants.Details)
	public.GET("/place-photo/:reference", handlers.Restaurants.Photo)
	public.POST("/assistant/filters", handlers.Assistant.Filters)
	public.POST("/assistant/search", handlers.Assistant.Search)
	public.POST("/chat", handlers.Chat.Answer, middlewarepkg.ChatRateLimiter(cfg.RateLimitChat))

	secured := e.Group("/me")
	secured.Use(middlewarepkg.JWT(jwtManager))

	secured.GET("/favorites", handlers.Favorites.List)
	secured.PUT("/favorites/:id", handlers.Favorites.Save)
	secured.DELETE("/favorites/:id", handlers.Favorites.Remove)
	secured.GET("/visits", handlers.Favorites.History)
	secured.POST("/visits", handlers.Favorites.RecordVisit)
}
