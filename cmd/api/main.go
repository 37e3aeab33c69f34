package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/dinevalley/discovery-api/internal/auth"
	"github.com/dinevalley/discovery-api/internal/config"
	"github.com/dinevalley/discovery-api/internal/database"
	"github.com/dinevalley/discovery-api/internal/handler"
	"github.com/dinevalley/discovery-api/internal/llm"
	middlewarepkg "github.com/dinevalley/discovery-api/internal/middleware"
	"github.com/dinevalley/discovery-api/internal/places"
	"github.com/dinevalley/discovery-api/internal/repository"
	"github.com/dinevalley/discovery-api/internal/router"
	"github.com/dinevalley/discovery-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	favoritesRepo := repository.NewPGXFavoritesRepository(pool)
	visitsRepo := repository.NewPGXVisitsRepository(pool)

	httpClient := &http.Client{Timeout: 15 * time.Second}

	placesOpts := []places.Option{places.WithDetailsCacheTTL(cfg.DetailsCacheTTL)}
	if cfg.PlacesBaseURL != "" {
		placesOpts = append(placesOpts, places.WithBaseURL(cfg.PlacesBaseURL))
	}
	placesClient := places.NewHTTPClient(httpClient, cfg.PlacesAPIKey, cfg.DefaultLocation, placesOpts...)

	llmOpts := []llm.Option{}
	if cfg.LLMBaseURL != "" {
		llmOpts = append(llmOpts, llm.WithBaseURL(cfg.LLMBaseURL))
	}
	if cfg.LLMModel != "" {
		llmOpts = append(llmOpts, llm.WithModel(cfg.LLMModel))
	}
	llmClient := llm.NewHTTPClient(httpClient, cfg.LLMAPIKey, llmOpts...)

	authService := service.NewAuthService(usersRepo, jwtManager)
	favoritesService := service.NewFavoritesService(favoritesRepo, visitsRepo)
	chatService := service.NewChatService(llmClient)

	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Restaurants: handler.NewRestaurantsHandler(placesClient, favoritesService, cfg.PhoneRegion),
		Assistant:   handler.NewAssistantHandler(placesClient, favoritesService),
		Chat:        handler.NewChatHandler(chatService),
		Favorites:   handler.NewFavoritesHandler(favoritesService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())
	if len(cfg.FrontendOrigins) > 0 {
		e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
			AllowOrigins: cfg.FrontendOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		}))
	}

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
