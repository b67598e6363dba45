package container

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/akua-travel/akua-api/app/db"
	"github.com/akua-travel/akua-api/app/observability/metrics"
	"github.com/akua-travel/akua-api/config"
	"github.com/akua-travel/akua-api/internal/api/auth"
	"github.com/akua-travel/akua-api/internal/api/itinerary"
	"github.com/akua-travel/akua-api/internal/api/place"
)

// Container holds all application dependencies.
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Pool             *pgxpool.Pool
	JWTSecret        []byte
	AuthHandler      *auth.HandlerImpl
	ItineraryHandler *itinerary.HandlerImpl
	PlaceHandler     *place.HandlerImpl
}

// NewContainer wires repositories, services and handlers. Provider API
// keys and the JWT secret come from the environment so they never live
// in config files.
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is not set")
	}

	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	appMetrics := metrics.Get()

	authRepo := auth.NewPostgresAuthRepo(pool, logger)
	authService := auth.NewService(authRepo, cfg, []byte(jwtSecret), logger)
	authHandler := auth.NewHandlerImpl(authService, logger)

	searchClient := itinerary.NewSerperClient(itinerary.SerperConfig{
		APIKey:      os.Getenv("SERPER_API_KEY"),
		Endpoint:    cfg.Providers.Search.Endpoint,
		ResultLimit: cfg.Providers.Search.ResultLimit,
		CountryHint: cfg.Providers.Search.CountryHint,
		LocaleHint:  cfg.Providers.Search.LocaleHint,
		CacheTTL:    cfg.Providers.Search.CacheTTL,
	}, &http.Client{}, logger)

	completionClient := itinerary.NewOpenAIClient(itinerary.OpenAIConfig{
		APIKey:      os.Getenv("OPENAI_API_KEY"),
		Model:       cfg.Providers.OpenAI.Model,
		MaxTokens:   cfg.Providers.OpenAI.MaxTokens,
		Temperature: cfg.Providers.OpenAI.Temperature,
	})

	routeRepo := itinerary.NewPostgresRouteRepo(pool, logger)
	itineraryService := itinerary.NewServiceImpl(routeRepo, searchClient, completionClient, appMetrics, logger)
	itineraryHandler := itinerary.NewHandlerImpl(itineraryService, logger)

	placeRepo := place.NewPostgresPlaceRepo(pool, logger)
	placeService := place.NewServiceImpl(placeRepo, appMetrics, logger)
	placeHandler := place.NewHandlerImpl(placeService, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Pool:             pool,
		JWTSecret:        []byte(jwtSecret),
		AuthHandler:      authHandler,
		ItineraryHandler: itineraryHandler,
		PlaceHandler:     placeHandler,
	}, nil
}

// Close releases all resources held by the container.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready.
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}

// RunMigrations runs database migrations.
func (c *Container) RunMigrations(connectionURL string) error {
	return database.RunMigrations(connectionURL, c.Logger)
}
