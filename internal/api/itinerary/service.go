package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/akua-travel/akua-api/app/observability/metrics"
	"github.com/akua-travel/akua-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	Generate(ctx context.Context, userID uuid.UUID, trip types.TripRequest) (*types.GenerateRouteResponse, error)
	GetRoute(ctx context.Context, userID, routeID uuid.UUID) (*types.RouteRecord, error)
	GetRoutes(ctx context.Context, userID uuid.UUID) ([]types.RouteRecord, error)
	GetMapLink(ctx context.Context, userID, routeID uuid.UUID) (string, error)
}

type ServiceImpl struct {
	logger     *slog.Logger
	repo       Repository
	search     SearchClient
	completion CompletionClient
	metrics    *metrics.AppMetrics
}

func NewServiceImpl(repo Repository, search SearchClient, completion CompletionClient, appMetrics *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		repo:       repo,
		search:     search,
		completion: completion,
		metrics:    appMetrics,
	}
}

func validateTrip(trip types.TripRequest) error {
	if strings.TrimSpace(trip.City) == "" {
		return fmt.Errorf("%w: city is required", types.ErrValidation)
	}
	if strings.TrimSpace(trip.Country) == "" {
		return fmt.Errorf("%w: country is required", types.ErrValidation)
	}
	if trip.Days <= 0 {
		return fmt.Errorf("%w: days must be positive", types.ErrValidation)
	}
	return nil
}

// Generate runs the full pipeline: web enrichment, prompt assembly,
// completion, persistence, map link. Enrichment failures degrade to an
// unenriched prompt; a missing search key and any completion failure
// abort the request. A storage failure is logged and reported through
// Persisted so the caller still receives the generated text.
func (s *ServiceImpl) Generate(ctx context.Context, userID uuid.UUID, trip types.TripRequest) (*types.GenerateRouteResponse, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("user_id", userID.String()),
		attribute.String("city", trip.City),
		attribute.Int("days", trip.Days),
	))
	defer span.End()

	if err := validateTrip(trip); err != nil {
		span.SetStatus(codes.Error, "Invalid trip request")
		return nil, err
	}

	start := time.Now()

	digest, err := s.search.Enrich(ctx, trip)
	if err != nil {
		// Only a configuration problem surfaces here; provider failures
		// are absorbed by the search client.
		span.RecordError(err)
		span.SetStatus(codes.Error, "Search enrichment not configured")
		return nil, err
	}
	if digest.Empty() {
		if s.metrics != nil {
			s.metrics.SearchEnrichmentEmpty.Add(ctx, 1)
		}
		s.logger.InfoContext(ctx, "Generating without web enrichment",
			slog.String("city", trip.City))
	}

	prompt := assemblePrompt(trip, digest)

	content, err := s.completion.Complete(ctx, prompt)
	if err != nil {
		s.logger.ErrorContext(ctx, "Completion failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Completion failed")
		return nil, err
	}

	route := &types.RouteRecord{
		UserID:  userID,
		City:    trip.City,
		Country: trip.Country,
		Days:    trip.Days,
		Budget:  trip.Budget,
		Content: content,
	}

	persisted := true
	if err := s.repo.CreateRoute(ctx, route); err != nil {
		// The text was already generated; losing the record is not
		// worth failing the whole request.
		s.logger.ErrorContext(ctx, "Failed to persist route", slog.Any("error", err))
		span.RecordError(err)
		persisted = false
	}

	if s.metrics != nil {
		s.metrics.RouteGenerationsTotal.Add(ctx, 1)
		s.metrics.RouteGenerationSeconds.Record(ctx, time.Since(start).Seconds())
	}

	span.SetStatus(codes.Ok, "Route generated")
	return &types.GenerateRouteResponse{
		Route:     *route,
		MapLink:   ExtractMapLink(content, trip.City, trip.Country),
		Persisted: persisted,
	}, nil
}

// assemblePrompt prepends the web digest, when present, with an
// instruction tying the itinerary to it.
func assemblePrompt(trip types.TripRequest, digest types.EnrichmentDigest) string {
	base := BuildPrompt(trip)
	if digest.Empty() {
		return base
	}
	var b strings.Builder
	b.WriteString(DigestText(digest))
	b.WriteString("\nUsa esta información reciente cuando sea relevante para el itinerario.\n\n")
	b.WriteString(base)
	return b.String()
}

func (s *ServiceImpl) GetRoute(ctx context.Context, userID, routeID uuid.UUID) (*types.RouteRecord, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GetRoute")
	defer span.End()

	route, err := s.repo.GetRoute(ctx, userID, routeID)
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			s.logger.ErrorContext(ctx, "Failed to get route", slog.Any("error", err))
			span.RecordError(err)
		}
		return nil, err
	}
	span.SetStatus(codes.Ok, "Route fetched")
	return route, nil
}

func (s *ServiceImpl) GetRoutes(ctx context.Context, userID uuid.UUID) ([]types.RouteRecord, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GetRoutes")
	defer span.End()

	routes, err := s.repo.GetRoutesByUser(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list routes", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Routes listed")
	return routes, nil
}

// GetMapLink rebuilds the directions link for a stored route.
func (s *ServiceImpl) GetMapLink(ctx context.Context, userID, routeID uuid.UUID) (string, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GetMapLink")
	defer span.End()

	route, err := s.repo.GetRoute(ctx, userID, routeID)
	if err != nil {
		return "", err
	}
	span.SetStatus(codes.Ok, "Map link built")
	return ExtractMapLink(route.Content, route.City, route.Country), nil
}
