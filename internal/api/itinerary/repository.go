package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/akua-travel/akua-api/internal/types"
)

var _ Repository = (*PostgresRouteRepo)(nil)

type Repository interface {
	CreateRoute(ctx context.Context, route *types.RouteRecord) error
	GetRoute(ctx context.Context, userID, routeID uuid.UUID) (*types.RouteRecord, error)
	GetRoutesByUser(ctx context.Context, userID uuid.UUID) ([]types.RouteRecord, error)
}

type PostgresRouteRepo struct {
	pgpool *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresRouteRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresRouteRepo {
	return &PostgresRouteRepo{
		pgpool: pgpool,
		logger: logger,
	}
}

// CreateRoute persists a generated route and fills in the assigned id
// and creation timestamp.
func (r *PostgresRouteRepo) CreateRoute(ctx context.Context, route *types.RouteRecord) error {
	ctx, span := otel.Tracer("RouteRepository").Start(ctx, "CreateRoute", trace.WithAttributes(
		attribute.String("user_id", route.UserID.String()),
		attribute.String("city", route.City),
	))
	defer span.End()

	query := `
		INSERT INTO routes (user_id, city, country, days, budget, content)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.pgpool.QueryRow(ctx, query,
		route.UserID, route.City, route.Country, route.Days, route.Budget, route.Content,
	).Scan(&route.ID, &route.CreatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert route", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Insert failed")
		return fmt.Errorf("failed to insert route: %w", err)
	}

	span.SetStatus(codes.Ok, "Route created")
	return nil
}

// GetRoute fetches a single route owned by the given user.
func (r *PostgresRouteRepo) GetRoute(ctx context.Context, userID, routeID uuid.UUID) (*types.RouteRecord, error) {
	ctx, span := otel.Tracer("RouteRepository").Start(ctx, "GetRoute", trace.WithAttributes(
		attribute.String("route_id", routeID.String()),
	))
	defer span.End()

	query := `
		SELECT id, user_id, city, country, days, budget, content, created_at
		FROM routes
		WHERE id = $1 AND user_id = $2
	`

	var route types.RouteRecord
	err := r.pgpool.QueryRow(ctx, query, routeID, userID).Scan(
		&route.ID, &route.UserID, &route.City, &route.Country,
		&route.Days, &route.Budget, &route.Content, &route.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to fetch route", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Query failed")
		return nil, fmt.Errorf("failed to fetch route: %w", err)
	}

	span.SetStatus(codes.Ok, "Route fetched")
	return &route, nil
}

// GetRoutesByUser lists a user's routes, most recent first.
func (r *PostgresRouteRepo) GetRoutesByUser(ctx context.Context, userID uuid.UUID) ([]types.RouteRecord, error) {
	ctx, span := otel.Tracer("RouteRepository").Start(ctx, "GetRoutesByUser", trace.WithAttributes(
		attribute.String("user_id", userID.String()),
	))
	defer span.End()

	query := `
		SELECT id, user_id, city, country, days, budget, content, created_at
		FROM routes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pgpool.Query(ctx, query, userID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query routes", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Query failed")
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	var routes []types.RouteRecord
	for rows.Next() {
		var route types.RouteRecord
		if err := rows.Scan(
			&route.ID, &route.UserID, &route.City, &route.Country,
			&route.Days, &route.Budget, &route.Content, &route.CreatedAt,
		); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate routes: %w", err)
	}

	span.SetStatus(codes.Ok, "Routes listed")
	return routes, nil
}
