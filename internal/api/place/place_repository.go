package place

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/akua-travel/akua-api/internal/types"
)

var _ Repository = (*PostgresPlaceRepo)(nil)

type Repository interface {
	ListPlaces(ctx context.Context) ([]types.Place, error)
	GetPlaceBySlug(ctx context.Context, placeSlug string) (*types.Place, error)
	CreatePlace(ctx context.Context, req types.CreatePlaceRequest) (*types.Place, error)
	ListReviewsByPlace(ctx context.Context, placeID uuid.UUID) ([]types.Review, error)
	CreateReview(ctx context.Context, userID, placeID uuid.UUID, req types.CreateReviewRequest) (*types.Review, error)
	UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req types.UpdateReviewRequest) (*types.Review, error)
	DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error
}

type PostgresPlaceRepo struct {
	pgpool *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresPlaceRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresPlaceRepo {
	return &PostgresPlaceRepo{
		pgpool: pgpool,
		logger: logger,
	}
}

const placeColumns = `id, name, slug, description, categories, city, department,
	estimated_cost, rating_seed, rating_average, created_at`

func scanPlace(row pgx.Row) (*types.Place, error) {
	var p types.Place
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Categories,
		&p.City, &p.Department, &p.EstimatedCost,
		&p.RatingSeed, &p.RatingAverage, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPlaceRepo) ListPlaces(ctx context.Context) ([]types.Place, error) {
	ctx, span := otel.Tracer("PlaceRepository").Start(ctx, "ListPlaces")
	defer span.End()

	query := fmt.Sprintf(`SELECT %s FROM places ORDER BY name`, placeColumns)

	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query places", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Query failed")
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	var places []types.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, *p)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate places: %w", err)
	}

	span.SetStatus(codes.Ok, "Places listed")
	return places, nil
}

func (r *PostgresPlaceRepo) GetPlaceBySlug(ctx context.Context, placeSlug string) (*types.Place, error) {
	ctx, span := otel.Tracer("PlaceRepository").Start(ctx, "GetPlaceBySlug", trace.WithAttributes(
		attribute.String("slug", placeSlug),
	))
	defer span.End()

	query := fmt.Sprintf(`SELECT %s FROM places WHERE slug = $1`, placeColumns)

	p, err := scanPlace(r.pgpool.QueryRow(ctx, query, placeSlug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to fetch place", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Query failed")
		return nil, fmt.Errorf("failed to fetch place: %w", err)
	}

	span.SetStatus(codes.Ok, "Place fetched")
	return p, nil
}

// CreatePlace inserts a catalogue entry. The slug is derived from the
// name once here and never recomputed afterwards; a positive rating
// seed becomes the initial average.
func (r *PostgresPlaceRepo) CreatePlace(ctx context.Context, req types.CreatePlaceRequest) (*types.Place, error) {
	ctx, span := otel.Tracer("PlaceRepository").Start(ctx, "CreatePlace", trace.WithAttributes(
		attribute.String("name", req.Name),
	))
	defer span.End()

	initialAverage := seededAverage(req.RatingSeed, nil)

	query := fmt.Sprintf(`
		INSERT INTO places (name, slug, description, categories, city, department,
			estimated_cost, rating_seed, rating_average)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`, placeColumns)

	p, err := scanPlace(r.pgpool.QueryRow(ctx, query,
		req.Name, slug.Make(req.Name), req.Description, req.Categories,
		req.City, req.Department, req.EstimatedCost, req.RatingSeed, initialAverage,
	))
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert place", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Insert failed")
		return nil, fmt.Errorf("failed to insert place: %w", err)
	}

	span.SetStatus(codes.Ok, "Place created")
	return p, nil
}

func (r *PostgresPlaceRepo) ListReviewsByPlace(ctx context.Context, placeID uuid.UUID) ([]types.Review, error) {
	ctx, span := otel.Tracer("PlaceRepository").Start(ctx, "ListReviewsByPlace", trace.WithAttributes(
		attribute.String("place_id", placeID.String()),
	))
	defer span.End()

	query := `
		SELECT id, title, description, qualification, user_id, place_id, created_at, updated_at
		FROM reviews
		WHERE place_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pgpool.Query(ctx, query, placeID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query reviews", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Query failed")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []types.Review
	for rows.Next() {
		var rev types.Review
		if err := rows.Scan(
			&rev.ID, &rev.Title, &rev.Description, &rev.Qualification,
			&rev.UserID, &rev.PlaceID, &rev.CreatedAt, &rev.UpdatedAt,
		); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	span.SetStatus(codes.Ok, "Reviews listed")
	return reviews, nil
}

// CreateReview inserts a review and recomputes the place's rating
// average in the same transaction.
func (r *PostgresPlaceRepo) CreateReview(ctx context.Context, userID, placeID uuid.UUID, req types.CreateReviewRequest) (*types.Review, error) {
	ctx, span := otel.Tracer("PlaceRepository").Start(ctx, "CreateReview", trace.WithAttributes(
		attribute.String("place_id", placeID.String()),
	))
	defer span.End()

	var review *types.Review
	err := pgx.BeginFunc(ctx, r.pgpool, func(tx pgx.Tx) error {
		seed, err := lockPlaceSeed(ctx, tx, placeID)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO reviews (title, description, qualification, user_id, place_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, title, description, qualification, user_id, place_id, created_at, updated_at
		`
		var rev types.Review
		if err := tx.QueryRow(ctx, query,
			req.Title, req.Description, req.Qualification, userID, placeID,
		).Scan(
			&rev.ID, &rev.Title, &rev.Description, &rev.Qualification,
			&rev.UserID, &rev.PlaceID, &rev.CreatedAt, &rev.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert review: %w", err)
		}
		review = &rev

		return recomputeRating(ctx, tx, placeID, seed)
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to create review", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Transaction failed")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Review created")
	return review, nil
}

// UpdateReview applies a partial update to the caller's own review and
// recomputes the place rating when the qualification changed.
func (r *PostgresPlaceRepo) UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req types.UpdateReviewRequest) (*types.Review, error) {
	ctx, span := otel.Tracer("PlaceRepository").Start(ctx, "UpdateReview", trace.WithAttributes(
		attribute.String("review_id", reviewID.String()),
	))
	defer span.End()

	var review *types.Review
	err := pgx.BeginFunc(ctx, r.pgpool, func(tx pgx.Tx) error {
		var placeID, ownerID uuid.UUID
		err := tx.QueryRow(ctx, `SELECT place_id, user_id FROM reviews WHERE id = $1`, reviewID).
			Scan(&placeID, &ownerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return types.ErrNotFound
			}
			return fmt.Errorf("failed to fetch review: %w", err)
		}
		if ownerID != userID {
			return types.ErrForbidden
		}

		seed, err := lockPlaceSeed(ctx, tx, placeID)
		if err != nil {
			return err
		}

		query := `
			UPDATE reviews
			SET title = COALESCE($1, title),
			    description = COALESCE($2, description),
			    qualification = COALESCE($3, qualification),
			    updated_at = now()
			WHERE id = $4
			RETURNING id, title, description, qualification, user_id, place_id, created_at, updated_at
		`
		var rev types.Review
		if err := tx.QueryRow(ctx, query,
			req.Title, req.Description, req.Qualification, reviewID,
		).Scan(
			&rev.ID, &rev.Title, &rev.Description, &rev.Qualification,
			&rev.UserID, &rev.PlaceID, &rev.CreatedAt, &rev.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}
		review = &rev

		return recomputeRating(ctx, tx, placeID, seed)
	})
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) && !errors.Is(err, types.ErrForbidden) {
			r.logger.ErrorContext(ctx, "Failed to update review", slog.Any("error", err))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Transaction failed")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Review updated")
	return review, nil
}

// DeleteReview removes the caller's own review and recomputes the
// place rating in the same transaction.
func (r *PostgresPlaceRepo) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error {
	ctx, span := otel.Tracer("PlaceRepository").Start(ctx, "DeleteReview", trace.WithAttributes(
		attribute.String("review_id", reviewID.String()),
	))
	defer span.End()

	err := pgx.BeginFunc(ctx, r.pgpool, func(tx pgx.Tx) error {
		var placeID, ownerID uuid.UUID
		err := tx.QueryRow(ctx, `SELECT place_id, user_id FROM reviews WHERE id = $1`, reviewID).
			Scan(&placeID, &ownerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return types.ErrNotFound
			}
			return fmt.Errorf("failed to fetch review: %w", err)
		}
		if ownerID != userID {
			return types.ErrForbidden
		}

		seed, err := lockPlaceSeed(ctx, tx, placeID)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID); err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}

		return recomputeRating(ctx, tx, placeID, seed)
	})
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) && !errors.Is(err, types.ErrForbidden) {
			r.logger.ErrorContext(ctx, "Failed to delete review", slog.Any("error", err))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Transaction failed")
		return err
	}

	span.SetStatus(codes.Ok, "Review deleted")
	return nil
}

// lockPlaceSeed locks the place row for the duration of the transaction
// so concurrent review writes serialize their rating recomputes.
func lockPlaceSeed(ctx context.Context, tx pgx.Tx, placeID uuid.UUID) (float64, error) {
	var seed float64
	err := tx.QueryRow(ctx, `SELECT rating_seed FROM places WHERE id = $1 FOR UPDATE`, placeID).Scan(&seed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, types.ErrNotFound
		}
		return 0, fmt.Errorf("failed to lock place: %w", err)
	}
	return seed, nil
}

// recomputeRating re-derives rating_average from the full review set
// plus the immutable seed. Running it twice in a row is a no-op.
func recomputeRating(ctx context.Context, tx pgx.Tx, placeID uuid.UUID, seed float64) error {
	rows, err := tx.Query(ctx, `SELECT qualification FROM reviews WHERE place_id = $1`, placeID)
	if err != nil {
		return fmt.Errorf("failed to load qualifications: %w", err)
	}
	defer rows.Close()

	var qualifications []int
	for rows.Next() {
		var q int
		if err := rows.Scan(&q); err != nil {
			return fmt.Errorf("failed to scan qualification: %w", err)
		}
		qualifications = append(qualifications, q)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate qualifications: %w", err)
	}
	rows.Close()

	avg := seededAverage(seed, qualifications)
	if _, err := tx.Exec(ctx, `UPDATE places SET rating_average = $1 WHERE id = $2`, avg, placeID); err != nil {
		return fmt.Errorf("failed to update rating average: %w", err)
	}
	return nil
}
