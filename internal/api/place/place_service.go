package place

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

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
	ListPlaces(ctx context.Context) ([]types.Place, error)
	GetPlaceBySlug(ctx context.Context, placeSlug string) (*types.Place, error)
	CreatePlace(ctx context.Context, req types.CreatePlaceRequest) (*types.Place, error)
	ListReviews(ctx context.Context, placeSlug string) ([]types.Review, error)
	CreateReview(ctx context.Context, userID uuid.UUID, placeSlug string, req types.CreateReviewRequest) (*types.Review, error)
	UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req types.UpdateReviewRequest) (*types.Review, error)
	DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error
}

type ServiceImpl struct {
	logger  *slog.Logger
	repo    Repository
	metrics *metrics.AppMetrics
}

func NewServiceImpl(repo Repository, appMetrics *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		repo:    repo,
		metrics: appMetrics,
	}
}

func (s *ServiceImpl) ListPlaces(ctx context.Context) ([]types.Place, error) {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "ListPlaces")
	defer span.End()

	places, err := s.repo.ListPlaces(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list places", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "Places listed")
	return places, nil
}

func (s *ServiceImpl) GetPlaceBySlug(ctx context.Context, placeSlug string) (*types.Place, error) {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "GetPlaceBySlug", trace.WithAttributes(
		attribute.String("slug", placeSlug),
	))
	defer span.End()

	return s.repo.GetPlaceBySlug(ctx, placeSlug)
}

func (s *ServiceImpl) CreatePlace(ctx context.Context, req types.CreatePlaceRequest) (*types.Place, error) {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "CreatePlace", trace.WithAttributes(
		attribute.String("name", req.Name),
	))
	defer span.End()

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", types.ErrValidation)
	}
	if req.RatingSeed < 0 || req.RatingSeed > 5 {
		return nil, fmt.Errorf("%w: rating seed must be between 0 and 5", types.ErrValidation)
	}

	p, err := s.repo.CreatePlace(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create place", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "Place created", slog.String("slug", p.Slug))
	span.SetStatus(codes.Ok, "Place created")
	return p, nil
}

func (s *ServiceImpl) ListReviews(ctx context.Context, placeSlug string) ([]types.Review, error) {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "ListReviews", trace.WithAttributes(
		attribute.String("slug", placeSlug),
	))
	defer span.End()

	p, err := s.repo.GetPlaceBySlug(ctx, placeSlug)
	if err != nil {
		return nil, err
	}
	return s.repo.ListReviewsByPlace(ctx, p.ID)
}

func (s *ServiceImpl) CreateReview(ctx context.Context, userID uuid.UUID, placeSlug string, req types.CreateReviewRequest) (*types.Review, error) {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "CreateReview", trace.WithAttributes(
		attribute.String("slug", placeSlug),
	))
	defer span.End()

	if err := validateQualification(req.Qualification); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", types.ErrValidation)
	}

	p, err := s.repo.GetPlaceBySlug(ctx, placeSlug)
	if err != nil {
		return nil, err
	}

	review, err := s.repo.CreateReview(ctx, userID, p.ID, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RatingRecomputesTotal.Add(ctx, 1)
	}
	span.SetStatus(codes.Ok, "Review created")
	return review, nil
}

func (s *ServiceImpl) UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req types.UpdateReviewRequest) (*types.Review, error) {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "UpdateReview", trace.WithAttributes(
		attribute.String("review_id", reviewID.String()),
	))
	defer span.End()

	if req.Qualification != nil {
		if err := validateQualification(*req.Qualification); err != nil {
			return nil, err
		}
	}

	review, err := s.repo.UpdateReview(ctx, userID, reviewID, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RatingRecomputesTotal.Add(ctx, 1)
	}
	span.SetStatus(codes.Ok, "Review updated")
	return review, nil
}

func (s *ServiceImpl) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error {
	ctx, span := otel.Tracer("PlaceService").Start(ctx, "DeleteReview", trace.WithAttributes(
		attribute.String("review_id", reviewID.String()),
	))
	defer span.End()

	if err := s.repo.DeleteReview(ctx, userID, reviewID); err != nil {
		span.RecordError(err)
		return err
	}

	if s.metrics != nil {
		s.metrics.RatingRecomputesTotal.Add(ctx, 1)
	}
	span.SetStatus(codes.Ok, "Review deleted")
	return nil
}

func validateQualification(q int) error {
	if q < 1 || q > 5 {
		return fmt.Errorf("%w: qualification must be between 1 and 5", types.ErrValidation)
	}
	return nil
}
