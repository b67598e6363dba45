package place

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/akua-travel/akua-api/internal/types"
)

// MockPlaceRepo is a mock implementation of the Repository interface
type MockPlaceRepo struct {
	mock.Mock
}

func (m *MockPlaceRepo) ListPlaces(ctx context.Context) ([]types.Place, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Place), args.Error(1)
}

func (m *MockPlaceRepo) GetPlaceBySlug(ctx context.Context, placeSlug string) (*types.Place, error) {
	args := m.Called(ctx, placeSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Place), args.Error(1)
}

func (m *MockPlaceRepo) CreatePlace(ctx context.Context, req types.CreatePlaceRequest) (*types.Place, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Place), args.Error(1)
}

func (m *MockPlaceRepo) ListReviewsByPlace(ctx context.Context, placeID uuid.UUID) ([]types.Review, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Review), args.Error(1)
}

func (m *MockPlaceRepo) CreateReview(ctx context.Context, userID, placeID uuid.UUID, req types.CreateReviewRequest) (*types.Review, error) {
	args := m.Called(ctx, userID, placeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Review), args.Error(1)
}

func (m *MockPlaceRepo) UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req types.UpdateReviewRequest) (*types.Review, error) {
	args := m.Called(ctx, userID, reviewID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Review), args.Error(1)
}

func (m *MockPlaceRepo) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error {
	args := m.Called(ctx, userID, reviewID)
	return args.Error(0)
}

func setupPlaceService() (*ServiceImpl, *MockPlaceRepo) {
	repo := new(MockPlaceRepo)
	service := NewServiceImpl(repo, nil, slog.Default())
	return service, repo
}

func TestCreatePlace(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an out of range rating seed", func(t *testing.T) {
		service, _ := setupPlaceService()

		_, err := service.CreatePlace(ctx, types.CreatePlaceRequest{Name: "Parque Tayrona", RatingSeed: 5.5})
		require.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("rejects a missing name", func(t *testing.T) {
		service, _ := setupPlaceService()

		_, err := service.CreatePlace(ctx, types.CreatePlaceRequest{})
		require.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("passes a valid request through", func(t *testing.T) {
		service, repo := setupPlaceService()
		req := types.CreatePlaceRequest{Name: "Parque Tayrona", RatingSeed: 4.6}
		repo.On("CreatePlace", mock.Anything, req).Return(&types.Place{Name: req.Name, Slug: "parque-tayrona", RatingAverage: 4.6}, nil).Once()

		p, err := service.CreatePlace(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "parque-tayrona", p.Slug)
		repo.AssertExpectations(t)
	})
}

func TestCreateReview(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("rejects qualification outside 1 to 5", func(t *testing.T) {
		service, repo := setupPlaceService()

		_, err := service.CreateReview(ctx, userID, "parque-tayrona", types.CreateReviewRequest{Title: "ok", Qualification: 6})
		require.ErrorIs(t, err, types.ErrValidation)
		_, err = service.CreateReview(ctx, userID, "parque-tayrona", types.CreateReviewRequest{Title: "ok", Qualification: 0})
		require.ErrorIs(t, err, types.ErrValidation)
		repo.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("resolves the place by slug before writing", func(t *testing.T) {
		service, repo := setupPlaceService()
		placeID := uuid.New()
		req := types.CreateReviewRequest{Title: "Hermoso", Qualification: 5}

		repo.On("GetPlaceBySlug", mock.Anything, "parque-tayrona").Return(&types.Place{ID: placeID, Slug: "parque-tayrona"}, nil).Once()
		repo.On("CreateReview", mock.Anything, userID, placeID, req).Return(&types.Review{Qualification: 5, PlaceID: placeID}, nil).Once()

		review, err := service.CreateReview(ctx, userID, "parque-tayrona", req)
		require.NoError(t, err)
		assert.Equal(t, placeID, review.PlaceID)
		repo.AssertExpectations(t)
	})

	t.Run("unknown place is not found", func(t *testing.T) {
		service, repo := setupPlaceService()
		repo.On("GetPlaceBySlug", mock.Anything, "no-existe").Return(nil, types.ErrNotFound).Once()

		_, err := service.CreateReview(ctx, userID, "no-existe", types.CreateReviewRequest{Title: "ok", Qualification: 3})
		require.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestUpdateReviewValidation(t *testing.T) {
	ctx := context.Background()
	service, repo := setupPlaceService()
	bad := 9

	_, err := service.UpdateReview(ctx, uuid.New(), uuid.New(), types.UpdateReviewRequest{Qualification: &bad})
	require.ErrorIs(t, err, types.ErrValidation)
	repo.AssertNotCalled(t, "UpdateReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
