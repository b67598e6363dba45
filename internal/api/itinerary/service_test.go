package itinerary

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/akua-travel/akua-api/internal/types"
)

// MockRouteRepo is a mock implementation of the Repository interface
type MockRouteRepo struct {
	mock.Mock
}

func (m *MockRouteRepo) CreateRoute(ctx context.Context, route *types.RouteRecord) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

func (m *MockRouteRepo) GetRoute(ctx context.Context, userID, routeID uuid.UUID) (*types.RouteRecord, error) {
	args := m.Called(ctx, userID, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RouteRecord), args.Error(1)
}

func (m *MockRouteRepo) GetRoutesByUser(ctx context.Context, userID uuid.UUID) ([]types.RouteRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RouteRecord), args.Error(1)
}

// MockSearchClient is a mock implementation of the SearchClient interface
type MockSearchClient struct {
	mock.Mock
}

func (m *MockSearchClient) Enrich(ctx context.Context, trip types.TripRequest) (types.EnrichmentDigest, error) {
	args := m.Called(ctx, trip)
	return args.Get(0).(types.EnrichmentDigest), args.Error(1)
}

// MockCompletionClient is a mock implementation of the CompletionClient interface
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func setupService() (*ServiceImpl, *MockRouteRepo, *MockSearchClient, *MockCompletionClient) {
	repo := new(MockRouteRepo)
	search := new(MockSearchClient)
	completion := new(MockCompletionClient)
	service := NewServiceImpl(repo, search, completion, nil, slog.Default())
	return service, repo, search, completion
}

func TestGenerate(t *testing.T) {
	userID := uuid.New()
	trip := types.TripRequest{
		City:    "Montería",
		Country: "Colombia",
		Days:    2,
		Budget:  "150.000 COP",
	}

	t.Run("full pipeline produces route and map link", func(t *testing.T) {
		service, repo, search, completion := setupService()
		ctx := context.Background()

		content := "**Día 1**: camina por la **Ronda del Sinú** y visita la **Catedral de San Jerónimo**."
		search.On("Enrich", mock.Anything, trip).Return(types.EnrichmentDigest{
			Query:   "qué hacer en Montería Colombia 2025",
			Results: []types.SearchResult{{Title: "Ronda del Sinú", Snippet: "parque lineal", Link: "https://example.com"}},
		}, nil).Once()
		completion.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return len(prompt) > 0
		})).Return(content, nil).Once()
		repo.On("CreateRoute", mock.Anything, mock.AnythingOfType("*types.RouteRecord")).Return(nil).Once()

		resp, err := service.Generate(ctx, userID, trip)
		require.NoError(t, err)

		assert.Equal(t, content, resp.Route.Content)
		assert.True(t, resp.Persisted)
		assert.Contains(t, resp.MapLink, "destination=Monter%C3%ADa%2C+Colombia")
		assert.Contains(t, resp.MapLink, "Ronda+del+Sin%C3%BA%2C+Monter%C3%ADa%2C+Colombia")
		repo.AssertExpectations(t)
		search.AssertExpectations(t)
		completion.AssertExpectations(t)
	})

	t.Run("digest text is injected into the prompt", func(t *testing.T) {
		service, repo, search, completion := setupService()
		ctx := context.Background()

		search.On("Enrich", mock.Anything, trip).Return(types.EnrichmentDigest{
			Query:   "qué hacer en Montería",
			Results: []types.SearchResult{{Title: "Festival del Porro", Snippet: "en junio", Link: "https://example.com/porro"}},
		}, nil).Once()

		var captured string
		completion.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			captured = prompt
			return true
		})).Return("itinerario", nil).Once()
		repo.On("CreateRoute", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := service.Generate(ctx, userID, trip)
		require.NoError(t, err)

		assert.Contains(t, captured, "Festival del Porro")
		assert.Contains(t, captured, "Genera una ruta turística personalizada en Montería, Colombia")
	})

	t.Run("empty digest still generates", func(t *testing.T) {
		service, repo, search, completion := setupService()
		ctx := context.Background()

		search.On("Enrich", mock.Anything, trip).Return(types.EnrichmentDigest{Query: "q"}, nil).Once()
		completion.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return prompt != ""
		})).Return("itinerario sin enriquecer", nil).Once()
		repo.On("CreateRoute", mock.Anything, mock.Anything).Return(nil).Once()

		resp, err := service.Generate(ctx, userID, trip)
		require.NoError(t, err)
		assert.Equal(t, "itinerario sin enriquecer", resp.Route.Content)
	})

	t.Run("missing search configuration aborts", func(t *testing.T) {
		service, repo, search, completion := setupService()
		ctx := context.Background()

		search.On("Enrich", mock.Anything, trip).Return(types.EnrichmentDigest{}, types.ErrSearchNotConfigured).Once()

		_, err := service.Generate(ctx, userID, trip)
		require.ErrorIs(t, err, types.ErrSearchNotConfigured)
		completion.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "CreateRoute", mock.Anything, mock.Anything)
	})

	t.Run("completion failure aborts and persists nothing", func(t *testing.T) {
		service, repo, search, completion := setupService()
		ctx := context.Background()

		search.On("Enrich", mock.Anything, trip).Return(types.EnrichmentDigest{Query: "q"}, nil).Once()
		completion.On("Complete", mock.Anything, mock.Anything).Return("", types.ErrModelProvider).Once()

		_, err := service.Generate(ctx, userID, trip)
		require.ErrorIs(t, err, types.ErrModelProvider)
		repo.AssertNotCalled(t, "CreateRoute", mock.Anything, mock.Anything)
	})

	t.Run("storage failure still returns the generated text", func(t *testing.T) {
		service, repo, search, completion := setupService()
		ctx := context.Background()

		search.On("Enrich", mock.Anything, trip).Return(types.EnrichmentDigest{Query: "q"}, nil).Once()
		completion.On("Complete", mock.Anything, mock.Anything).Return("itinerario generado", nil).Once()
		repo.On("CreateRoute", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

		resp, err := service.Generate(ctx, userID, trip)
		require.NoError(t, err)
		assert.False(t, resp.Persisted)
		assert.Equal(t, "itinerario generado", resp.Route.Content)
	})

	t.Run("invalid trip is rejected before any provider call", func(t *testing.T) {
		service, repo, search, completion := setupService()
		ctx := context.Background()

		_, err := service.Generate(ctx, userID, types.TripRequest{City: "Cali", Country: "Colombia", Days: 0})
		require.ErrorIs(t, err, types.ErrValidation)

		_, err = service.Generate(ctx, userID, types.TripRequest{Country: "Colombia", Days: 2})
		require.ErrorIs(t, err, types.ErrValidation)

		search.AssertNotCalled(t, "Enrich", mock.Anything, mock.Anything)
		completion.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "CreateRoute", mock.Anything, mock.Anything)
	})
}

func TestGetMapLink(t *testing.T) {
	service, repo, _, _ := setupService()
	ctx := context.Background()
	userID := uuid.New()
	routeID := uuid.New()

	t.Run("rebuilds the link from the stored route", func(t *testing.T) {
		repo.On("GetRoute", mock.Anything, userID, routeID).Return(&types.RouteRecord{
			City:    "Montería",
			Country: "Colombia",
			Content: "visita la **Catedral de San Jerónimo**",
		}, nil).Once()

		link, err := service.GetMapLink(ctx, userID, routeID)
		require.NoError(t, err)
		assert.Contains(t, link, "destination=Monter%C3%ADa%2C+Colombia")
		assert.Contains(t, link, "Catedral+de+San+Jer%C3%B3nimo")
	})

	t.Run("unknown route propagates not found", func(t *testing.T) {
		repo.On("GetRoute", mock.Anything, userID, routeID).Return(nil, types.ErrNotFound).Once()

		_, err := service.GetMapLink(ctx, userID, routeID)
		require.ErrorIs(t, err, types.ErrNotFound)
	})
}
