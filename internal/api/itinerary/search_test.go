package itinerary

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akua-travel/akua-api/internal/types"
)

func newTestSerperServer(t *testing.T, results int, status int) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))

		if status >= 400 {
			w.WriteHeader(status)
			return
		}

		var body serperResponse
		for i := 0; i < results; i++ {
			body.Organic = append(body.Organic, struct {
				Title   string `json:"title"`
				Snippet string `json:"snippet"`
				Link    string `json:"link"`
			}{
				Title:   "Resultado",
				Snippet: "algo que hacer",
				Link:    "https://example.com",
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func testTrip() types.TripRequest {
	return types.TripRequest{
		City:    "Cartagena",
		Country: "Colombia",
		Days:    3,
		Budget:  "200.000 COP",
	}
}

func TestSerperClientEnrich(t *testing.T) {
	logger := slog.Default()

	t.Run("missing API key is a configuration error", func(t *testing.T) {
		client := NewSerperClient(SerperConfig{}, nil, logger)

		_, err := client.Enrich(context.Background(), testTrip())
		require.ErrorIs(t, err, types.ErrSearchNotConfigured)
	})

	t.Run("caps the digest at five results", func(t *testing.T) {
		srv, _ := newTestSerperServer(t, 9, http.StatusOK)
		client := NewSerperClient(SerperConfig{APIKey: "test-key", Endpoint: srv.URL}, srv.Client(), logger)

		digest, err := client.Enrich(context.Background(), testTrip())
		require.NoError(t, err)
		assert.Len(t, digest.Results, 5)
		assert.False(t, digest.Empty())
	})

	t.Run("provider failure degrades to an empty digest", func(t *testing.T) {
		srv, _ := newTestSerperServer(t, 0, http.StatusTooManyRequests)
		client := NewSerperClient(SerperConfig{APIKey: "test-key", Endpoint: srv.URL}, srv.Client(), logger)

		digest, err := client.Enrich(context.Background(), testTrip())
		require.NoError(t, err)
		assert.True(t, digest.Empty())
		assert.NotEmpty(t, digest.Query)
	})

	t.Run("repeated queries hit the cache", func(t *testing.T) {
		srv, calls := newTestSerperServer(t, 3, http.StatusOK)
		client := NewSerperClient(SerperConfig{APIKey: "test-key", Endpoint: srv.URL}, srv.Client(), logger)

		_, err := client.Enrich(context.Background(), testTrip())
		require.NoError(t, err)
		_, err = client.Enrich(context.Background(), testTrip())
		require.NoError(t, err)

		assert.Equal(t, 1, *calls)
	})
}

func TestBuildQuery(t *testing.T) {
	trip := testTrip()
	trip.Interests = []string{"playas"}
	trip.EventType = "festivales"

	query := BuildQuery(trip)

	assert.Contains(t, query, "qué hacer en Cartagena Colombia")
	assert.Contains(t, query, "playas")
	assert.Contains(t, query, "festivales")
	assert.Contains(t, query, freshnessHint)
}

func TestDigestText(t *testing.T) {
	t.Run("empty digest renders nothing", func(t *testing.T) {
		assert.Empty(t, DigestText(types.EnrichmentDigest{Query: "algo"}))
	})

	t.Run("renders one line per result", func(t *testing.T) {
		text := DigestText(types.EnrichmentDigest{
			Query: "qué hacer en Cartagena",
			Results: []types.SearchResult{
				{Title: "Playa Blanca", Snippet: "la mejor playa", Link: "https://example.com/playa"},
			},
		})

		assert.Contains(t, text, "Resultados web recientes sobre el destino:")
		assert.Contains(t, text, "- Playa Blanca: la mejor playa (https://example.com/playa)")
	})
}
