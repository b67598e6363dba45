package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/akua-travel/akua-api/internal/types"
)

// freshnessHint is appended to every search query to bias the provider
// toward recent, season-relevant results.
const freshnessHint = "2025"

// maxDigestEntries caps the number of results injected into the prompt.
const maxDigestEntries = 5

// SearchClient produces a web digest for a trip request.
type SearchClient interface {
	Enrich(ctx context.Context, trip types.TripRequest) (types.EnrichmentDigest, error)
}

// SerperConfig holds the search provider settings. APIKey comes from the
// environment; everything else from config.
type SerperConfig struct {
	APIKey      string
	Endpoint    string
	ResultLimit int
	CountryHint string
	LocaleHint  string
	CacheTTL    time.Duration
}

var _ SearchClient = (*SerperClient)(nil)

// SerperClient queries the search provider over JSON HTTP and reduces the
// organic results to a short digest. Responses are cached per query.
type SerperClient struct {
	cfg        SerperConfig
	httpClient *http.Client
	cache      *gocache.Cache
	logger     *slog.Logger
}

func NewSerperClient(cfg SerperConfig, httpClient *http.Client, logger *slog.Logger) *SerperClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://google.serper.dev/search"
	}
	if cfg.ResultLimit <= 0 || cfg.ResultLimit > 15 {
		cfg.ResultLimit = 10
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &SerperClient{
		cfg:        cfg,
		httpClient: httpClient,
		cache:      gocache.New(ttl, 2*ttl),
		logger:     logger,
	}
}

type serperRequest struct {
	Query   string `json:"q"`
	Num     int    `json:"num,omitempty"`
	Country string `json:"gl,omitempty"`
	Locale  string `json:"hl,omitempty"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic"`
}

// BuildQuery derives the provider query from trip parameters.
func BuildQuery(trip types.TripRequest) string {
	parts := []string{"qué hacer en", trip.City, trip.Country}
	parts = append(parts, trip.Interests...)
	if trip.EventType != "" {
		parts = append(parts, trip.EventType)
	}
	parts = append(parts, freshnessHint)
	return strings.Join(parts, " ")
}

// Enrich builds the search digest for a trip. A missing API key is a hard
// configuration error; provider failures degrade to an empty digest.
func (c *SerperClient) Enrich(ctx context.Context, trip types.TripRequest) (types.EnrichmentDigest, error) {
	if c.cfg.APIKey == "" {
		return types.EnrichmentDigest{}, types.ErrSearchNotConfigured
	}

	query := BuildQuery(trip)
	digest := types.EnrichmentDigest{Query: query}

	if cached, found := c.cache.Get(query); found {
		return cached.(types.EnrichmentDigest), nil
	}

	results, err := c.search(ctx, query)
	if err != nil {
		c.logger.WarnContext(ctx, "Search enrichment failed, continuing without digest",
			slog.String("query", query), slog.Any("error", err))
		return digest, nil
	}

	if len(results) > maxDigestEntries {
		results = results[:maxDigestEntries]
	}
	digest.Results = results

	c.cache.Set(query, digest, gocache.DefaultExpiration)
	return digest, nil
}

func (c *SerperClient) search(ctx context.Context, query string) ([]types.SearchResult, error) {
	payload, err := json.Marshal(serperRequest{
		Query:   query,
		Num:     c.cfg.ResultLimit,
		Country: c.cfg.CountryHint,
		Locale:  c.cfg.LocaleHint,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSearchProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: status %s", types.ErrSearchProvider, resp.Status)
	}

	var parsed serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", types.ErrSearchProvider, err)
	}

	// A missing organic key means "no enrichment", not an error
	results := make([]types.SearchResult, 0, len(parsed.Organic))
	for _, item := range parsed.Organic {
		if item.Title == "" && item.Link == "" {
			continue
		}
		results = append(results, types.SearchResult{Title: item.Title, Snippet: item.Snippet, Link: item.Link})
	}
	return results, nil
}

// DigestText renders the digest as a prompt fragment.
func DigestText(d types.EnrichmentDigest) string {
	if d.Empty() {
		return ""
	}
	var b strings.Builder
	b.WriteString("Resultados web recientes sobre el destino:\n")
	for _, r := range d.Results {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", r.Title, r.Snippet, r.Link)
	}
	return b.String()
}
