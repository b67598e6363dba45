package types

import (
	"time"

	"github.com/google/uuid"
)

// TripRequest holds the user-submitted parameters for one itinerary
// generation. It is never persisted on its own; the accepted values travel
// with the resulting RouteRecord.
type TripRequest struct {
	City         string   `json:"city" binding:"required" example:"Montería"`
	Country      string   `json:"country" binding:"required" example:"Colombia"`
	Days         int      `json:"days" binding:"required" example:"2"`
	Budget       string   `json:"budget" example:"200000"` // Free-form per-day per-person label, not validated numerically.
	Interests    []string `json:"interests,omitempty" example:"naturaleza,gastronomía"`
	EventType    string   `json:"event_type,omitempty" example:"festivales"`
	Neighborhood string   `json:"neighborhood,omitempty" example:"Centro"` // Lodging zone the itinerary should stay close to.
}

// SearchResult is one organic result from the web-search provider.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// EnrichmentDigest is a condensed view of web-search findings injected into
// the generation prompt. May be empty when the search step returned nothing.
type EnrichmentDigest struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// Empty reports whether the digest carries no results.
func (d EnrichmentDigest) Empty() bool {
	return len(d.Results) == 0
}

// RouteRecord is the persisted result of one itinerary generation: the trip
// parameters as accepted plus the full generated text. Created exactly once
// per successful generation and immutable thereafter.
type RouteRecord struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Days      int       `json:"days"`
	Budget    string    `json:"budget"`
	Content   string    `json:"content"` // Full generated itinerary text.
	CreatedAt time.Time `json:"created_at"`
}

// GenerateRouteResponse is returned by the generation endpoint. Persisted is
// false when the record could not be stored; the generated text is returned
// regardless.
type GenerateRouteResponse struct {
	Route     RouteRecord `json:"route"`
	MapLink   string      `json:"map_link"`
	Persisted bool        `json:"persisted"`
}
