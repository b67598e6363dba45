package types

import (
	"time"

	"github.com/google/uuid"
)

// Place is shared, mutably-rated state: it belongs to no single user.
// RatingAverage is always derived by the rating aggregation and never set
// directly by end users. RatingSeed is the pre-existing rating captured once
// at insert; when greater than zero it counts as one synthetic vote.
type Place struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"` // Derived from Name at first save, never recomputed.
	Description   string    `json:"description"`
	Categories    string    `json:"categories"` // Free-text label(s), comma-separated.
	City          string    `json:"city"`
	Department    string    `json:"department"`
	EstimatedCost float64   `json:"estimated_cost"`
	RatingSeed    float64   `json:"-"`
	RatingAverage float64   `json:"rating_average"`
	CreatedAt     time.Time `json:"created_at"`
}

// Review is a user's rating of a place. Qualification is an integer in [1,5].
type Review struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Qualification int       `json:"qualification"`
	UserID        uuid.UUID `json:"user_id"`
	PlaceID       uuid.UUID `json:"place_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreatePlaceRequest is the expected JSON body for adding a place to the
// catalogue. RatingSeed is optional and defaults to zero.
type CreatePlaceRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Categories    string  `json:"categories"`
	City          string  `json:"city"`
	Department    string  `json:"department"`
	EstimatedCost float64 `json:"estimated_cost"`
	RatingSeed    float64 `json:"rating_seed,omitempty"`
}

// CreateReviewRequest is the expected JSON body for reviewing a place.
type CreateReviewRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	Qualification int    `json:"qualification" binding:"required,min=1,max=5"`
}

// UpdateReviewRequest allows partial review updates.
type UpdateReviewRequest struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	Qualification *int    `json:"qualification,omitempty"`
}
