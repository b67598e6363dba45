package place

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/akua-travel/akua-api/internal/api"
	"github.com/akua-travel/akua-api/internal/api/auth"
	"github.com/akua-travel/akua-api/internal/types"
)

type HandlerImpl struct {
	placeService Service
	logger       *slog.Logger
}

func NewHandlerImpl(placeService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		placeService: placeService,
		logger:       logger,
	}
}

// ListPlaces returns the whole catalogue.
func (h *HandlerImpl) ListPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlaceHandler").Start(r.Context(), "ListPlaces", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places"),
	))
	defer span.End()

	places, err := h.placeService.ListPlaces(ctx)
	if err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Could not list places")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, places)
}

// GetPlace returns one place by slug.
func (h *HandlerImpl) GetPlace(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlaceHandler").Start(r.Context(), "GetPlace", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places/{slug}"),
	))
	defer span.End()

	p, err := h.placeService.GetPlaceBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, statusForError(err), messageForError(err))
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, p)
}

// CreatePlace adds a place to the catalogue.
func (h *HandlerImpl) CreatePlace(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlaceHandler").Start(r.Context(), "CreatePlace", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CreatePlace"))

	var req types.CreatePlaceRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid place payload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.placeService.CreatePlace(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create place", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, statusForError(err), messageForError(err))
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, p)
}

// ListReviews returns all reviews for a place.
func (h *HandlerImpl) ListReviews(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlaceHandler").Start(r.Context(), "ListReviews", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places/{slug}/reviews"),
	))
	defer span.End()

	reviews, err := h.placeService.ListReviews(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, statusForError(err), messageForError(err))
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, reviews)
}

// CreateReview records the authenticated user's review of a place.
func (h *HandlerImpl) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlaceHandler").Start(r.Context(), "CreateReview", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/places/{slug}/reviews"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CreateReview"))

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req types.CreateReviewRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid review payload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	review, err := h.placeService.CreateReview(ctx, userID, chi.URLParam(r, "slug"), req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create review", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, statusForError(err), messageForError(err))
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, review)
}

// UpdateReview partially updates the authenticated user's review.
func (h *HandlerImpl) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlaceHandler").Start(r.Context(), "UpdateReview", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/reviews/{reviewID}"),
	))
	defer span.End()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid review ID")
		return
	}

	var req types.UpdateReviewRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	review, err := h.placeService.UpdateReview(ctx, userID, reviewID, req)
	if err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, statusForError(err), messageForError(err))
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, review)
}

// DeleteReview removes the authenticated user's review.
func (h *HandlerImpl) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlaceHandler").Start(r.Context(), "DeleteReview", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/reviews/{reviewID}"),
	))
	defer span.End()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid review ID")
		return
	}

	if err := h.placeService.DeleteReview(ctx, userID, reviewID); err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, statusForError(err), messageForError(err))
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, api.Response{Success: true, Message: "Review deleted"})
}

func (h *HandlerImpl) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(idStr)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid user identity")
		return uuid.Nil, false
	}
	return userID, true
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func messageForError(err error) string {
	switch {
	case errors.Is(err, types.ErrValidation):
		return err.Error()
	case errors.Is(err, types.ErrNotFound):
		return "Not found"
	case errors.Is(err, types.ErrForbidden):
		return "You do not own this review"
	default:
		return "Internal server error"
	}
}
