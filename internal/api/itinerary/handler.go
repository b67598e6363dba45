package itinerary

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
	itineraryService Service
	logger           *slog.Logger
}

func NewHandlerImpl(itineraryService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// GenerateRoute runs the itinerary pipeline for the authenticated user.
func (h *HandlerImpl) GenerateRoute(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateRoute", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/routes"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateRoute"))

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req types.TripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid trip payload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.itineraryService.Generate(ctx, userID, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to generate route", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, statusForError(err), messageForError(err))
		return
	}

	l.InfoContext(ctx, "Route generated",
		slog.String("city", req.City), slog.Bool("persisted", resp.Persisted))
	api.WriteJSONResponse(w, r, http.StatusCreated, resp)
}

// GetRoutes lists the authenticated user's stored routes.
func (h *HandlerImpl) GetRoutes(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetRoutes", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/routes"),
	))
	defer span.End()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	routes, err := h.itineraryService.GetRoutes(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list routes", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Could not list routes")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, routes)
}

// GetRoute returns one stored route by id.
func (h *HandlerImpl) GetRoute(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetRoute", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/routes/{routeID}"),
	))
	defer span.End()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	routeID, err := uuid.Parse(chi.URLParam(r, "routeID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid route ID")
		return
	}

	route, err := h.itineraryService.GetRoute(ctx, userID, routeID)
	if err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, statusForError(err), messageForError(err))
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, route)
}

// GetRouteMapLink returns the Google Maps directions link for a route.
func (h *HandlerImpl) GetRouteMapLink(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetRouteMapLink", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/routes/{routeID}/map"),
	))
	defer span.End()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	routeID, err := uuid.Parse(chi.URLParam(r, "routeID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid route ID")
		return
	}

	link, err := h.itineraryService.GetMapLink(ctx, userID, routeID)
	if err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, statusForError(err), messageForError(err))
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"map_link": link})
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
	case errors.Is(err, types.ErrSearchNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, types.ErrModelProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func messageForError(err error) string {
	switch {
	case errors.Is(err, types.ErrValidation):
		return err.Error()
	case errors.Is(err, types.ErrNotFound):
		return "Route not found"
	case errors.Is(err, types.ErrSearchNotConfigured):
		return "Search enrichment is not configured"
	case errors.Is(err, types.ErrModelProvider):
		return "The itinerary provider is unavailable"
	default:
		return "Internal server error"
	}
}
