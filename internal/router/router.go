package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/akua-travel/akua-api/internal/api/auth"
	"github.com/akua-travel/akua-api/internal/api/itinerary"
	"github.com/akua-travel/akua-api/internal/api/place"
)

// Config carries the handlers and middleware the router wires together.
type Config struct {
	AuthHandler            *auth.HandlerImpl
	ItineraryHandler       *itinerary.HandlerImpl
	PlaceHandler           *place.HandlerImpl
	AuthenticateMiddleware func(http.Handler) http.Handler
}

// SetupRouter builds the application router. Server-wide middleware
// (request ID, logger, recoverer) is applied in main before mounting.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
			r.Post("/auth/refresh", cfg.AuthHandler.RefreshSession)

			r.Get("/places", cfg.PlaceHandler.ListPlaces)
			r.Get("/places/{slug}", cfg.PlaceHandler.GetPlace)
			r.Get("/places/{slug}/reviews", cfg.PlaceHandler.ListReviews)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Post("/auth/logout", cfg.AuthHandler.Logout)

			r.Post("/routes", cfg.ItineraryHandler.GenerateRoute)
			r.Get("/routes", cfg.ItineraryHandler.GetRoutes)
			r.Get("/routes/{routeID}", cfg.ItineraryHandler.GetRoute)
			r.Get("/routes/{routeID}/map", cfg.ItineraryHandler.GetRouteMapLink)

			r.Post("/places", cfg.PlaceHandler.CreatePlace)
			r.Post("/places/{slug}/reviews", cfg.PlaceHandler.CreateReview)
			r.Patch("/reviews/{reviewID}", cfg.PlaceHandler.UpdateReview)
			r.Delete("/reviews/{reviewID}", cfg.PlaceHandler.DeleteReview)
		})
	})

	return r
}
