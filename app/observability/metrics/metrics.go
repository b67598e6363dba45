package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	RouteGenerationsTotal    metric.Int64Counter
	RouteGenerationSeconds   metric.Float64Histogram
	SearchEnrichmentEmpty    metric.Int64Counter
	RatingRecomputesTotal    metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("AkuaAPI")
		var err error
		m := &AppMetrics{}

		m.RouteGenerationsTotal, err = meter.Int64Counter(
			"route_generations_total",
			metric.WithDescription("Total number of itinerary generations attempted"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create route_generations_total: %v", err)
		}

		m.RouteGenerationSeconds, err = meter.Float64Histogram(
			"route_generation_duration_seconds",
			metric.WithDescription("Duration of itinerary generations in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create route_generation_duration_seconds: %v", err)
		}

		m.SearchEnrichmentEmpty, err = meter.Int64Counter(
			"search_enrichment_empty_total",
			metric.WithDescription("Total number of search enrichment calls that produced no digest"),
			metric.WithUnit("{call}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create search_enrichment_empty_total: %v", err)
		}

		m.RatingRecomputesTotal, err = meter.Int64Counter(
			"rating_recomputes_total",
			metric.WithDescription("Total number of place rating recomputations"),
			metric.WithUnit("{recompute}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create rating_recomputes_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
