package itinerary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akua-travel/akua-api/internal/types"
)

func TestBuildPrompt(t *testing.T) {
	t.Run("includes destination, days and budget", func(t *testing.T) {
		prompt := BuildPrompt(types.TripRequest{
			City:    "Cartagena",
			Country: "Colombia",
			Days:    3,
			Budget:  "200.000 COP",
		})

		assert.Contains(t, prompt, "Cartagena, Colombia")
		assert.Contains(t, prompt, "para 3 días")
		assert.Contains(t, prompt, "200.000 COP por persona por día")
	})

	t.Run("asks for one section per day", func(t *testing.T) {
		prompt := BuildPrompt(types.TripRequest{
			City:    "Medellín",
			Country: "Colombia",
			Days:    5,
			Budget:  "150.000 COP",
		})

		assert.Contains(t, prompt, "exactamente 5 secciones")
		assert.Contains(t, prompt, "(Día 1 a Día 5)")
		assert.Contains(t, prompt, "resaltando en negrita (**así**) los nombres de los lugares")
	})

	t.Run("omits interests clause when no interests given", func(t *testing.T) {
		prompt := BuildPrompt(types.TripRequest{
			City:    "Cali",
			Country: "Colombia",
			Days:    2,
			Budget:  "100.000 COP",
		})

		assert.NotContains(t, prompt, "interesado en")
	})

	t.Run("joins interests and event type", func(t *testing.T) {
		prompt := BuildPrompt(types.TripRequest{
			City:      "Cali",
			Country:   "Colombia",
			Days:      2,
			Budget:    "100.000 COP",
			Interests: []string{"gastronomía", "salsa"},
			EventType: "conciertos",
		})

		assert.Contains(t, prompt, "interesado en gastronomía, salsa")
		assert.Contains(t, prompt, "y eventos tipo conciertos")
	})

	t.Run("prioritizes the lodging neighborhood", func(t *testing.T) {
		prompt := BuildPrompt(types.TripRequest{
			City:         "Bogotá",
			Country:      "Colombia",
			Days:         4,
			Budget:       "250.000 COP",
			Neighborhood: "La Candelaria",
		})

		assert.Contains(t, prompt, "la zona La Candelaria")
		assert.Contains(t, prompt, "cercanos a esa zona")
	})

	t.Run("closes with the summary section", func(t *testing.T) {
		prompt := BuildPrompt(types.TripRequest{
			City:    "Santa Marta",
			Country: "Colombia",
			Days:    1,
			Budget:  "120.000 COP",
		})

		assert.True(t, strings.HasSuffix(prompt, "recomendaciones y resumen del viaje."))
	})
}
