package itinerary

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractWaypoints(t *testing.T) {
	t.Run("keeps place names and drops scaffolding", func(t *testing.T) {
		content := "**Día 1**: visita la **Catedral de San Jerónimo** y el **Parque Simón Bolívar**. " +
			"**Almuerzo típico** en el centro. **Costo total**: **$50.000 COP**."

		waypoints := ExtractWaypoints(content)

		assert.Equal(t, []string{"Catedral de San Jerónimo", "Parque Simón Bolívar"}, waypoints)
	})

	t.Run("rejects fragments shorter than five characters", func(t *testing.T) {
		waypoints := ExtractWaypoints("**Cali** es hermosa, visita el **Museo La Tertulia**")
		assert.Equal(t, []string{"Museo La Tertulia"}, waypoints)
	})

	t.Run("rejects fragments starting with digits or currency", func(t *testing.T) {
		waypoints := ExtractWaypoints("**20.000 pesos entrada** al **Castillo de San Felipe**, o **$15.000 aprox**")
		assert.Equal(t, []string{"Castillo de San Felipe"}, waypoints)
	})

	t.Run("deduplicates preserving first appearance", func(t *testing.T) {
		content := "**Plaza Botero**, luego **Museo de Antioquia**, y de regreso a **plaza botero**"
		waypoints := ExtractWaypoints(content)
		assert.Equal(t, []string{"Plaza Botero", "Museo de Antioquia"}, waypoints)
	})

	t.Run("caps the list at nine waypoints", func(t *testing.T) {
		var b strings.Builder
		for i := 1; i <= 12; i++ {
			fmt.Fprintf(&b, "**Lugar Turístico Número %c** ", 'A'+i-1)
		}
		waypoints := ExtractWaypoints(b.String())
		assert.Len(t, waypoints, 9)
		assert.Equal(t, "Lugar Turístico Número A", waypoints[0])
	})

	t.Run("returns nil when there is no emphasis", func(t *testing.T) {
		assert.Empty(t, ExtractWaypoints("Un día tranquilo sin lugares resaltados."))
	})
}

func TestExtractMapLink(t *testing.T) {
	t.Run("encodes the destination", func(t *testing.T) {
		link := ExtractMapLink("sin lugares", "Montería", "Colombia")

		assert.Contains(t, link, "destination=Monter%C3%ADa%2C+Colombia")
		assert.Contains(t, link, "travelmode=driving")
		assert.NotContains(t, link, "waypoints=")
	})

	t.Run("qualifies waypoints with the destination", func(t *testing.T) {
		content := "Visita el **Ronda del Sinú** y la **Catedral San Jerónimo**"
		link := ExtractMapLink(content, "Montería", "Colombia")

		assert.Contains(t, link, "waypoints=")
		assert.Contains(t, link, "Ronda+del+Sin%C3%BA%2C+Monter%C3%ADa%2C+Colombia")
		assert.Contains(t, link, "%7C")
	})

	t.Run("always starts with the directions base", func(t *testing.T) {
		link := ExtractMapLink("", "Bogotá", "Colombia")
		assert.True(t, strings.HasPrefix(link, "https://www.google.com/maps/dir/?api=1&destination="))
	})
}
