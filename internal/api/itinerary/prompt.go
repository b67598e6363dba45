package itinerary

import (
	"fmt"
	"strings"

	"github.com/akua-travel/akua-api/internal/types"
)

// BuildPrompt renders the base generation instruction from trip parameters.
// Pure text assembly, no I/O.
func BuildPrompt(trip types.TripRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Genera una ruta turística personalizada en %s, %s, para %d días, con un presupuesto aproximado de %s por persona por día. ",
		trip.City, trip.Country, trip.Days, trip.Budget)

	if len(trip.Interests) > 0 {
		fmt.Fprintf(&b, "El viajero está interesado en %s", strings.Join(trip.Interests, ", "))
		if trip.EventType != "" {
			fmt.Fprintf(&b, " y eventos tipo %s", trip.EventType)
		}
		b.WriteString(". ")
	} else if trip.EventType != "" {
		fmt.Fprintf(&b, "El viajero está interesado en eventos tipo %s. ", trip.EventType)
	}

	if trip.Neighborhood != "" {
		fmt.Fprintf(&b, "El hospedaje está en la zona %s; prioriza actividades y lugares cercanos a esa zona. ", trip.Neighborhood)
	}

	fmt.Fprintf(&b, "Organiza la respuesta en exactamente %d secciones, una por día (Día 1 a Día %d), con actividades, costos estimados y lugares relevantes, resaltando en negrita (**así**) los nombres de los lugares. ",
		trip.Days, trip.Days)
	b.WriteString("Cierra con una sección final de recomendaciones y resumen del viaje.")

	return b.String()
}
