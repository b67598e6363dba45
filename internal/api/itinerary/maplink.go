package itinerary

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

const (
	mapsDirBase  = "https://www.google.com/maps/dir/?api=1"
	maxWaypoints = 9
)

var emphasisPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// stopWords rejects emphasized fragments that are itinerary scaffolding
// rather than place names. Matching is accent-insensitive where variants
// are common.
var stopWords = []string{
	"día", "dia", "day",
	"desayuno", "almuerzo", "cena",
	"mañana", "tarde", "noche",
	"costo", "precio", "presupuesto", "total",
	"resumen", "recomendacion", "recomendación", "consejo",
	"itinerario", "opcional", "nota:",
}

// ExtractWaypoints pulls candidate place names from the bold-marked
// fragments of an itinerary text. Fragments shorter than five runes,
// starting with a digit or currency symbol, or containing a stop word
// are discarded. Order of first appearance is preserved, duplicates
// dropped, and the list is capped at nine entries.
func ExtractWaypoints(content string) []string {
	matches := emphasisPattern.FindAllStringSubmatch(content, -1)
	seen := make(map[string]bool, len(matches))
	var waypoints []string
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		if !isPlaceName(name) {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		waypoints = append(waypoints, name)
		if len(waypoints) == maxWaypoints {
			break
		}
	}
	return waypoints
}

func isPlaceName(name string) bool {
	runes := []rune(name)
	if len(runes) < 5 {
		return false
	}
	first := runes[0]
	if unicode.IsDigit(first) || unicode.Is(unicode.Sc, first) {
		return false
	}
	lower := strings.ToLower(name)
	for _, w := range stopWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	return true
}

// ExtractMapLink builds a Google Maps directions URL for the itinerary.
// The destination is always "<city>, <country>"; waypoints, when found,
// are qualified with the same suffix so geocoding stays local.
func ExtractMapLink(content, city, country string) string {
	destination := fmt.Sprintf("%s, %s", city, country)
	link := mapsDirBase + "&destination=" + url.QueryEscape(destination)

	waypoints := ExtractWaypoints(content)
	if len(waypoints) > 0 {
		qualified := make([]string, len(waypoints))
		for i, wp := range waypoints {
			qualified[i] = url.QueryEscape(fmt.Sprintf("%s, %s", wp, destination))
		}
		link += "&waypoints=" + strings.Join(qualified, "%7C")
	}

	return link + "&travelmode=driving"
}
