package place

import "math"

// seededAverage computes a place's rating average. A positive seed acts
// as one extra baseline vote, so a place keeps its catalogue rating
// until real reviews outweigh it. With no seed the result is the plain
// mean of review qualifications. Rounded to two decimals.
func seededAverage(seed float64, qualifications []int) float64 {
	sum := 0.0
	for _, q := range qualifications {
		sum += float64(q)
	}

	var avg float64
	switch {
	case seed > 0:
		avg = (sum + seed) / float64(len(qualifications)+1)
	case len(qualifications) > 0:
		avg = sum / float64(len(qualifications))
	default:
		return 0
	}

	return math.Round(avg*100) / 100
}
