package seismic

import "math"

// CatalogStats summarizes the magnitudes of a finite event set.
type CatalogStats struct {
	Average   float64
	Largest   float64
	Smallest  float64
	Histogram map[float64]int
}

// Summarize computes the magnitude summary and a 0.5-magnitude-bin histogram.
// An empty catalog is a valid input and yields all-zero summary values with an
// empty histogram, not an error.
func Summarize(events []Event) CatalogStats {
	stats := CatalogStats{Histogram: make(map[float64]int, len(events))}
	if len(events) == 0 {
		return stats
	}

	stats.Largest = math.Inf(-1)
	stats.Smallest = math.Inf(1)

	var sum float64
	for _, e := range events {
		sum += e.Magnitude
		stats.Largest = math.Max(stats.Largest, e.Magnitude)
		stats.Smallest = math.Min(stats.Smallest, e.Magnitude)
		stats.Histogram[magnitudeBin(e.Magnitude)]++
	}
	stats.Average = sum / float64(len(events))

	return stats
}

// magnitudeBin maps a magnitude to the lower edge of its 0.5-wide bin.
func magnitudeBin(magnitude float64) float64 {
	return math.Floor(magnitude*2) / 2
}
