package seismic

import (
	"math"
	"sort"
)

// Default Gutenberg-Richter parameters returned when the catalog is too small
// for a meaningful fit. b=1.0 is the global tectonic average.
const (
	defaultBValue       = 1.0
	defaultAValue       = 3.0
	defaultCompleteness = 2.5

	minEventsForFit      = 10
	minEventsAboveCutoff = 5
)

// FitGutenbergRichter estimates the magnitude of completeness and fits the
// b-value and a-value with the Aki maximum-likelihood estimator over events
// at or above the cutoff. Catalogs with fewer than 10 events return the fixed
// defaults; so does a cutoff that leaves fewer than 5 events, keeping the
// scanned completeness magnitude in that case.
//
// The b-value denominator is mean(M) − (Mc − 0.05); when mean(M) equals
// Mc − 0.05 the result is ±Inf and is returned as-is.
func FitGutenbergRichter(events []Event, p Params) GutenbergRichter {
	if len(events) < minEventsForFit {
		return GutenbergRichter{BValue: defaultBValue, AValue: defaultAValue, Completeness: defaultCompleteness}
	}

	mc := completenessMagnitude(events, p.McMinBinCount)

	var above []float64
	for _, e := range events {
		if e.Magnitude >= mc {
			above = append(above, e.Magnitude)
		}
	}
	if len(above) < minEventsAboveCutoff {
		return GutenbergRichter{BValue: defaultBValue, AValue: defaultAValue, Completeness: mc}
	}

	var sum float64
	for _, m := range above {
		sum += m
	}
	mean := sum / float64(len(above))

	// Aki estimator with half-bin correction for 0.1-magnitude binning.
	b := math.Log10E / (mean - (mc - 0.05))
	a := math.Log10(float64(len(above))) + b*mc

	return GutenbergRichter{BValue: b, AValue: a, Completeness: mc}
}

// completenessMagnitude scans 0.1-magnitude bins in ascending order for the
// first bin, populated above minBinCount, whose successor bin holds strictly
// fewer events, the point where frequency begins a sustained decline. When
// no bin qualifies it falls back to min(M) + 0.5.
//
// This is a simplified heuristic, not the Wiemer-Wyss goodness-of-fit method.
func completenessMagnitude(events []Event, minBinCount int) float64 {
	bins := make(map[int]int)
	minMagnitude := math.Inf(1)
	for _, e := range events {
		bins[int(math.Floor(e.Magnitude*10))]++
		minMagnitude = math.Min(minMagnitude, e.Magnitude)
	}

	keys := make([]int, 0, len(bins))
	for k := range bins {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for i := 0; i < len(keys)-1; i++ {
		if bins[keys[i]] > minBinCount && bins[keys[i+1]] < bins[keys[i]] {
			return float64(keys[i]) / 10
		}
	}

	return minMagnitude + 0.5
}
