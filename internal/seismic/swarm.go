package seismic

import (
	"math"
	"sort"
)

// Temporal-evolution labels for classified sequences.
const (
	EvolutionAccelerating = "Accelerating sequence"
	EvolutionDecaying     = "Decaying sequence"
	EvolutionVariable     = "Variable rate sequence"
	EvolutionInsufficient = "Insufficient data"
)

// ClassifySequence partitions a time-ordered event set into
// foreshock/mainshock/aftershock roles and labels the sequence. It is pure
// and never fails: fewer than 3 events yields the insufficient-data result
// with IsSwarm false and no mainshock.
//
// The mainshock is the maximum-magnitude event, first occurrence winning ties
// after the time sort. A sequence whose magnitude range is below
// p.SwarmMaxMagnitudeRange with more than p.SwarmMinEventCount events is a
// swarm; the mainshock is withheld from swarm results to signal the absence
// of a single dominant shock.
func ClassifySequence(events []Event, p Params) SwarmClassification {
	if len(events) < 3 {
		return SwarmClassification{
			EventCount:        len(events),
			TemporalEvolution: EvolutionInsufficient,
			Significance:      "low",
		}
	}

	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	mainIdx := 0
	for i, e := range sorted {
		if e.Magnitude > sorted[mainIdx].Magnitude {
			mainIdx = i
		}
	}
	mainshock := sorted[mainIdx]

	var foreshocks, aftershocks []Event
	for _, e := range sorted {
		switch {
		case e.Time.Before(mainshock.Time):
			foreshocks = append(foreshocks, e)
		case e.Time.After(mainshock.Time):
			aftershocks = append(aftershocks, e)
		}
	}

	smallest := sorted[0].Magnitude
	for _, e := range sorted {
		smallest = math.Min(smallest, e.Magnitude)
	}
	magnitudeRange := mainshock.Magnitude - smallest

	durationHours := sorted[len(sorted)-1].Time.Sub(sorted[0].Time).Hours()
	extent := spatialExtentKm(sorted)

	classification := SwarmClassification{
		IsSwarm:           magnitudeRange < p.SwarmMaxMagnitudeRange && len(sorted) > p.SwarmMinEventCount,
		EventCount:        len(sorted),
		StartTime:         sorted[0].Time,
		DurationHours:     durationHours,
		Foreshocks:        foreshocks,
		Aftershocks:       aftershocks,
		Productivity:      float64(len(aftershocks)) / math.Pow(10, mainshock.Magnitude-3),
		SpatialExtentKm:   extent,
		TemporalEvolution: temporalEvolution(sorted),
		Significance:      sequenceSignificance(mainshock.Magnitude, len(sorted), durationHours, extent),
	}
	if !classification.IsSwarm {
		classification.Mainshock = &mainshock
	}

	return classification
}

// spatialExtentKm is the great-circle distance between the bounding box's
// (min-lat, min-lon) and (max-lat, max-lon) corners. It approximates
// spatial spread rather than a true diameter.
func spatialExtentKm(events []Event) float64 {
	minLat, maxLat := events[0].Latitude, events[0].Latitude
	minLon, maxLon := events[0].Longitude, events[0].Longitude
	for _, e := range events[1:] {
		minLat = math.Min(minLat, e.Latitude)
		maxLat = math.Max(maxLat, e.Latitude)
		minLon = math.Min(minLon, e.Longitude)
		maxLon = math.Max(maxLon, e.Longitude)
	}
	return DistanceKm(minLat, minLon, maxLat, maxLon)
}

// temporalEvolution splits the time-sorted sequence into three equal-sized
// contiguous windows and compares per-window event rates. Zero-duration
// windows divide to +Inf, which can never satisfy a strict increase, so
// degenerate timing falls through to the variable label.
func temporalEvolution(sorted []Event) string {
	third := len(sorted) / 3
	windows := [][]Event{
		sorted[:third],
		sorted[third : 2*third],
		sorted[2*third:],
	}

	rates := make([]float64, len(windows))
	for i, w := range windows {
		span := w[len(w)-1].Time.Sub(w[0].Time).Hours()
		rates[i] = float64(len(w)) / span
	}

	switch {
	case rates[0] < rates[1] && rates[1] < rates[2]:
		return EvolutionAccelerating
	case rates[0] > rates[1] && rates[1] > rates[2]:
		return EvolutionDecaying
	default:
		return EvolutionVariable
	}
}

func sequenceSignificance(maxMagnitude float64, count int, durationHours, extentKm float64) string {
	rate := float64(count) / durationHours
	switch {
	case maxMagnitude >= 5.0 || rate > 5 || extentKm > 50:
		return "high"
	case maxMagnitude >= 4.0 || rate > 2 || extentKm > 20:
		return "moderate"
	default:
		return "low"
	}
}
