package seismic

import "math"

// AssessHazard converts event counts over the window into a daily rate and
// per-threshold Poisson exceedance probabilities. The probability is that of
// at least one event at or above the threshold within one window:
// 1 − e^(−rate).
func AssessHazard(events []Event, windowDays float64, thresholds []float64) Hazard {
	hazard := Hazard{
		DailyRate:  float64(len(events)) / windowDays,
		Exceedance: make([]ExceedanceProbability, 0, len(thresholds)),
	}

	for _, threshold := range thresholds {
		var count int
		for _, e := range events {
			if e.Magnitude >= threshold {
				count++
			}
		}
		rate := float64(count) / windowDays
		hazard.Exceedance = append(hazard.Exceedance, ExceedanceProbability{
			Magnitude:   threshold,
			Probability: 1 - math.Exp(-rate),
		})
	}

	return hazard
}
