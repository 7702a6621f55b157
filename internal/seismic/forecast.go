package seismic

import "math"

// ForecastMethodology is the fixed methodology statement attached to every
// forecast.
const ForecastMethodology = "Gutenberg-Richter magnitude-frequency extrapolation with Poisson occurrence model"

// forecastLimitations is emitted verbatim with every forecast. Forecasting is
// descriptive extrapolation, and the output must say so.
var forecastLimitations = []string{
	"Forecast assumes historical seismicity patterns continue unchanged",
	"No fault-mechanics or stress-transfer modeling is performed",
	"Earthquake prediction remains a scientifically unsolved problem",
	"Probabilities are statistical estimates, not deterministic predictions",
}

// maxForecastConfidence caps forecast confidence below the descriptive
// analysis cap (0.95) to reflect the non-deterministic nature of forecasting.
const maxForecastConfidence = 0.7

// projectForecast extrapolates magnitude-specific exceedance probabilities
// over the horizon from the analysis's fitted daily rate and b-value. For
// each threshold m the projected rate is λ·10^(−b·(m − ref)) and the
// exceedance probability 1 − e^(−rate·horizon).
func projectForecast(analysis *Analysis, horizonDays int, p Params) *Forecast {
	lambda := analysis.Hazard.DailyRate
	b := analysis.GutenbergRichter.BValue

	probabilities := make([]ExceedanceProbability, 0, len(p.ForecastThresholds))
	for _, m := range p.ForecastThresholds {
		rate := lambda * math.Pow(10, -b*(m-p.ForecastReferenceMagnitude))
		probabilities = append(probabilities, ExceedanceProbability{
			Magnitude:   m,
			Probability: 1 - math.Exp(-rate*float64(horizonDays)),
		})
	}

	riskLevel := forecastRiskLevel(probabilities)

	return &Forecast{
		Region:          analysis.Region,
		HorizonDays:     horizonDays,
		Probabilities:   probabilities,
		ExpectedEvents:  lambda * float64(horizonDays),
		RiskLevel:       riskLevel,
		Confidence:      forecastConfidence(analysis),
		Methodology:     ForecastMethodology,
		Limitations:     forecastLimitations,
		Recommendations: recommendationsForRisk(riskLevel),
	}
}

// forecastConfidence starts at 0.3 and grows with catalog size, a b-value in
// the typical tectonic range, and displacement station coverage, capped at
// 0.7.
func forecastConfidence(analysis *Analysis) float64 {
	confidence := 0.3
	if analysis.EventCount > 100 {
		confidence += 0.2
	}
	if b := analysis.GutenbergRichter.BValue; b > 0.7 && b < 1.3 {
		confidence += 0.1
	}
	if len(analysis.Displacements) >= 5 {
		confidence += 0.1
	}
	return math.Min(confidence, maxForecastConfidence)
}

func forecastRiskLevel(probabilities []ExceedanceProbability) RiskLevel {
	prob := func(m float64) float64 {
		for _, e := range probabilities {
			if e.Magnitude == m {
				return e.Probability
			}
		}
		return 0
	}

	switch {
	case prob(7) > 0.1 || prob(6) > 0.3:
		return RiskCritical
	case prob(6) > 0.1 || prob(5) > 0.5:
		return RiskHigh
	case prob(5) > 0.2 || prob(4) > 0.7:
		return RiskModerate
	default:
		return RiskLow
	}
}

func recommendationsForRisk(level RiskLevel) []string {
	base := []string{
		"Continue routine catalog and GNSS monitoring",
		"Review results against regional seismic network bulletins",
	}
	switch level {
	case RiskCritical:
		return append([]string{
			"Activate emergency response coordination with local authorities",
			"Increase monitoring cadence to real-time",
			"Verify structural readiness of critical infrastructure",
		}, base...)
	case RiskHigh:
		return append([]string{
			"Increase monitoring cadence for this region",
			"Brief emergency management contacts on elevated hazard",
		}, base...)
	case RiskModerate:
		return append([]string{
			"Schedule a follow-up analysis within 7 days",
		}, base...)
	default:
		return base
	}
}
