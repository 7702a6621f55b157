package seismic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forecastBaseAnalysis() *Analysis {
	return &Analysis{
		Region:           Region{Latitude: 35, Longitude: -118, RadiusKm: 100, WindowDays: 30, MinMagnitude: 2.5},
		EventCount:       60,
		GutenbergRichter: GutenbergRichter{BValue: 1.0, AValue: 3.3, Completeness: 2.5},
		Hazard:           Hazard{DailyRate: 2.0},
	}
}

func TestProjectForecast_Probabilities(t *testing.T) {
	forecast := projectForecast(forecastBaseAnalysis(), 30, DefaultParams())

	require.Len(t, forecast.Probabilities, 4)

	// rate(M4) = 2 * 10^(-1*(4-2.5)), exceedance over 30 days.
	expected := 1 - math.Exp(-2*math.Pow(10, -1.5)*30)
	assert.Equal(t, 4.0, forecast.Probabilities[0].Magnitude)
	assert.InDelta(t, expected, forecast.Probabilities[0].Probability, 1e-9)

	// Probabilities fall as the threshold rises.
	for i := 1; i < len(forecast.Probabilities); i++ {
		assert.Less(t, forecast.Probabilities[i].Probability, forecast.Probabilities[i-1].Probability)
	}

	assert.InDelta(t, 60.0, forecast.ExpectedEvents, 1e-9)
	assert.Equal(t, ForecastMethodology, forecast.Methodology)
	assert.Len(t, forecast.Limitations, 4)
	assert.NotEmpty(t, forecast.Recommendations)
}

func TestForecastConfidence_Accumulation(t *testing.T) {
	tests := []struct {
		name       string
		eventCount int
		bValue     float64
		stations   int
		expected   float64
	}{
		{"floor", 10, 2.0, 0, 0.3},
		{"big catalog", 150, 2.0, 0, 0.5},
		{"typical b-value", 10, 1.0, 0, 0.4},
		{"station coverage", 10, 2.0, 5, 0.4},
		{"everything caps at 0.7", 150, 1.0, 12, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := forecastBaseAnalysis()
			analysis.EventCount = tt.eventCount
			analysis.GutenbergRichter.BValue = tt.bValue
			analysis.Displacements = make([]Displacement, tt.stations)

			assert.InDelta(t, tt.expected, forecastConfidence(analysis), 1e-9)
		})
	}
}

func TestForecastConfidence_NeverExceedsCap(t *testing.T) {
	analysis := forecastBaseAnalysis()
	analysis.EventCount = 100000
	analysis.Displacements = make([]Displacement, 500)
	analysis.GutenbergRichter.BValue = 1.0

	assert.LessOrEqual(t, forecastConfidence(analysis), 0.7)
}

func TestForecastRiskLevel_Mapping(t *testing.T) {
	probs := func(p4, p5, p6, p7 float64) []ExceedanceProbability {
		return []ExceedanceProbability{
			{Magnitude: 4, Probability: p4},
			{Magnitude: 5, Probability: p5},
			{Magnitude: 6, Probability: p6},
			{Magnitude: 7, Probability: p7},
		}
	}

	tests := []struct {
		name  string
		probs []ExceedanceProbability
		level RiskLevel
	}{
		{"quiet", probs(0.1, 0.05, 0.01, 0.001), RiskLow},
		{"busy background", probs(0.8, 0.1, 0.01, 0.001), RiskModerate},
		{"moderate via M5", probs(0.5, 0.25, 0.01, 0.001), RiskModerate},
		{"high via M5", probs(0.9, 0.6, 0.05, 0.001), RiskHigh},
		{"high via M6", probs(0.9, 0.4, 0.15, 0.001), RiskHigh},
		{"critical via M6", probs(0.9, 0.8, 0.35, 0.05), RiskCritical},
		{"critical via M7", probs(0.9, 0.8, 0.05, 0.15), RiskCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.level, forecastRiskLevel(tt.probs))
		})
	}
}
