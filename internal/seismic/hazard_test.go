package seismic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessHazard_DailyRate(t *testing.T) {
	events := magnitudesToEvents(3, 3, 3, 3, 3, 3, 3, 3, 3, 3)
	hazard := AssessHazard(events, 5, DefaultParams().HazardThresholds)

	assert.Equal(t, 2.0, hazard.DailyRate)
}

func TestAssessHazard_ExceedanceProbabilities(t *testing.T) {
	// Three events at M>=5, one at M>=6, none at M>=7, over 5 days.
	events := magnitudesToEvents(4.0, 4.5, 5.1, 5.5, 6.2)
	hazard := AssessHazard(events, 5, DefaultParams().HazardThresholds)

	assert.InDelta(t, 1-math.Exp(-0.6), hazard.ProbabilityAtLeast(5.0), 1e-9)
	assert.InDelta(t, 1-math.Exp(-0.2), hazard.ProbabilityAtLeast(6.0), 1e-9)
	assert.Equal(t, 0.0, hazard.ProbabilityAtLeast(7.0))
}

func TestAssessHazard_EmptyCatalog(t *testing.T) {
	hazard := AssessHazard(nil, 7, DefaultParams().HazardThresholds)

	assert.Equal(t, 0.0, hazard.DailyRate)
	for _, e := range hazard.Exceedance {
		assert.Equal(t, 0.0, e.Probability)
	}
}

func TestAssessHazard_ProbabilityMonotonicInRate(t *testing.T) {
	// A faster catalog can never yield a lower exceedance probability.
	slow := AssessHazard(magnitudesToEvents(5.1, 5.2), 10, []float64{5.0})
	fast := AssessHazard(magnitudesToEvents(5.1, 5.2, 5.3, 5.4, 5.5), 10, []float64{5.0})

	assert.LessOrEqual(t, slow.ProbabilityAtLeast(5.0), fast.ProbabilityAtLeast(5.0))
}

func TestHazard_ProbabilityAtLeast_UnknownThreshold(t *testing.T) {
	hazard := AssessHazard(magnitudesToEvents(5.5), 1, []float64{5.0})
	assert.Equal(t, 0.0, hazard.ProbabilityAtLeast(8.0))
}
