package seismic

// ScoreRisk combines event magnitudes, daily rate, displacement anomalies,
// and depth into a 4-level qualitative label. The weights and thresholds
// form a fixed, auditable heuristic rather than a fitted model.
func ScoreRisk(events []Event, dailyRate float64, displacementAnomalies int) RiskLevel {
	return riskLevelForScore(riskScore(events, dailyRate, displacementAnomalies))
}

func riskScore(events []Event, dailyRate float64, displacementAnomalies int) int {
	var score int

	var anyM6, anyM7 bool
	var shallow int
	for _, e := range events {
		if e.Magnitude >= 6.0 {
			anyM6 = true
		}
		if e.Magnitude >= 7.0 {
			anyM7 = true
		}
		if e.DepthKm < 30 {
			shallow++
		}
	}

	if anyM6 {
		score += 3
	}
	if anyM7 {
		score += 2
	}

	switch {
	case dailyRate > 10:
		score += 2
	case dailyRate > 5:
		score++
	}

	switch {
	case displacementAnomalies > 3:
		score += 2
	case displacementAnomalies > 0:
		score++
	}

	if len(events) > 0 && float64(shallow)/float64(len(events)) > 0.7 {
		score++
	}

	return score
}

func riskLevelForScore(score int) RiskLevel {
	switch {
	case score >= 6:
		return RiskCritical
	case score >= 4:
		return RiskHigh
	case score >= 2:
		return RiskModerate
	default:
		return RiskLow
	}
}
