package seismic

import (
	"errors"
	"fmt"
	"time"
)

// Event is a single catalog earthquake as reported by the upstream catalog
// service. Events are read-only within this package.
type Event struct {
	ID            string    `json:"id"`
	Time          time.Time `json:"time"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	DepthKm       float64   `json:"depth_km"`
	Magnitude     float64   `json:"magnitude"`
	MagnitudeType string    `json:"magnitude_type,omitempty"`
	Place         string    `json:"place,omitempty"`
}

// Displacement is a crustal-displacement measurement from a single GNSS
// station. The anomaly flag is set upstream by threshold comparison.
type Displacement struct {
	Station        string  `json:"station"`
	DisplacementMm float64 `json:"displacement_mm"`
	Quality        string  `json:"quality"` // "excellent", "good", "fair", or "poor"
	Anomalous      bool    `json:"anomalous"`
}

// Region describes the spatial and temporal bounds of an analysis: a circle
// around a center point, a lookback window, and a magnitude floor.
type Region struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusKm     float64 `json:"radius_km"`
	WindowDays   int     `json:"window_days"`
	MinMagnitude float64 `json:"min_magnitude"`
}

// ErrInvalidRegion marks region validation failures so callers can map them
// to client errors.
var ErrInvalidRegion = errors.New("invalid region")

// Validate checks the region's bounds.
func (r Region) Validate() error {
	switch {
	case r.Latitude < -90 || r.Latitude > 90:
		return fmt.Errorf("%w: latitude %g out of range", ErrInvalidRegion, r.Latitude)
	case r.Longitude < -180 || r.Longitude > 180:
		return fmt.Errorf("%w: longitude %g out of range", ErrInvalidRegion, r.Longitude)
	case r.RadiusKm <= 0:
		return fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidRegion, r.RadiusKm)
	case r.WindowDays <= 0:
		return fmt.Errorf("%w: time window must be positive, got %d", ErrInvalidRegion, r.WindowDays)
	}
	return nil
}

// RiskLevel is the qualitative 4-level risk label.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Rank orders risk levels from low (0) to critical (3). Unknown levels rank
// below low.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskModerate:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return -1
	}
}

// GutenbergRichter holds the fitted magnitude-frequency parameters.
type GutenbergRichter struct {
	BValue       float64 `json:"b_value"`
	AValue       float64 `json:"a_value"`
	Completeness float64 `json:"completeness_magnitude"`
}

// ExceedanceProbability is the Poisson probability of at least one event at
// or above a magnitude threshold within the assessed window.
type ExceedanceProbability struct {
	Magnitude   float64 `json:"magnitude"`
	Probability float64 `json:"probability"`
}

// Hazard holds the daily event rate and per-threshold exceedance
// probabilities over the analysis window.
type Hazard struct {
	DailyRate  float64                 `json:"daily_rate"`
	Exceedance []ExceedanceProbability `json:"exceedance"`
}

// ProbabilityAtLeast returns the exceedance probability for the given
// magnitude threshold, or 0 if the threshold was not assessed.
func (h Hazard) ProbabilityAtLeast(magnitude float64) float64 {
	for _, e := range h.Exceedance {
		if e.Magnitude == magnitude {
			return e.Probability
		}
	}
	return 0
}

// Analysis is the composite result of a region analysis.
type Analysis struct {
	Region      Region    `json:"region"`
	RegionName  string    `json:"region_name"`
	GeneratedAt time.Time `json:"generated_at"`

	EventCount        int             `json:"event_count"`
	AverageMagnitude  float64         `json:"average_magnitude"`
	LargestMagnitude  float64         `json:"largest_magnitude"`
	SmallestMagnitude float64         `json:"smallest_magnitude"`
	Histogram         map[float64]int `json:"magnitude_histogram"`

	DepthDistribution string `json:"depth_distribution"`
	TemporalPattern   string `json:"temporal_pattern"`
	SpatialClustering string `json:"spatial_clustering"`

	GutenbergRichter GutenbergRichter `json:"gutenberg_richter"`
	Hazard           Hazard           `json:"hazard"`

	DisplacementAnomalies int    `json:"displacement_anomalies"`
	DeformationSummary    string `json:"deformation_summary"`

	RiskLevel       RiskLevel `json:"risk_level"`
	Recommendations []string  `json:"recommendations"`
	Confidence      float64   `json:"confidence"`

	Events        []Event        `json:"events"`
	Displacements []Displacement `json:"displacements"`
}

// Forecast projects exceedance probabilities over a future horizon from a
// completed analysis.
type Forecast struct {
	Region          Region                  `json:"region"`
	HorizonDays     int                     `json:"horizon_days"`
	Probabilities   []ExceedanceProbability `json:"probabilities"`
	ExpectedEvents  float64                 `json:"expected_events"`
	RiskLevel       RiskLevel               `json:"risk_level"`
	Confidence      float64                 `json:"confidence"`
	Methodology     string                  `json:"methodology"`
	Limitations     []string                `json:"limitations"`
	Recommendations []string                `json:"recommendations"`
}

// SwarmClassification describes the foreshock/mainshock/aftershock structure
// of an event sequence. Mainshock is nil when the sequence is classified as a
// swarm or when there are fewer than 3 events.
type SwarmClassification struct {
	IsSwarm           bool      `json:"is_swarm"`
	EventCount        int       `json:"event_count"`
	StartTime         time.Time `json:"start_time,omitzero"`
	DurationHours     float64   `json:"duration_hours"`
	Mainshock         *Event    `json:"mainshock,omitempty"`
	Foreshocks        []Event   `json:"foreshocks,omitempty"`
	Aftershocks       []Event   `json:"aftershocks,omitempty"`
	Productivity      float64   `json:"productivity"`
	SpatialExtentKm   float64   `json:"spatial_extent_km"`
	TemporalEvolution string    `json:"temporal_evolution"`
	Significance      string    `json:"significance"` // "low", "moderate", or "high"
}
