package seismic

// BoundingBox is a named lat/lon rectangle used to map region centers to the
// geographic buckets the displacement service understands.
type BoundingBox struct {
	Name   string
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the point lies inside the box (inclusive).
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Params holds the constant tables the engine computes against. It is built
// once at startup and passed into each component; nothing in this package
// reads thresholds from package-level state.
type Params struct {
	// HazardThresholds are the magnitude thresholds assessed by the hazard
	// component.
	HazardThresholds []float64

	// ForecastThresholds are the magnitude thresholds projected by the
	// forecaster, and ForecastReferenceMagnitude anchors the rate
	// extrapolation 10^(−b·(m − ref)).
	ForecastThresholds         []float64
	ForecastReferenceMagnitude float64

	// CatalogFetchLimit is the over-fetch limit requested from the catalog
	// provider to avoid truncation bias.
	CatalogFetchLimit int

	// DisplacementThresholdMm is the anomaly threshold passed to the
	// displacement provider.
	DisplacementThresholdMm float64

	// Swarm criteria: a sequence is a swarm when its magnitude range is
	// below SwarmMaxMagnitudeRange and it has more than SwarmMinEventCount
	// events.
	SwarmMaxMagnitudeRange float64
	SwarmMinEventCount     int

	// McMinBinCount is the minimum population a 0.1-magnitude bin needs
	// before the completeness scan may select it.
	McMinBinCount int

	// RegionBoxes map region centers to named geographic buckets,
	// first match wins; centers outside every box fall back to "global".
	RegionBoxes []BoundingBox
}

// DefaultParams returns the production constant tables. The bounding boxes
// encode fixed tectonic-zone definitions and are pinned by tests; do not
// adjust them without updating the displacement service's bucket names.
func DefaultParams() Params {
	return Params{
		HazardThresholds:           []float64{5.0, 6.0, 7.0},
		ForecastThresholds:         []float64{4.0, 5.0, 6.0, 7.0},
		ForecastReferenceMagnitude: 2.5,
		CatalogFetchLimit:          1000,
		DisplacementThresholdMm:    10.0,
		SwarmMaxMagnitudeRange:     1.5,
		SwarmMinEventCount:         10,
		McMinBinCount:              5,
		RegionBoxes: []BoundingBox{
			{Name: "california", MinLat: 32, MaxLat: 42, MinLon: -125, MaxLon: -114},
			{Name: "japan", MinLat: 30, MaxLat: 46, MinLon: 129, MaxLon: 146},
			{Name: "chile", MinLat: -56, MaxLat: -17, MinLon: -76, MaxLon: -66},
			{Name: "new_zealand", MinLat: -47, MaxLat: -34, MinLon: 166, MaxLon: 179},
			{Name: "alaska", MinLat: 54, MaxLat: 72, MinLon: -170, MaxLon: -130},
		},
	}
}

// RegionName maps a center point to its geographic bucket, defaulting to
// "global".
func (p Params) RegionName(lat, lon float64) string {
	for _, box := range p.RegionBoxes {
		if box.Contains(lat, lon) {
			return box.Name
		}
	}
	return "global"
}
