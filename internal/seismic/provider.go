package seismic

import (
	"context"
	"time"
)

// CatalogQuery bounds a catalog request by space, time, and magnitude.
type CatalogQuery struct {
	Latitude     float64
	Longitude    float64
	RadiusKm     float64
	StartTime    time.Time
	EndTime      time.Time
	MinMagnitude float64
	Limit        int
}

// CatalogProvider fetches earthquake events from an upstream catalog service.
type CatalogProvider interface {
	// EventsNearLocation returns events within the query bounds. An empty
	// slice is a valid result.
	EventsNearLocation(ctx context.Context, q CatalogQuery) ([]Event, error)
}

// DisplacementQuery bounds a displacement request by geographic bucket, the
// anomaly threshold, and the lookback window.
type DisplacementQuery struct {
	Region      string
	ThresholdMm float64
	WindowDays  int
}

// DisplacementProvider fetches GNSS displacement measurements for a
// geographic bucket.
type DisplacementProvider interface {
	// MonitorDisplacements returns per-station measurements with anomaly
	// flags evaluated against the threshold. An empty slice is a valid
	// result, meaning no GNSS coverage for the bucket.
	MonitorDisplacements(ctx context.Context, q DisplacementQuery) ([]Displacement, error)
}
