package seismic

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// maxAnalysisConfidence caps descriptive-analysis confidence.
const maxAnalysisConfidence = 0.95

// Analyzer orchestrates a full region analysis: it drives the external
// catalog and displacement providers, then runs the statistical components
// over the results. Analyzers are safe for concurrent use; all state is
// immutable after construction.
type Analyzer struct {
	catalog      CatalogProvider
	displacement DisplacementProvider
	params       Params
	logger       *slog.Logger
}

// NewAnalyzer creates an Analyzer. Pass a nil displacement provider to run
// catalog-only analyses; displacement fields then report no GNSS coverage.
func NewAnalyzer(catalog CatalogProvider, displacement DisplacementProvider, params Params, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		catalog:      catalog,
		displacement: displacement,
		params:       params,
		logger:       logger,
	}
}

// AnalyzeRegion fetches events and displacement measurements for the region
// and assembles the composite analysis. Provider failures are wrapped and
// propagated; they are never masked with synthetic fallback data.
func (a *Analyzer) AnalyzeRegion(ctx context.Context, region Region) (*Analysis, error) {
	if err := region.Validate(); err != nil {
		return nil, err
	}

	now := clock.Now().UTC()
	regionName := a.params.RegionName(region.Latitude, region.Longitude)

	events, displacements, err := a.fetchInputs(ctx, region, regionName, now)
	if err != nil {
		return nil, err
	}

	a.logger.Info("region analysis inputs fetched",
		"region", regionName,
		"events", len(events),
		"stations", len(displacements),
	)

	stats := Summarize(events)
	gr := FitGutenbergRichter(events, a.params)
	hazard := AssessHazard(events, float64(region.WindowDays), a.params.HazardThresholds)

	var anomalies int
	for _, d := range displacements {
		if d.Anomalous {
			anomalies++
		}
	}

	riskLevel := ScoreRisk(events, hazard.DailyRate, anomalies)

	return &Analysis{
		Region:      region,
		RegionName:  regionName,
		GeneratedAt: now,

		EventCount:        len(events),
		AverageMagnitude:  stats.Average,
		LargestMagnitude:  stats.Largest,
		SmallestMagnitude: stats.Smallest,
		Histogram:         stats.Histogram,

		DepthDistribution: describeDepths(events),
		TemporalPattern:   describeTemporalPattern(events, region.WindowDays),
		SpatialClustering: describeClustering(events, region),

		GutenbergRichter: gr,
		Hazard:           hazard,

		DisplacementAnomalies: anomalies,
		DeformationSummary:    describeDeformation(displacements, anomalies),

		RiskLevel:       riskLevel,
		Recommendations: recommendationsForRisk(riskLevel),
		Confidence:      analysisConfidence(len(events), displacements),

		Events:        events,
		Displacements: displacements,
	}, nil
}

// Forecast runs a region analysis and projects exceedance probabilities over
// the horizon. Analysis failures propagate unchanged.
func (a *Analyzer) Forecast(ctx context.Context, region Region, horizonDays int) (*Forecast, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("%w: forecast horizon must be positive, got %d", ErrInvalidRegion, horizonDays)
	}

	analysis, err := a.AnalyzeRegion(ctx, region)
	if err != nil {
		return nil, err
	}

	return projectForecast(analysis, horizonDays, a.params), nil
}

// fetchInputs issues the catalog and displacement calls concurrently; the two
// have no ordering dependency and neither is retried here. Retry and timeout
// policy belong to the providers and the caller's context.
func (a *Analyzer) fetchInputs(ctx context.Context, region Region, regionName string, now time.Time) ([]Event, []Displacement, error) {
	type catalogResult struct {
		events []Event
		err    error
	}
	type displacementResult struct {
		measurements []Displacement
		err          error
	}

	catalogCh := make(chan catalogResult, 1)
	go func() {
		events, err := a.catalog.EventsNearLocation(ctx, CatalogQuery{
			Latitude:     region.Latitude,
			Longitude:    region.Longitude,
			RadiusKm:     region.RadiusKm,
			StartTime:    now.Add(-time.Duration(region.WindowDays) * 24 * time.Hour),
			EndTime:      now,
			MinMagnitude: region.MinMagnitude,
			Limit:        a.params.CatalogFetchLimit,
		})
		catalogCh <- catalogResult{events: events, err: err}
	}()

	displacementCh := make(chan displacementResult, 1)
	go func() {
		if a.displacement == nil {
			displacementCh <- displacementResult{}
			return
		}
		measurements, err := a.displacement.MonitorDisplacements(ctx, DisplacementQuery{
			Region:      regionName,
			ThresholdMm: a.params.DisplacementThresholdMm,
			WindowDays:  region.WindowDays,
		})
		displacementCh <- displacementResult{measurements: measurements, err: err}
	}()

	catalog := <-catalogCh
	displacement := <-displacementCh

	if catalog.err != nil {
		return nil, nil, fmt.Errorf("fetch catalog events: %w", catalog.err)
	}
	if displacement.err != nil {
		return nil, nil, fmt.Errorf("fetch displacement measurements: %w", displacement.err)
	}

	return catalog.events, displacement.measurements, nil
}

// analysisConfidence starts at 0.5 and grows with catalog size, station
// count, and station quality, capped at 0.95.
func analysisConfidence(eventCount int, displacements []Displacement) float64 {
	confidence := 0.5

	switch {
	case eventCount > 50:
		confidence += 0.2
	case eventCount > 20:
		confidence += 0.1
	}

	switch {
	case len(displacements) > 10:
		confidence += 0.15
	case len(displacements) > 5:
		confidence += 0.1
	}

	if len(displacements) > 0 {
		var good int
		for _, d := range displacements {
			if d.Quality == "excellent" || d.Quality == "good" {
				good++
			}
		}
		confidence += 0.15 * float64(good) / float64(len(displacements))
	}

	return math.Min(confidence, maxAnalysisConfidence)
}

// Depth bands follow the seismological shallow/intermediate/deep convention.
func describeDepths(events []Event) string {
	if len(events) == 0 {
		return "no events in window"
	}

	var shallow, intermediate, deep int
	var sum float64
	for _, e := range events {
		sum += e.DepthKm
		switch {
		case e.DepthKm < 70:
			shallow++
		case e.DepthKm <= 300:
			intermediate++
		default:
			deep++
		}
	}

	return fmt.Sprintf("%d shallow (<70 km), %d intermediate (70-300 km), %d deep (>300 km); mean depth %.1f km",
		shallow, intermediate, deep, sum/float64(len(events)))
}

func describeTemporalPattern(events []Event, windowDays int) string {
	if len(events) == 0 {
		return "no activity in window"
	}
	return fmt.Sprintf("%d events over %d days (%.2f events/day)",
		len(events), windowDays, float64(len(events))/float64(windowDays))
}

func describeClustering(events []Event, region Region) string {
	if len(events) == 0 {
		return "no events in window"
	}

	var sum float64
	for _, e := range events {
		sum += DistanceKm(region.Latitude, region.Longitude, e.Latitude, e.Longitude)
	}
	mean := sum / float64(len(events))

	label := "dispersed across the search radius"
	if mean < region.RadiusKm/4 {
		label = "tightly clustered near the region center"
	} else if mean < region.RadiusKm/2 {
		label = "moderately clustered"
	}
	return fmt.Sprintf("%s (mean epicentral distance %.1f km)", label, mean)
}

func describeDeformation(displacements []Displacement, anomalies int) string {
	if len(displacements) == 0 {
		return "no GNSS data available"
	}

	var maxMm float64
	for _, d := range displacements {
		maxMm = math.Max(maxMm, d.DisplacementMm)
	}
	return fmt.Sprintf("%d of %d GNSS stations anomalous; max displacement %.1f mm",
		anomalies, len(displacements), maxMm)
}
