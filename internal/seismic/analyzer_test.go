package seismic

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock providers ---

type mockCatalog struct {
	events    []Event
	err       error
	lastQuery CatalogQuery
	calls     int
}

func (m *mockCatalog) EventsNearLocation(_ context.Context, q CatalogQuery) ([]Event, error) {
	m.calls++
	m.lastQuery = q
	return m.events, m.err
}

type mockDisplacement struct {
	measurements []Displacement
	err          error
	lastQuery    DisplacementQuery
	calls        int
}

func (m *mockDisplacement) MonitorDisplacements(_ context.Context, q DisplacementQuery) ([]Displacement, error) {
	m.calls++
	m.lastQuery = q
	return m.measurements, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var analysisNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func freezeClock(t *testing.T) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(analysisNow))
	t.Cleanup(func() { SetClock(nil) })
}

func testRegion() Region {
	return Region{Latitude: 34.05, Longitude: -118.25, RadiusKm: 100, WindowDays: 7, MinMagnitude: 2.5}
}

// --- tests ---

func TestAnalyzeRegion_QueriesProviders(t *testing.T) {
	freezeClock(t)

	catalog := &mockCatalog{events: magnitudesToEvents(3.0, 4.1, 5.2)}
	displacement := &mockDisplacement{measurements: []Displacement{
		{Station: "P595", DisplacementMm: 12.5, Quality: "excellent", Anomalous: true},
	}}

	analyzer := NewAnalyzer(catalog, displacement, DefaultParams(), discardLogger())
	analysis, err := analyzer.AnalyzeRegion(context.Background(), testRegion())
	require.NoError(t, err)

	assert.Equal(t, 1, catalog.calls)
	assert.Equal(t, 34.05, catalog.lastQuery.Latitude)
	assert.Equal(t, -118.25, catalog.lastQuery.Longitude)
	assert.Equal(t, 100.0, catalog.lastQuery.RadiusKm)
	assert.Equal(t, 2.5, catalog.lastQuery.MinMagnitude)
	assert.Equal(t, 1000, catalog.lastQuery.Limit)
	assert.Equal(t, analysisNow, catalog.lastQuery.EndTime)
	assert.Equal(t, analysisNow.AddDate(0, 0, -7), catalog.lastQuery.StartTime)

	assert.Equal(t, 1, displacement.calls)
	assert.Equal(t, "california", displacement.lastQuery.Region)
	assert.Equal(t, 10.0, displacement.lastQuery.ThresholdMm)
	assert.Equal(t, 7, displacement.lastQuery.WindowDays)

	assert.Equal(t, "california", analysis.RegionName)
	assert.Equal(t, analysisNow, analysis.GeneratedAt)
	assert.Equal(t, 3, analysis.EventCount)
	assert.Equal(t, 1, analysis.DisplacementAnomalies)
}

func TestAnalyzeRegion_MagnitudeSummaryInvariant(t *testing.T) {
	freezeClock(t)

	catalog := &mockCatalog{events: magnitudesToEvents(2.8, 3.3, 4.9, 6.1)}
	analyzer := NewAnalyzer(catalog, nil, DefaultParams(), discardLogger())

	analysis, err := analyzer.AnalyzeRegion(context.Background(), testRegion())
	require.NoError(t, err)

	assert.LessOrEqual(t, analysis.SmallestMagnitude, analysis.AverageMagnitude)
	assert.LessOrEqual(t, analysis.AverageMagnitude, analysis.LargestMagnitude)

	var histTotal int
	for _, count := range analysis.Histogram {
		histTotal += count
	}
	assert.Equal(t, analysis.EventCount, histTotal)
}

func TestAnalyzeRegion_EmptyCatalogIsValid(t *testing.T) {
	freezeClock(t)

	analyzer := NewAnalyzer(&mockCatalog{}, &mockDisplacement{}, DefaultParams(), discardLogger())
	analysis, err := analyzer.AnalyzeRegion(context.Background(), testRegion())
	require.NoError(t, err)

	assert.Equal(t, 0, analysis.EventCount)
	assert.Equal(t, 0.0, analysis.AverageMagnitude)
	assert.Equal(t, 0.0, analysis.LargestMagnitude)
	assert.Equal(t, 0.0, analysis.SmallestMagnitude)
	assert.Equal(t, RiskLow, analysis.RiskLevel)
	assert.Equal(t, "no GNSS data available", analysis.DeformationSummary)
}

func TestAnalyzeRegion_CatalogErrorPropagates(t *testing.T) {
	freezeClock(t)

	boom := errors.New("usgs unavailable")
	analyzer := NewAnalyzer(&mockCatalog{err: boom}, &mockDisplacement{}, DefaultParams(), discardLogger())

	_, err := analyzer.AnalyzeRegion(context.Background(), testRegion())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fetch catalog events")
}

func TestAnalyzeRegion_DisplacementErrorPropagates(t *testing.T) {
	freezeClock(t)

	boom := errors.New("gnss unavailable")
	analyzer := NewAnalyzer(&mockCatalog{}, &mockDisplacement{err: boom}, DefaultParams(), discardLogger())

	_, err := analyzer.AnalyzeRegion(context.Background(), testRegion())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fetch displacement measurements")
}

func TestAnalyzeRegion_InvalidRegion(t *testing.T) {
	analyzer := NewAnalyzer(&mockCatalog{}, nil, DefaultParams(), discardLogger())

	tests := []struct {
		name   string
		region Region
	}{
		{"zero radius", Region{Latitude: 10, Longitude: 10, RadiusKm: 0, WindowDays: 7}},
		{"zero window", Region{Latitude: 10, Longitude: 10, RadiusKm: 50, WindowDays: 0}},
		{"bad latitude", Region{Latitude: 95, Longitude: 10, RadiusKm: 50, WindowDays: 7}},
		{"bad longitude", Region{Latitude: 10, Longitude: 190, RadiusKm: 50, WindowDays: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzer.AnalyzeRegion(context.Background(), tt.region)
			assert.ErrorIs(t, err, ErrInvalidRegion)
		})
	}
}

func TestAnalyzeRegion_NilDisplacementProvider(t *testing.T) {
	freezeClock(t)

	analyzer := NewAnalyzer(&mockCatalog{events: magnitudesToEvents(3.0)}, nil, DefaultParams(), discardLogger())
	analysis, err := analyzer.AnalyzeRegion(context.Background(), testRegion())
	require.NoError(t, err)

	assert.Empty(t, analysis.Displacements)
	assert.Equal(t, 0, analysis.DisplacementAnomalies)
	assert.Equal(t, "no GNSS data available", analysis.DeformationSummary)
}

func TestAnalysisConfidence(t *testing.T) {
	stations := func(n int, quality string) []Displacement {
		out := make([]Displacement, n)
		for i := range out {
			out[i].Quality = quality
		}
		return out
	}

	tests := []struct {
		name       string
		eventCount int
		stations   []Displacement
		expected   float64
	}{
		{"sparse inputs", 5, nil, 0.5},
		{"moderate catalog", 30, nil, 0.6},
		{"large catalog", 60, nil, 0.7},
		{"some stations", 5, stations(6, "poor"), 0.6},
		{"many good stations", 5, stations(12, "good"), 0.8},
		{"everything capped", 200, stations(12, "excellent"), 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, analysisConfidence(tt.eventCount, tt.stations), 1e-9)
		})
	}
}

func TestAnalyzeRegion_ConfidenceNeverExceedsCap(t *testing.T) {
	freezeClock(t)

	events := make([]Event, 500)
	displacements := make([]Displacement, 50)
	for i := range displacements {
		displacements[i].Quality = "excellent"
	}

	analyzer := NewAnalyzer(
		&mockCatalog{events: events},
		&mockDisplacement{measurements: displacements},
		DefaultParams(),
		discardLogger(),
	)
	analysis, err := analyzer.AnalyzeRegion(context.Background(), testRegion())
	require.NoError(t, err)

	assert.LessOrEqual(t, analysis.Confidence, 0.95)
}

func TestForecast_InvalidHorizon(t *testing.T) {
	analyzer := NewAnalyzer(&mockCatalog{}, nil, DefaultParams(), discardLogger())

	_, err := analyzer.Forecast(context.Background(), testRegion(), 0)
	assert.ErrorIs(t, err, ErrInvalidRegion)
}

func TestForecast_RunsAnalysisFirst(t *testing.T) {
	freezeClock(t)

	catalog := &mockCatalog{events: magnitudesToEvents(3.0, 3.5, 4.0)}
	analyzer := NewAnalyzer(catalog, nil, DefaultParams(), discardLogger())

	forecast, err := analyzer.Forecast(context.Background(), testRegion(), 30)
	require.NoError(t, err)

	assert.Equal(t, 1, catalog.calls)
	assert.Equal(t, 30, forecast.HorizonDays)
	assert.Len(t, forecast.Probabilities, 4)
	assert.NotEmpty(t, forecast.Limitations)
	assert.LessOrEqual(t, forecast.Confidence, 0.7)
}

func TestForecast_AnalysisErrorPropagates(t *testing.T) {
	freezeClock(t)

	boom := errors.New("catalog down")
	analyzer := NewAnalyzer(&mockCatalog{err: boom}, nil, DefaultParams(), discardLogger())

	_, err := analyzer.Forecast(context.Background(), testRegion(), 30)
	assert.ErrorIs(t, err, boom)
}
