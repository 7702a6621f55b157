// Package monitor runs the background region-watch loop: it periodically
// analyzes each configured region and publishes alerts for elevated risk.
package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/seismic-analysis-service/internal/observability"
	"github.com/couchcryptid/seismic-analysis-service/internal/seismic"
)

// RegionAnalyzer produces a full analysis for a region.
type RegionAnalyzer interface {
	AnalyzeRegion(ctx context.Context, region seismic.Region) (*seismic.Analysis, error)
}

// AlertPublisher delivers an analysis whose risk level crossed the alert
// threshold.
type AlertPublisher interface {
	PublishAnalysis(ctx context.Context, analysis *seismic.Analysis) error
}

// Monitor orchestrates the periodic analyze-and-alert sweep.
type Monitor struct {
	analyzer  RegionAnalyzer
	publisher AlertPublisher // nil disables alert publishing
	regions   []seismic.Region
	interval  time.Duration
	minLevel  seismic.RiskLevel
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Monitor. Pass a nil publisher to run analyses without
// emitting alerts.
func New(analyzer RegionAnalyzer, publisher AlertPublisher, regions []seismic.Region, interval time.Duration, minLevel seismic.RiskLevel, logger *slog.Logger, metrics *observability.Metrics) *Monitor {
	return &Monitor{
		analyzer:  analyzer,
		publisher: publisher,
		regions:   regions,
		interval:  interval,
		minLevel:  minLevel,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one sweep has completed with a
// successful analysis.
func (m *Monitor) CheckReadiness(_ context.Context) error {
	if !m.ready.Load() {
		return errors.New("monitor has not completed a sweep yet")
	}
	return nil
}

// Run executes the sweep loop until the context is cancelled. With no regions
// configured it marks itself ready and blocks until cancellation.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitor started", "regions", len(m.regions), "interval", m.interval)
	m.metrics.MonitorRunning.Set(1)
	defer m.metrics.MonitorRunning.Set(0)
	m.metrics.RegionsWatched.Set(float64(len(m.regions)))

	if len(m.regions) == 0 {
		m.ready.Store(true)
		<-ctx.Done()
		m.logger.Info("monitor stopping", "reason", ctx.Err())
		return nil
	}

	// Exponential backoff after a fully failed sweep: start at 1s, double
	// each retry, cap at the sweep interval.
	backoff := time.Second

	for {
		succeeded := m.sweep(ctx)
		if ctx.Err() != nil {
			m.logger.Info("monitor stopping", "reason", ctx.Err())
			return nil
		}

		wait := m.interval
		if succeeded == 0 {
			wait = backoff
			backoff = nextBackoff(backoff, m.interval)
		} else {
			backoff = time.Second
			m.ready.Store(true)
		}

		if !sleepWithContext(ctx, wait) {
			m.logger.Info("monitor stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// sweep analyzes every watched region once and returns the number of
// successful analyses.
func (m *Monitor) sweep(ctx context.Context) int {
	var succeeded int
	for _, region := range m.regions {
		if ctx.Err() != nil {
			return succeeded
		}
		if m.analyzeAndAlert(ctx, region) {
			succeeded++
		}
	}
	return succeeded
}

func (m *Monitor) analyzeAndAlert(ctx context.Context, region seismic.Region) bool {
	start := time.Now()
	analysis, err := m.analyzer.AnalyzeRegion(ctx, region)
	m.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.metrics.AnalysisErrors.Inc()
		m.logger.Error("region analysis failed",
			"lat", region.Latitude, "lon", region.Longitude, "error", err)
		return false
	}
	m.metrics.AnalysesTotal.Inc()

	m.logger.Info("region analyzed",
		"region", analysis.RegionName,
		"events", analysis.EventCount,
		"risk_level", analysis.RiskLevel,
	)

	if m.publisher == nil || analysis.RiskLevel.Rank() < m.minLevel.Rank() {
		return true
	}

	if err := m.publisher.PublishAnalysis(ctx, analysis); err != nil {
		m.metrics.AlertPublishErrors.Inc()
		m.logger.Error("alert publish failed", "region", analysis.RegionName, "error", err)
		return true
	}
	m.metrics.AlertsPublished.Inc()
	m.logger.Info("risk alert published",
		"region", analysis.RegionName, "risk_level", analysis.RiskLevel)
	return true
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
