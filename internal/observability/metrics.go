package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analysis service.
type Metrics struct {
	AnalysesTotal      prometheus.Counter
	AnalysisErrors     prometheus.Counter
	AlertsPublished    prometheus.Counter
	AlertPublishErrors prometheus.Counter
	MonitorRunning     prometheus.Gauge
	RegionsWatched     prometheus.Gauge

	AnalysisDuration prometheus.Histogram

	// Catalog access metrics.
	CatalogRequests    *prometheus.CounterVec // labels: outcome={success,error}
	CatalogCache       *prometheus.CounterVec // labels: result={hit,miss}
	CatalogAPIDuration prometheus.Histogram

	// GNSS displacement metrics.
	GNSSRequests *prometheus.CounterVec // labels: outcome={success,error}
	GNSSEnabled  prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seismic",
			Name:      "analyses_total",
			Help:      "Total region analyses completed.",
		}),
		AnalysisErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seismic",
			Name:      "analysis_errors_total",
			Help:      "Total region analyses that failed.",
		}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seismic",
			Name:      "alerts_published_total",
			Help:      "Total risk alerts written to the alerts topic.",
		}),
		AlertPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seismic",
			Name:      "alert_publish_errors_total",
			Help:      "Total alert publish failures.",
		}),
		MonitorRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "seismic",
			Name:      "monitor_running",
			Help:      "1 when the region monitor loop is active, 0 when shut down.",
		}),
		RegionsWatched: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "seismic",
			Name:      "regions_watched",
			Help:      "Number of regions in the monitor schedule.",
		}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seismic",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a complete region analysis including provider fetches.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		CatalogRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seismic",
			Name:      "catalog_requests_total",
			Help:      "Earthquake catalog API requests by outcome.",
		}, []string{"outcome"}),
		CatalogCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seismic",
			Name:      "catalog_cache_total",
			Help:      "Catalog cache lookups by result.",
		}, []string{"result"}),
		CatalogAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seismic",
			Name:      "catalog_api_duration_seconds",
			Help:      "USGS FDSN API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		GNSSRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seismic",
			Name:      "gnss_requests_total",
			Help:      "GNSS displacement API requests by outcome.",
		}, []string{"outcome"}),
		GNSSEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "seismic",
			Name:      "gnss_enabled",
			Help:      "1 when GNSS displacement monitoring is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.AnalysesTotal,
		m.AnalysisErrors,
		m.AlertsPublished,
		m.AlertPublishErrors,
		m.MonitorRunning,
		m.RegionsWatched,
		m.AnalysisDuration,
		m.CatalogRequests,
		m.CatalogCache,
		m.CatalogAPIDuration,
		m.GNSSRequests,
		m.GNSSEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AnalysesTotal:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seismic", Name: "analyses_total"}),
		AnalysisErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seismic", Name: "analysis_errors_total"}),
		AlertsPublished:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seismic", Name: "alerts_published_total"}),
		AlertPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "seismic", Name: "alert_publish_errors_total"}),
		MonitorRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "seismic", Name: "monitor_running"}),
		RegionsWatched:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "seismic", Name: "regions_watched"}),
		AnalysisDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "seismic", Name: "analysis_duration_seconds"}),
		CatalogRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "seismic", Name: "catalog_requests_total"}, []string{"outcome"}),
		CatalogCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "seismic", Name: "catalog_cache_total"}, []string{"result"}),
		CatalogAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "seismic", Name: "catalog_api_duration_seconds"}),
		GNSSRequests:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "seismic", Name: "gnss_requests_total"}, []string{"outcome"}),
		GNSSEnabled:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "seismic", Name: "gnss_enabled"}),
	}
}
