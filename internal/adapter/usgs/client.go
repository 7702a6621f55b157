// Package usgs fetches earthquake events from the USGS FDSN event web
// service and adapts them to the catalog provider interface.
package usgs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/seismic-analysis-service/internal/observability"
	"github.com/couchcryptid/seismic-analysis-service/internal/seismic"
)

// Client implements seismic.CatalogProvider against the USGS FDSN API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a USGS catalog client. baseURL should point at the FDSN
// event service root, e.g. "https://earthquake.usgs.gov/fdsnws/event/1".
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// EventsNearLocation queries the FDSN event endpoint for earthquakes within
// the query bounds, ordered newest first.
func (c *Client) EventsNearLocation(ctx context.Context, q seismic.CatalogQuery) ([]seismic.Event, error) {
	params := url.Values{
		"format":       {"geojson"},
		"latitude":     {strconv.FormatFloat(q.Latitude, 'f', -1, 64)},
		"longitude":    {strconv.FormatFloat(q.Longitude, 'f', -1, 64)},
		"maxradiuskm":  {strconv.FormatFloat(q.RadiusKm, 'f', -1, 64)},
		"starttime":    {q.StartTime.UTC().Format(time.RFC3339)},
		"endtime":      {q.EndTime.UTC().Format(time.RFC3339)},
		"minmagnitude": {strconv.FormatFloat(q.MinMagnitude, 'f', -1, 64)},
		"limit":        {strconv.Itoa(q.Limit)},
		"orderby":      {"time"},
	}

	fullURL := c.baseURL + "/query?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.CatalogAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.CatalogRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	// FDSN returns 204 when the query matches nothing.
	if resp.StatusCode == http.StatusNoContent {
		c.metrics.CatalogRequests.WithLabelValues("success").Inc()
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.CatalogRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("usgs API error: status %d: %s", resp.StatusCode, body)
	}

	var fdsn response
	if err := json.NewDecoder(resp.Body).Decode(&fdsn); err != nil {
		c.metrics.CatalogRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}
	c.metrics.CatalogRequests.WithLabelValues("success").Inc()

	events := make([]seismic.Event, 0, len(fdsn.Features))
	for _, f := range fdsn.Features {
		if len(f.Geometry.Coordinates) < 3 {
			c.logger.Warn("skipping event with malformed geometry", "id", f.ID)
			continue
		}
		events = append(events, seismic.Event{
			ID:            f.ID,
			Time:          time.UnixMilli(f.Properties.Time).UTC(),
			Latitude:      f.Geometry.Coordinates[1],
			Longitude:     f.Geometry.Coordinates[0],
			DepthKm:       f.Geometry.Coordinates[2],
			Magnitude:     f.Properties.Mag,
			MagnitudeType: f.Properties.MagType,
			Place:         f.Properties.Place,
		})
	}
	return events, nil
}

// USGS GeoJSON response types.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID         string     `json:"id"`
	Properties properties `json:"properties"`
	Geometry   geometry   `json:"geometry"`
}

type properties struct {
	Mag     float64 `json:"mag"`
	MagType string  `json:"magType"`
	Place   string  `json:"place"`
	Time    int64   `json:"time"` // epoch milliseconds
}

type geometry struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth_km]
}
