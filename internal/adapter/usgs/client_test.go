package usgs

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/seismic-analysis-service/internal/observability"
	"github.com/couchcryptid/seismic-analysis-service/internal/seismic"
)

const (
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		metrics:    testMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func testQuery() seismic.CatalogQuery {
	return seismic.CatalogQuery{
		Latitude:     34.05,
		Longitude:    -118.25,
		RadiusKm:     100,
		StartTime:    time.Date(2024, time.June, 8, 12, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC),
		MinMagnitude: 2.5,
		Limit:        1000,
	}
}

func TestClient_EventsNearLocation_Success(t *testing.T) {
	eventTime := time.Date(2024, time.June, 14, 3, 27, 45, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "geojson", q.Get("format"))
		assert.Equal(t, "34.05", q.Get("latitude"))
		assert.Equal(t, "-118.25", q.Get("longitude"))
		assert.Equal(t, "100", q.Get("maxradiuskm"))
		assert.Equal(t, "2.5", q.Get("minmagnitude"))
		assert.Equal(t, "1000", q.Get("limit"))
		assert.Equal(t, "2024-06-08T12:00:00Z", q.Get("starttime"))
		assert.Equal(t, "2024-06-15T12:00:00Z", q.Get("endtime"))
		assert.Equal(t, "time", q.Get("orderby"))

		resp := response{
			Features: []feature{
				{
					ID: "ci40512345",
					Properties: properties{
						Mag:     4.2,
						MagType: "ml",
						Place:   "5 km NNW of Pasadena, CA",
						Time:    eventTime.UnixMilli(),
					},
					Geometry: geometry{Coordinates: []float64{-118.16, 34.18, 11.3}},
				},
			},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	events, err := c.EventsNearLocation(context.Background(), testQuery())
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "ci40512345", events[0].ID)
	assert.Equal(t, eventTime, events[0].Time)
	assert.Equal(t, 34.18, events[0].Latitude)
	assert.Equal(t, -118.16, events[0].Longitude)
	assert.Equal(t, 11.3, events[0].DepthKm)
	assert.Equal(t, 4.2, events[0].Magnitude)
	assert.Equal(t, "ml", events[0].MagnitudeType)
	assert.Equal(t, "5 km NNW of Pasadena, CA", events[0].Place)
}

func TestClient_EventsNearLocation_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	events, err := c.EventsNearLocation(context.Background(), testQuery())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestClient_EventsNearLocation_SkipsMalformedGeometry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := response{
			Features: []feature{
				{ID: "bad", Geometry: geometry{Coordinates: []float64{-118.16, 34.18}}},
				{
					ID:         "good",
					Properties: properties{Mag: 3.1, Time: time.Now().UnixMilli()},
					Geometry:   geometry{Coordinates: []float64{-118.16, 34.18, 8.0}},
				},
			},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	events, err := c.EventsNearLocation(context.Background(), testQuery())
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "good", events[0].ID)
}

func TestClient_EventsNearLocation_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Bad Request: minmagnitude"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.EventsNearLocation(context.Background(), testQuery())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestClient_EventsNearLocation_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := &Client{
		httpClient: &http.Client{Timeout: 50 * time.Millisecond},
		baseURL:    srv.URL,
		metrics:    testMetrics(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	_, err := c.EventsNearLocation(context.Background(), testQuery())
	require.Error(t, err)
}
