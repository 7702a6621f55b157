// Package http exposes the analysis API plus health, readiness, and metrics
// endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/seismic-analysis-service/internal/seismic"
)

// Request parameter defaults.
const (
	defaultRadiusKm     = 100.0
	defaultWindowDays   = 7
	defaultMinMagnitude = 2.5
	defaultHorizonDays  = 30
)

// AnalysisService runs region analyses and forecasts.
type AnalysisService interface {
	AnalyzeRegion(ctx context.Context, region seismic.Region) (*seismic.Analysis, error)
	Forecast(ctx context.Context, region seismic.Region, horizonDays int) (*seismic.Forecast, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the analysis API over HTTP.
type Server struct {
	httpServer *http.Server
	service    AnalysisService
	params     seismic.Params
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the analysis API under /api/v1 and
// /healthz, /readyz, and /metrics operational routes.
func NewServer(addr string, service AnalysisService, params seismic.Params, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		params:  params,
		logger:  logger,
	}

	mux.HandleFunc("GET /api/v1/analysis", s.handleAnalysis)
	mux.HandleFunc("GET /api/v1/forecast", s.handleForecast)
	mux.HandleFunc("POST /api/v1/swarm", s.handleSwarm)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	region, err := regionFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err))
		return
	}

	analysis, err := s.service.AnalyzeRegion(r.Context(), region)
	if err != nil {
		s.writeServiceError(w, "analysis failed", err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	region, err := regionFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err))
		return
	}

	horizonDays := defaultHorizonDays
	if v := r.URL.Query().Get("horizon_days"); v != "" {
		horizonDays, err = strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(errors.New("invalid horizon_days")))
			return
		}
	}

	forecast, err := s.service.Forecast(r.Context(), region, horizonDays)
	if err != nil {
		s.writeServiceError(w, "forecast failed", err)
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}

func (s *Server) handleSwarm(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Events []seismic.Event `json:"events"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(errors.New("invalid request body")))
		return
	}

	classification := seismic.ClassifySequence(body.Events, s.params)
	writeJSON(w, http.StatusOK, classification)
}

func (s *Server) writeServiceError(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, seismic.ErrInvalidRegion) {
		writeJSON(w, http.StatusBadRequest, errorBody(err))
		return
	}
	s.logger.Error(msg, "error", err)
	writeJSON(w, http.StatusBadGateway, errorBody(err))
}

// regionFromQuery decodes the shared lat/lon/radius_km/days/min_magnitude
// query parameters. lat and lon are required; the rest default.
func regionFromQuery(r *http.Request) (seismic.Region, error) {
	q := r.URL.Query()

	lat, err := requiredFloat(q.Get("lat"), "lat")
	if err != nil {
		return seismic.Region{}, err
	}
	lon, err := requiredFloat(q.Get("lon"), "lon")
	if err != nil {
		return seismic.Region{}, err
	}

	region := seismic.Region{
		Latitude:     lat,
		Longitude:    lon,
		RadiusKm:     defaultRadiusKm,
		WindowDays:   defaultWindowDays,
		MinMagnitude: defaultMinMagnitude,
	}

	if v := q.Get("radius_km"); v != "" {
		if region.RadiusKm, err = strconv.ParseFloat(v, 64); err != nil {
			return seismic.Region{}, errors.New("invalid radius_km")
		}
	}
	if v := q.Get("days"); v != "" {
		if region.WindowDays, err = strconv.Atoi(v); err != nil {
			return seismic.Region{}, errors.New("invalid days")
		}
	}
	if v := q.Get("min_magnitude"); v != "" {
		if region.MinMagnitude, err = strconv.ParseFloat(v, 64); err != nil {
			return seismic.Region{}, errors.New("invalid min_magnitude")
		}
	}
	return region, nil
}

func requiredFloat(s, name string) (float64, error) {
	if s == "" {
		return 0, errors.New(name + " is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return v, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
