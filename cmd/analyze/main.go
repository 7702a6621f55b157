// Command analyze runs a one-shot region analysis against the live USGS
// catalog and prints the result as JSON. It is the CLI counterpart of the
// service's /api/v1/analysis and /api/v1/forecast endpoints, useful for
// spot-checking a region without standing up the server.
//
// Usage:
//
//	go run ./cmd/analyze -lat 34.05 -lon -118.25 -radius 100 -days 7
//	go run ./cmd/analyze -lat 35.68 -lon 139.65 -forecast -horizon 30
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/seismic-analysis-service/internal/adapter/usgs"
	"github.com/couchcryptid/seismic-analysis-service/internal/observability"
	"github.com/couchcryptid/seismic-analysis-service/internal/seismic"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	lat := flag.Float64("lat", 0, "region center latitude (required)")
	lon := flag.Float64("lon", 0, "region center longitude (required)")
	radius := flag.Float64("radius", 100, "search radius in km")
	days := flag.Int("days", 7, "lookback window in days")
	minMag := flag.Float64("min-mag", 2.5, "minimum magnitude")
	forecast := flag.Bool("forecast", false, "project a forecast instead of printing the analysis")
	horizon := flag.Int("horizon", 30, "forecast horizon in days (with -forecast)")
	baseURL := flag.String("usgs-url", "https://earthquake.usgs.gov/fdsnws/event/1", "USGS FDSN event service URL")
	timeout := flag.Duration("timeout", 30*time.Second, "USGS request timeout")
	flag.Parse()

	region := seismic.Region{
		Latitude:     *lat,
		Longitude:    *lon,
		RadiusKm:     *radius,
		WindowDays:   *days,
		MinMagnitude: *minMag,
	}
	if err := region.Validate(); err != nil {
		flag.Usage()
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := usgs.NewClient(*baseURL, *timeout, observability.NewMetrics(), logger)
	analyzer := seismic.NewAnalyzer(catalog, nil, seismic.DefaultParams(), logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+10*time.Second)
	defer cancel()

	var result any
	var err error
	if *forecast {
		result, err = analyzer.Forecast(ctx, region, *horizon)
	} else {
		result, err = analyzer.AnalyzeRegion(ctx, region)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
