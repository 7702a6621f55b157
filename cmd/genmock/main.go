// Command genmock generates a synthetic earthquake catalog fixture in USGS
// GeoJSON format: a mainshock followed by an Omori-decaying aftershock
// sequence with Gutenberg-Richter distributed magnitudes. The output can be
// served by a mock FDSN endpoint or fed to the swarm classification API for
// testing without live USGS data.
//
// Usage:
//
//	go run ./cmd/genmock -out testdata/sequence.json \
//	  -lat 34.05 -lon -118.25 -mainshock 6.2 -aftershocks 80 -seed 42
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

var baseTime = time.Date(2024, time.June, 10, 8, 30, 0, 0, time.UTC)

type featureCollection struct {
	Type     string    `json:"type"`
	Metadata metadata  `json:"metadata"`
	Features []feature `json:"features"`
}

type metadata struct {
	Generated int64  `json:"generated"`
	Title     string `json:"title"`
	Count     int    `json:"count"`
}

type feature struct {
	Type       string     `json:"type"`
	ID         string     `json:"id"`
	Properties properties `json:"properties"`
	Geometry   geometry   `json:"geometry"`
}

type properties struct {
	Mag     float64 `json:"mag"`
	MagType string  `json:"magType"`
	Place   string  `json:"place"`
	Time    int64   `json:"time"`
}

type geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth_km]
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the GeoJSON fixture (required)")
	lat := flag.Float64("lat", 34.05, "mainshock latitude")
	lon := flag.Float64("lon", -118.25, "mainshock longitude")
	mainshockMag := flag.Float64("mainshock", 6.2, "mainshock magnitude")
	aftershocks := flag.Int("aftershocks", 80, "number of aftershocks")
	foreshocks := flag.Int("foreshocks", 3, "number of foreshocks")
	seed := flag.Int64("seed", 42, "random seed for reproducible fixtures")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	rng := rand.New(rand.NewSource(*seed))

	features := make([]feature, 0, 1+*foreshocks+*aftershocks)
	features = append(features, makeForeshocks(rng, *lat, *lon, *mainshockMag, *foreshocks)...)
	features = append(features, makeEvent(rng, 0, *lat, *lon, *mainshockMag, baseTime))
	features = append(features, makeAftershocks(rng, *lat, *lon, *mainshockMag, *aftershocks)...)

	fc := featureCollection{
		Type: "FeatureCollection",
		Metadata: metadata{
			Generated: baseTime.UnixMilli(),
			Title:     "Synthetic Mainshock-Aftershock Sequence",
			Count:     len(features),
		},
		Features: features,
	}

	if err := writeJSON(*out, fc); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}

	log.Printf("wrote %d events (%d foreshocks, 1 mainshock M%.1f, %d aftershocks) to %s",
		len(features), *foreshocks, *mainshockMag, *aftershocks, *out)
	return nil
}

// makeForeshocks scatters small events in the 48 hours before the mainshock.
func makeForeshocks(rng *rand.Rand, lat, lon, mainMag float64, count int) []feature {
	events := make([]feature, 0, count)
	for i := 0; i < count; i++ {
		mag := mainMag - 2.5 - rng.Float64()
		at := baseTime.Add(-time.Duration(rng.Intn(48*3600)) * time.Second)
		events = append(events, makeEvent(rng, i+1, lat, lon, mag, at))
	}
	return events
}

// makeAftershocks draws inter-event times from an Omori-like power-law decay
// and magnitudes from a Gutenberg-Richter distribution with b=1, truncated a
// unit below the mainshock per the Bath law.
func makeAftershocks(rng *rand.Rand, lat, lon, mainMag float64, count int) []feature {
	events := make([]feature, 0, count)
	for i := 0; i < count; i++ {
		// Occurrence time skews toward the mainshock: t proportional to u^2
		// over a 14-day span.
		u := rng.Float64()
		offset := time.Duration(u * u * 14 * 24 * float64(time.Hour))

		// Inverse-CDF sample of an exponential magnitude distribution.
		mag := 2.0 - math.Log10(1-rng.Float64())
		maxMag := mainMag - 1.0
		if mag > maxMag {
			mag = maxMag
		}

		events = append(events, makeEvent(rng, 1000+i, lat, lon, mag, baseTime.Add(offset)))
	}
	return events
}

func makeEvent(rng *rand.Rand, n int, lat, lon, mag float64, at time.Time) feature {
	// Scatter epicenters within roughly 20 km of the sequence center.
	jitter := func() float64 { return (rng.Float64() - 0.5) * 0.36 }
	depth := 5 + rng.Float64()*15

	return feature{
		Type: "Feature",
		ID:   fmt.Sprintf("synth%05d", n),
		Properties: properties{
			Mag:     math.Round(mag*10) / 10,
			MagType: "ml",
			Place:   "Synthetic Sequence Region",
			Time:    at.UnixMilli(),
		},
		Geometry: geometry{
			Type:        "Point",
			Coordinates: []float64{lon + jitter(), lat + jitter(), math.Round(depth*10) / 10},
		},
	}
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
