package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/seismic-analysis-service/internal/seismic"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// USGS earthquake catalog configuration.
	USGSBaseURL      string
	USGSTimeout      time.Duration
	CatalogCacheSize int
	CatalogCacheTTL  time.Duration

	// GNSS displacement monitoring configuration.
	GNSSBaseURL string
	GNSSAPIKey  string
	GNSSTimeout time.Duration
	GNSSEnabled bool

	// Kafka alert publishing configuration.
	KafkaBrokers     []string
	KafkaAlertsTopic string
	KafkaEnabled     bool

	// Background region monitoring configuration.
	MonitorInterval     time.Duration
	MonitorWindowDays   int
	MonitorMinMagnitude float64
	WatchRegions        []seismic.Region
	AlertMinRiskLevel   seismic.RiskLevel
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is loaded first if
// present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	usgsTimeout, err := parseDurationEnv("USGS_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	catalogCacheTTL, err := parseDurationEnv("CATALOG_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}
	gnssTimeout, err := parseDurationEnv("GNSS_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	monitorInterval, err := parseDurationEnv("MONITOR_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}

	catalogCacheSize, err := parsePositiveIntEnv("CATALOG_CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}
	monitorWindowDays, err := parsePositiveIntEnv("MONITOR_WINDOW_DAYS", 7)
	if err != nil {
		return nil, err
	}

	monitorMinMagnitude := 2.5
	if s := os.Getenv("MONITOR_MIN_MAGNITUDE"); s != "" {
		v, parseErr := strconv.ParseFloat(s, 64)
		if parseErr != nil || v < 0 {
			return nil, fmt.Errorf("invalid MONITOR_MIN_MAGNITUDE %q", s)
		}
		monitorMinMagnitude = v
	}

	watchRegions, err := parseWatchRegions(
		envOrDefault("WATCH_REGIONS", ""),
		monitorWindowDays,
		monitorMinMagnitude,
	)
	if err != nil {
		return nil, err
	}

	alertMinRisk := seismic.RiskLevel(envOrDefault("ALERT_MIN_RISK_LEVEL", string(seismic.RiskHigh)))
	if alertMinRisk.Rank() < 0 {
		return nil, fmt.Errorf("invalid ALERT_MIN_RISK_LEVEL %q", alertMinRisk)
	}

	gnssBaseURL := os.Getenv("GNSS_BASE_URL")
	gnssEnabled := gnssBaseURL != ""
	if v := os.Getenv("GNSS_ENABLED"); v != "" {
		gnssEnabled = v == "true"
	}

	kafkaEnabled := os.Getenv("KAFKA_ENABLED") == "true"

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		USGSBaseURL:      envOrDefault("USGS_BASE_URL", "https://earthquake.usgs.gov/fdsnws/event/1"),
		USGSTimeout:      usgsTimeout,
		CatalogCacheSize: catalogCacheSize,
		CatalogCacheTTL:  catalogCacheTTL,

		GNSSBaseURL: gnssBaseURL,
		GNSSAPIKey:  os.Getenv("GNSS_API_KEY"),
		GNSSTimeout: gnssTimeout,
		GNSSEnabled: gnssEnabled,

		KafkaBrokers:     parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaAlertsTopic: envOrDefault("KAFKA_ALERTS_TOPIC", "seismic-risk-alerts"),
		KafkaEnabled:     kafkaEnabled,

		MonitorInterval:     monitorInterval,
		MonitorWindowDays:   monitorWindowDays,
		MonitorMinMagnitude: monitorMinMagnitude,
		WatchRegions:        watchRegions,
		AlertMinRiskLevel:   alertMinRisk,
	}

	if cfg.GNSSEnabled && cfg.GNSSBaseURL == "" {
		return nil, fmt.Errorf("GNSS_ENABLED is true but GNSS_BASE_URL is not set")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaAlertsTopic == "" {
		return nil, fmt.Errorf("KAFKA_ENABLED is true but KAFKA_ALERTS_TOPIC is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return d, nil
}

func parsePositiveIntEnv(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return n, nil
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// parseWatchRegions decodes WATCH_REGIONS, a semicolon-separated list of
// "lat,lon,radiusKm" triples. Window and magnitude floor come from the
// monitor-wide settings.
func parseWatchRegions(s string, windowDays int, minMagnitude float64) ([]seismic.Region, error) {
	if s == "" {
		return nil, nil
	}

	var regions []seismic.Region
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid WATCH_REGIONS entry %q: want lat,lon,radiusKm", entry)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid WATCH_REGIONS latitude in %q", entry)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid WATCH_REGIONS longitude in %q", entry)
		}
		radius, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid WATCH_REGIONS radius in %q", entry)
		}

		region := seismic.Region{
			Latitude:     lat,
			Longitude:    lon,
			RadiusKm:     radius,
			WindowDays:   windowDays,
			MinMagnitude: minMagnitude,
		}
		if err := region.Validate(); err != nil {
			return nil, fmt.Errorf("invalid WATCH_REGIONS entry %q: %w", entry, err)
		}
		regions = append(regions, region)
	}
	return regions, nil
}
