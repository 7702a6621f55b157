// Package seismic implements the statistical analysis engine for earthquake
// catalogs and crustal-displacement measurements.
//
// # Data Sources
//
// Earthquake events come from an external catalog service (the USGS FDSN event
// web service in production), already filtered by space, time, and magnitude.
// Displacement measurements come from an external GNSS network service, with
// per-station quality tiers and an anomaly flag set upstream. The engine never
// fetches data itself; it consumes the [CatalogProvider] and
// [DisplacementProvider] interfaces.
//
// # Gutenberg-Richter Estimation
//
// The magnitude-frequency relation log10(N) = a − b·M is fitted with the Aki
// maximum-likelihood estimator over events at or above the magnitude of
// completeness Mc, with the standard half-bin correction:
//
//	b = log10(e) / (mean(M) − (Mc − 0.05))
//	a = log10(N) + b·Mc
//
// Mc itself is found by a simplified bin-scan heuristic: magnitudes are binned
// into 0.1-magnitude bins, and Mc is the first well-populated bin whose
// successor holds strictly fewer events, i.e. where the frequency curve begins
// its sustained decline. This is an approximation, not the full Wiemer-Wyss
// goodness-of-fit method. When the scan finds no such bin, Mc falls back to
// min(M) + 0.5. Catalogs with fewer than 10 events, or fewer than 5 events
// above Mc, yield fixed default parameters rather than an error.
//
// The b-value denominator is zero when mean(M) equals Mc − 0.05; the division
// is surfaced as ±Inf rather than coerced to a plausible-looking number.
//
// # Hazard and Forecasting
//
// Occurrence is modeled as a Poisson process: for an average rate λ, the
// probability of at least one event in a window is 1 − e^(−λ). Forecasts
// project magnitude-specific rates from the fitted b-value and extrapolate
// over an arbitrary horizon. Outputs are statistical estimates with explicit
// limitation statements; this is not an earthquake-prediction system.
//
// # Swarm Classification
//
// A time-ordered sequence is partitioned around its mainshock (the
// maximum-magnitude event, first occurrence winning ties) into foreshocks and
// aftershocks. A sequence with a narrow magnitude range (< 1.5) and more than
// 10 events is classified as a swarm, in which case no mainshock is reported.
// Spatial extent is the great-circle distance across the bounding box of all
// epicenters, an approximation of spread rather than a true diameter.
//
// # Determinism
//
// All statistical functions are deterministic and side-effect free. The only
// mutable state is the package clock, swappable via [SetClock] for tests.
package seismic
