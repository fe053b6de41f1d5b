// Package constants defines application-wide constants and default values.
package constants

const (
	// Addon metadata
	AddonID      = "gostremioagg.stremio.addon"
	AddonVersion = "1.0.0"
	AddonName    = "GoStremioAgg"

	// Default configuration values
	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	// Log rotation defaults (lumberjack units: megabytes, days)
	DefaultLogMaxSize    = 50
	DefaultLogMaxBackups = 3
	DefaultLogMaxAge     = 14

	// Upstream pacing
	TorrentioRateLimit = 10 // requests per second
	TorrentioRateBurst = 10 // burst capacity

	// Upper bound on concurrent per-service queries in a single aggregation
	DefaultMaxConcurrency = 8

	// Maximum body size accepted from an upstream provider
	MaxUpstreamBodyBytes = 16 << 20
)
