// Package constants defines timeout values used throughout the application.
package constants

import "time"

// Timeout constants for various operations
const (
	// Default per-instance timeout for a Torrentio query when the option bag
	// does not carry an indexerTimeout.
	DefaultTorrentioTimeout = 10 * time.Second

	// Request timeout for the whole stream request served over HTTP
	RequestTimeout = 30 * time.Second

	// Grace period given to in-flight requests on shutdown
	ShutdownTimeout = 10 * time.Second
)
