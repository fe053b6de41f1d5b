// Package providers implements upstream stream sources and the generic driver
// that queries them.
package providers

import (
	"time"

	"github.com/amaumene/gostremioagg/internal/models"
)

// Provider is the capability set every upstream source implements. The
// generic Client handles transport, timeouts and pacing for any Provider.
type Provider interface {
	// Name is the provider id, e.g. "torrentio".
	Name() string
	// DisplayName is the default instance name shown to users.
	DisplayName() string
	// SupportedServices lists the service ids a query can be scoped to.
	SupportedServices() []string
	// BaseURL returns the query base for a scope string. A non-empty
	// overrideURL is returned verbatim and scope is ignored.
	BaseURL(scope, overrideURL string) string
	// ParseStream maps one raw entry to a record. It must never fail.
	ParseStream(raw models.RawStream) models.ParsedStream
}

// Instance is the per-query configuration the aggregator derives for each
// upstream call. It is built fresh for every aggregation and never stored.
type Instance struct {
	URL      string
	Timeout  time.Duration
	Name     string
	ID       string
	AddonID  string
	Services []string // service ids covered by the scope, empty when unscoped
}
