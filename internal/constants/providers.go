package constants

// Provider name constants for consistent usage across internal packages
const (
	ProviderTorrentio = "torrentio"

	// TorrentioURL is the fixed base every unscoped or service-scoped query starts from.
	TorrentioURL = "https://torrentio.strem.fun/"

	// TorrentioDisplayName is used when the option bag carries no overrideName.
	TorrentioDisplayName = "Torrentio"
)

// Debrid / cloud storage service identifiers
const (
	ServiceRealDebrid = "realdebrid"
	ServiceAllDebrid  = "alldebrid"
	ServicePremiumize = "premiumize"
	ServiceDebridLink = "debridlink"
	ServiceEasyDebrid = "easydebrid"
	ServiceTorbox     = "torbox"
	ServiceOffcloud   = "offcloud"
	ServicePutio      = "putio"
)
