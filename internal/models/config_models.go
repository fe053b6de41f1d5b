package models

// ServiceConfig is one configured debrid or cloud storage service. Credentials
// hold named secret fields (apiKey, or clientId/token for put.io).
type ServiceConfig struct {
	ID          string            `json:"id"`
	Enabled     bool              `json:"enabled"`
	Credentials map[string]string `json:"credentials"`
}

// ProviderOptions is the per-provider option bag. Values arrive as strings
// from the configuration frontend and are interpreted by the aggregator.
type ProviderOptions struct {
	UseMultipleInstances string `json:"useMultipleInstances,omitempty"`
	OverrideURL          string `json:"overrideUrl,omitempty"`
	IndexerTimeout       string `json:"indexerTimeout,omitempty"`
	OverrideName         string `json:"overrideName,omitempty"`
}

// UserConfig is the resolved configuration an aggregation call consumes.
type UserConfig struct {
	Services  []ServiceConfig `json:"services"`
	Torrentio ProviderOptions `json:"torrentio"`
}
