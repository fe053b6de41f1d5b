// Package models defines the data structures shared by the parser, providers and aggregator.
package models

import "github.com/samber/mo"

// ParsedFilename is the structured decomposition of a release filename.
type ParsedFilename struct {
	Title        string   `json:"title,omitempty"`
	Year         int      `json:"year,omitempty"`
	Resolution   string   `json:"resolution,omitempty"`
	Source       string   `json:"source,omitempty"`
	Codec        string   `json:"codec,omitempty"`
	Audio        []string `json:"audio,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	ReleaseGroup string   `json:"releaseGroup,omitempty"`
	Season       int      `json:"season,omitempty"`
	Episode      int      `json:"episode,omitempty"`
	Complete     bool     `json:"complete,omitempty"`
	Confidence   float64  `json:"confidence"`
}

// DebridInfo identifies the debrid service a stream is served through.
// ServiceID is the canonical id when the short code is known, otherwise the raw code.
type DebridInfo struct {
	ServiceID string `json:"id"`
	Cached    bool   `json:"cached"`
}

// AddonIdentity names the provider instance that produced a stream.
type AddonIdentity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ParsedStream is the normalized output record for one upstream result entry.
type ParsedStream struct {
	Addon          AddonIdentity         `json:"addon"`
	InstanceID     string                `json:"instanceId"`
	Provider       string                `json:"provider"`
	Filename       string                `json:"filename"`
	ParsedFilename ParsedFilename        `json:"parsedFilename"`
	SizeInBytes    int64                 `json:"size"`
	Debrid         mo.Option[DebridInfo] `json:"debrid"`
	Seeders        mo.Option[int]        `json:"seeders"`
	Indexer        mo.Option[string]     `json:"indexer"`
	InfoHash       string                `json:"infoHash,omitempty"`
	FileIdx        mo.Option[int]        `json:"fileIdx"`
	URL            string                `json:"url,omitempty"`
}

// StreamResponse is the JSON envelope returned to callers.
type StreamResponse struct {
	Streams []ParsedStream `json:"streams"`
}
