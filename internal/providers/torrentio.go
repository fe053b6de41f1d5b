package providers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/amaumene/gostremioagg/internal/constants"
	"github.com/amaumene/gostremioagg/internal/models"
	"github.com/amaumene/gostremioagg/internal/parser"
	"github.com/amaumene/gostremioagg/internal/registry"
	"github.com/samber/mo"
)

const torrentioSizeBase = 1024

var (
	// "[RD+] Torrentio" is cached, "[RD download] Torrentio" is not
	torrentioDebridRegex  = regexp.MustCompile(`^\[([a-zA-Z]{2})(\+| download)\]`)
	torrentioSeedersRegex = regexp.MustCompile(`👤 (\d+)`)
	torrentioIndexerRegex = regexp.MustCompile("⚙️ (.+)")
)

// Torrentio is the Provider for the Torrentio addon.
type Torrentio struct {
	baseURL string
}

// NewTorrentio creates the provider. An empty baseURL selects the public instance.
func NewTorrentio(baseURL string) *Torrentio {
	if baseURL == "" {
		baseURL = constants.TorrentioURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Torrentio{baseURL: baseURL}
}

func (t *Torrentio) Name() string        { return constants.ProviderTorrentio }
func (t *Torrentio) DisplayName() string { return constants.TorrentioDisplayName }

func (t *Torrentio) SupportedServices() []string {
	return registry.SupportedServices(constants.ProviderTorrentio)
}

func (t *Torrentio) BaseURL(scope, overrideURL string) string {
	if overrideURL != "" {
		return overrideURL
	}
	if scope != "" {
		return t.baseURL + scope + "/"
	}
	return t.baseURL
}

// ParseStream applies the extraction rules in order. Each rule is total and
// leaves its field at the default when it does not match.
func (t *Torrentio) ParseStream(raw models.RawStream) models.ParsedStream {
	filename := torrentioFilename(raw)

	stream := models.ParsedStream{
		Provider:       constants.ProviderTorrentio,
		Filename:       filename,
		ParsedFilename: parser.ParseFilename(filename),
		Debrid:         torrentioDebrid(raw.Name),
		Seeders:        torrentioSeeders(raw.Title),
		Indexer:        torrentioIndexer(raw.Title),
		InfoHash:       raw.InfoHash,
		URL:            raw.URL,
	}
	if raw.Title != "" {
		stream.SizeInBytes = parser.ExtractSizeInBytes(raw.Title, torrentioSizeBase)
	}
	if raw.FileIdx != nil {
		stream.FileIdx = mo.Some(*raw.FileIdx)
	}
	return stream
}

func torrentioFilename(raw models.RawStream) string {
	if raw.Title != "" {
		return strings.Split(raw.Title, "\n")[0]
	}
	return strings.TrimSpace(raw.BehaviorHints.Filename)
}

func torrentioDebrid(name string) mo.Option[models.DebridInfo] {
	m := torrentioDebridRegex.FindStringSubmatch(name)
	if m == nil {
		return mo.None[models.DebridInfo]()
	}
	serviceID, ok := registry.ResolveServiceID(m[1])
	if !ok {
		serviceID = m[1]
	}
	return mo.Some(models.DebridInfo{ServiceID: serviceID, Cached: m[2] == "+"})
}

func torrentioSeeders(title string) mo.Option[int] {
	m := torrentioSeedersRegex.FindStringSubmatch(title)
	if m == nil {
		return mo.None[int]()
	}
	seeders, err := strconv.Atoi(m[1])
	if err != nil {
		return mo.None[int]()
	}
	return mo.Some(seeders)
}

func torrentioIndexer(title string) mo.Option[string] {
	lines := strings.Split(title, "\n")
	if len(lines) < 2 {
		return mo.None[string]()
	}
	m := torrentioIndexerRegex.FindStringSubmatch(lines[1])
	if m == nil {
		return mo.None[string]()
	}
	return mo.Some(m[1])
}
