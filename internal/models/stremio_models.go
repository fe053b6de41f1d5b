package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/amaumene/gostremioagg/internal/errors"
)

// Stremio content types accepted by the stream resource.
const (
	MediaTypeMovie  = "movie"
	MediaTypeSeries = "series"
)

var imdbIDRegex = regexp.MustCompile(`^tt\d+$`)

// BehaviorHints carries the optional structured hints of a Stremio stream.
type BehaviorHints struct {
	Filename   string `json:"filename,omitempty"`
	BingeGroup string `json:"bingeGroup,omitempty"`
	VideoSize  int64  `json:"videoSize,omitempty"`
}

// RawStream is one untyped result entry as returned by an upstream Stremio addon.
// Name and Title are free text; providers encode service, seeder and indexer tags in them.
type RawStream struct {
	Name          string        `json:"name,omitempty"`
	Title         string        `json:"title,omitempty"`
	InfoHash      string        `json:"infoHash,omitempty"`
	FileIdx       *int          `json:"fileIdx,omitempty"`
	URL           string        `json:"url,omitempty"`
	BehaviorHints BehaviorHints `json:"behaviorHints"`
}

// RawStreamResponse is the upstream stream resource payload.
type RawStreamResponse struct {
	Streams []RawStream `json:"streams"`
}

// StreamRequest describes what is being searched for. ID is the full Stremio id
// (e.g. "tt0903747:1:2"); ContentID, Season and Episode are its decoded parts.
type StreamRequest struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	ContentID string `json:"contentId"`
	Season    int    `json:"season,omitempty"`
	Episode   int    `json:"episode,omitempty"`
}

// StremioID returns the id as it appears in the stream resource path.
func (r StreamRequest) StremioID() string {
	if r.ID != "" {
		return r.ID
	}
	switch {
	case r.Season > 0 && r.Episode > 0:
		return fmt.Sprintf("%s:%d:%d", r.ContentID, r.Season, r.Episode)
	case r.Episode > 0:
		return fmt.Sprintf("%s:%d", r.ContentID, r.Episode)
	default:
		return r.ContentID
	}
}

// NewMovieRequest builds a request for a movie.
func NewMovieRequest(imdbID string) StreamRequest {
	return StreamRequest{Type: MediaTypeMovie, ID: imdbID, ContentID: imdbID}
}

// NewEpisodeRequest builds a request for a single series episode.
func NewEpisodeRequest(imdbID string, season, episode int) StreamRequest {
	return StreamRequest{
		Type:      MediaTypeSeries,
		ID:        fmt.Sprintf("%s:%d:%d", imdbID, season, episode),
		ContentID: imdbID,
		Season:    season,
		Episode:   episode,
	}
}

// ParseStreamRequest decodes a Stremio type and id. Supported id shapes are
// "tt123", "tt123:S:E", "<ns>:<id>" and "<ns>:<id>:E" / "<ns>:<id>:S:E" for
// namespaced catalogs such as kitsu or tmdb.
func ParseStreamRequest(mediaType, id string) (StreamRequest, error) {
	mediaType = strings.TrimSpace(mediaType)
	id = strings.TrimSuffix(strings.TrimSpace(id), ".json")
	if mediaType == "" || id == "" {
		return StreamRequest{}, errors.NewInvalidIDError(id)
	}

	parts := strings.Split(id, ":")
	var contentID string
	var rest []string
	if imdbIDRegex.MatchString(parts[0]) {
		contentID, rest = parts[0], parts[1:]
	} else {
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return StreamRequest{}, errors.NewInvalidIDError(id)
		}
		contentID, rest = parts[0]+":"+parts[1], parts[2:]
	}

	nums := make([]int, 0, len(rest))
	for _, p := range rest {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return StreamRequest{}, errors.NewInvalidIDError(id)
		}
		nums = append(nums, n)
	}

	req := StreamRequest{Type: mediaType, ID: id, ContentID: contentID}
	switch len(nums) {
	case 0:
	case 1:
		req.Episode = nums[0]
	case 2:
		req.Season, req.Episode = nums[0], nums[1]
	default:
		return StreamRequest{}, errors.NewInvalidIDError(id)
	}
	return req, nil
}
