package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/amaumene/gostremioagg/internal/constants"
	"github.com/amaumene/gostremioagg/internal/errors"
	"github.com/amaumene/gostremioagg/internal/models"
	"github.com/amaumene/gostremioagg/pkg/httputil"
	"github.com/amaumene/gostremioagg/pkg/logger"
	"github.com/amaumene/gostremioagg/pkg/ratelimiter"
	"github.com/amaumene/gostremioagg/pkg/security"
)

// Client is the generic driver that queries any Provider. One Client is shared
// by every instance of a provider; it holds no per-query state.
type Client struct {
	provider    Provider
	httpClient  *http.Client
	rateLimiter ratelimiter.RateLimiter
	logger      logger.Logger
}

// NewClient creates a driver for provider. A nil httpClient selects the default
// pooled client, a nil limiter disables pacing and a nil log discards output.
func NewClient(provider Provider, httpClient *http.Client, limiter ratelimiter.RateLimiter, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = httputil.NewDefaultHTTPClient()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		provider:    provider,
		httpClient:  httpClient,
		rateLimiter: limiter,
		logger:      log,
	}
}

// GetParsedStreams issues one query for inst, bounded by inst.Timeout, and maps
// every returned entry through the provider. Errors are *errors.StreamError.
func (c *Client) GetParsedStreams(ctx context.Context, inst Instance, req models.StreamRequest) ([]models.ParsedStream, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, errors.NewTimeoutError(fmt.Sprintf("rate limit wait for %s", inst.Name), err)
		}
	}

	if inst.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inst.Timeout)
		defer cancel()
	}

	streamURL := buildStreamURL(inst.URL, req)
	c.logger.Debugf("[%s] querying instance %s: %s", inst.Name, inst.ID, security.MaskScope(streamURL))

	raw, err := c.fetchStreams(ctx, inst, streamURL)
	if err != nil {
		return nil, err
	}

	streams := make([]models.ParsedStream, 0, len(raw))
	for _, entry := range raw {
		stream := c.provider.ParseStream(entry)
		stream.Addon = models.AddonIdentity{ID: inst.AddonID, Name: inst.Name}
		stream.InstanceID = inst.ID
		streams = append(streams, stream)
	}

	c.logger.Debugf("[%s] instance %s returned %d streams", inst.Name, inst.ID, len(streams))
	return streams, nil
}

func (c *Client) fetchStreams(ctx context.Context, inst Instance, streamURL string) ([]models.RawStream, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return nil, errors.NewUpstreamError(inst.Name, err)
	}
	httputil.SetDefaultHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.classify(ctx, inst, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewUpstreamError(inst.Name, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload models.RawStreamResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, constants.MaxUpstreamBodyBytes)).Decode(&payload); err != nil {
		if ctx.Err() != nil {
			return nil, c.classify(ctx, inst, err)
		}
		return nil, errors.NewDecodeError(inst.Name, err)
	}
	return payload.Streams, nil
}

// classify maps a transport error to TIMEOUT when the instance deadline fired.
func (c *Client) classify(ctx context.Context, inst Instance, err error) error {
	if ne, ok := err.(net.Error); (ok && ne.Timeout()) || ctx.Err() == context.DeadlineExceeded {
		return errors.NewTimeoutError(fmt.Sprintf("%s query after %s", inst.Name, inst.Timeout), err)
	}
	return errors.NewUpstreamError(inst.Name, err)
}

// buildStreamURL appends the stream resource path to an instance base URL.
// Manifest URLs, as users paste them for overrides, are reduced to their base.
// Query parameters of the base are re-attached after the resource path.
func buildStreamURL(base string, req models.StreamRequest) string {
	base = strings.TrimSpace(base)
	query := ""
	if u, err := url.Parse(base); err == nil && (u.RawQuery != "" || u.Fragment != "") {
		if u.RawQuery != "" {
			query = "?" + u.RawQuery
		}
		u.RawQuery, u.ForceQuery, u.Fragment, u.RawFragment = "", false, "", ""
		base = u.String()
	}

	base = strings.TrimSuffix(base, "manifest.json")
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + "stream/" + url.PathEscape(req.Type) + "/" + url.PathEscape(req.StremioID()) + ".json" + query
}
