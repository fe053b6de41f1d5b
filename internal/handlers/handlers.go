// Package handlers implements the HTTP surface that previews aggregated streams.
package handlers

import (
	"context"
	"net/http"

	"github.com/amaumene/gostremioagg/internal/constants"
	"github.com/amaumene/gostremioagg/internal/models"
	"github.com/amaumene/gostremioagg/pkg/logger"
	"github.com/gin-gonic/gin"
)

// StreamAggregator produces the merged stream list for a request.
type StreamAggregator interface {
	Aggregate(ctx context.Context, cfg models.UserConfig, req models.StreamRequest, addonID string) []models.ParsedStream
}

// Handler handles HTTP requests.
type Handler struct {
	aggregator StreamAggregator
	addonID    string
	logger     logger.Logger
}

// New creates a new Handler. addonID identifies this addon instance in every
// stream record it returns.
func New(aggregator StreamAggregator, addonID string, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		aggregator: aggregator,
		addonID:    addonID,
		logger:     log,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.handleHome)
	r.GET("/health", h.handleHealth)

	// Stream routes - handle both with and without .json in the handler
	r.GET("/:configuration/stream/:type/:id", h.handleStreamWrapper)
}

func (h *Handler) handleHome(c *gin.Context) {
	c.String(http.StatusOK, "%s %s - GET /<base64 config>/stream/<type>/<id>.json", constants.AddonName, constants.AddonVersion)
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": constants.AddonVersion})
}

func (h *Handler) handleStreamWrapper(c *gin.Context) {
	// Strip .json extension from ID if present
	stripJSONExtension(c, "id")
	h.handleStream(c)
}
