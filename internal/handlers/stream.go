package handlers

import (
	"context"
	"net/http"

	"github.com/amaumene/gostremioagg/internal/constants"
	"github.com/amaumene/gostremioagg/internal/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) handleStream(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), constants.RequestTimeout)
	defer cancel()

	userConfig, err := decodeUserConfig(c.Param("configuration"))
	if err != nil {
		h.logger.Warnf("[StreamHandler] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := models.ParseStreamRequest(c.Param("type"), c.Param("id"))
	if err != nil {
		h.logger.Warnf("[StreamHandler] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	streams := h.aggregator.Aggregate(ctx, userConfig, req, h.addonID)
	if ctx.Err() == context.DeadlineExceeded {
		h.logger.Errorf("[StreamHandler] request timeout for ID: %s", req.ID)
	}

	c.JSON(http.StatusOK, models.StreamResponse{Streams: streams})
}
