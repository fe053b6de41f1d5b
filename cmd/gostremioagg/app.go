package main

import (
	"io"

	"github.com/amaumene/gostremioagg/internal/aggregator"
	"github.com/amaumene/gostremioagg/internal/config"
	"github.com/amaumene/gostremioagg/internal/handlers"
	"github.com/amaumene/gostremioagg/internal/middleware"
	"github.com/amaumene/gostremioagg/internal/providers"
	"github.com/amaumene/gostremioagg/pkg/httputil"
	"github.com/amaumene/gostremioagg/pkg/logger"
	"github.com/amaumene/gostremioagg/pkg/ratelimiter"
	"github.com/gin-gonic/gin"
)

// app wires the provider, its client and the aggregator from configuration.
type app struct {
	cfg        *config.Config
	logger     logger.Logger
	aggregator *aggregator.Aggregator
}

func newApp(cfg *config.Config, logOutput io.Writer) *app {
	log := logger.NewWithOptions(logger.Options{
		Level:      cfg.Log.Level,
		Output:     logOutput,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	provider := providers.NewTorrentio(cfg.Torrentio.URL)
	limiter := ratelimiter.NewTokenBucket(int64(cfg.Torrentio.RateBurst), int64(cfg.Torrentio.RateLimit))
	// no client-wide timeout, each instance query carries its own deadline
	client := providers.NewClient(provider, httputil.NewHTTPClient(0), limiter, log)

	agg := aggregator.New(provider, client, aggregator.Options{
		MaxConcurrency: cfg.Torrentio.MaxConcurrency,
		DefaultTimeout: cfg.Torrentio.Timeout,
	}, log)

	log.Infof("[App] torrentio at %s, default timeout %s, max concurrency %d",
		cfg.Torrentio.URL, cfg.Torrentio.Timeout, cfg.Torrentio.MaxConcurrency)

	return &app{cfg: cfg, logger: log, aggregator: agg}
}

func (a *app) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(a.logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Gzip())

	handlers.New(a.aggregator, a.cfg.AddonID, a.logger).RegisterRoutes(r)
	return r
}
