// Package aggregator decides how many upstream queries a stream request needs,
// runs them and merges their results.
package aggregator

//go:generate mockgen -source=aggregator.go -destination=mocks/mock_fetcher.go -package=mocks

import (
	"context"
	"time"

	"github.com/amaumene/gostremioagg/internal/constants"
	"github.com/amaumene/gostremioagg/internal/models"
	"github.com/amaumene/gostremioagg/internal/providers"
	"github.com/amaumene/gostremioagg/pkg/logger"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/iter"
)

// StreamFetcher runs a single upstream query. *providers.Client implements it.
type StreamFetcher interface {
	GetParsedStreams(ctx context.Context, inst providers.Instance, req models.StreamRequest) ([]models.ParsedStream, error)
}

// Options tunes an Aggregator. Zero values select the defaults.
type Options struct {
	MaxConcurrency int
	DefaultTimeout time.Duration
}

// Aggregator fans a request out to one or more instances of a provider.
type Aggregator struct {
	provider       providers.Provider
	fetcher        StreamFetcher
	maxConcurrency int
	defaultTimeout time.Duration
	logger         logger.Logger
}

// New creates an aggregator for provider, querying through fetcher.
func New(provider providers.Provider, fetcher StreamFetcher, opts Options, log logger.Logger) *Aggregator {
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = constants.DefaultMaxConcurrency
	}
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = constants.DefaultTorrentioTimeout
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Aggregator{
		provider:       provider,
		fetcher:        fetcher,
		maxConcurrency: opts.MaxConcurrency,
		defaultTimeout: opts.DefaultTimeout,
		logger:         log,
	}
}

// Aggregate returns the concatenated streams of every instance the plan for
// cfg yields. Failed instances are logged and contribute nothing; the result
// is never nil. Order follows the plan, no deduplication or sorting is done.
func (a *Aggregator) Aggregate(ctx context.Context, cfg models.UserConfig, req models.StreamRequest, addonID string) []models.ParsedStream {
	plan := a.Plan(cfg, addonID)
	a.logger.Debugf("[Aggregator] %s mode with %d instance(s) for %s %s", plan.Mode, len(plan.Instances), req.Type, req.StremioID())

	var streams []models.ParsedStream
	if plan.Mode == ModePerService {
		streams = a.fanOut(ctx, plan, req)
	} else {
		streams = a.fetch(ctx, plan.Instances[0], req)
	}

	a.logger.Infof("[Aggregator] %d streams from %d instance(s) for %s", len(streams), len(plan.Instances), req.StremioID())
	return streams
}

// branch pairs a per-service instance with the config entry it came from.
type branch struct {
	instance providers.Instance
	source   models.ServiceConfig
}

// fanOut queries every instance concurrently and waits for all of them. The
// results keep the instance order.
func (a *Aggregator) fanOut(ctx context.Context, plan Plan, req models.StreamRequest) []models.ParsedStream {
	branches := lo.Map(plan.Instances, func(inst providers.Instance, i int) branch {
		return branch{instance: inst, source: plan.Sources[i]}
	})
	mapper := iter.Mapper[branch, []models.ParsedStream]{MaxGoroutines: a.maxConcurrency}
	results := mapper.Map(branches, func(b *branch) []models.ParsedStream {
		if !b.source.Enabled {
			return nil
		}
		return a.fetch(ctx, b.instance, req)
	})
	return lo.Flatten(results)
}

// fetch runs one instance and isolates its failure.
func (a *Aggregator) fetch(ctx context.Context, inst providers.Instance, req models.StreamRequest) []models.ParsedStream {
	start := time.Now()
	streams, err := a.fetcher.GetParsedStreams(ctx, inst, req)
	if err != nil {
		a.logger.Warnf("[Aggregator] instance %s (%s) failed after %s: %v", inst.Name, inst.ID, time.Since(start).Round(time.Millisecond), err)
		return []models.ParsedStream{}
	}
	if streams == nil {
		return []models.ParsedStream{}
	}
	return streams
}
