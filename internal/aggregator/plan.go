package aggregator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amaumene/gostremioagg/internal/models"
	"github.com/amaumene/gostremioagg/internal/providers"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Mode is the fan-out topology for one aggregation.
type Mode int

const (
	// ModeOverride queries a user supplied URL once, ignoring services.
	ModeOverride Mode = iota
	// ModeUnscoped queries the provider once without any service scope.
	ModeUnscoped
	// ModePerService queries once per usable service, concurrently.
	ModePerService
	// ModeCombined queries once with every usable service in a single scope.
	ModeCombined
)

func (m Mode) String() string {
	switch m {
	case ModeOverride:
		return "override"
	case ModeUnscoped:
		return "unscoped"
	case ModePerService:
		return "per-service"
	case ModeCombined:
		return "combined"
	default:
		return "unknown"
	}
}

// Plan is the topology decided before any query is dispatched.
type Plan struct {
	Mode      Mode
	Instances []providers.Instance
	// Sources holds, in per-service mode, the configuration entry each
	// instance was built from. It is index aligned with Instances.
	Sources []models.ServiceConfig
}

// Plan decides the mode for cfg and derives the instances to query. The first
// matching rule wins: override URL, no usable service, multiple instances,
// then combined.
func (a *Aggregator) Plan(cfg models.UserConfig, addonID string) Plan {
	opts := cfg.Torrentio
	name := lo.Ternary(opts.OverrideName != "", opts.OverrideName, a.provider.DisplayName())
	timeout := parseTimeout(opts.IndexerTimeout, a.defaultTimeout)

	newInstance := func(url, key string, services []string) providers.Instance {
		return providers.Instance{
			URL:      url,
			Timeout:  timeout,
			Name:     name,
			ID:       instanceID(addonID, a.provider.Name(), key),
			AddonID:  addonID,
			Services: services,
		}
	}

	if opts.OverrideURL != "" {
		return Plan{
			Mode:      ModeOverride,
			Instances: []providers.Instance{newInstance(a.provider.BaseURL("", opts.OverrideURL), "override", nil)},
		}
	}

	usable := UsableServices(cfg.Services, a.provider.SupportedServices())
	if len(usable) == 0 {
		return Plan{
			Mode:      ModeUnscoped,
			Instances: []providers.Instance{newInstance(a.provider.BaseURL("", ""), "default", nil)},
		}
	}

	if opts.UseMultipleInstances == "true" {
		// ids may repeat in a config, the position keeps instance ids apart
		instances := lo.Map(usable, func(s models.ServiceConfig, i int) providers.Instance {
			return newInstance(a.provider.BaseURL(providers.SerializeService(s), ""), fmt.Sprintf("%d:%s", i, s.ID), []string{s.ID})
		})
		return Plan{Mode: ModePerService, Instances: instances, Sources: usable}
	}

	ids := lo.Map(usable, func(s models.ServiceConfig, _ int) string { return s.ID })
	return Plan{
		Mode: ModeCombined,
		Instances: []providers.Instance{
			newInstance(a.provider.BaseURL(providers.SerializeScope(usable), ""), strings.Join(ids, ","), ids),
		},
	}
}

// UsableServices returns the enabled services the provider supports, in
// configuration order.
func UsableServices(services []models.ServiceConfig, supported []string) []models.ServiceConfig {
	return lo.Filter(services, func(s models.ServiceConfig, _ int) bool {
		return s.Enabled && lo.Contains(supported, s.ID)
	})
}

// parseTimeout reads a millisecond count. Missing, malformed or non-positive
// values fall back to def.
func parseTimeout(value string, def time.Duration) time.Duration {
	ms, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

// instanceID is stable for a given addon, provider and scope key so that
// downstream consumers can group streams across requests.
func instanceID(addonID, provider, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(addonID+":"+provider+":"+key)).String()
}
