package aggregator_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amaumene/gostremioagg/internal/aggregator"
	"github.com/amaumene/gostremioagg/internal/aggregator/mocks"
	"github.com/amaumene/gostremioagg/internal/constants"
	"github.com/amaumene/gostremioagg/internal/errors"
	"github.com/amaumene/gostremioagg/internal/models"
	"github.com/amaumene/gostremioagg/internal/providers"
	"github.com/amaumene/gostremioagg/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testAddonID = "torrentio-test"

func service(id, apiKey string) models.ServiceConfig {
	return models.ServiceConfig{ID: id, Enabled: true, Credentials: map[string]string{"apiKey": apiKey}}
}

func threeServices() []models.ServiceConfig {
	return []models.ServiceConfig{
		service(constants.ServiceRealDebrid, "rd"),
		service(constants.ServiceAllDebrid, "ad"),
		service(constants.ServiceTorbox, "tb"),
	}
}

func streamsFor(n int, tag string) []models.ParsedStream {
	out := make([]models.ParsedStream, n)
	for i := range out {
		out[i] = models.ParsedStream{Filename: fmt.Sprintf("%s-%d", tag, i)}
	}
	return out
}

func newAggregator(fetcher aggregator.StreamFetcher) *aggregator.Aggregator {
	return aggregator.New(providers.NewTorrentio(""), fetcher, aggregator.Options{}, logger.NewNop())
}

func TestPlan_Modes(t *testing.T) {
	agg := newAggregator(nil)

	t.Run("override wins over services", func(t *testing.T) {
		plan := agg.Plan(models.UserConfig{
			Services:  threeServices(),
			Torrentio: models.ProviderOptions{OverrideURL: "https://mirror.example/manifest.json", UseMultipleInstances: "true"},
		}, testAddonID)

		assert.Equal(t, aggregator.ModeOverride, plan.Mode)
		require.Len(t, plan.Instances, 1)
		assert.Equal(t, "https://mirror.example/manifest.json", plan.Instances[0].URL)
	})

	t.Run("no usable service", func(t *testing.T) {
		disabled := service(constants.ServiceRealDebrid, "rd")
		disabled.Enabled = false
		plan := agg.Plan(models.UserConfig{
			Services: []models.ServiceConfig{disabled, service("unsupported", "x")},
		}, testAddonID)

		assert.Equal(t, aggregator.ModeUnscoped, plan.Mode)
		require.Len(t, plan.Instances, 1)
		assert.Equal(t, constants.TorrentioURL, plan.Instances[0].URL)
		assert.Empty(t, plan.Instances[0].Services)
	})

	t.Run("per service", func(t *testing.T) {
		plan := agg.Plan(models.UserConfig{
			Services:  threeServices(),
			Torrentio: models.ProviderOptions{UseMultipleInstances: "true"},
		}, testAddonID)

		assert.Equal(t, aggregator.ModePerService, plan.Mode)
		require.Len(t, plan.Instances, 3)
		assert.Equal(t, constants.TorrentioURL+"realdebrid=rd/", plan.Instances[0].URL)
		assert.Equal(t, constants.TorrentioURL+"alldebrid=ad/", plan.Instances[1].URL)
		assert.Equal(t, constants.TorrentioURL+"torbox=tb/", plan.Instances[2].URL)
		assert.Equal(t, []string{constants.ServiceTorbox}, plan.Instances[2].Services)
	})

	t.Run("combined", func(t *testing.T) {
		plan := agg.Plan(models.UserConfig{Services: threeServices()}, testAddonID)

		assert.Equal(t, aggregator.ModeCombined, plan.Mode)
		require.Len(t, plan.Instances, 1)
		assert.Equal(t, constants.TorrentioURL+"realdebrid=rd|alldebrid=ad|torbox=tb/", plan.Instances[0].URL)
	})

	t.Run("multiple instances flag must be exactly true", func(t *testing.T) {
		plan := agg.Plan(models.UserConfig{
			Services:  threeServices(),
			Torrentio: models.ProviderOptions{UseMultipleInstances: "yes"},
		}, testAddonID)
		assert.Equal(t, aggregator.ModeCombined, plan.Mode)
	})
}

func TestPlan_InstanceSettings(t *testing.T) {
	agg := newAggregator(nil)

	plan := agg.Plan(models.UserConfig{
		Services:  threeServices(),
		Torrentio: models.ProviderOptions{UseMultipleInstances: "true", IndexerTimeout: "2500", OverrideName: "My Torrentio"},
	}, testAddonID)

	for _, inst := range plan.Instances {
		assert.Equal(t, 2500*time.Millisecond, inst.Timeout)
		assert.Equal(t, "My Torrentio", inst.Name)
		assert.Equal(t, testAddonID, inst.AddonID)
	}
	assert.NotEqual(t, plan.Instances[0].ID, plan.Instances[1].ID)

	again := agg.Plan(models.UserConfig{
		Services:  threeServices(),
		Torrentio: models.ProviderOptions{UseMultipleInstances: "true"},
	}, testAddonID)
	assert.Equal(t, plan.Instances[0].ID, again.Instances[0].ID, "instance ids are stable")
	assert.Equal(t, constants.DefaultTorrentioTimeout, again.Instances[0].Timeout)
	assert.Equal(t, constants.TorrentioDisplayName, again.Instances[0].Name)

	invalid := agg.Plan(models.UserConfig{Torrentio: models.ProviderOptions{IndexerTimeout: "soon"}}, testAddonID)
	assert.Equal(t, constants.DefaultTorrentioTimeout, invalid.Instances[0].Timeout)
}

func TestAggregate_QueryCounts(t *testing.T) {
	req := models.NewMovieRequest("tt0111161")

	tests := []struct {
		name    string
		cfg     models.UserConfig
		queries int
	}{
		{
			name: "override issues one query",
			cfg: models.UserConfig{
				Services:  threeServices(),
				Torrentio: models.ProviderOptions{OverrideURL: "https://mirror.example/", UseMultipleInstances: "true"},
			},
			queries: 1,
		},
		{
			name:    "no usable service issues one query",
			cfg:     models.UserConfig{},
			queries: 1,
		},
		{
			name: "per service issues one query per usable service",
			cfg: models.UserConfig{
				Services:  threeServices(),
				Torrentio: models.ProviderOptions{UseMultipleInstances: "true"},
			},
			queries: 3,
		},
		{
			name:    "combined issues one query",
			cfg:     models.UserConfig{Services: threeServices()},
			queries: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			fetcher := mocks.NewMockStreamFetcher(ctrl)
			fetcher.EXPECT().
				GetParsedStreams(gomock.Any(), gomock.Any(), req).
				Return(streamsFor(2, "s"), nil).
				Times(tt.queries)

			streams := newAggregator(fetcher).Aggregate(context.Background(), tt.cfg, req, testAddonID)
			assert.Len(t, streams, 2*tt.queries)
		})
	}
}

func TestAggregate_PartialFailure(t *testing.T) {
	req := models.NewEpisodeRequest("tt0903747", 1, 1)
	cfg := models.UserConfig{
		Services:  threeServices(),
		Torrentio: models.ProviderOptions{UseMultipleInstances: "true"},
	}

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockStreamFetcher(ctrl)
	fetcher.EXPECT().
		GetParsedStreams(gomock.Any(), gomock.Any(), req).
		DoAndReturn(func(_ context.Context, inst providers.Instance, _ models.StreamRequest) ([]models.ParsedStream, error) {
			switch inst.Services[0] {
			case constants.ServiceRealDebrid:
				return streamsFor(3, "rd"), nil
			case constants.ServiceAllDebrid:
				return nil, errors.NewTimeoutError("alldebrid", context.DeadlineExceeded)
			default:
				return streamsFor(4, "tb"), nil
			}
		}).
		Times(3)

	streams := newAggregator(fetcher).Aggregate(context.Background(), cfg, req, testAddonID)
	require.Len(t, streams, 7)

	// instance order is kept
	assert.Equal(t, "rd-0", streams[0].Filename)
	assert.Equal(t, "tb-0", streams[3].Filename)
}

func TestAggregate_DuplicateServiceIDs(t *testing.T) {
	disabled := service(constants.ServiceRealDebrid, "old")
	disabled.Enabled = false
	cfg := models.UserConfig{
		Services:  []models.ServiceConfig{disabled, service(constants.ServiceRealDebrid, "new")},
		Torrentio: models.ProviderOptions{UseMultipleInstances: "true"},
	}

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockStreamFetcher(ctrl)
	fetcher.EXPECT().
		GetParsedStreams(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inst providers.Instance, _ models.StreamRequest) ([]models.ParsedStream, error) {
			assert.Contains(t, inst.URL, "realdebrid=new")
			return streamsFor(2, "rd"), nil
		}).
		Times(1)

	streams := newAggregator(fetcher).Aggregate(context.Background(), cfg, models.NewMovieRequest("tt0111161"), testAddonID)
	assert.Len(t, streams, 2)
}

func TestPlan_DuplicateServiceIDsGetDistinctInstances(t *testing.T) {
	cfg := models.UserConfig{
		Services: []models.ServiceConfig{
			service(constants.ServiceRealDebrid, "first"),
			service(constants.ServiceRealDebrid, "second"),
		},
		Torrentio: models.ProviderOptions{UseMultipleInstances: "true"},
	}

	plan := newAggregator(nil).Plan(cfg, testAddonID)
	require.Len(t, plan.Instances, 2)
	require.Len(t, plan.Sources, 2)
	assert.NotEqual(t, plan.Instances[0].ID, plan.Instances[1].ID)
	assert.Equal(t, "first", plan.Sources[0].Credentials["apiKey"])
}

func TestAggregate_AllFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockStreamFetcher(ctrl)
	fetcher.EXPECT().
		GetParsedStreams(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.NewUpstreamError("torrentio", fmt.Errorf("connection refused"))).
		Times(1)

	streams := newAggregator(fetcher).Aggregate(context.Background(), models.UserConfig{}, models.NewMovieRequest("tt1"), testAddonID)
	assert.NotNil(t, streams)
	assert.Empty(t, streams)
}

func TestAggregate_BranchesRunConcurrently(t *testing.T) {
	const branches = 3
	var arrived sync.WaitGroup
	arrived.Add(branches)
	allArrived := make(chan struct{})
	go func() {
		arrived.Wait()
		close(allArrived)
	}()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockStreamFetcher(ctrl)
	fetcher.EXPECT().
		GetParsedStreams(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ providers.Instance, _ models.StreamRequest) ([]models.ParsedStream, error) {
			arrived.Done()
			select {
			case <-allArrived:
				return streamsFor(1, "ok"), nil
			case <-time.After(2 * time.Second):
				return nil, fmt.Errorf("branches were serialized")
			}
		}).
		Times(branches)

	cfg := models.UserConfig{Services: threeServices(), Torrentio: models.ProviderOptions{UseMultipleInstances: "true"}}
	streams := newAggregator(fetcher).Aggregate(context.Background(), cfg, models.NewMovieRequest("tt1"), testAddonID)
	assert.Len(t, streams, branches)
}

func TestAggregate_AgainstUpstream(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if strings.HasPrefix(r.URL.Path, "/alldebrid=") {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.RawStreamResponse{Streams: []models.RawStream{
			{Name: "[RD+] Torrentio", Title: "Movie.2020.1080p\n👤 42 💾 2 GB ⚙️ YTS"},
			{Name: "[RD download] Torrentio", Title: "Movie.2020.720p\n👤 7 ⚙️ 1337x"},
		}})
	}))
	defer server.Close()

	provider := providers.NewTorrentio(server.URL)
	client := providers.NewClient(provider, nil, nil, logger.NewNop())
	agg := aggregator.New(provider, client, aggregator.Options{}, logger.NewNop())

	cfg := models.UserConfig{Services: threeServices(), Torrentio: models.ProviderOptions{UseMultipleInstances: "true"}}
	streams := agg.Aggregate(context.Background(), cfg, models.NewMovieRequest("tt1"), testAddonID)

	assert.Equal(t, int32(3), requests.Load())
	require.Len(t, streams, 4)
	for _, s := range streams {
		assert.Equal(t, testAddonID, s.Addon.ID)
		assert.NotEmpty(t, s.InstanceID)
	}
	seeders, ok := streams[0].Seeders.Get()
	require.True(t, ok)
	assert.Equal(t, 42, seeders)
}
