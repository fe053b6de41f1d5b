package aggregator

import (
	"context"
	"testing"
	"time"

	"github.com/amaumene/gostremioagg/internal/aggregator/mocks"
	"github.com/amaumene/gostremioagg/internal/models"
	"github.com/amaumene/gostremioagg/internal/providers"
	"github.com/amaumene/gostremioagg/pkg/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestParseTimeout(t *testing.T) {
	def := 10 * time.Second
	assert.Equal(t, 1500*time.Millisecond, parseTimeout("1500", def))
	assert.Equal(t, 1500*time.Millisecond, parseTimeout(" 1500 ", def))
	assert.Equal(t, def, parseTimeout("", def))
	assert.Equal(t, def, parseTimeout("0", def))
	assert.Equal(t, def, parseTimeout("-5", def))
	assert.Equal(t, def, parseTimeout("1.5s", def))
}

func TestFanOut_SkipsDisabledSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockStreamFetcher(ctrl)
	fetcher.EXPECT().
		GetParsedStreams(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.ParsedStream{{Filename: "rd-0"}}, nil).
		Times(1)

	agg := New(providers.NewTorrentio(""), fetcher, Options{}, logger.NewNop())
	plan := Plan{
		Mode: ModePerService,
		Instances: []providers.Instance{
			{ID: "a", Services: []string{"realdebrid"}},
			{ID: "b", Services: []string{"realdebrid"}},
		},
		Sources: []models.ServiceConfig{
			{ID: "realdebrid", Enabled: true},
			{ID: "realdebrid", Enabled: false},
		},
	}

	streams := agg.fanOut(context.Background(), plan, models.NewMovieRequest("tt0111161"))
	assert.Len(t, streams, 1)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "override", ModeOverride.String())
	assert.Equal(t, "per-service", ModePerService.String())
	assert.Equal(t, "unknown", Mode(42).String())
}
