package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhardel/caskwatch/internal/config"
	"github.com/jhardel/caskwatch/internal/domain"
)

const testCSV = `display_name,quantity,is_unique,noted,is_broadcast,sources,table,price,modifiers,image_id,category
Ring of wealth,1-1,true,false,true,Master@1/128,rare,None,none,1234,jewellery
Coins,250-500,false,false,false,Master@1/2-Elite@1/3,common,1,"quantity=2-4,sources=Master@1/64",42,currency
`

type fixedLookup struct {
	price int
}

func (l fixedLookup) Price(_ context.Context, _ string) (int, error) {
	return l.price, nil
}

func newTestSession(t *testing.T) *Session {
	t.Helper()

	dir := t.TempDir()
	dataFile := filepath.Join(dir, "rewards.csv")
	require.NoError(t, os.WriteFile(dataFile, []byte(testCSV), 0o644))

	cfg := &config.Config{
		DataFile: dataFile,
		DBFile:   filepath.Join(dir, "caskwatch.db"),
	}
	s := New(cfg, fixedLookup{price: 15000})
	t.Cleanup(func() { s.Close() })
	return s
}

func initialized(t *testing.T) *Session {
	t.Helper()
	s := newTestSession(t)
	err := s.Initialize(context.Background(), domain.InitParams{
		PlayerName: "Orlando",
		Rebuild:    true,
	})
	require.NoError(t, err)
	return s
}

func TestInitializeRejectsMissingPlayerName(t *testing.T) {
	s := newTestSession(t)

	err := s.Initialize(context.Background(), domain.InitParams{Rebuild: true})

	assert.ErrorIs(t, err, domain.ErrUnprocessable)
}

func TestInitializeRebuildBuildsCatalog(t *testing.T) {
	s := initialized(t)
	ctx := context.Background()

	name, err := s.PlayerName()
	require.NoError(t, err)
	assert.Equal(t, "Orlando", name)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Ring of wealth", items[0].DisplayName)

	item, err := s.Item(ctx, "Coins")
	require.NoError(t, err)
	require.NotNil(t, item.Price)
	assert.Equal(t, 1, *item.Price)

	// Unset prices were resolved through the lookup during the rebuild.
	ring, err := s.Item(ctx, "Ring of wealth")
	require.NoError(t, err)
	require.NotNil(t, ring.Price)
	assert.Equal(t, 15000, *ring.Price)
}

func TestInitializeSeedsZeroedStatistics(t *testing.T) {
	s := initialized(t)

	stats, err := s.Stats(context.Background(), "Orlando")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.OpenedCaskets)
	assert.Equal(t, 0, stats.Uniques)
	assert.Equal(t, 0, stats.Broadcasts)
}

func TestInitializeIdempotentWithoutRebuild(t *testing.T) {
	s := initialized(t)
	ctx := context.Background()

	require.NoError(t, s.RecordCasket(ctx, 1000, true, false))

	err := s.Initialize(ctx, domain.InitParams{PlayerName: "Orlando"})
	require.NoError(t, err)

	// Counters persisted before the re-initialize survive it.
	stats, err := s.Stats(ctx, "Orlando")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.OpenedCaskets)
	assert.Equal(t, 1, stats.Uniques)
}

func TestRecordCasketPersistsCounters(t *testing.T) {
	s := initialized(t)
	ctx := context.Background()

	require.NoError(t, s.RecordCasket(ctx, 2500, false, true))
	require.NoError(t, s.RecordCasket(ctx, 500, false, false))

	stats, err := s.Stats(ctx, "Orlando")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.OpenedCaskets)
	assert.Equal(t, 0, stats.Uniques)
	assert.Equal(t, 1, stats.Broadcasts)

	info, err := s.EvaluatorInfo()
	require.NoError(t, err)
	assert.Equal(t, 2, info.Stats.Opened)
}

func TestResetEvaluatorZeroesCounters(t *testing.T) {
	s := initialized(t)
	ctx := context.Background()

	require.NoError(t, s.RecordCasket(ctx, 2500, true, true))
	require.NoError(t, s.ResetEvaluator(ctx))

	stats, err := s.Stats(ctx, "Orlando")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.OpenedCaskets)
	assert.Equal(t, 0, stats.Uniques)
	assert.Equal(t, 0, stats.Broadcasts)
}

func TestQueriesBeforeInitialize(t *testing.T) {
	s := newTestSession(t)

	_, err := s.PlayerName()
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = s.Item(context.Background(), "Coins")
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = s.EvaluatorInfo()
	assert.ErrorIs(t, err, ErrNotInitialized)

	assert.ErrorIs(t, s.Ready(context.Background()), ErrNotInitialized)
}

func TestConfigureRoundTrip(t *testing.T) {
	s := newTestSession(t)

	capture := domain.CaptureConfig{
		TrailCompleted: domain.ScreenSection{Top: 10, Left: 20, Width: 300, Height: 40},
		UseGPU:         true,
	}
	s.Configure(capture)

	assert.Equal(t, capture, s.Capture())
}
