package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/early-innings/internal/logger"
	"github.com/yourusername/early-innings/internal/models"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

type payload struct {
	Games []string `json:"games"`
	Count int      `json:"count"`
}

func newFileCache(t *testing.T, ttl time.Duration) (*TTLCache, *FileBackend, *fakeClock) {
	t.Helper()
	backend, err := NewFileBackend(filepath.Join(t.TempDir(), "predictions"))
	require.NoError(t, err)
	clock := &fakeClock{now: time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)}
	return New("predictions", backend, ttl, logger.Discard(), WithClock(clock.Now)), backend, clock
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "hit", StatusHit.String())
	assert.Equal(t, "miss", StatusMiss.String())
	assert.Equal(t, "expired", StatusExpired.String())
	assert.Equal(t, "corrupt", StatusCorrupt.String())
	assert.True(t, StatusHit.Hit())
	assert.False(t, StatusExpired.Hit())
}

func TestFileCacheRoundTrip(t *testing.T) {
	c, _, _ := newFileCache(t, 900*time.Second)
	ctx := context.Background()

	want := payload{Games: []string{"Colorado Rockies", "Los Angeles Dodgers"}, Count: 2}
	require.NoError(t, c.Put(ctx, "all_predictions_2025-06-14", want))

	var got payload
	assert.Equal(t, StatusHit, c.Get(ctx, "all_predictions_2025-06-14", &got))
	assert.Equal(t, want, got)
}

func TestFileCacheMiss(t *testing.T) {
	c, _, _ := newFileCache(t, 900*time.Second)

	var got payload
	assert.Equal(t, StatusMiss, c.Get(context.Background(), "missing", &got))
	assert.Empty(t, got.Games)
}

func TestFileCacheExpiry(t *testing.T) {
	c, _, clock := newFileCache(t, 900*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "games_2025-06-14", payload{Count: 1}))

	clock.Advance(899 * time.Second)
	var got payload
	assert.Equal(t, StatusHit, c.Get(ctx, "games_2025-06-14", &got))

	clock.Advance(time.Second)
	got = payload{}
	assert.Equal(t, StatusExpired, c.Get(ctx, "games_2025-06-14", &got))
	assert.Zero(t, got.Count)
}

func TestFileCacheUsesMtime(t *testing.T) {
	c, backend, clock := newFileCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "pitcher_era_Zack Wheeler", payload{Count: 1}))

	info, err := os.Stat(filepath.Join(backend.Dir(), "pitcher_era_Zack%20Wheeler.json"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(clock.Now()))
}

func TestFileCacheCorruptEntryIsMiss(t *testing.T) {
	c, backend, _ := newFileCache(t, time.Hour)
	ctx := context.Background()

	path := filepath.Join(backend.Dir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	now := c.now()
	require.NoError(t, os.Chtimes(path, now, now))

	var got payload
	assert.Equal(t, StatusCorrupt, c.Get(ctx, "broken", &got))
	assert.False(t, c.Get(ctx, "broken", &got).Hit())
}

func TestFileCacheMistypedEntryLeavesDestination(t *testing.T) {
	c, backend, _ := newFileCache(t, time.Hour)
	ctx := context.Background()

	path := filepath.Join(backend.Dir(), "mistyped.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"games": ["COL@LAD"], "count": "seven"}`), 0o644))
	now := c.now()
	require.NoError(t, os.Chtimes(path, now, now))

	got := payload{Count: 3}
	assert.Equal(t, StatusCorrupt, c.Get(ctx, "mistyped", &got))
	assert.Equal(t, payload{Count: 3}, got)

	var notPointer payload
	assert.Equal(t, StatusCorrupt, c.Get(ctx, "mistyped", notPointer))
}

func TestFileCacheOverwrite(t *testing.T) {
	c, _, clock := newFileCache(t, 900*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "key", payload{Count: 1}))
	clock.Advance(800 * time.Second)
	require.NoError(t, c.Put(ctx, "key", payload{Count: 2}))
	clock.Advance(800 * time.Second)

	var got payload
	assert.Equal(t, StatusHit, c.Get(ctx, "key", &got))
	assert.Equal(t, 2, got.Count)
}

func TestFileCacheClear(t *testing.T) {
	c, backend, _ := newFileCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "a", payload{Count: 1}))
	require.NoError(t, c.Put(ctx, "b", payload{Count: 2}))

	require.NoError(t, c.Clear(ctx, "a"))
	require.NoError(t, c.Clear(ctx, "never-written"))

	var got payload
	assert.Equal(t, StatusMiss, c.Get(ctx, "a", &got))
	assert.Equal(t, StatusHit, c.Get(ctx, "b", &got))

	keys, err := backend.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestFileCacheClearAll(t *testing.T) {
	c, backend, _ := newFileCache(t, time.Hour)
	ctx := context.Background()

	for _, key := range []string{"all_predictions_2025-06-13", "all_predictions_2025-06-14", "games_2025-06-14"} {
		require.NoError(t, c.Put(ctx, key, payload{Count: 1}))
	}

	require.NoError(t, c.ClearAll(ctx))

	entries, err := os.ReadDir(backend.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)

	var got payload
	assert.Equal(t, StatusMiss, c.Get(ctx, "games_2025-06-14", &got))

	// still usable after clearing
	require.NoError(t, c.Put(ctx, "games_2025-06-14", payload{Count: 3}))
	assert.Equal(t, StatusHit, c.Get(ctx, "games_2025-06-14", &got))
}

func TestFileCacheSeparateInstances(t *testing.T) {
	dir := t.TempDir()
	predictionsBackend, err := NewFileBackend(filepath.Join(dir, "predictions"))
	require.NoError(t, err)
	referenceBackend, err := NewFileBackend(filepath.Join(dir, "mlb_stats"))
	require.NoError(t, err)

	ctx := context.Background()
	predictions := New("predictions", predictionsBackend, 900*time.Second, logger.Discard())
	reference := New("reference", referenceBackend, 3600*time.Second, logger.Discard())

	require.NoError(t, predictions.Put(ctx, "shared", payload{Count: 1}))
	require.NoError(t, reference.Put(ctx, "shared", payload{Count: 2}))
	require.NoError(t, predictions.ClearAll(ctx))

	var got payload
	assert.Equal(t, StatusMiss, predictions.Get(ctx, "shared", &got))
	assert.Equal(t, StatusHit, reference.Get(ctx, "shared", &got))
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 3600*time.Second, reference.TTL())
}

func TestPutUnencodableValue(t *testing.T) {
	c, _, _ := newFileCache(t, time.Hour)

	err := c.Put(context.Background(), "bad", make(chan int))
	assert.ErrorIs(t, err, models.ErrTransientIO)
}

func TestFileBackendPing(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, backend.Ping(context.Background()))

	_, err = NewFileBackend("")
	assert.Error(t, err)
}

func TestMemoryBackend(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)}
	backend := NewMemoryBackend(0)
	c := New("reference", backend, time.Hour, logger.Discard(), WithClock(clock.Now))
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "games_2025-06-14", payload{Count: 10}))
	assert.Equal(t, 1, backend.Len())

	var got payload
	assert.Equal(t, StatusHit, c.Get(ctx, "games_2025-06-14", &got))
	assert.Equal(t, 10, got.Count)

	clock.Advance(time.Hour)
	assert.Equal(t, StatusExpired, c.Get(ctx, "games_2025-06-14", &got))

	require.NoError(t, c.ClearAll(ctx))
	assert.Equal(t, 0, backend.Len())
	assert.NoError(t, c.Ping(ctx))
}
