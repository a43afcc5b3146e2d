package geocache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanfield-dev/store.locator/mapsapi"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := Open(filepath.Join(t.TempDir(), "geocodes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, cache.Close()) })
	return cache
}

func TestCacheMiss(t *testing.T) {
	t.Parallel()

	cache := openTestCache(t)
	loc, ok, err := cache.Get(context.Background(), "1 Main St, Springfield, CA")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, loc)
}

func TestCachePutGet(t *testing.T) {
	t.Parallel()

	cache := openTestCache(t)
	ctx := context.Background()

	want := mapsapi.Location{
		FormattedAddress: "1 Main St, Springfield, CA 90001, USA",
		Lat:              34.05,
		Lng:              -118.24,
	}
	require.NoError(t, cache.Put(ctx, "1 Main St, Springfield, CA", want))

	loc, ok, err := cache.Get(ctx, "1 Main St, Springfield, CA")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, *loc)
}

func TestCachePutReplaces(t *testing.T) {
	t.Parallel()

	cache := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "addr", mapsapi.Location{FormattedAddress: "old"}))
	require.NoError(t, cache.Put(ctx, "addr", mapsapi.Location{FormattedAddress: "new", Lat: 1, Lng: 2}))

	loc, ok, err := cache.Get(ctx, "addr")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", loc.FormattedAddress)
	assert.Equal(t, 1.0, loc.Lat)
}

func TestCacheSurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "geocodes.db")
	ctx := context.Background()

	cache, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, cache.Put(ctx, "addr", mapsapi.Location{FormattedAddress: "kept"}))
	require.NoError(t, cache.Close())

	cache, err = Open(path)
	require.NoError(t, err)
	defer cache.Close()

	loc, ok, err := cache.Get(ctx, "addr")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "kept", loc.FormattedAddress)
}
