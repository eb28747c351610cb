package musicbrainz_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiobind/internal/disc"
	"audiobind/internal/discidcache"
	"audiobind/internal/musicbrainz"
)

type fakeLooker struct {
	release musicbrainz.Release
	ok      bool
	calls   int
}

func (f *fakeLooker) Lookup(context.Context, disc.ID) (musicbrainz.Release, bool) {
	f.calls++
	return f.release, f.ok
}

func TestResolverCachesSourceResult(t *testing.T) {
	cache := discidcache.NewCache(filepath.Join(t.TempDir(), "cache.json"), nil)
	source := &fakeLooker{ok: true, release: musicbrainz.Release{ID: "r", Title: "Dune", Tracks: []string{"A", "B"}}}
	resolver := &musicbrainz.Resolver{Source: source, Cache: cache}

	first, ok := resolver.Lookup(context.Background(), testID())
	require.True(t, ok)
	second, ok := resolver.Lookup(context.Background(), testID())
	require.True(t, ok)

	assert.Equal(t, 1, source.calls)
	assert.Equal(t, first, second)
	entry, ok := cache.Lookup("DISC-ID")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B"}, entry.Tracks)
}

func TestResolverMissDoesNotCache(t *testing.T) {
	cache := discidcache.NewCache(filepath.Join(t.TempDir(), "cache.json"), nil)
	resolver := &musicbrainz.Resolver{Source: &fakeLooker{}, Cache: cache}

	_, ok := resolver.Lookup(context.Background(), testID())
	assert.False(t, ok)
	assert.Zero(t, cache.Count())
}

func TestResolverWithoutSourceOrCache(t *testing.T) {
	_, ok := (&musicbrainz.Resolver{}).Lookup(context.Background(), testID())
	assert.False(t, ok)
}
