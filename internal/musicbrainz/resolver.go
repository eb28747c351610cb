package musicbrainz

import (
	"context"
	"log/slog"

	"audiobind/internal/disc"
	"audiobind/internal/discidcache"
	"audiobind/internal/logging"
)

// Looker resolves a disc to a release.
type Looker interface {
	Lookup(ctx context.Context, id disc.ID) (Release, bool)
}

// Resolver consults the disc ID cache before asking Source, and caches any
// release Source returns. A nil Cache or Source is allowed.
type Resolver struct {
	Source Looker
	Cache  *discidcache.Cache
	Logger *slog.Logger
}

// Lookup implements Looker.
func (r *Resolver) Lookup(ctx context.Context, id disc.ID) (Release, bool) {
	logger := r.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	if r.Cache != nil {
		if entry, ok := r.Cache.Lookup(id.MusicBrainz); ok {
			logger.Info("disc found in cache",
				logging.String("disc_id", id.MusicBrainz),
				logging.String("title", entry.Title),
			)
			return Release{ID: entry.ReleaseID, Title: entry.Title, Artist: entry.Artist, Tracks: entry.Tracks}, true
		}
	}
	if r.Source == nil {
		return Release{}, false
	}
	release, ok := r.Source.Lookup(ctx, id)
	if !ok {
		return Release{}, false
	}
	if r.Cache != nil {
		err := r.Cache.Store(discidcache.Entry{
			DiscID:    id.MusicBrainz,
			ReleaseID: release.ID,
			Title:     release.Title,
			Artist:    release.Artist,
			Tracks:    release.Tracks,
		})
		if err != nil {
			logging.WarnWithContext(logger, "failed to cache disc release", "discidcache_store_failed",
				logging.String("disc_id", id.MusicBrainz),
				logging.Error(err),
				logging.String(logging.FieldImpact, "the next rip of this disc repeats the lookup"),
			)
		}
	}
	return release, true
}
