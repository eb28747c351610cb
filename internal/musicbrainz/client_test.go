package musicbrainz_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiobind/internal/disc"
	"audiobind/internal/musicbrainz"
)

const releaseJSON = `{
  "releases": [{
    "id": "rel-1",
    "title": "Dune",
    "artist-credit": [{"name": "Frank Herbert", "joinphrase": " & "}, {"name": "Simon Vance", "joinphrase": ""}],
    "media": [
      {"position": 1, "discs": [{"id": "other"}], "tracks": [{"title": "Disc One A"}]},
      {"position": 2, "discs": [{"id": "DISC-ID"}], "tracks": [{"title": "Part 1"}, {"title": "Part 2"}]}
    ]
  }]
}`

func testID() disc.ID {
	return disc.ID{
		MusicBrainz: "DISC-ID",
		TOC:         disc.TOC{FirstTrack: 1, LastTrack: 2, Leadout: 40000, Offsets: []int{150, 20000}},
	}
}

func TestLookupParsesMatchingMedium(t *testing.T) {
	var gotPath, gotInc, gotFmt, gotTOC, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInc = r.URL.Query().Get("inc")
		gotFmt = r.URL.Query().Get("fmt")
		gotTOC = r.URL.Query().Get("toc")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(releaseJSON))
	}))
	defer srv.Close()

	client := musicbrainz.New(musicbrainz.Options{BaseURL: srv.URL + "/ws/2/", UserAgent: "audiobind-test/1.0"}, nil)
	release, ok := client.Lookup(context.Background(), testID())
	require.True(t, ok)

	assert.Equal(t, "/ws/2/discid/DISC-ID", gotPath)
	assert.Equal(t, "recordings artists", gotInc)
	assert.Equal(t, "json", gotFmt)
	assert.Equal(t, "1 2 40000 150 20000", gotTOC)
	assert.Equal(t, "audiobind-test/1.0", gotUA)

	assert.Equal(t, "rel-1", release.ID)
	assert.Equal(t, "Dune", release.Title)
	assert.Equal(t, "Frank Herbert & Simon Vance", release.Artist)
	assert.Equal(t, []string{"Part 1", "Part 2"}, release.Tracks)
}

func TestLookupFallsBackToFirstMedium(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(releaseJSON))
	}))
	defer srv.Close()

	id := testID()
	id.MusicBrainz = "UNLISTED"
	release, ok := musicbrainz.New(musicbrainz.Options{BaseURL: srv.URL}, nil).Lookup(context.Background(), id)
	require.True(t, ok)
	assert.Equal(t, []string{"Disc One A"}, release.Tracks)
}

func TestLookupFailuresReturnFalse(t *testing.T) {
	handlers := map[string]http.HandlerFunc{
		"not found": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"Not Found"}`, http.StatusNotFound)
		},
		"server error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"releases": [`))
		},
		"no releases": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"releases": []}`))
		},
	}
	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()
			_, ok := musicbrainz.New(musicbrainz.Options{BaseURL: srv.URL, Timeout: time.Second}, nil).Lookup(context.Background(), testID())
			assert.False(t, ok)
		})
	}
}

func TestLookupUnreachableReturnsFalse(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, ok := musicbrainz.New(musicbrainz.Options{BaseURL: url, Timeout: time.Second}, nil).Lookup(context.Background(), testID())
	assert.False(t, ok)
}

func TestLookupEmptyIDSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	_, ok := musicbrainz.New(musicbrainz.Options{BaseURL: srv.URL}, nil).Lookup(context.Background(), disc.ID{})
	assert.False(t, ok)
	assert.False(t, called)
}
