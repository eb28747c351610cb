package musicbrainz

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"audiobind/internal/disc"
	"audiobind/internal/logging"
)

// Release is the subset of a MusicBrainz release audiobind uses.
type Release struct {
	ID     string
	Title  string
	Artist string
	// Tracks are the titles of the medium matching the disc, in order.
	Tracks []string
}

// Options configures the client.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client looks up releases by disc ID. Lookups never fail loudly: any problem
// is logged and reported as "not found".
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// New builds a client against opts.BaseURL (e.g. https://musicbrainz.org/ws/2).
func New(opts Options, logger *slog.Logger) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(opts.BaseURL, "/"))
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetHeader("Accept", "application/json")
	client.SetDisableWarn(true)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	return &Client{http: client, logger: logging.NewComponentLogger(logger, "musicbrainz")}
}

type discIDResponse struct {
	Releases []struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		ArtistCredit []struct {
			Name       string `json:"name"`
			JoinPhrase string `json:"joinphrase"`
		} `json:"artist-credit"`
		Media []struct {
			Position int `json:"position"`
			Discs    []struct {
				ID string `json:"id"`
			} `json:"discs"`
			Tracks []struct {
				Title string `json:"title"`
			} `json:"tracks"`
		} `json:"media"`
	} `json:"releases"`
}

// Lookup returns the first release for id. The second result is false when
// nothing usable came back for any reason.
func (c *Client) Lookup(ctx context.Context, id disc.ID) (Release, bool) {
	if strings.TrimSpace(id.MusicBrainz) == "" {
		return Release{}, false
	}
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("inc", "recordings artists").
		SetQueryParam("fmt", "json").
		SetResult(&discIDResponse{})
	if len(id.TOC.Offsets) > 0 {
		req.SetQueryParam("toc", strings.ReplaceAll(id.TOC.Query(), "+", " "))
	}

	res, err := req.Get("/discid/" + id.MusicBrainz)
	if err != nil {
		logging.WarnWithContext(c.logger, "musicbrainz lookup failed", "musicbrainz_unreachable",
			logging.String("disc_id", id.MusicBrainz),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check network access or disable musicbrainz.enabled"),
			logging.String(logging.FieldImpact, "chapters fall back to file names"),
		)
		return Release{}, false
	}
	if res.StatusCode() == http.StatusNotFound {
		c.logger.Info("disc not found in musicbrainz", logging.String("disc_id", id.MusicBrainz))
		return Release{}, false
	}
	if res.IsError() {
		logging.WarnWithContext(c.logger, "musicbrainz returned an error", "musicbrainz_http_error",
			logging.String("disc_id", id.MusicBrainz),
			logging.Int("status", res.StatusCode()),
			logging.String(logging.FieldImpact, "chapters fall back to file names"),
		)
		return Release{}, false
	}

	body, ok := res.Result().(*discIDResponse)
	if !ok || body == nil || len(body.Releases) == 0 {
		c.logger.Debug("musicbrainz response had no releases", logging.String("disc_id", id.MusicBrainz))
		return Release{}, false
	}
	return toRelease(body, id.MusicBrainz), true
}

func toRelease(body *discIDResponse, discID string) Release {
	first := body.Releases[0]
	release := Release{ID: first.ID, Title: first.Title}

	var artist strings.Builder
	for _, credit := range first.ArtistCredit {
		artist.WriteString(credit.Name)
		artist.WriteString(credit.JoinPhrase)
	}
	release.Artist = strings.TrimSpace(artist.String())

	if len(first.Media) == 0 {
		return release
	}
	medium := first.Media[0]
	for _, m := range first.Media {
		for _, d := range m.Discs {
			if d.ID == discID {
				medium = m
			}
		}
	}
	for _, track := range medium.Tracks {
		release.Tracks = append(release.Tracks, track.Title)
	}
	return release
}
