// Package music searches the iTunes catalog for song metadata. Keyless and
// best-effort; failures return an empty list
package music

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "discernio/internal/platform/errors"
	"discernio/internal/platform/logger"
)

const (
	baseURLDefault = "https://itunes.apple.com"
	defaultTimeout = 10 * time.Second
	defaultLimit   = 10
)

// Track is one normalized song candidate
type Track struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	Artwork     string `json:"artwork"`
	ReleaseYear string `json:"releaseYear"`
	Genre       string `json:"genre"`
	Duration    string `json:"duration,omitempty"`
}

// Options configures the Client
type Options struct {
	BaseURL string
	Timeout time.Duration
}

// Client queries the iTunes search endpoint for songs
type Client struct {
	http    *http.Client
	baseURL string
	log     logger.Logger
}

// NewClient creates a client
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		baseURL: o.BaseURL,
		log:     *logger.Named("music"),
	}
}

type rawTrack struct {
	TrackID          int64  `json:"trackId"`
	TrackName        string `json:"trackName"`
	ArtistName       string `json:"artistName"`
	CollectionName   string `json:"collectionName"`
	ArtworkURL100    string `json:"artworkUrl100"`
	ReleaseDate      string `json:"releaseDate"`
	PrimaryGenreName string `json:"primaryGenreName"`
	TrackTimeMillis  int64  `json:"trackTimeMillis"`
}

// Search returns up to ten song candidates for a free-text query. An
// optional artist is appended to the search term
func (c *Client) Search(ctx context.Context, query, artist string) ([]Track, error) {
	term := query
	if artist != "" {
		term = query + " " + artist
	}

	q := url.Values{}
	q.Set("term", term)
	q.Set("media", "music")
	q.Set("entity", "song")
	q.Set("limit", fmt.Sprintf("%d", defaultLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "music new request failed")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("term", term).Msg("itunes search failed")
		return []Track{}, nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("itunes unexpected status")
		return []Track{}, nil
	}

	var payload struct {
		Results []rawTrack `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Warn().Err(err).Msg("itunes decode failed")
		return []Track{}, nil
	}

	out := make([]Track, 0, len(payload.Results))
	for _, t := range payload.Results {
		track := Track{
			ID:      fmt.Sprintf("itunes-%d", t.TrackID),
			Title:   t.TrackName,
			Artist:  t.ArtistName,
			Album:   t.CollectionName,
			Artwork: strings.Replace(t.ArtworkURL100, "100x100", "600x600", 1),
			Genre:   t.PrimaryGenreName,
		}
		if t.ReleaseDate != "" {
			if ts, err := time.Parse(time.RFC3339, t.ReleaseDate); err == nil {
				track.ReleaseYear = fmt.Sprintf("%d", ts.Year())
			}
		}
		if t.TrackTimeMillis > 0 {
			track.Duration = formatDuration(t.TrackTimeMillis)
		}
		out = append(out, track)
	}
	return out, nil
}

func formatDuration(ms int64) string {
	mins := ms / 60000
	secs := (ms % 60000) / 1000
	return fmt.Sprintf("%d:%02d", mins, secs)
}
