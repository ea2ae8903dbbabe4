// Package tmdb searches The Movie Database for movie and show metadata used
// to enrich media analysis prompts. Lookups are best-effort: a missing key or
// an upstream failure yields empty results, never an error for the caller
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	perr "discernio/internal/platform/errors"
	"discernio/internal/platform/logger"
)

const (
	baseURLDefault  = "https://api.themoviedb.org/3"
	imageBaseURL    = "https://image.tmdb.org/t/p/w500"
	defaultTimeout  = 10 * time.Second
	maxSearchResult = 4
)

// MediaType is the internal movie/show discriminator; TMDB's "tv" maps to
// "show" on the way in
type MediaType string

// Media types recognized by the search API
const (
	MediaMovie MediaType = "movie"
	MediaShow  MediaType = "show"
)

// Result is a normalized candidate record
type Result struct {
	TMDBID      int64     `json:"tmdbId"`
	Title       string    `json:"title"`
	PosterURL   string    `json:"posterUrl,omitempty"`
	ReleaseYear string    `json:"releaseYear,omitempty"`
	Overview    string    `json:"overview"`
	Rating      float64   `json:"rating"`
	VoteCount   int64     `json:"voteCount"`
	Popularity  float64   `json:"popularity"`
	MediaType   MediaType `json:"mediaType"`
}

// Options configures the Client
type Options struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client is a read-only TMDB v3 client using bearer auth
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a client. An empty key is tolerated; searches then
// return empty results
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("tmdb"),
	}
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool { return c.opts.APIKey != "" }

type rawResult struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	PosterPath   string  `json:"poster_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	Adult        bool    `json:"adult"`
	MediaType    string  `json:"media_type"`
}

func (r rawResult) normalize(mt MediaType) Result {
	title := r.Title
	if title == "" {
		title = r.Name
	}
	if title == "" {
		title = "Unknown Title"
	}

	year := ""
	if d := firstNonEmpty(r.ReleaseDate, r.FirstAirDate); d != "" {
		year = strings.SplitN(d, "-", 2)[0]
	}

	poster := ""
	if r.PosterPath != "" {
		poster = imageBaseURL + r.PosterPath
	}

	return Result{
		TMDBID:      r.ID,
		Title:       title,
		PosterURL:   poster,
		ReleaseYear: year,
		Overview:    r.Overview,
		Rating:      r.VoteAverage,
		VoteCount:   r.VoteCount,
		Popularity:  r.Popularity,
		MediaType:   mt,
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// Search hits the multi-search endpoint, keeps movies and shows, drops adult
// titles, ranks by popularity with vote count breaking near-ties, and returns
// at most four candidates
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if !c.Configured() {
		c.log.Warn().Msg("no tmdb api key configured, returning empty results")
		return []Result{}, nil
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("include_adult", "false")

	var payload struct {
		Results []rawResult `json:"results"`
	}
	if err := c.get(ctx, "/search/multi?"+q.Encode(), &payload); err != nil {
		c.log.Warn().Err(err).Str("query", query).Msg("tmdb search failed")
		return []Result{}, nil
	}

	out := make([]Result, 0, len(payload.Results))
	for _, r := range payload.Results {
		if r.Adult {
			continue
		}
		switch r.MediaType {
		case "movie":
			out = append(out, r.normalize(MediaMovie))
		case "tv":
			out = append(out, r.normalize(MediaShow))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		diff := out[i].Popularity - out[j].Popularity
		if diff > 10 || diff < -10 {
			return diff > 0
		}
		return out[i].VoteCount > out[j].VoteCount
	})

	if len(out) > maxSearchResult {
		out = out[:maxSearchResult]
	}
	return out, nil
}

// Details fetches one title by id. A miss or upstream failure returns nil
func (c *Client) Details(ctx context.Context, id int64, mt MediaType) (*Result, error) {
	if !c.Configured() {
		return nil, nil
	}

	path := fmt.Sprintf("/movie/%d", id)
	if mt == MediaShow {
		path = fmt.Sprintf("/tv/%d", id)
	}

	var raw rawResult
	if err := c.get(ctx, path, &raw); err != nil {
		c.log.Warn().Err(err).Int64("tmdb_id", id).Msg("tmdb details failed")
		return nil, nil
	}

	res := raw.normalize(mt)
	return &res, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+path, nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "tmdb new request failed")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "tmdb do failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return perr.Newf(perr.ErrorCodeUnavailable, "tmdb unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "tmdb decode failed")
	}
	return nil
}
