package lyrics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	perr "discernio/internal/platform/errors"
	"discernio/internal/platform/logger"
)

const (
	ovhBaseDefault = "https://api.lyrics.ovh/v1"
	ovhTimeout     = 10 * time.Second
)

var blankRunsRe = regexp.MustCompile(`\n{3,}`)

// LyricsOvh is a keyless lyric source addressed as /v1/{artist}/{title}
type LyricsOvh struct {
	http    *http.Client
	baseURL string
	log     logger.Logger
}

// LyricsOvhOptions configures the provider
type LyricsOvhOptions struct {
	BaseURL string
	Timeout time.Duration
}

// NewLyricsOvh creates the provider
func NewLyricsOvh(o LyricsOvhOptions) *LyricsOvh {
	if o.BaseURL == "" {
		o.BaseURL = ovhBaseDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = ovhTimeout
	}
	return &LyricsOvh{
		http:    &http.Client{Timeout: o.Timeout},
		baseURL: o.BaseURL,
		log:     *logger.Named("lyricsovh"),
	}
}

// Name implements Provider
func (l *LyricsOvh) Name() string { return "lyricsovh" }

// Search implements Provider
func (l *LyricsOvh) Search(ctx context.Context, artist, title string) (*Result, error) {
	u := l.baseURL + "/" +
		url.PathEscape(strings.TrimSpace(artist)) + "/" +
		url.PathEscape(strings.TrimSpace(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "lyricsovh new request failed")
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "lyricsovh do failed")
	}
	defer func() { _ = resp.Body.Close() }()

	// the API answers 404 for unknown tracks; that is a miss, not a failure
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		l.log.Warn().Int("status", resp.StatusCode).Msg("lyricsovh unexpected status")
		return nil, nil
	}

	var payload struct {
		Lyrics string `json:"lyrics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "lyricsovh decode failed")
	}
	if payload.Lyrics == "" {
		return nil, nil
	}

	clean := strings.ReplaceAll(payload.Lyrics, "\r\n", "\n")
	clean = strings.TrimSpace(blankRunsRe.ReplaceAllString(clean, "\n\n"))

	return &Result{
		Lyrics:   clean,
		Provider: l.Name(),
		Title:    title,
		Artist:   artist,
	}, nil
}
