package lyrics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	perr "discernio/internal/platform/errors"
	"discernio/internal/platform/logger"
)

const (
	musixmatchBaseDefault = "https://api.musixmatch.com/ws/1.1"
	musixmatchTimeout     = 10 * time.Second
)

// trailing copyright footer the API appends to free-tier lyric bodies
var musixmatchFooterRe = regexp.MustCompile(`\*{7}[\s\S]*?This Lyrics is NOT for Commercial use[\s\S]*?\*{7}`)

// Musixmatch resolves lyrics in two calls: a track search then a lyric
// fetch by track id. Requires an API key
type Musixmatch struct {
	http    *http.Client
	baseURL string
	apiKey  string
	log     logger.Logger
}

// MusixmatchOptions configures the provider
type MusixmatchOptions struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewMusixmatch creates the provider. The API key is required
func NewMusixmatch(o MusixmatchOptions) *Musixmatch {
	if o.BaseURL == "" {
		o.BaseURL = musixmatchBaseDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = musixmatchTimeout
	}
	return &Musixmatch{
		http:    &http.Client{Timeout: o.Timeout},
		baseURL: o.BaseURL,
		apiKey:  o.APIKey,
		log:     *logger.Named("musixmatch"),
	}
}

// Name implements Provider
func (m *Musixmatch) Name() string { return "musixmatch" }

// envelope shared by every musixmatch endpoint
type mxResponse struct {
	Message struct {
		Header struct {
			StatusCode int `json:"status_code"`
		} `json:"header"`
		Body json.RawMessage `json:"body"`
	} `json:"message"`
}

type mxTrack struct {
	TrackID    int64  `json:"track_id"`
	TrackName  string `json:"track_name"`
	ArtistName string `json:"artist_name"`
	AlbumName  string `json:"album_name"`
}

// Search implements Provider
func (m *Musixmatch) Search(ctx context.Context, artist, title string) (*Result, error) {
	q := url.Values{}
	q.Set("q_artist", artist)
	q.Set("q_track", title)
	q.Set("page_size", "1")
	q.Set("apikey", m.apiKey)

	var search mxResponse
	if err := m.get(ctx, "/track.search?"+q.Encode(), &search); err != nil {
		return nil, err
	}
	if search.Message.Header.StatusCode != http.StatusOK {
		m.log.Warn().Int("status", search.Message.Header.StatusCode).Msg("musixmatch track search rejected")
		return nil, nil
	}

	var body struct {
		TrackList []struct {
			Track mxTrack `json:"track"`
		} `json:"track_list"`
	}
	if err := json.Unmarshal(search.Message.Body, &body); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "musixmatch search body decode failed")
	}
	if len(body.TrackList) == 0 {
		return nil, nil
	}
	track := body.TrackList[0].Track

	lq := url.Values{}
	lq.Set("track_id", strconv.FormatInt(track.TrackID, 10))
	lq.Set("apikey", m.apiKey)

	var lyr mxResponse
	if err := m.get(ctx, "/track.lyrics.get?"+lq.Encode(), &lyr); err != nil {
		return nil, err
	}
	if lyr.Message.Header.StatusCode != http.StatusOK {
		m.log.Warn().Int("status", lyr.Message.Header.StatusCode).Msg("musixmatch lyric fetch rejected")
		return nil, nil
	}

	var lyrBody struct {
		Lyrics struct {
			LyricsBody string `json:"lyrics_body"`
		} `json:"lyrics"`
	}
	if err := json.Unmarshal(lyr.Message.Body, &lyrBody); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "musixmatch lyric body decode failed")
	}
	if lyrBody.Lyrics.LyricsBody == "" {
		return nil, nil
	}

	clean := strings.TrimSpace(musixmatchFooterRe.ReplaceAllString(lyrBody.Lyrics.LyricsBody, ""))

	return &Result{
		Lyrics:   clean,
		Provider: m.Name(),
		Title:    track.TrackName,
		Artist:   track.ArtistName,
		Album:    track.AlbumName,
	}, nil
}

func (m *Musixmatch) get(ctx context.Context, path string, out *mxResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+path, nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "musixmatch new request failed")
	}
	resp, err := m.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "musixmatch do failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "musixmatch decode failed")
	}
	return nil
}
