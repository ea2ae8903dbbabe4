// Package scripture resolves scripture references to verse text via the
// helloao bible API, with a bounded in-process cache. Resolution degrades to
// a placeholder verse on any failure; it never fails the enclosing request
package scripture

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	perr "discernio/internal/platform/errors"
	"discernio/internal/platform/logger"
)

const (
	baseURLDefault     = "https://bible.helloao.org"
	defaultTimeout     = 8 * time.Second
	defaultUA          = "discernio-api"
	defaultTranslation = "WEB"

	cacheCapacity = 200
	cacheTTL      = 24 * time.Hour
)

// Verse is one resolved scripture reference
type Verse struct {
	Reference   string `json:"reference"`
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// Options configures the Client. The base URL is injectable so tests and
// self-hosted mirrors can point elsewhere
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client fetches verses over HTTP and caches successful lookups
type Client struct {
	http  *http.Client
	opts  Options
	cache *lruCache
	log   logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		cache: newLRUCache(cacheCapacity, cacheTTL),
		log:   *logger.Named("scripture"),
	}
}

// normalizeRef trims and collapses internal whitespace so "John  3:16 " and
// "John 3:16" share a cache entry
func normalizeRef(ref string) string {
	return strings.Join(strings.Fields(ref), " ")
}

// Placeholder is the display text substituted when a verse cannot be loaded
func Placeholder(ref string) string {
	return fmt.Sprintf("[Unable to load %s]", normalizeRef(ref))
}

// verse payload from the API. Some translations return "verse" instead of
// "text" so both are decoded
type versePayload struct {
	Text  string `json:"text"`
	Verse string `json:"verse"`
}

// Verse resolves one reference in the given translation. Failures are
// swallowed into a placeholder result; the error return reports them for
// logging but callers may ignore it
func (c *Client) Verse(ctx context.Context, ref, translation string) (Verse, error) {
	if translation == "" {
		translation = defaultTranslation
	}
	nref := normalizeRef(ref)
	key := translation + ":" + nref

	if v, ok := c.cache.get(key); ok {
		return v, nil
	}

	v, err := c.fetch(ctx, nref, translation)
	if err != nil {
		c.log.Warn().Str("ref", nref).Err(err).Msg("verse lookup failed")
		return Verse{Reference: nref, Text: Placeholder(nref), Translation: translation}, err
	}

	c.cache.set(key, v)
	return v, nil
}

func (c *Client) fetch(ctx context.Context, nref, translation string) (Verse, error) {
	u := fmt.Sprintf("%s/api/%s/%s", c.opts.BaseURL, translation, url.PathEscape(nref))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Verse{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "scripture new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Verse{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "scripture do failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 2048))
		return Verse{}, perr.Newf(perr.ErrorCodeUnavailable, "scripture unexpected status %d", resp.StatusCode)
	}

	var p versePayload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Verse{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "scripture decode failed")
	}

	text := p.Text
	if text == "" {
		text = p.Verse
	}
	return Verse{Reference: nref, Text: text, Translation: translation}, nil
}

// Resolve looks up every distinct reference concurrently and returns a map
// keyed by normalized reference. Duplicate input refs are fetched once.
// Individual failures land as placeholder verses, never as an error
func (c *Client) Resolve(ctx context.Context, refs []string, translation string) map[string]Verse {
	uniq := make([]string, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))
	for _, r := range refs {
		n := normalizeRef(r)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
	}

	out := make(map[string]Verse, len(uniq))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, ref := range uniq {
		wg.Add(1)
		go func(ref string) {
			defer wg.Done()
			v, _ := c.Verse(ctx, ref, translation)
			mu.Lock()
			out[ref] = v
			mu.Unlock()
		}(ref)
	}
	wg.Wait()
	return out
}
