// Package books looks up book metadata via the Google Books volumes API.
// Keyless and best-effort; failures return a nil record
package books

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "discernio/internal/platform/errors"
	"discernio/internal/platform/logger"
)

const (
	baseURLDefault = "https://www.googleapis.com/books/v1"
	defaultTimeout = 10 * time.Second
)

// Book is the normalized record for the first matching volume
type Book struct {
	Title         string  `json:"title"`
	Authors       string  `json:"authors"`
	Description   string  `json:"description"`
	Genre         string  `json:"genre"`
	Rating        float64 `json:"rating,omitempty"`
	PublishedDate string  `json:"publishedDate,omitempty"`
	PageCount     int     `json:"pageCount,omitempty"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	Source        string  `json:"source"`
}

// Options configures the Client
type Options struct {
	BaseURL string
	Timeout time.Duration
}

// Client queries the volumes endpoint with an intitle constraint
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
		log:     *logger.Named("books"),
	}
}

type volumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description"`
	Categories    []string `json:"categories"`
	AverageRating float64  `json:"averageRating"`
	PublishedDate string   `json:"publishedDate"`
	PageCount     int      `json:"pageCount"`
	ImageLinks    struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

// Lookup returns the first volume whose title matches, or nil on a miss
func (c *Client) Lookup(ctx context.Context, title string) (*Book, error) {
	q := url.Values{}
	q.Set("q", "intitle:"+title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/volumes?"+q.Encode(), nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "books new request failed")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("title", title).Msg("book lookup failed")
		return nil, nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Str("title", title).Msg("books unexpected status")
		return nil, nil
	}

	var payload struct {
		Items []struct {
			VolumeInfo volumeInfo `json:"volumeInfo"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Warn().Err(err).Msg("books decode failed")
		return nil, nil
	}
	if len(payload.Items) == 0 {
		return nil, nil
	}

	v := payload.Items[0].VolumeInfo

	b := &Book{
		Title:         v.Title,
		Authors:       strings.Join(v.Authors, ", "),
		Description:   v.Description,
		Genre:         strings.Join(v.Categories, ", "),
		Rating:        v.AverageRating,
		PublishedDate: v.PublishedDate,
		PageCount:     v.PageCount,
		ImageURL:      v.ImageLinks.Thumbnail,
		Source:        "Google Books",
	}
	if b.Title == "" {
		b.Title = title
	}
	if b.Authors == "" {
		b.Authors = "Unknown Author"
	}
	if b.Description == "" {
		b.Description = "No description available."
	}
	if b.Genre == "" {
		b.Genre = "Unknown"
	}
	return b, nil
}
