// Package lyrics fetches song lyrics from external providers. Providers are
// best-effort: a miss or a provider outage returns a nil result, not an
// error, so the analyze flow can fall back to user-supplied text
package lyrics

import "context"

// Result is one fetched lyric with its provenance
type Result struct {
	Lyrics   string `json:"lyrics"`
	Provider string `json:"provider"`
	Cached   bool   `json:"cached"`

	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
}

// Provider is a lyric source addressed by artist and title
type Provider interface {
	Name() string

	// Search returns nil when the provider has no lyrics for the track
	Search(ctx context.Context, artist, title string) (*Result, error)
}
