package lyrics

import "context"

// Manual is the fallback provider for user-supplied lyric text. It never
// searches; callers wrap pasted lyrics with FromText
type Manual struct{}

// NewManual creates the provider
func NewManual() *Manual { return &Manual{} }

// Name implements Provider
func (m *Manual) Name() string { return "manual" }

// Search implements Provider and always misses
func (m *Manual) Search(ctx context.Context, artist, title string) (*Result, error) {
	return nil, nil
}

// FromText wraps directly supplied lyrics in a Result
func (m *Manual) FromText(text, artist, title string) *Result {
	return &Result{
		Lyrics:   text,
		Provider: m.Name(),
		Title:    title,
		Artist:   artist,
	}
}
