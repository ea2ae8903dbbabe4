// Package domain holds types and contracts for AI media analysis
package domain

import "time"

// SearchInput requests an analysis for one media item
type SearchInput struct {
	Title     string `json:"title" validate:"required,min=1,max=500" example:"The Chosen"`
	MediaType string `json:"mediaType" validate:"required,oneof=movie show song book" example:"show"`

	// ExternalID is the upstream catalog id (TMDB, iTunes) when known
	ExternalID  string `json:"externalId,omitempty" validate:"omitempty,max=100"`
	PosterURL   string `json:"posterUrl,omitempty" validate:"omitempty,url,max=1000"`
	ReleaseYear string `json:"releaseYear,omitempty" validate:"omitempty,len=4,numeric"`
	Overview    string `json:"overview,omitempty" validate:"omitempty,max=10000"`
}

// Alternative is one suggested substitute title
type Alternative struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// MediaAnalysis is one persisted analysis record
type MediaAnalysis struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	MediaType   string `json:"mediaType"`
	ExternalID  string `json:"externalId,omitempty"`
	PosterURL   string `json:"posterUrl,omitempty"`
	ReleaseYear string `json:"releaseYear,omitempty"`
	Overview    string `json:"overview,omitempty"`

	DiscernmentScore int           `json:"discernmentScore"`
	FaithAnalysis    string        `json:"faithAnalysis"`
	Tags             []string      `json:"tags"`
	VerseText        string        `json:"verseText,omitempty"`
	VerseReference   string        `json:"verseReference,omitempty"`
	Alternatives     []Alternative `json:"alternatives"`

	Cached    bool      `json:"cached"`
	CreatedAt time.Time `json:"createdAt"`
}
