// Package domain holds types and contracts for the lyrics analysis service
package domain

import (
	"discernio/internal/adapters/scripture"
	"discernio/internal/core/score"
	"discernio/internal/core/signals"
)

// AnalyzeLyricsInput is the request payload for a lyrics analysis
type AnalyzeLyricsInput struct {
	Artist string `json:"artist" validate:"required,min=1,max=255" example:"Hillsong United"`
	Title  string `json:"title" validate:"required,min=1,max=255" example:"Oceans"`

	// RawLyrics bypasses provider lookup when the caller pastes text
	RawLyrics string `json:"rawLyrics,omitempty" validate:"omitempty,max=50000"`

	// Translation for verse display, defaults to WEB
	Translation string `json:"translation,omitempty" validate:"omitempty,alphanum,max=8" example:"WEB"`
}

// Analysis bundles the scored pipeline output for one text
type Analysis struct {
	Signals signals.Bundle             `json:"signals"`
	Score   score.Result               `json:"score"`
	Verses  map[string]scripture.Verse `json:"verses"`
}

// AnalyzeLyricsResult is the response payload
type AnalyzeLyricsResult struct {
	Artist          string `json:"artist"`
	Title           string `json:"title"`
	LyricsAvailable bool   `json:"lyricsAvailable"`
	Provider        string `json:"provider,omitempty"`
	Cached          bool   `json:"cached"`

	// Analysis is nil when no lyrics could be resolved
	Analysis *Analysis `json:"analysis,omitempty"`
	Message  string    `json:"message,omitempty"`
}
