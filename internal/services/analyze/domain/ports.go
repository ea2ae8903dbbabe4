package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	AnalyzeLyrics(ctx context.Context, in AnalyzeLyricsInput) (AnalyzeLyricsResult, error)
}
