// Package domain holds the search event log types
package domain

import "time"

// Event is one recorded search. Events are analytics only and carry no
// user identity
type Event struct {
	Title     string    `json:"title"`
	MediaType string    `json:"media_type"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}
