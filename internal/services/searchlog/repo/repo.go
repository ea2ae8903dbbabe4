// Package repo persists search events in ClickHouse
package repo

import (
	"context"

	"discernio/internal/platform/store"
	"discernio/internal/services/searchlog/domain"
)

const eventsTable = "search_events (title, media_type, score, created_at)"

// Repo is the search event persistence contract
type Repo interface {
	InsertEvent(ctx context.Context, e domain.Event) error
}

// CH implements Repo over the ClickHouse seam
type CH struct {
	ch store.Clickhouse
}

// NewCH binds the repo to a ClickHouse connection
func NewCH(ch store.Clickhouse) *CH { return &CH{ch: ch} }

// InsertEvent appends one event row
func (r *CH) InsertEvent(ctx context.Context, e domain.Event) error {
	rows := [][]any{{e.Title, e.MediaType, int32(e.Score), e.CreatedAt}}
	return r.ch.Insert(ctx, eventsTable, rows)
}
