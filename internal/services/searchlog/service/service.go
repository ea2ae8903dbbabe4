// Package service records search events without ever failing the caller
package service

import (
	"context"
	"time"

	"discernio/internal/platform/logger"
	"discernio/internal/platform/store"
	"discernio/internal/services/searchlog/domain"
	"discernio/internal/services/searchlog/repo"
)

// Service is the search event log contract
type Service interface {
	LogSearch(ctx context.Context, title, mediaType string, score int)
}

// Svc writes search events to ClickHouse. A nil store turns logging into
// a no-op so the API can run without an analytics backend
type Svc struct {
	repo repo.Repo
	log  logger.Logger
	now  func() time.Time
}

// New constructs the search log service. ch may be nil
func New(ch store.Clickhouse) *Svc {
	s := &Svc{
		log: *logger.Named("searchlog"),
		now: time.Now,
	}
	if ch != nil {
		s.repo = repo.NewCH(ch)
	}
	return s
}

// LogSearch records one search. Errors are logged and swallowed; the
// search request must not depend on analytics availability
func (s *Svc) LogSearch(ctx context.Context, title, mediaType string, score int) {
	if s.repo == nil {
		return
	}
	e := domain.Event{
		Title:     title,
		MediaType: mediaType,
		Score:     score,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.InsertEvent(ctx, e); err != nil {
		s.log.Warn().Err(err).Str("title", title).Msg("search event write failed")
	}
}
