// Package service contains the media analysis workflow
package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"discernio/internal/adapters/ai"
	"discernio/internal/adapters/books"
	"discernio/internal/adapters/tmdb"
	"discernio/internal/modkit/repokit"
	perr "discernio/internal/platform/errors"
	"discernio/internal/platform/logger"
	"discernio/internal/services/media/domain"
	"discernio/internal/services/media/repo"
)

// Analyzer produces a discernment assessment for one media item
type Analyzer interface {
	Analyze(ctx context.Context, r ai.Request) ai.Analysis
}

// MovieDB fetches movie and show details by catalog id
type MovieDB interface {
	Details(ctx context.Context, id int64, mt tmdb.MediaType) (*tmdb.Result, error)
}

// BookDB fetches book metadata by title
type BookDB interface {
	Lookup(ctx context.Context, title string) (*books.Book, error)
}

// EventSink records search events. Implementations must never fail the
// calling request
type EventSink interface {
	LogSearch(ctx context.Context, title, mediaType string, score int)
}

// Service defines the media service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the media service
type Svc struct {
	repo   repo.Repo
	db     repokit.TxRunner
	ai     Analyzer
	movies MovieDB
	books  BookDB
	events EventSink
	log    logger.Logger
	now    func() time.Time
}

// New constructs a media service. db, movies, books, and events may be nil;
// the analyzer is required
func New(db repokit.TxRunner, analyzer Analyzer, movies MovieDB, bookdb BookDB, events EventSink) *Svc {
	if analyzer == nil {
		panic("media.Service requires a non nil Analyzer")
	}
	s := &Svc{
		db:     db,
		ai:     analyzer,
		movies: movies,
		books:  bookdb,
		events: events,
		log:    *logger.Named("media"),
		now:    time.Now,
	}
	if db != nil {
		s.repo = repo.NewPG().Bind(db)
	}
	return s
}

// Search returns a prior analysis when one exists for the same item, and
// otherwise enriches the metadata, runs the generative analysis, and
// persists the result
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) (domain.MediaAnalysis, error) {
	if cached, ok := s.lookupCached(ctx, in); ok {
		cached.Cached = true
		s.logEvent(ctx, cached.Title, cached.MediaType, cached.DiscernmentScore)
		return cached, nil
	}

	s.enrich(ctx, &in)

	analysis := s.ai.Analyze(ctx, ai.Request{
		Title:       in.Title,
		MediaType:   in.MediaType,
		ReleaseYear: in.ReleaseYear,
		Overview:    in.Overview,
	})

	alts := make([]domain.Alternative, 0, len(analysis.Alternatives))
	for _, a := range analysis.Alternatives {
		alts = append(alts, domain.Alternative{Title: a.Title, Reason: a.Reason})
	}

	rec := domain.MediaAnalysis{
		ID:               uuid.NewString(),
		Title:            in.Title,
		MediaType:        in.MediaType,
		ExternalID:       in.ExternalID,
		PosterURL:        in.PosterURL,
		ReleaseYear:      in.ReleaseYear,
		Overview:         in.Overview,
		DiscernmentScore: analysis.DiscernmentScore,
		FaithAnalysis:    analysis.FaithAnalysis,
		Tags:             analysis.Tags,
		VerseText:        analysis.VerseText,
		VerseReference:   analysis.VerseReference,
		Alternatives:     alts,
		CreatedAt:        s.now().UTC(),
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}

	if s.repo != nil {
		if err := s.repo.Insert(ctx, rec); err != nil {
			s.log.Warn().Err(err).Str("title", rec.Title).Msg("media analysis persist failed")
		}
	}
	s.logEvent(ctx, rec.Title, rec.MediaType, rec.DiscernmentScore)
	return rec, nil
}

// Get fetches one persisted analysis by id
func (s *Svc) Get(ctx context.Context, id string) (domain.MediaAnalysis, error) {
	if s.repo == nil {
		return domain.MediaAnalysis{}, perr.NotFoundf("analysis %s not found", id)
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.MediaAnalysis{}, perr.Newf(perr.ErrorCodeInvalidArgument, "invalid analysis id")
	}

	a, ok, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.MediaAnalysis{}, err
	}
	if !ok {
		return domain.MediaAnalysis{}, perr.NotFoundf("analysis %s not found", id)
	}
	return a, nil
}

func (s *Svc) lookupCached(ctx context.Context, in domain.SearchInput) (domain.MediaAnalysis, bool) {
	if s.repo == nil {
		return domain.MediaAnalysis{}, false
	}

	if in.ExternalID != "" {
		a, ok, err := s.repo.GetByExternal(ctx, in.ExternalID, in.MediaType)
		if err != nil {
			s.log.Warn().Err(err).Msg("media cache read by external id failed")
		} else if ok {
			return a, true
		}
	}

	a, ok, err := s.repo.GetByTitle(ctx, in.Title, in.MediaType)
	if err != nil {
		s.log.Warn().Err(err).Msg("media cache read by title failed")
		return domain.MediaAnalysis{}, false
	}
	return a, ok
}

// enrich fills missing metadata from the catalog adapters before prompting
func (s *Svc) enrich(ctx context.Context, in *domain.SearchInput) {
	switch in.MediaType {
	case "book":
		if in.Overview != "" || s.books == nil {
			return
		}
		b, err := s.books.Lookup(ctx, in.Title)
		if err != nil || b == nil {
			return
		}
		in.Overview = b.Description
		if in.PosterURL == "" {
			in.PosterURL = b.ImageURL
		}
		if in.ReleaseYear == "" && len(b.PublishedDate) >= 4 {
			in.ReleaseYear = b.PublishedDate[:4]
		}

	case "movie", "show":
		if in.Overview != "" || s.movies == nil || in.ExternalID == "" {
			return
		}
		id, err := strconv.ParseInt(in.ExternalID, 10, 64)
		if err != nil {
			return
		}
		d, err := s.movies.Details(ctx, id, tmdb.MediaType(in.MediaType))
		if err != nil || d == nil {
			return
		}
		in.Overview = d.Overview
		if in.PosterURL == "" {
			in.PosterURL = d.PosterURL
		}
		if in.ReleaseYear == "" {
			in.ReleaseYear = d.ReleaseYear
		}
	}
}

func (s *Svc) logEvent(ctx context.Context, title, mediaType string, scoreVal int) {
	if s.events == nil {
		return
	}
	s.events.LogSearch(ctx, title, mediaType, scoreVal)
}
