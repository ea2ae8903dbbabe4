// Package service contains the lyrics analysis workflow
package service

import (
	"context"
	"time"

	"discernio/internal/adapters/lyrics"
	"discernio/internal/adapters/scripture"
	"discernio/internal/core/rules"
	"discernio/internal/core/score"
	"discernio/internal/core/signals"
	"discernio/internal/modkit/repokit"
	"discernio/internal/platform/logger"
	"discernio/internal/services/analyze/domain"
	"discernio/internal/services/analyze/repo"
)

const notAvailableMsg = "Lyrics are not available for this track. " +
	"Paste the lyrics into rawLyrics to analyze them directly."

// VerseResolver resolves scripture references for display
type VerseResolver interface {
	Resolve(ctx context.Context, refs []string, translation string) map[string]scripture.Verse
}

// Service defines the analyze service contract
type Service interface {
	domain.ServicePort
}

// Config for the analyze service
type Config struct {
	CacheTTLDays       int
	DefaultTranslation string
}

// Svc implements the analyze service
type Svc struct {
	repo      repo.Repo
	db        repokit.TxRunner
	providers []lyrics.Provider
	manual    *lyrics.Manual
	extract   *signals.Extractor
	scorer    *score.Scorer
	verses    VerseResolver
	cfg       Config
	log       logger.Logger
}

// New constructs an analyze service. db may be nil, which disables the
// lyrics cache; everything else is required
func New(
	db repokit.TxRunner,
	table *rules.Table,
	providers []lyrics.Provider,
	verses VerseResolver,
	cfg Config,
) (*Svc, error) {
	scorer, err := score.New(table)
	if err != nil {
		return nil, err
	}
	if cfg.CacheTTLDays <= 0 {
		cfg.CacheTTLDays = 90
	}
	if cfg.DefaultTranslation == "" {
		cfg.DefaultTranslation = "WEB"
	}

	s := &Svc{
		db:        db,
		providers: providers,
		manual:    lyrics.NewManual(),
		extract:   signals.NewExtractor(),
		scorer:    scorer,
		verses:    verses,
		cfg:       cfg,
		log:       *logger.Named("analyze"),
	}
	if db != nil {
		s.repo = repo.NewPG().Bind(db)
	}
	return s, nil
}

// AnalyzeLyrics resolves lyrics, extracts signals, scores, calibrates, and
// attaches verse text for every scripture anchor the hits reference
func (s *Svc) AnalyzeLyrics(
	ctx context.Context,
	in domain.AnalyzeLyricsInput,
) (domain.AnalyzeLyricsResult, error) {
	out := domain.AnalyzeLyricsResult{Artist: in.Artist, Title: in.Title}

	res := s.resolveLyrics(ctx, in)
	if res == nil {
		out.Message = notAvailableMsg
		return out, nil
	}
	out.LyricsAvailable = true
	out.Provider = res.Provider
	out.Cached = res.Cached

	bundle := s.extract.FromLyrics(res.Lyrics)
	scored := score.Calibrate(s.scorer.Score(bundle))

	translation := in.Translation
	if translation == "" {
		translation = s.cfg.DefaultTranslation
	}
	refs := make([]string, 0, len(scored.Hits)*3)
	for _, h := range scored.Hits {
		refs = append(refs, h.Refs...)
	}

	verses := map[string]scripture.Verse{}
	if s.verses != nil && len(refs) > 0 {
		verses = s.verses.Resolve(ctx, refs, translation)
	}

	out.Analysis = &domain.Analysis{
		Signals: bundle,
		Score:   scored,
		Verses:  verses,
	}
	return out, nil
}

// resolveLyrics walks manual text, the cache, then providers in order.
// Cache failures degrade to a provider fetch; provider write-back is best
// effort
func (s *Svc) resolveLyrics(ctx context.Context, in domain.AnalyzeLyricsInput) *lyrics.Result {
	if in.RawLyrics != "" {
		return s.manual.FromText(in.RawLyrics, in.Artist, in.Title)
	}

	if s.repo != nil {
		notBefore := time.Now().AddDate(0, 0, -s.cfg.CacheTTLDays)
		cached, ok, err := s.repo.GetLyrics(ctx, in.Artist, in.Title, notBefore)
		if err != nil {
			s.log.Warn().Err(err).Msg("lyrics cache read failed")
		} else if ok {
			return &lyrics.Result{
				Lyrics:   cached.Lyrics,
				Provider: cached.Provider,
				Cached:   true,
				Artist:   in.Artist,
				Title:    in.Title,
			}
		}
	}

	for _, p := range s.providers {
		res, err := p.Search(ctx, in.Artist, in.Title)
		if err != nil {
			s.log.Warn().Err(err).Str("provider", p.Name()).Msg("lyrics provider failed")
			continue
		}
		if res == nil || res.Lyrics == "" {
			continue
		}
		if s.repo != nil {
			if err := s.repo.UpsertLyrics(ctx, in.Artist, in.Title, res.Lyrics, res.Provider); err != nil {
				s.log.Warn().Err(err).Msg("lyrics cache write failed")
			}
		}
		return res
	}
	return nil
}
