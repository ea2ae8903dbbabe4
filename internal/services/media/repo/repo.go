// Package repo provides postgres access for media analyses
package repo

import (
	"context"
	"encoding/json"
	"time"

	"discernio/internal/modkit/repokit"
	"discernio/internal/services/media/domain"
)

// Repo is the minimal persistence surface for media analyses
type Repo interface {
	GetByID(ctx context.Context, id string) (domain.MediaAnalysis, bool, error)
	GetByExternal(ctx context.Context, externalID, mediaType string) (domain.MediaAnalysis, bool, error)
	GetByTitle(ctx context.Context, title, mediaType string) (domain.MediaAnalysis, bool, error)
	Insert(ctx context.Context, a domain.MediaAnalysis) error
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const selectCols = `
select id::text, title, media_type, coalesce(external_id, ''), coalesce(poster_url, ''),
coalesce(release_year, ''), coalesce(overview, ''), discernment_score, faith_analysis,
tags, coalesce(verse_text, ''), coalesce(verse_reference, ''), alternatives, created_at
from media_analyses
`

func (r *queries) GetByID(ctx context.Context, id string) (domain.MediaAnalysis, bool, error) {
	return r.one(ctx, selectCols+`where id = $1 limit 1`, id)
}

func (r *queries) GetByExternal(
	ctx context.Context,
	externalID, mediaType string,
) (domain.MediaAnalysis, bool, error) {
	return r.one(ctx,
		selectCols+`where external_id = $1 and media_type = $2 order by created_at desc limit 1`,
		externalID, mediaType,
	)
}

func (r *queries) GetByTitle(
	ctx context.Context,
	title, mediaType string,
) (domain.MediaAnalysis, bool, error) {
	return r.one(ctx,
		selectCols+`where lower(title) = lower($1) and media_type = $2 order by created_at desc limit 1`,
		title, mediaType,
	)
}

func (r *queries) one(ctx context.Context, sql string, args ...any) (domain.MediaAnalysis, bool, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return domain.MediaAnalysis{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return domain.MediaAnalysis{}, false, rows.Err()
	}

	var (
		a        domain.MediaAnalysis
		tags     []byte
		alts     []byte
		createdAt time.Time
	)
	if err := rows.Scan(
		&a.ID, &a.Title, &a.MediaType, &a.ExternalID, &a.PosterURL,
		&a.ReleaseYear, &a.Overview, &a.DiscernmentScore, &a.FaithAnalysis,
		&tags, &a.VerseText, &a.VerseReference, &alts, &createdAt,
	); err != nil {
		return domain.MediaAnalysis{}, false, err
	}
	a.CreatedAt = createdAt

	a.Tags = []string{}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &a.Tags); err != nil {
			return domain.MediaAnalysis{}, false, err
		}
	}
	a.Alternatives = []domain.Alternative{}
	if len(alts) > 0 {
		if err := json.Unmarshal(alts, &a.Alternatives); err != nil {
			return domain.MediaAnalysis{}, false, err
		}
	}
	return a, true, rows.Err()
}

func (r *queries) Insert(ctx context.Context, a domain.MediaAnalysis) error {
	tags, err := json.Marshal(a.Tags)
	if err != nil {
		return err
	}
	alts, err := json.Marshal(a.Alternatives)
	if err != nil {
		return err
	}

	const sql = `
insert into media_analyses
(id, title, media_type, external_id, poster_url, release_year, overview,
discernment_score, faith_analysis, tags, verse_text, verse_reference, alternatives, created_at)
values ($1, $2, $3, nullif($4, ''), nullif($5, ''), nullif($6, ''), nullif($7, ''),
$8, $9, $10, nullif($11, ''), nullif($12, ''), $13, $14)
`
	_, err = r.q.Exec(ctx, sql,
		a.ID, a.Title, a.MediaType, a.ExternalID, a.PosterURL, a.ReleaseYear, a.Overview,
		a.DiscernmentScore, a.FaithAnalysis, tags, a.VerseText, a.VerseReference, alts, a.CreatedAt,
	)
	return err
}
