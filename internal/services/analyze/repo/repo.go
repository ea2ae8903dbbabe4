// Package repo provides postgres access for the lyrics cache
package repo

import (
	"context"
	"strings"
	"time"

	"discernio/internal/modkit/repokit"
)

// CachedLyrics is one stored lyric body with provenance
type CachedLyrics struct {
	Lyrics   string
	Provider string
}

// Repo is the minimal persistence surface for cached lyrics
type Repo interface {
	GetLyrics(ctx context.Context, artist, title string, notBefore time.Time) (CachedLyrics, bool, error)
	UpsertLyrics(ctx context.Context, artist, title, lyrics, provider string) error
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

// CacheKey lowercases and trims so lookups are case insensitive
func CacheKey(artist, title string) string {
	return strings.ToLower(strings.TrimSpace(artist)) + ":" + strings.ToLower(strings.TrimSpace(title))
}

func (r *queries) GetLyrics(
	ctx context.Context,
	artist, title string,
	notBefore time.Time,
) (CachedLyrics, bool, error) {
	const sql = `
select lyrics, provider
from lyrics_cache
where cache_key = $1 and cached_at > $2
limit 1
`
	rows, err := r.q.Query(ctx, sql, CacheKey(artist, title), notBefore)
	if err != nil {
		return CachedLyrics{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return CachedLyrics{}, false, rows.Err()
	}
	var out CachedLyrics
	if err := rows.Scan(&out.Lyrics, &out.Provider); err != nil {
		return CachedLyrics{}, false, err
	}
	return out, true, rows.Err()
}

func (r *queries) UpsertLyrics(ctx context.Context, artist, title, lyrics, provider string) error {
	const sql = `
insert into lyrics_cache (cache_key, artist, title, lyrics, provider, cached_at)
values ($1, $2, $3, $4, $5, now())
on conflict (cache_key)
do update set lyrics = $4, provider = $5, cached_at = now()
`
	_, err := r.q.Exec(ctx, sql, CacheKey(artist, title), artist, title, lyrics, provider)
	return err
}
