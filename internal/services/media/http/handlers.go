// Package http provides http transport for media analysis and discovery
package http

import (
	"context"
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"discernio/internal/adapters/music"
	"discernio/internal/adapters/tmdb"
	"discernio/internal/modkit/httpkit"
	perr "discernio/internal/platform/errors"
	"discernio/internal/services/media/domain"
	svc "discernio/internal/services/media/service"
)

// MovieSearcher powers the movie/show discovery endpoint
type MovieSearcher interface {
	Search(ctx context.Context, query string) ([]tmdb.Result, error)
}

// MusicSearcher powers the song discovery endpoint
type MusicSearcher interface {
	Search(ctx context.Context, query, artist string) ([]music.Track, error)
}

// Register mounts media endpoints on the given router
func Register(r httpkit.Router, s svc.Service, movies MovieSearcher, songs MusicSearcher) {
	h := &handlers{svc: s, movies: movies, songs: songs}

	httpkit.PostJSON[domain.SearchInput](r, "/search", h.search)
	httpkit.Get(r, "/search/{id}", h.get)
	httpkit.Get(r, "/tmdb/search", h.tmdbSearch)
	httpkit.Get(r, "/itunes/search", h.itunesSearch)
}

type handlers struct {
	svc    svc.Service
	movies MovieSearcher
	songs  MusicSearcher
}

// @Summary Analyze a media title
// @Tags Media
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Media item"
// @Success 200 {object} domain.MediaAnalysis "ok"
// @Router /search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.svc.Search(r.Context(), in)
}

// @Summary Fetch a prior analysis by id
// @Tags Media
// @Produce json
// @Param id path string true "Analysis id"
// @Success 200 {object} domain.MediaAnalysis "ok"
// @Router /search/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), chi.URLParam(r, "id"))
}

// @Summary Search movies and shows
// @Tags Media
// @Produce json
// @Param query query string true "Title query"
// @Success 200 {array} tmdb.Result "ok"
// @Router /tmdb/search [get]
func (h *handlers) tmdbSearch(r *stdhttp.Request) (any, error) {
	q := r.URL.Query().Get("query")
	if q == "" {
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "query is required")
	}
	if h.movies == nil {
		return []tmdb.Result{}, nil
	}
	return h.movies.Search(r.Context(), q)
}

// @Summary Search songs
// @Tags Media
// @Produce json
// @Param query query string true "Song query"
// @Param artist query string false "Artist"
// @Success 200 {array} music.Track "ok"
// @Router /itunes/search [get]
func (h *handlers) itunesSearch(r *stdhttp.Request) (any, error) {
	q := r.URL.Query().Get("query")
	if q == "" {
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "query is required")
	}
	if h.songs == nil {
		return []music.Track{}, nil
	}
	return h.songs.Search(r.Context(), q, r.URL.Query().Get("artist"))
}
