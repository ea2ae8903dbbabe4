// Package http provides http transport for lyrics analysis
package http

import (
	stdhttp "net/http"

	"discernio/internal/modkit/httpkit"
	"discernio/internal/services/analyze/domain"
	svc "discernio/internal/services/analyze/service"
)

// Register mounts analyze endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.AnalyzeLyricsInput](r, "/lyrics", h.lyrics)
}

type handlers struct{ svc svc.Service }

// @Summary Analyze song lyrics
// @Tags Analyze
// @Accept json
// @Produce json
// @Param payload body domain.AnalyzeLyricsInput true "Track"
// @Success 200 {object} domain.AnalyzeLyricsResult "ok"
// @Router /analyze/lyrics [post]
func (h *handlers) lyrics(r *stdhttp.Request, in domain.AnalyzeLyricsInput) (any, error) {
	return h.svc.AnalyzeLyrics(r.Context(), in)
}
