// AngelaMos | 2026
// handler.go

package news

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/promptacademy/platform-api/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/news", func(r chi.Router) {
		r.Get("/headlines", h.Headlines)
	})
}

// Headlines answers 200 with an empty list when there genuinely is no
// AI news; 5xx is reserved for upstream or configuration failure.
func (h *Handler) Headlines(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.HeadlinesForToday(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotConfigured):
			core.InternalServerError(w, err)
		case errors.Is(err, core.ErrUpstream):
			core.JSONError(w, core.UpstreamError("news provider unavailable"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, resp)
}
