package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ad-board/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. It holds the lifecycle and generation usecases plus a logger for
// structured logging. Routes are registered on a chi.Router for convenient
// method handling.
type Handler struct {
	ads    port.AdUseCase
	gen    port.GenerationUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. The returned
// Handler registers handlers for each endpoint on a new chi.Router.
func NewHandler(ads port.AdUseCase, gen port.GenerationUseCase, logger *slog.Logger) *Handler {
	h := &Handler{ads: ads, gen: gen, logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/advertisements", func(r chi.Router) {
			r.Post("/", h.handleCreateAdvertisement)
			r.Get("/", h.handleListAdvertisements)
			r.Get("/active", h.handleListActiveAdvertisements)
			r.Get("/{id}", h.handleGetAdvertisement)
			r.Patch("/{id}", h.handleUpdateAdvertisement)
			r.Post("/{id}/impression", h.handleIncrementImpression)
			r.Delete("/{id}", h.handleDeleteAdvertisement)
		})
		r.Route("/images", func(r chi.Router) {
			r.Post("/generate", h.handleGenerateImage)
			r.Get("/models", h.handleListModels)
		})
	})
	r.Handle("/metrics", promhttp.Handler())

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
