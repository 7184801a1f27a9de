// Package api exposes the tracker's query surface and the manual sync
// trigger over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/terrancemacgregor/wtmd-playlist-tracker/ingest"
	"github.com/terrancemacgregor/wtmd-playlist-tracker/storage"
)

type Server struct {
	store       storage.Store
	coordinator *ingest.Coordinator
}

func NewServer(store storage.Store, coordinator *ingest.Coordinator) *Server {
	return &Server{store: store, coordinator: coordinator}
}

// Router wires all routes. registry may be nil when metrics exposure
// is not wanted (tests, one-shot commands).
func (s *Server) Router(registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sync", s.handleSync)
		r.Get("/sync", s.handleSyncHint)
		r.Get("/songs", s.handleSongs)
		r.Get("/songs/search", s.handleSearch)
		r.Get("/djs", s.handleDJs)
		r.Get("/stats", s.handleStats)
	})
	r.Get("/health", s.handleHealth)

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	return r
}
