package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bher20/evtariff/internal/api/swagger"
	"github.com/bher20/evtariff/internal/household"
	"github.com/bher20/evtariff/internal/storage"
	"github.com/bher20/evtariff/internal/ui"
)

// Server exposes the household service over HTTP.
type Server struct {
	svc   *household.Service
	store storage.Storage
	log   *zap.Logger
}

func NewServer(svc *household.Service, st storage.Storage, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, store: st, log: log}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(instrument)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/livez", s.handleLivez)
	r.Get("/readyz", s.handleReadyz)
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/swagger", http.StripPrefix("/swagger", swagger.Handler()))
	r.Mount("/ui", http.StripPrefix("/ui", ui.Handler()))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusFound)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/tariffs", s.handleGetTariffs)
		r.Post("/tariffs", s.handleReplaceTariffs)
		r.Post("/tariffs/new", s.handleAddTariff)
		r.Put("/tariffs/{id}", s.handleUpdateTariff)
		r.Delete("/tariffs/{id}", s.handleDeleteTariff)
		r.Get("/tariffs/{id}/charging", s.handleCharging)

		r.Get("/usage-assumptions", s.handleGetUsage)
		r.Post("/usage-assumptions", s.handleReplaceUsage)

		r.Get("/preferences", s.handleGetPreferences)
		r.Post("/preferences", s.handleReplacePreferences)

		r.Get("/comparison", s.handleComparison)
		r.Get("/debug", s.handleDebug)
	})

	return r
}
