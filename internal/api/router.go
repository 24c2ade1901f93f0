package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hirelens/talentmatch/internal/events"
	"github.com/hirelens/talentmatch/internal/store"
)

func NewRouter(s store.Store, runner MatchRunner, ev events.Client, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	benchmarks := NewBenchmarksHandler(s, ev)
	match := NewMatchHandler(s, runner, ev)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/benchmarks", benchmarks.List)
		r.Get("/benchmarks/{id}", benchmarks.Get)
		r.Get("/benchmarks/{id}/candidates", benchmarks.Candidates)
		r.Get("/benchmarks/{id}/suggestions", benchmarks.Suggestions)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Post("/benchmarks", benchmarks.Create)
			r.Put("/benchmarks/{id}/selection", benchmarks.UpdateSelection)
			r.Post("/benchmarks/{id}/match", match.Run)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
