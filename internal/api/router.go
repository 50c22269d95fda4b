package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(p Pipeline, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(600))

	records := NewRecordsHandler(p)
	weights := NewWeightsHandler(p)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/records", records.List)
		r.Get("/records/{id}/explain", records.Explain)
		r.Get("/table", records.Table)
		r.Get("/keys", records.Keys)
		r.Get("/series", records.Series)
		r.Get("/frontier", records.Frontier)
		r.Get("/status", records.Status)

		r.Get("/weights", weights.Get)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Put("/weights", weights.Update)
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
