package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mtse/marketing-engine/internal/auth"
	"github.com/mtse/marketing-engine/internal/config"
	"github.com/mtse/marketing-engine/internal/fetch"
	"github.com/mtse/marketing-engine/internal/quota"
	"github.com/mtse/marketing-engine/internal/store"
	"github.com/mtse/marketing-engine/internal/utils"
)

type server struct {
	log    *slog.Logger
	cfg    config.Config
	users  store.UserStore
	auth   *auth.Service
	meter  *quota.Meter
	client fetch.HTTPClient
}

// NewRouter wires every route of the analytics service.
func NewRouter(log *slog.Logger, cfg config.Config, users store.UserStore, authSvc *auth.Service, meter *quota.Meter, client fetch.HTTPClient, prom *prometheus.Registry) http.Handler {
	s := &server{log: log, cfg: cfg, users: users, auth: authSvc, meter: meter, client: client}

	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(prom, promhttp.HandlerOpts{}))

	mux.Post("/auth/register", s.handleRegister)
	mux.Post("/auth/login", s.handleLogin)

	mux.Group(func(r chi.Router) {
		r.Use(authSvc.Middleware)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/predict", s.handlePredict)
		r.Post("/reports/pdf", s.handleReportPDF)
		r.Post("/reports/csv", s.handleReportCSV)
		r.Get("/me/usage", s.handleUsage)

		r.Group(func(ar chi.Router) {
			ar.Use(auth.RequireRole("admin"))
			ar.Get("/admin/users", s.handleAdminUsers)
		})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
