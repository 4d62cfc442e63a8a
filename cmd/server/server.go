package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rahul4469/youtube-analyzer/internal/config"
	"github.com/rahul4469/youtube-analyzer/internal/controllers"
	"github.com/rahul4469/youtube-analyzer/internal/middleware"
	"github.com/rahul4469/youtube-analyzer/internal/views"
)

// newRouter wires middleware, controllers and routes.
func newRouter(cfg *config.Config, analyzer controllers.Analyzer, log zerolog.Logger) (http.Handler, error) {
	homeTpl, err := views.ParseFS("pages/index.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	// Setup Controllers ---------------
	staticCtrl := controllers.NewStaticController(controllers.StaticTemplates{
		Home: homeTpl.WithLogger(log),
	}, cfg.IsDevelopment())
	analyzeCtrl := controllers.NewAnalyzeController(analyzer, log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)

	// ---- Operational Routes ----
	r.Get("/health", controllers.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	// ---- Application Routes ----
	r.Group(func(r chi.Router) {
		if cfg.CSRFEnabled() {
			r.Use(csrfMiddleware(cfg.Security))
		}

		r.Get("/", staticCtrl.GetHome)
		r.Post("/analyze", analyzeCtrl.PostAnalyze)
	})

	return r, nil
}

// csrfMiddleware protects the form and the analyze endpoint.
// Outside production the app is usually served over plain HTTP, where the
// Referer check for TLS requests cannot pass.
func csrfMiddleware(sec config.SecurityConfig) func(http.Handler) http.Handler {
	protect := csrf.Protect(
		[]byte(sec.CSRFSecret),
		csrf.Secure(sec.SecureCookies),
		csrf.Path("/"),
		csrf.TrustedOrigins(sec.CSRFTrustedOrigins),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		if sec.SecureCookies {
			return protected
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
