package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ms-backoffice/internal/auth"
	"ms-backoffice/internal/logger"
)

type RouterConfig struct {
	AllowedOrigins []string
	// Verifier guards /api. Nil leaves the API open, for local development.
	Verifier auth.Verifier
	// RequestTimeout cancels the request context of slow /api calls.
	RequestTimeout time.Duration
}

// NewRouter serves /healthz and /metrics publicly and mounts h under /api.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if h.Logger != nil {
		r.Use(RequestLogger(h.Logger))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if cfg.Verifier != nil {
			r.Use(auth.Middleware(cfg.Verifier, h.Logger))
			logInfo(h.Logger, "AUTH", "Bearer token middleware applied to /api")
		} else {
			logWarn(h.Logger, "AUTH", "No token verifier configured, /api is unauthenticated")
		}
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}
		r.Route("/api", h.RegisterRoutes)
	})
	return r
}

func logInfo(log *logger.Logger, category, msg string) {
	if log != nil {
		log.Info(category, msg)
	}
}

func logWarn(log *logger.Logger, category, msg string) {
	if log != nil {
		log.Warn(category, msg)
	}
}
