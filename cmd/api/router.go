package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-prospector/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-prospector/internal/infra/http/middleware"
)

type routes struct {
	Leads  *handlers.LeadHandler
	Send   *handlers.SendHandler
	UI     *handlers.UIHandler
	Health *handlers.HealthHandler
}

type routerOptions struct {
	Origins           []string
	TrustProxyHeaders bool
}

// newRouter mounts the API, the operator page and the ops endpoints.
// Every endpoint that reaches a paid provider sits behind the limiter.
func newRouter(rt routes, logger *zap.Logger, opts routerOptions, limiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if opts.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.Origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", rt.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", rt.UI.Index)
	r.Get("/leads/saved", rt.Leads.GetSavedLeads)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter))

		r.Get("/leads", rt.Leads.GetLeads)
		r.Post("/send-emails", rt.Send.SendEmails)
		r.Post("/send-sms", rt.Send.SendSMS)

		r.Post("/ui/leads", rt.UI.FetchLeads)
		r.Post("/ui/send-emails", rt.UI.SendEmails)
		r.Post("/ui/send-sms", rt.UI.SendSMS)
	})

	return r
}
