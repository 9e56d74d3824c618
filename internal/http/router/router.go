package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nordsym/guldkant-api/internal/config"
	"github.com/nordsym/guldkant-api/internal/http/handler"
	"github.com/nordsym/guldkant-api/internal/http/middleware"
	"go.uber.org/zap"
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	rateLimiter      *middleware.RateLimiter
	quoteHandler     *handler.QuoteHandler
	dashboardHandler *handler.DashboardHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	rateLimiter *middleware.RateLimiter,
	quoteHandler *handler.QuoteHandler,
	dashboardHandler *handler.DashboardHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		rateLimiter:      rateLimiter,
		quoteHandler:     quoteHandler,
		dashboardHandler: dashboardHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", rt.quoteHandler.List)
			r.Get("/template", rt.quoteHandler.Template)
			r.Post("/", rt.quoteHandler.Save)

			// Lifecycle endpoints
			r.Post("/{id}/status", rt.quoteHandler.ChangeStatus)
			r.Post("/{id}/send", rt.quoteHandler.Send)
			r.Post("/{id}/approve", rt.quoteHandler.Approve)
		})

		r.Get("/statuses", rt.quoteHandler.Statuses)
		r.Get("/dashboard/metrics", rt.dashboardHandler.Metrics)
	})

	return r
}
