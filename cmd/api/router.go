package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/emotionlog/emotionlog/internal/app"
	"github.com/emotionlog/emotionlog/internal/handler"
	"github.com/emotionlog/emotionlog/internal/middleware"
)

// routerOptions carries the middleware settings taken from config.
type routerOptions struct {
	isDevelopment  bool
	corsOrigins    []string
	maxRequestBody int64
	logger         *slog.Logger
}

// routes groups the handlers mounted by newRouterWith.
type routes struct {
	root     *handler.Handler
	health   *handler.HealthHandler
	metrics  *handler.MetricsHandler
	emotions *handler.EmotionHandler
	clients  *handler.ClientHandler
}

func newRouter(a *app.App) http.Handler {
	var redisCheck handler.HealthChecker
	if a.Cache != nil {
		redisCheck = a.Cache
	}

	return newRouterWith(routes{
		root:     handler.New(),
		health:   handler.NewHealthHandler(a.Repo, redisCheck, a.Config.HasSentimentToken()),
		metrics:  handler.NewMetricsHandler(a.Metrics),
		emotions: handler.NewEmotionHandler(a.Emotions, a.Logger),
		clients:  handler.NewClientHandler(a.Clients, a.Logger),
	}, routerOptions{
		isDevelopment:  a.Config.IsDevelopment(),
		corsOrigins:    a.Config.GetCORSAllowedOrigins(),
		maxRequestBody: a.Config.MaxRequestBodySize,
		logger:         a.Logger,
	})
}

func newRouterWith(h routes, opts routerOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(opts.logger))
	r.Use(middleware.Recoverer(opts.logger, opts.isDevelopment))
	r.Use(middleware.Security(opts.isDevelopment))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(opts.corsOrigins)))

	r.Get("/", h.root.Hello)
	r.Get("/healthz", h.health.Healthz)
	r.Get("/readyz", h.health.Readyz)
	r.Get("/metrics", h.metrics.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.MaxBodySize(opts.maxRequestBody))

		r.Route("/emotions", func(r chi.Router) {
			r.Post("/", h.emotions.Create)
			r.Get("/", h.emotions.List)
			r.Get("/{id}", h.emotions.Get)
			r.Delete("/{id}", h.emotions.Delete)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Post("/", h.clients.Create)
			r.Get("/", h.clients.List)
			r.Get("/{id}", h.clients.Get)
		})
	})

	r.NotFound(h.root.NotFound)
	r.MethodNotAllowed(h.root.MethodNotAllowed)

	return r
}
