package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/inventory-backend/api/controllers"
	"github.com/angelmondragon/inventory-backend/api/middleware"
	"github.com/angelmondragon/inventory-backend/api/responses"
	"github.com/angelmondragon/inventory-backend/internal/items"
	"github.com/angelmondragon/inventory-backend/pkg/config"
	"github.com/angelmondragon/inventory-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/inventory-backend/pkg/errors"
	"github.com/angelmondragon/inventory-backend/pkg/logger"
	"github.com/angelmondragon/inventory-backend/pkg/metrics"
	"github.com/angelmondragon/inventory-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	itemService items.Service,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	checks := []controllers.HealthCheck{{Name: "db", Pinger: dbP}}
	if redisClient != nil {
		checks = append(checks, controllers.HealthCheck{Name: "redis", Pinger: redisClient})
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, checks...))
	})
	r.Method(http.MethodGet, "/metrics", controllers.Metrics(gatherer))

	r.Route("/items", func(r chi.Router) {
		if cfg.HTTP.MaxBodyBytes > 0 {
			r.Use(chimiddleware.RequestSize(cfg.HTTP.MaxBodyBytes))
		}
		if redisClient != nil {
			policy := middleware.NewRateLimitPolicy("writes", cfg.RateLimit.WriteWindow, cfg.RateLimit.WriteLimit).
				WithProxyHeaders(cfg.RateLimit.TrustProxy)
			r.Use(middleware.WriteRateLimit(policy, redisClient, logg))
		}

		r.Get("/", controllers.ItemsList(itemService, logg))
		r.Post("/", controllers.ItemCreate(itemService, logg))
		r.Get("/summary", controllers.ItemsSummary(itemService, logg))
		r.Get("/{id}", controllers.ItemGet(itemService, logg))
		r.Put("/{id}", controllers.ItemUpdate(itemService, logg))
		r.Delete("/{id}", controllers.ItemDelete(itemService, logg))
	})

	return r
}
