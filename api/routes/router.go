package routes

import (
	"net/http"

	"github.com/easemart/easemart-backend/api/controllers"
	"github.com/easemart/easemart-backend/api/middleware"
	"github.com/easemart/easemart-backend/internal/auth"
	"github.com/easemart/easemart-backend/internal/items"
	"github.com/easemart/easemart-backend/internal/users"
	"github.com/easemart/easemart-backend/pkg/config"
	"github.com/easemart/easemart-backend/pkg/db"
	"github.com/easemart/easemart-backend/pkg/logger"
	"github.com/easemart/easemart-backend/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the HTTP surface. Reads require a bearer token; every
// mutation additionally requires the caller's stored access record to carry
// the admin grant.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	client *db.Client,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	accessLoader middleware.AccessLoader,
	authService auth.Service,
	usersService users.Service,
	itemsService items.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Get("/", controllers.Welcome())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, client, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(authService, logg))
		r.Post("/login", controllers.AuthLogin(authService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Get("/item", controllers.ItemsList(itemsService, logg))
			r.Get("/item/{id}", controllers.ItemsGet(itemsService, logg))
			r.Get("/user", controllers.UsersList(usersService, logg))
			r.Get("/user/{id}", controllers.UsersGet(usersService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(accessLoader, logg))

				r.Post("/item", controllers.ItemsCreate(itemsService, logg))
				r.Put("/item/{id}", controllers.ItemsUpdate(itemsService, logg))
				r.Delete("/item/{id}", controllers.ItemsDelete(itemsService, logg))

				r.Put("/user/{id}", controllers.UsersUpdate(usersService, logg))
				r.Delete("/user/{id}", controllers.UsersDelete(usersService, logg))
			})
		})
	})

	return r
}
