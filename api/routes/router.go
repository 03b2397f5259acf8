package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cpinopacheco/sistema-inventario-BD/api/controllers"
	"github.com/cpinopacheco/sistema-inventario-BD/api/middleware"
	categorysvc "github.com/cpinopacheco/sistema-inventario-BD/internal/categories"
	productsvc "github.com/cpinopacheco/sistema-inventario-BD/internal/products"
	statssvc "github.com/cpinopacheco/sistema-inventario-BD/internal/stats"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/config"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/db"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/logger"
	"github.com/cpinopacheco/sistema-inventario-BD/pkg/metrics"
)

// Deps bundles everything the router needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DBClient    *db.Client
	Cache       controllers.Pinger // nil when Redis is not configured
	HTTPMetrics *metrics.HTTPMetrics
	MetricsHTTP http.Handler

	Products   productsvc.Service
	Categories categorysvc.Service
	Stats      statssvc.Service
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(deps.Config.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, map[string]controllers.Pinger{
			"database": deps.DBClient,
			"redis":    deps.Cache,
		}))
	})

	if deps.MetricsHTTP != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHTTP)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/productos", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, deps.Logger))
			r.Post("/", controllers.CreateProduct(deps.Products, deps.Logger))
			r.Get("/{id}", controllers.GetProduct(deps.Products, deps.Logger))
			r.Put("/{id}", controllers.UpdateProduct(deps.Products, deps.Logger))
			r.Delete("/{id}", controllers.DeleteProduct(deps.Products, deps.Logger))
			r.Patch("/{id}/cantidad", controllers.AdjustProductQuantity(deps.Products, deps.Logger))
		})

		r.Route("/categorias", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(deps.Categories, deps.Logger))
			r.Post("/", controllers.CreateCategory(deps.Categories, deps.Logger))
			r.Get("/{id}", controllers.GetCategory(deps.Categories, deps.Logger))
			r.Put("/{id}", controllers.UpdateCategory(deps.Categories, deps.Logger))
			r.Delete("/{id}", controllers.DeleteCategory(deps.Categories, deps.Logger))
		})

		r.Get("/estadisticas", controllers.GetStats(deps.Stats, deps.Logger))
		r.Get("/diagnostico", controllers.Diagnostics(deps.Config, deps.DBClient, deps.Logger))
	})

	return r
}
