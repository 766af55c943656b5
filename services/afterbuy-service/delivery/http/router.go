package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ahhussein/afterbuy-sdk/pkg/api"
	"github.com/ahhussein/afterbuy-sdk/pkg/jwt"
	"github.com/ahhussein/afterbuy-sdk/pkg/logger"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/metrics"
)

type Router struct {
	CatalogHandler *CatalogHandler
	OrderHandler   *OrderHandler
	HealthHandler  *HealthHandler
	AuthHandler    *AuthHandler
	JWTClient      jwt.JWTClient
	Metrics        *metrics.Metrics
	AppLogger      logger.LoggerInterface
}

func NewRouter(
	catalogHandler *CatalogHandler,
	orderHandler *OrderHandler,
	healthHandler *HealthHandler,
	authHandler *AuthHandler,
	jwtClient jwt.JWTClient,
	m *metrics.Metrics,
	appLogger logger.LoggerInterface,
) *Router {
	return &Router{
		CatalogHandler: catalogHandler,
		OrderHandler:   orderHandler,
		HealthHandler:  healthHandler,
		AuthHandler:    authHandler,
		JWTClient:      jwtClient,
		Metrics:        m,
		AppLogger:      appLogger,
	}
}

func (r *Router) SetupRoutes() http.Handler {
	router := chi.NewRouter()
	apiClient := api.New()

	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.Heartbeat("/ping"))
	router.Use(LoggingMiddleware(r.AppLogger))
	router.Use(MetricsMiddleware(r.Metrics))

	router.Get("/health", r.HealthHandler.HealthCheckHandler)
	if r.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", r.Metrics.Handler())
	}

	scope := func(s string) func(http.Handler) http.Handler {
		return RequireScope(s, r.AppLogger, apiClient)
	}

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(JWTMiddleware(r.JWTClient, r.AppLogger, apiClient))

		// Shop configuration and products
		v1.Group(func(catalog chi.Router) {
			catalog.Use(scope(ScopeCatalogRead))
			catalog.Get("/payment-services", r.CatalogHandler.PaymentServicesHandler)
			catalog.Get("/shipping-services", r.CatalogHandler.ShippingServicesHandler)
			catalog.Get("/shop-products", r.CatalogHandler.ShopProductsHandler)
			catalog.Get("/shop-catalogs", r.CatalogHandler.ShopCatalogsHandler)
			catalog.Get("/stock", r.CatalogHandler.StockHandler)
		})
		// Sold orders
		v1.Route("/sold-items", func(orders chi.Router) {
			orders.With(scope(ScopeOrdersRead)).Get("/", r.OrderHandler.SoldItemsHandler)
			orders.With(scope(ScopeOrdersWrite)).Patch("/", r.OrderHandler.UpdateHandler)
			orders.With(scope(ScopeOrdersSync)).Post("/sync", r.OrderHandler.SyncHandler)
		})
		// Stored snapshots
		v1.Route("/orders", func(orders chi.Router) {
			orders.Use(scope(ScopeOrdersRead))
			orders.Get("/", r.OrderHandler.ListStoredHandler)
			orders.Get("/{afterbuy_id}", r.OrderHandler.GetStoredHandler)
		})
		v1.Post("/auth/revoke", r.AuthHandler.RevokeHandler)
	})
	return router
}
