package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

const serviceName = "storefront"

// RouterConfig carries the edge settings of the HTTP API.
type RouterConfig struct {
	PprofCIDRs      []string
	CORS            middleware.CORSConfig
	ProductCacheAge int
	RequestTimeout  time.Duration
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	products *catalog.Service,
	carts *service.CartService,
	wishlists *service.WishlistService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	productHandler := NewProductHandler(products, logger)
	cartHandler := NewCartHandler(carts, logger)
	wishlistHandler := NewWishlistHandler(wishlists, logger)

	r.Route("/api/v1/products", func(r chi.Router) {
		if cfg.ProductCacheAge > 0 {
			r.Use(middleware.CacheControl(cfg.ProductCacheAge))
		}
		r.Get("/", productHandler.ListProducts)
		r.Get("/slug/{slug}", productHandler.GetProductBySlug)
		r.Get("/{id}", productHandler.GetProduct)
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.RequireSession)

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)

		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{productId}", cartHandler.UpdateItemQuantity)
		r.Delete("/items/{productId}", cartHandler.RemoveItem)
	})

	r.Route("/api/v1/wishlist", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.RequireSession)

		r.Get("/", wishlistHandler.GetWishlist)
		r.Delete("/", wishlistHandler.ClearWishlist)
		r.Post("/move-to-cart", wishlistHandler.MoveAllToCart)

		r.Post("/items", wishlistHandler.AddItem)
		r.Get("/items/{productId}", wishlistHandler.Contains)
		r.Delete("/items/{productId}", wishlistHandler.RemoveItem)
		r.Post("/items/{productId}/move-to-cart", wishlistHandler.MoveToCart)
	})

	return r
}
