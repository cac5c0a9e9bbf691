// Package rest provides the HTTP handlers of the catalog service.
package rest

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/storecatalog/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	products     service.ProductService
	stores       service.StoreService
	associations service.AssociationService
	validate     *validator.Validate
	logger       *slog.Logger
}

// NewHandler creates the HTTP API of the catalog on top of the given services.
func NewHandler(products service.ProductService, stores service.StoreService, associations service.AssociationService, logger *slog.Logger) *Handler {
	return &Handler{
		products:     products,
		stores:       stores,
		associations: associations,
		validate:     validator.New(),
		logger:       logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for products, stores and their associations.
// writeGuards wrap every route that modifies the catalog; reads stay open.
func (h *Handler) RegisterRoutes(r chi.Router, writeGuards ...func(http.Handler) http.Handler) {
	r.Route("/api/v1/products", func(r chi.Router) {
		w := r.With(writeGuards...)
		r.Get("/", h.FindAllProducts)
		w.Post("/", h.CreateProduct)

		r.Route("/{productId}", func(r chi.Router) {
			w := r.With(writeGuards...)
			r.Get("/", h.FindProductByID)
			w.Put("/", h.UpdateProduct)
			w.Delete("/", h.DeleteProductByID)

			r.Route("/stores", func(r chi.Router) {
				w := r.With(writeGuards...)
				r.Get("/", h.FindStoresFromProduct)
				w.Put("/", h.UpdateStoresFromProduct)
				w.Post("/{storeId}", h.AddStoreToProduct)
				r.Get("/{storeId}", h.FindStoreFromProduct)
				w.Delete("/{storeId}", h.DeleteStoreFromProduct)
			})
		})
	})

	r.Route("/api/v1/stores", func(r chi.Router) {
		w := r.With(writeGuards...)
		r.Get("/", h.FindAllStores)
		w.Post("/", h.CreateStore)

		r.Route("/{storeId}", func(r chi.Router) {
			w := r.With(writeGuards...)
			r.Get("/", h.FindStoreByID)
			w.Put("/", h.UpdateStore)
			w.Delete("/", h.DeleteStoreByID)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
