package rest

import (
	"net/http"

	"github.com/abgdnv/storecatalog/internal/service"
	"github.com/abgdnv/storecatalog/pkg/web"
	"github.com/google/uuid"
)

// AddStoreToProduct attaches a store to a product and returns the product.
func (h *Handler) AddStoreToProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	productID, storeID, ok := h.parseAssociationIDs(w, r)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to attach store", "productID", productID, "storeID", storeID)

	product, err := h.associations.AddStoreToProduct(r.Context(), productID, storeID)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to attach store to product")
		return
	}
	mLogger.InfoContext(r.Context(), "Store attached to product", "productID", productID, "storeID", storeID)
	web.RespondJSON(w, mLogger, http.StatusCreated, product)
}

// FindStoresFromProduct lists the stores of a product.
func (h *Handler) FindStoresFromProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	productID, ok := web.ParsePathID(w, r, mLogger, "productId")
	if !ok {
		return
	}
	stores, err := h.associations.FindStoresFromProduct(r.Context(), productID)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to fetch stores of product")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved stores of product", "productID", productID, "count", len(stores))
	web.RespondJSON(w, mLogger, http.StatusOK, stores)
}

// FindStoreFromProduct returns one store of a product.
func (h *Handler) FindStoreFromProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	productID, storeID, ok := h.parseAssociationIDs(w, r)
	if !ok {
		return
	}
	found, err := h.associations.FindStoreFromProduct(r.Context(), productID, storeID)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to fetch store of product")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// UpdateStoresFromProduct replaces the store set of a product with the stores listed in the body.
func (h *Handler) UpdateStoresFromProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	productID, ok := web.ParsePathID(w, r, mLogger, "productId")
	if !ok {
		return
	}
	var refs []service.StoreRefDto
	if !web.DecodeAndValidateList(w, r, mLogger, h.validate, &refs) {
		return
	}
	storeIDs := make([]uuid.UUID, len(refs))
	for i, ref := range refs {
		storeIDs[i] = ref.ID
	}
	mLogger.DebugContext(r.Context(), "Received request to replace stores", "productID", productID, "count", len(storeIDs))

	product, err := h.associations.UpdateStoresFromProduct(r.Context(), productID, storeIDs)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to replace stores of product")
		return
	}
	mLogger.InfoContext(r.Context(), "Stores of product replaced", "productID", productID, "count", len(product.Stores))
	web.RespondJSON(w, mLogger, http.StatusOK, product)
}

// DeleteStoreFromProduct detaches a store from a product.
func (h *Handler) DeleteStoreFromProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	productID, storeID, ok := h.parseAssociationIDs(w, r)
	if !ok {
		return
	}
	if err := h.associations.DeleteStoreFromProduct(r.Context(), productID, storeID); err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to detach store from product")
		return
	}
	mLogger.InfoContext(r.Context(), "Store detached from product", "productID", productID, "storeID", storeID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) parseAssociationIDs(w http.ResponseWriter, r *http.Request) (productID, storeID uuid.UUID, ok bool) {
	mLogger := h.loggerWithReqID(r)
	if productID, ok = web.ParsePathID(w, r, mLogger, "productId"); !ok {
		return
	}
	storeID, ok = web.ParsePathID(w, r, mLogger, "storeId")
	return
}
