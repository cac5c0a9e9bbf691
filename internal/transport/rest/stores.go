package rest

import (
	"net/http"

	"github.com/abgdnv/storecatalog/internal/service"
	"github.com/abgdnv/storecatalog/pkg/web"
)

func (h *Handler) FindStoreByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParsePathID(w, r, mLogger, "storeId")
	if !ok {
		return
	}
	found, err := h.stores.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to retrieve store")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

func (h *Handler) FindAllStores(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	offset, limit, ok := web.ParsePage(w, r, mLogger)
	if !ok {
		return
	}
	list, err := h.stores.FindAll(r.Context(), offset, limit)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to fetch stores")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved store list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

func (h *Handler) CreateStore(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto service.StoreCreateDto
	if !web.DecodeAndValidate(w, r, mLogger, h.validate, &dto) {
		return
	}
	created, err := h.stores.Create(r.Context(), dto)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to create store")
		return
	}
	mLogger.InfoContext(r.Context(), "Store created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

func (h *Handler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParsePathID(w, r, mLogger, "storeId")
	if !ok {
		return
	}
	var dto service.StoreCreateDto
	if !web.DecodeAndValidate(w, r, mLogger, h.validate, &dto) {
		return
	}
	updated, err := h.stores.Update(r.Context(), id, dto)
	if err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to update store")
		return
	}
	mLogger.InfoContext(r.Context(), "Store updated successfully", "ID", updated.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

func (h *Handler) DeleteStoreByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParsePathID(w, r, mLogger, "storeId")
	if !ok {
		return
	}
	if err := h.stores.DeleteByID(r.Context(), id); err != nil {
		respondServiceError(w, r, mLogger, err, "Failed to delete store")
		return
	}
	mLogger.InfoContext(r.Context(), "Store deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}
