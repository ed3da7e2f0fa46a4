package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"mystic-books/internal/model"
	"mystic-books/internal/service"
)

// WishlistHandler handles wishlist HTTP requests.
type WishlistHandler struct {
	service service.WishlistService
	logger  zerolog.Logger
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(service service.WishlistService, logger zerolog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: service,
		logger:  logger.With().Str("handler", "wishlist").Logger(),
	}
}

// List handles GET /wishlist requests with an optional email filter.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	items, err := h.service.List(r.Context(), caller, r.URL.Query().Get("email"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if items == nil {
		items = []model.WishlistItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Add handles POST /wishlist requests.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	var req model.WishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	result, err := h.service.Add(r.Context(), caller, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	status := http.StatusCreated
	if result.InsertedID == nil {
		status = http.StatusOK
	}
	writeJSON(w, status, result)
}

// Remove handles DELETE /wishlist/{id} requests.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.service.Remove(r.Context(), caller, id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
