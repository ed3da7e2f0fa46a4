package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mystic-books/internal/model"
	"mystic-books/internal/service"
)

// ReviewHandler handles review HTTP requests.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// List handles GET /reviews?bookId= requests.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("bookId")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "bookId is required", h.logger)
		return
	}

	bookID, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bookId format", h.logger)
		return
	}

	reviews, err := h.service.ListByBook(r.Context(), bookID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if reviews == nil {
		reviews = []model.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

// Add handles POST /reviews requests.
func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	var req model.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	result, err := h.service.Add(r.Context(), caller, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
