package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mystic-books/internal/auth"
	"mystic-books/internal/middleware"
	"mystic-books/internal/model"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message, Message: message})
}

// writeDomainError maps a service error to an HTTP status and writes it.
// Unrecognised errors are reported as generic upstream failures.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		writeError(w, http.StatusInternalServerError, "internal server error", logger)
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Code {
	case model.ErrCodeNotFound:
		status = http.StatusNotFound
	case model.ErrCodeForbidden:
		status = http.StatusForbidden
	case model.ErrCodeUnauthenticated:
		status = http.StatusUnauthorized
	case model.ErrCodeInvalidTransition,
		model.ErrCodeUnknownStatus,
		model.ErrCodeUnknownRole,
		model.ErrCodeMissingField,
		model.ErrCodeInvalidJSON:
		status = http.StatusBadRequest
	case model.ErrCodeDuplicate:
		status = http.StatusConflict
	}

	writeError(w, status, domainErr.Message, logger)
}

// callerIdentity pulls the verified identity the authorization middleware
// attached. Reaching a protected handler without one is a wiring bug.
func callerIdentity(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (auth.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized access", logger)
		return auth.Identity{}, false
	}
	return identity, true
}

// pathID parses the {id} path segment as a UUID.
func pathID(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (uuid.UUID, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "id is required", logger)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id format", logger)
		return uuid.Nil, false
	}
	return id, true
}
