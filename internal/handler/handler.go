package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"catalogo/internal/model"

	"github.com/rs/zerolog"
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
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeDomainError maps a service error onto its HTTP status. Unknown errors
// become an opaque 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusInternalServerError
		switch domainErr.Code {
		case model.ErrCodeValidation:
			status = http.StatusBadRequest
		case model.ErrCodeProductNotFound:
			status = http.StatusNotFound
		case model.ErrCodeGenerationFailed:
			status = http.StatusInternalServerError
		case model.ErrCodeInvalidCredentials:
			status = http.StatusUnauthorized
		}
		writeError(w, status, domainErr.Message, logger)
		return
	}

	writeError(w, http.StatusInternalServerError, "internal server error", logger)
}
