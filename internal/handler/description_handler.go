package handler

import (
	"encoding/json"
	"net/http"

	"catalogo/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// DescriptionRequest is the JSON body of a description-drafting request.
type DescriptionRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// DescriptionHandler handles description-drafting HTTP requests.
type DescriptionHandler struct {
	service  service.DescriptionService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewDescriptionHandler creates a new description handler.
func NewDescriptionHandler(service service.DescriptionService, logger zerolog.Logger) *DescriptionHandler {
	return &DescriptionHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With().Str("handler", "description").Logger(),
	}
}

// Draft handles POST /descricao requests.
func (h *DescriptionHandler) Draft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req DescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Informe nome e categoria do produto", h.logger)
		return
	}

	text, err := h.service.Draft(r.Context(), req.Name, req.Category)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"description": text})
}
