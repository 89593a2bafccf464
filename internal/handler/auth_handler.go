package handler

import (
	"encoding/json"
	"net/http"

	"catalogo/internal/model"
	"catalogo/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// LoginRequest is the JSON body of a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the JSON body of a login result.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	service  service.AuthService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	// A malformed credential pair is just an invalid one.
	if err := h.validate.Struct(req); err != nil {
		h.rejectLogin(w)
		return
	}

	token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		h.rejectLogin(w)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Token:   token,
	})
}

func (h *AuthHandler) rejectLogin(w http.ResponseWriter) {
	h.logger.Warn().Msg("login rejected")
	writeJSON(w, http.StatusUnauthorized, LoginResponse{
		Success: false,
		Message: model.ErrInvalidCredentials.Message,
	})
}
