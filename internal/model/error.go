package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeGenerationFailed   = "GENERATION_FAILED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// NewMissingFieldError names the first mandatory form field that was absent.
func NewMissingFieldError(field string) *DomainError {
	return NewValidationError(fmt.Sprintf("O campo '%s' é obrigatório.", field))
}

// Common domain errors
var (
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Produto não encontrado.")
	ErrNoUpdateFields     = NewValidationError("Informe pelo menos um campo para atualizar.")
	ErrInvalidPrice       = NewValidationError("Preço inválido.")
	ErrInvalidStock       = NewValidationError("Estoque inválido.")
	ErrGenerationFailed   = NewDomainError(ErrCodeGenerationFailed, "Não foi possível gerar a descrição")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Credenciais Inválidas")
)
