package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"catalogo/internal/model"
	"catalogo/internal/service"

	"github.com/rs/zerolog"
)

// maxUploadSize caps multipart form memory usage.
const maxUploadSize = 32 << 20 // 32 MiB

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// Create handles POST /admin/produtos requests with a multipart form body.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", h.logger)
		return
	}

	image, err := readImageFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read image file", h.logger)
		return
	}

	input := model.CreateProductInput{
		Name:        r.FormValue("name"),
		Price:       r.FormValue("price"),
		Category:    r.FormValue("category"),
		Stock:       r.FormValue("stock"),
		Description: r.FormValue("description"),
		Image:       image,
	}

	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Produto cadastrado com sucesso!",
		"product": created,
	})
}

// Update handles PATCH /produtos/{id} requests with a multipart form body.
// Only the supplied fields are touched.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", h.logger)
		return
	}

	image, err := readImageFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read image file", h.logger)
		return
	}

	patch := model.ProductPatch{
		Name:        formValuePtr(r, "name"),
		Price:       formValuePtr(r, "price"),
		Category:    formValuePtr(r, "category"),
		Stock:       formValuePtr(r, "stock"),
		Description: formValuePtr(r, "description"),
		Image:       image,
	}

	if err := h.service.Update(r.Context(), id, patch); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Produto atualizado com sucesso.",
	})
}

// Delete handles DELETE /produtos/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Produto apagado com sucesso.",
	})
}

// List handles GET /produtos requests with an optional search term.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	products, err := h.service.List(r.Context(), search)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /produtos/{id} requests.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// productID extracts the numeric id from a /produtos/{id} path. A
// non-numeric id behaves like a missing product.
func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	// Expecting path: /produtos/{id}
	// Simple extraction without routing library
	path := strings.TrimPrefix(r.URL.Path, "/produtos/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusNotFound, model.ErrProductNotFound.Message, h.logger)
		return 0, false
	}

	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, model.ErrProductNotFound.Message, h.logger)
		return 0, false
	}

	return id, true
}

// formValuePtr returns a pointer to a form value, or nil when the field is
// absent or empty. Empty values count as not supplied.
func formValuePtr(r *http.Request, key string) *string {
	value := r.FormValue(key)
	if value == "" {
		return nil
	}
	return &value
}

// readImageFile reads the optional image file from a multipart form. A
// missing file is not an error.
func readImageFile(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
