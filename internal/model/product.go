package model

import "encoding/base64"

// ImageStoredMarker is echoed in the create response in place of the binary
// image data.
const ImageStoredMarker = "image stored as binary"

// Product represents a catalog row as stored in the database.
type Product struct {
	ID          int64
	Name        string
	Price       float64
	Category    string
	Stock       int
	Description string
	Image       []byte
}

// ProductResponse is the transport shape of a product. The image, when
// present, travels as base64 text; absent images serialise as null.
type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

// Response converts a stored product into its transport shape,
// base64-encoding the image bytes.
func (p Product) Response() ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Stock:       p.Stock,
		Description: p.Description,
	}
	if len(p.Image) > 0 {
		encoded := base64.StdEncoding.EncodeToString(p.Image)
		resp.Image = &encoded
	}
	return resp
}

// CreatedProduct echoes the stored fields after a successful create. The
// image field carries ImageStoredMarker instead of the binary payload.
type CreatedProduct struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

// CreateProductInput carries raw multipart form values for product creation.
// Numeric fields arrive as strings and are parsed by the service.
type CreateProductInput struct {
	Name        string
	Price       string
	Category    string
	Stock       string
	Description string
	Image       []byte
}

// ProductPatch carries raw multipart form values for a partial update. A nil
// pointer means the field was not supplied; a nil Image means no new image.
type ProductPatch struct {
	Name        *string
	Price       *string
	Category    *string
	Stock       *string
	Description *string
	Image       []byte
}

// Empty reports whether the patch supplies no fields at all.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Category == nil &&
		p.Stock == nil && p.Description == nil && p.Image == nil
}

// ProductUpdate is a fully validated set of field mutations. Nil fields are
// left untouched by the repository.
type ProductUpdate struct {
	Name        *string
	Price       *float64
	Category    *string
	Stock       *int
	Description *string
	Image       []byte
}

// Empty reports whether the update mutates no fields.
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Price == nil && u.Category == nil &&
		u.Stock == nil && u.Description == nil && u.Image == nil
}
