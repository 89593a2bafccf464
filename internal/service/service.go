package service

import (
	"context"

	"catalogo/internal/model"
)

// ProductService defines operations for product management.
type ProductService interface {
	// Create validates the raw form input and inserts a new product.
	Create(ctx context.Context, input model.CreateProductInput) (*model.CreatedProduct, error)

	// Update validates every supplied patch field and applies them to one
	// product atomically. A single invalid field rejects the whole call.
	Update(ctx context.Context, id int64, patch model.ProductPatch) error

	// Delete removes a product by id.
	Delete(ctx context.Context, id int64) error

	// List retrieves products, optionally filtered by a case-insensitive
	// name substring.
	List(ctx context.Context, search string) ([]model.ProductResponse, error)

	// GetByID retrieves a single product by id.
	GetByID(ctx context.Context, id int64) (*model.ProductResponse, error)
}

// DescriptionService drafts product descriptions through the generative-text
// adapter.
type DescriptionService interface {
	Draft(ctx context.Context, name, category string) (string, error)
}

// AuthService verifies admin credentials and issues access tokens.
type AuthService interface {
	Login(email, password string) (string, error)
}
