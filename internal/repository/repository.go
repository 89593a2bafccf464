package repository

import (
	"context"

	"catalogo/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// Create inserts a new product and returns the database-assigned id.
	Create(ctx context.Context, product *model.Product) (int64, error)

	// GetByID retrieves a single product by its id. Returns (nil, nil) when
	// no row matches.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// List retrieves all products, or only those whose name contains the
	// search term case-insensitively when the term is non-empty.
	List(ctx context.Context, search string) ([]model.Product, error)

	// Update applies the supplied field mutations to one row in a single
	// atomic statement. Returns model.ErrProductNotFound when no row matches.
	Update(ctx context.Context, id int64, update model.ProductUpdate) error

	// Delete removes the row with the given id. Returns
	// model.ErrProductNotFound when no row matches.
	Delete(ctx context.Context, id int64) error
}
