package repository

import (
	"context"
	"fmt"

	"catalogo/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// Create inserts a new product row and returns the assigned id.
func (r *productRepository) Create(ctx context.Context, product *model.Product) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	query := `
		INSERT INTO products (name, price, category, stock, description, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err = conn.QueryRow(ctx, query,
		product.Name,
		product.Price,
		product.Category,
		product.Stock,
		product.Description,
		product.Image,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to insert product")
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}

	return id, nil
}

// GetByID retrieves a single product by its id.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	query := `
		SELECT id, name, price, category, stock, description, image
		FROM products
		WHERE id = $1
	`

	p, err := r.scanProduct(conn.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// List retrieves all products, filtered by a case-insensitive name substring
// when search is non-empty.
func (r *productRepository) List(ctx context.Context, search string) ([]model.Product, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	var rows pgx.Rows
	if search != "" {
		query := `
			SELECT id, name, price, category, stock, description, image
			FROM products
			WHERE name ILIKE '%' || $1 || '%'
			ORDER BY id
		`
		rows, err = conn.Query(ctx, query, search)
	} else {
		query := `
			SELECT id, name, price, category, stock, description, image
			FROM products
			ORDER BY id
		`
		rows, err = conn.Query(ctx, query)
	}
	if err != nil {
		r.logger.Error().Err(err).Str("search", search).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Update applies the supplied field mutations in one statement.
func (r *productRepository) Update(ctx context.Context, id int64, update model.ProductUpdate) error {
	if update.Empty() {
		return model.ErrNoUpdateFields
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	query, args := buildUpdateQuery(id, update)

	tag, err := conn.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Int64("product_id", id).Msg("product not found for update")
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes the product row with the given id.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Int64("product_id", id).Msg("product not found for deletion")
		return model.ErrProductNotFound
	}

	return nil
}

// scanProduct scans one product row. The image column is read through a raw
// driver value: a value that cannot be converted to bytes is logged and the
// product served with no image rather than failing the read.
func (r *productRepository) scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	var rawImage any

	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Stock, &p.Description, &rawImage)
	if err != nil {
		return nil, err
	}

	if rawImage != nil {
		image, ok := rawImage.([]byte)
		if !ok {
			r.logger.Warn().
				Int64("product_id", p.ID).
				Type("image_type", rawImage).
				Msg("image column holds non-binary value, serving product without image")
		} else {
			p.Image = image
		}
	}

	return &p, nil
}
