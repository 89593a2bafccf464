package service

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"catalogo/internal/model"
	"catalogo/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Create validates the raw form input and inserts a new product.
func (s *productService) Create(ctx context.Context, input model.CreateProductInput) (*model.CreatedProduct, error) {
	// Mandatory fields are checked in a fixed order so the error always
	// names the first missing one.
	required := []struct {
		field string
		value string
	}{
		{"name", input.Name},
		{"price", input.Price},
		{"category", input.Category},
		{"stock", input.Stock},
		{"description", input.Description},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, model.NewMissingFieldError(r.field)
		}
	}

	price, err := parsePrice(input.Price)
	if err != nil {
		return nil, err
	}

	stock, err := parseStock(input.Stock)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        input.Name,
		Price:       price,
		Category:    input.Category,
		Stock:       stock,
		Description: input.Description,
		Image:       input.Image,
	}

	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Int64("product_id", id).Str("name", input.Name).Msg("product created")

	created := &model.CreatedProduct{
		ID:          id,
		Name:        product.Name,
		Price:       product.Price,
		Category:    product.Category,
		Stock:       product.Stock,
		Description: product.Description,
	}
	if len(input.Image) > 0 {
		marker := model.ImageStoredMarker
		created.Image = &marker
	}

	return created, nil
}

// Update validates every supplied patch field before any mutation is built,
// so an invalid price rejects the whole call with nothing persisted. A
// missing product outranks any field problem: updating an unknown id is
// not-found no matter what the patch carries.
func (s *productService) Update(ctx context.Context, id int64, patch model.ProductPatch) error {
	if patch.Empty() {
		return model.ErrNoUpdateFields
	}

	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to load product for update")
		return fmt.Errorf("failed to load product for update: %w", err)
	}
	if existing == nil {
		return model.ErrProductNotFound
	}

	var update model.ProductUpdate

	update.Name = patch.Name
	update.Category = patch.Category
	update.Description = patch.Description
	update.Image = patch.Image

	if patch.Price != nil {
		price, err := parsePrice(*patch.Price)
		if err != nil {
			return err
		}
		update.Price = &price
	}

	if patch.Stock != nil {
		stock, err := parseStock(*patch.Stock)
		if err != nil {
			return err
		}
		update.Stock = &stock
	}

	if err := s.productRepo.Update(ctx, id, update); err != nil {
		if err == model.ErrProductNotFound {
			return err
		}
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")
	return nil
}

// Delete removes a product by id.
func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if err == model.ErrProductNotFound {
			return err
		}
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

// List retrieves products in transport shape.
func (s *productService) List(ctx context.Context, search string) ([]model.ProductResponse, error) {
	products, err := s.productRepo.List(ctx, search)
	if err != nil {
		s.logger.Error().Err(err).Str("search", search).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	responses := make([]model.ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, p.Response())
	}

	s.logger.Debug().Int("count", len(responses)).Str("search", search).Msg("retrieved products")
	return responses, nil
}

// GetByID retrieves a single product in transport shape.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		return nil, model.ErrProductNotFound
	}

	resp := product.Response()
	return &resp, nil
}

// parsePrice parses a price form value; it must be a positive finite
// number. ParseFloat accepts "NaN" and "Inf", which a price never is.
func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, model.ErrInvalidPrice
	}
	return price, nil
}

// parseStock parses a stock form value; it must be a non-negative integer.
func parseStock(raw string) (int, error) {
	stock, err := strconv.Atoi(raw)
	if err != nil || stock < 0 {
		return 0, model.ErrInvalidStock
	}
	return stock, nil
}
