package service

import (
	"context"
	"errors"
	"testing"

	"catalogo/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) (int64, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, search string) ([]model.Product, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id int64, update model.ProductUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func validCreateInput() model.CreateProductInput {
	return model.CreateProductInput{
		Name:        "Red Mug",
		Price:       "24.90",
		Category:    "Kitchenware",
		Stock:       "12",
		Description: "Ceramic mug",
		Image:       []byte{0x01, 0x02},
	}
}

func TestProductService_Create(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("success echoes stored fields with image marker", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewProductService(mockRepo, logger)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(p *model.Product) bool {
			return p.Name == "Red Mug" &&
				p.Price == 24.90 &&
				p.Category == "Kitchenware" &&
				p.Stock == 12 &&
				p.Description == "Ceramic mug" &&
				len(p.Image) == 2
		})).Return(int64(42), nil)

		created, err := svc.Create(ctx, validCreateInput())
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, int64(42), created.ID)
		assert.Equal(t, "Red Mug", created.Name)
		assert.Equal(t, 24.90, created.Price)
		assert.Equal(t, 12, created.Stock)
		require.NotNil(t, created.Image)
		assert.Equal(t, model.ImageStoredMarker, *created.Image)

		mockRepo.AssertExpectations(t)
	})

	t.Run("success without image leaves image null", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewProductService(mockRepo, logger)

		input := validCreateInput()
		input.Image = nil
		mockRepo.On("Create", ctx, mock.Anything).Return(int64(43), nil)

		created, err := svc.Create(ctx, input)
		require.NoError(t, err)
		assert.Nil(t, created.Image)
	})

	t.Run("missing fields named in order", func(t *testing.T) {
		tests := []struct {
			field  string
			mutate func(in *model.CreateProductInput)
		}{
			{"name", func(in *model.CreateProductInput) { in.Name = "" }},
			{"price", func(in *model.CreateProductInput) { in.Price = "" }},
			{"category", func(in *model.CreateProductInput) { in.Category = "" }},
			{"stock", func(in *model.CreateProductInput) { in.Stock = "" }},
			{"description", func(in *model.CreateProductInput) { in.Description = "" }},
		}

		for _, tt := range tests {
			t.Run(tt.field, func(t *testing.T) {
				mockRepo := new(MockProductRepository)
				svc := NewProductService(mockRepo, logger)

				input := validCreateInput()
				tt.mutate(&input)

				created, err := svc.Create(ctx, input)
				require.Error(t, err)
				assert.Nil(t, created)

				var domainErr *model.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
				assert.Contains(t, domainErr.Message, "'"+tt.field+"'")

				mockRepo.AssertNotCalled(t, "Create")
			})
		}
	})

	t.Run("invalid numeric input", func(t *testing.T) {
		tests := []struct {
			name        string
			mutate      func(in *model.CreateProductInput)
			expectedErr *model.DomainError
		}{
			{"non-numeric price", func(in *model.CreateProductInput) { in.Price = "abc" }, model.ErrInvalidPrice},
			{"negative price", func(in *model.CreateProductInput) { in.Price = "-5" }, model.ErrInvalidPrice},
			{"zero price", func(in *model.CreateProductInput) { in.Price = "0" }, model.ErrInvalidPrice},
			{"NaN price", func(in *model.CreateProductInput) { in.Price = "NaN" }, model.ErrInvalidPrice},
			{"infinite price", func(in *model.CreateProductInput) { in.Price = "+Inf" }, model.ErrInvalidPrice},
			{"non-numeric stock", func(in *model.CreateProductInput) { in.Stock = "many" }, model.ErrInvalidStock},
			{"negative stock", func(in *model.CreateProductInput) { in.Stock = "-1" }, model.ErrInvalidStock},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockRepo := new(MockProductRepository)
				svc := NewProductService(mockRepo, logger)

				input := validCreateInput()
				tt.mutate(&input)

				_, err := svc.Create(ctx, input)
				assert.ErrorIs(t, err, tt.expectedErr)
				mockRepo.AssertNotCalled(t, "Create")
			})
		}
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewProductService(mockRepo, logger)

		mockRepo.On("Create", ctx, mock.Anything).Return(int64(0), errors.New("database error"))

		_, err := svc.Create(ctx, validCreateInput())
		require.Error(t, err)
	})
}

func TestProductService_Update(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("empty patch rejected", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewProductService(mockRepo, logger)

		err := svc.Update(ctx, 1, model.ProductPatch{})
		assert.ErrorIs(t, err, model.ErrNoUpdateFields)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("invalid price rejects whole call before mutation", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewProductService(mockRepo, logger)

		mockRepo.On("GetByID", ctx, int64(1)).Return(&model.Product{ID: 1}, nil)

		err := svc.Update(ctx, 1, model.ProductPatch{
			Name:  strPtr("Also Valid"),
			Price: strPtr("abc"),
		})
		assert.ErrorIs(t, err, model.ErrInvalidPrice)
		// No mutation at all, including the already-valid name.
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("valid patch converts to typed update", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewProductService(mockRepo, logger)

		mockRepo.On("GetByID", ctx, int64(5)).Return(&model.Product{ID: 5}, nil)
		mockRepo.On("Update", ctx, int64(5), mock.MatchedBy(func(u model.ProductUpdate) bool {
			return u.Name != nil && *u.Name == "Mug" &&
				u.Price != nil && *u.Price == 19.90 &&
				u.Stock != nil && *u.Stock == 4 &&
				u.Category == nil && u.Description == nil && u.Image == nil
		})).Return(nil)

		err := svc.Update(ctx, 5, model.ProductPatch{
			Name:  strPtr("Mug"),
			Price: strPtr("19.90"),
			Stock: strPtr("4"),
		})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewProductService(mockRepo, logger)

		mockRepo.On("GetByID", ctx, int64(999999)).Return(nil, nil)

		err := svc.Update(ctx, 999999, model.ProductPatch{Name: strPtr("ghost")})
		assert.ErrorIs(t, err, model.ErrProductNotFound)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("unknown id is not found even with an invalid field", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewProductService(mockRepo, logger)

		mockRepo.On("GetByID", ctx, int64(999999)).Return(nil, nil)

		err := svc.Update(ctx, 999999, model.ProductPatch{Price: strPtr("abc")})
		assert.ErrorIs(t, err, model.ErrProductNotFound)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("row vanishing between check and update is still not found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewProductService(mockRepo, logger)

		mockRepo.On("GetByID", ctx, int64(7)).Return(&model.Product{ID: 7}, nil)
		mockRepo.On("Update", ctx, int64(7), mock.Anything).Return(model.ErrProductNotFound)

		err := svc.Update(ctx, 7, model.ProductPatch{Name: strPtr("gone")})
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})
}

func TestProductService_Delete(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewProductService(mockRepo, logger)

		mockRepo.On("Delete", ctx, int64(3)).Return(nil)
		require.NoError(t, svc.Delete(ctx, 3))
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewProductService(mockRepo, logger)

		mockRepo.On("Delete", ctx, int64(3)).Return(model.ErrProductNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, 3), model.ErrProductNotFound)
	})
}

func TestProductService_List(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("encodes images as base64", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewProductService(mockRepo, logger)

		mockRepo.On("List", ctx, "").Return([]model.Product{
			{ID: 1, Name: "A", Price: 1, Category: "c", Stock: 1, Description: "d", Image: []byte{0x01}},
			{ID: 2, Name: "B", Price: 2, Category: "c", Stock: 2, Description: "d"},
		}, nil)

		products, err := svc.List(ctx, "")
		require.NoError(t, err)
		require.Len(t, products, 2)

		require.NotNil(t, products[0].Image)
		assert.Equal(t, "AQ==", *products[0].Image)
		assert.Nil(t, products[1].Image)
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewProductService(mockRepo, logger)

		mockRepo.On("List", ctx, "laptop").Return([]model.Product(nil), nil)

		products, err := svc.List(ctx, "laptop")
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewProductService(mockRepo, logger)

		mockRepo.On("List", ctx, "").Return(nil, errors.New("database error"))

		_, err := svc.List(ctx, "")
		require.Error(t, err)
	})
}

func TestProductService_GetByID(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewProductService(mockRepo, logger)

		mockRepo.On("GetByID", ctx, int64(7)).Return(&model.Product{
			ID: 7, Name: "Red Mug", Price: 24.90, Category: "Kitchenware",
			Stock: 12, Description: "d", Image: []byte("img"),
		}, nil)

		resp, err := svc.GetByID(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, int64(7), resp.ID)
		require.NotNil(t, resp.Image)
		assert.Equal(t, "aW1n", *resp.Image)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		svc := NewProductService(mockRepo, logger)

		mockRepo.On("GetByID", ctx, int64(999999)).Return(nil, nil)

		resp, err := svc.GetByID(ctx, 999999)
		assert.ErrorIs(t, err, model.ErrProductNotFound)
		assert.Nil(t, resp)
	})
}
