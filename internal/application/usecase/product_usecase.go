package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EddyKilonzo/shopie/internal/application/dto"
	"github.com/EddyKilonzo/shopie/internal/domain"
	"github.com/EddyKilonzo/shopie/internal/domain/entity"
	"github.com/EddyKilonzo/shopie/internal/domain/repository"
)

// ProductUseCase catalog CRUD. Stock is seeded at creation and afterwards only
// moves through cart reservations; Update deliberately cannot touch it.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create registers a new catalog product.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.LessThan(decimal.Zero) || in.StockQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		ImageURL:      in.ImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// List returns catalog products with pagination.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponses(products), nil
}

// GetByID returns one product.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return dto.ToProductResponse(product), nil
}

// Update modifies name, description, price and image. Stock is out of reach here.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.ImageURL = in.ImageURL
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Delete removes a product from the catalog. Existing cart and order lines
// keep their snapshots.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.productRepo.Delete(ctx, id)
}
