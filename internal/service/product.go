// Package service provides the catalog business logic: product and store management
// and the association between them.
package service

import (
	"context"
	"fmt"

	cerrors "github.com/abgdnv/storecatalog/internal/errors"
	"github.com/abgdnv/storecatalog/internal/store"
	"github.com/abgdnv/storecatalog/internal/store/db"
	"github.com/google/uuid"
)

// ProductService defines the methods for managing products.
type ProductService interface {
	// FindByID retrieves a single product with its stores.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error)

	// FindAll returns a page of products with their stores.
	FindAll(ctx context.Context, offset, limit int32) ([]ProductDto, error)

	// Create adds a new product without stores.
	// Returns ErrInvalidCategory if the category is not one of the known values.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update merges the given fields onto the stored product, leaving its stores untouched.
	// Returns ErrProductNotFound before checking the category; the category is only checked when given.
	Update(ctx context.Context, id uuid.UUID, product ProductUpdateDto) (*ProductDto, error)

	// DeleteByID removes a product and its associations.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// ProductSvc implements ProductService.
type ProductSvc struct {
	repository store.ProductStore
}

func NewProductService(repo store.ProductStore) *ProductSvc {
	return &ProductSvc{repository: repo}
}

func (s *ProductSvc) FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	return toProductDto(product), nil
}

func (s *ProductSvc) FindAll(ctx context.Context, offset, limit int32) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	dtos := make([]ProductDto, len(products))
	for i, item := range products {
		dtos[i] = *toProductDto(&item)
	}
	return dtos, nil
}

func (s *ProductSvc) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	if !validCategory(product.Category) {
		return nil, cerrors.ErrInvalidCategory
	}
	created, err := s.repository.Create(ctx, db.CreateProductParams{
		Name:     product.Name,
		Price:    product.Price,
		Category: product.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return toProductDto(&store.ProductRecord{Product: *created}), nil
}

func (s *ProductSvc) Update(ctx context.Context, id uuid.UUID, product ProductUpdateDto) (*ProductDto, error) {
	existing, err := s.repository.FindByID(ctx, id, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	if product.Category != nil && !validCategory(*product.Category) {
		return nil, cerrors.ErrInvalidCategory
	}

	params := db.UpdateProductParams{
		ID:       id,
		Name:     existing.Name,
		Price:    existing.Price,
		Category: existing.Category,
	}
	if product.Name != nil {
		params.Name = *product.Name
	}
	if product.Price != nil {
		params.Price = *product.Price
	}
	if product.Category != nil {
		params.Category = *product.Category
	}

	updated, err := s.repository.Update(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}
	return toProductDto(&store.ProductRecord{Product: *updated, Stores: existing.Stores}), nil
}

func (s *ProductSvc) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product with ID %s: %w", id, err)
	}
	return nil
}

func validCategory(category string) bool {
	return category == CategoryPerishable || category == CategoryNonPerishable
}
