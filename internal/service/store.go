package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	cerrors "github.com/abgdnv/storecatalog/internal/errors"
	"github.com/abgdnv/storecatalog/internal/store"
	"github.com/abgdnv/storecatalog/internal/store/db"
	"github.com/google/uuid"
)

// cityLength is the exact number of characters of a store's city code.
const cityLength = 3

// StoreService defines the methods for managing stores.
type StoreService interface {
	// FindByID retrieves a single store with the products sold in it.
	// Returns ErrStoreNotFound if no store exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*StoreDto, error)

	// FindAll returns a page of stores with their products.
	FindAll(ctx context.Context, offset, limit int32) ([]StoreDto, error)

	// Create adds a new store.
	// Returns ErrInvalidCity unless the city has exactly three characters.
	Create(ctx context.Context, store StoreCreateDto) (*StoreDto, error)

	// Update replaces the store's fields.
	// Returns ErrStoreNotFound before checking the city.
	Update(ctx context.Context, id uuid.UUID, store StoreCreateDto) (*StoreDto, error)

	// DeleteByID removes a store and detaches it from every product.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// StoreSvc implements StoreService.
type StoreSvc struct {
	repository store.StoreStore
}

func NewStoreService(repo store.StoreStore) *StoreSvc {
	return &StoreSvc{repository: repo}
}

func (s *StoreSvc) FindByID(ctx context.Context, id uuid.UUID) (*StoreDto, error) {
	found, err := s.repository.FindByID(ctx, id, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch store by ID %s: %w", id, err)
	}
	return toStoreRecordDto(found), nil
}

func (s *StoreSvc) FindAll(ctx context.Context, offset, limit int32) ([]StoreDto, error) {
	stores, err := s.repository.FindAll(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stores: %w", err)
	}
	dtos := make([]StoreDto, len(stores))
	for i, item := range stores {
		dtos[i] = *toStoreRecordDto(&item)
	}
	return dtos, nil
}

func (s *StoreSvc) Create(ctx context.Context, dto StoreCreateDto) (*StoreDto, error) {
	if utf8.RuneCountInString(dto.City) != cityLength {
		return nil, cerrors.ErrInvalidCity
	}
	created, err := s.repository.Create(ctx, db.CreateStoreParams{
		Name:    dto.Name,
		City:    dto.City,
		Address: dto.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	return toStoreDto(created), nil
}

func (s *StoreSvc) Update(ctx context.Context, id uuid.UUID, dto StoreCreateDto) (*StoreDto, error) {
	existing, err := s.repository.FindByID(ctx, id, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch store by ID %s: %w", id, err)
	}
	if utf8.RuneCountInString(dto.City) != cityLength {
		return nil, cerrors.ErrInvalidCity
	}
	updated, err := s.repository.Update(ctx, db.UpdateStoreParams{
		ID:      id,
		Name:    dto.Name,
		City:    dto.City,
		Address: dto.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update store with ID %s: %w", id, err)
	}
	return toStoreRecordDto(&store.StoreRecord{Store: *updated, Products: existing.Products}), nil
}

func (s *StoreSvc) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete store with ID %s: %w", id, err)
	}
	return nil
}
