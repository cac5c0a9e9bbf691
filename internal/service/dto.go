package service

import (
	"github.com/abgdnv/storecatalog/internal/store"
	"github.com/abgdnv/storecatalog/internal/store/db"
	"github.com/google/uuid"
)

// Product categories accepted on create and update.
const (
	CategoryPerishable    = "Perishable"
	CategoryNonPerishable = "Non-perishable"
)

// ProductDto represents a product together with the stores it is sold in.
type ProductDto struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Price    int64      `json:"price"`
	Category string     `json:"category"`
	Stores   []StoreDto `json:"stores"`
}

// ProductCreateDto represents the data transfer object for creating a product.
// Category is checked by the service so the caller gets the business error message.
type ProductCreateDto struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Price    int64  `json:"price"    validate:"min=0"`
	Category string `json:"category" validate:"required"`
}

// ProductUpdateDto carries the fields to change on a product. Nil fields keep their stored value.
type ProductUpdateDto struct {
	Name     *string `json:"name"     validate:"omitnil,min=1,max=100"`
	Price    *int64  `json:"price"    validate:"omitnil,min=0"`
	Category *string `json:"category"`
}

// ProductSummaryDto is a product listed inside a store, without its own stores.
type ProductSummaryDto struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    int64     `json:"price"`
	Category string    `json:"category"`
}

// StoreDto represents a store. Products is only filled when the store is read on its own.
type StoreDto struct {
	ID       uuid.UUID           `json:"id"`
	Name     string              `json:"name"`
	City     string              `json:"city"`
	Address  string              `json:"address"`
	Products []ProductSummaryDto `json:"products,omitempty"`
}

// StoreCreateDto represents the data transfer object for creating or updating a store.
type StoreCreateDto struct {
	Name    string `json:"name"    validate:"required,max=100"`
	City    string `json:"city"    validate:"required"`
	Address string `json:"address" validate:"required,max=255"`
}

// StoreRefDto references an existing store in the body of a store set replacement.
type StoreRefDto struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

func toProductDto(record *store.ProductRecord) *ProductDto {
	stores := make([]StoreDto, len(record.Stores))
	for i, s := range record.Stores {
		stores[i] = *toStoreDto(&s)
	}
	return &ProductDto{
		ID:       record.ID,
		Name:     record.Name,
		Price:    record.Price,
		Category: record.Category,
		Stores:   stores,
	}
}

func toStoreDto(s *db.Store) *StoreDto {
	return &StoreDto{
		ID:      s.ID,
		Name:    s.Name,
		City:    s.City,
		Address: s.Address,
	}
}

func toStoreRecordDto(record *store.StoreRecord) *StoreDto {
	dto := toStoreDto(&record.Store)
	dto.Products = make([]ProductSummaryDto, len(record.Products))
	for i, p := range record.Products {
		dto.Products[i] = ProductSummaryDto{ID: p.ID, Name: p.Name, Price: p.Price, Category: p.Category}
	}
	return dto
}
