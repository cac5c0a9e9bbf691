// Package store provides the persistence contracts for products, stores and their associations.
package store

import (
	"context"

	"github.com/abgdnv/storecatalog/internal/store/db"
	"github.com/google/uuid"
)

// ProductRecord is a product row together with the stores associated with it.
// Stores is nil when the association was not loaded.
type ProductRecord struct {
	db.Product
	Stores []db.Store
}

// StoreRecord is a store row together with the products associated with it.
// Products is nil when the association was not loaded.
type StoreRecord struct {
	db.Store
	Products []db.Product
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier, loading its stores when withStores is set.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID, withStores bool) (*ProductRecord, error)

	// FindAll returns a page of products with their stores.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context, offset, limit int32) ([]ProductRecord, error)

	// Create adds a new product without stores.
	Create(ctx context.Context, params db.CreateProductParams) (*db.Product, error)

	// Update modifies the product's own fields; the associated stores are left untouched.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, params db.UpdateProductParams) (*db.Product, error)

	// Save replaces the complete store set of the product with product.Stores. Only the ID of product is read;
	// name, price and category are left as stored so concurrent field updates are never reverted.
	// Returns ErrProductNotFound if the product does not exist and ErrStoreNotFound if one of the stores does not.
	Save(ctx context.Context, product *ProductRecord) (*ProductRecord, error)

	// DeleteByID removes a product and its associations.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// StoreStore is an interface for the storage of Store entities.
type StoreStore interface {
	// FindByID retrieves a single store, loading its products when withProducts is set.
	// Returns ErrStoreNotFound if no store exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID, withProducts bool) (*StoreRecord, error)

	// FindAll returns a page of stores with their products.
	FindAll(ctx context.Context, offset, limit int32) ([]StoreRecord, error)

	// Create adds a new store.
	Create(ctx context.Context, params db.CreateStoreParams) (*db.Store, error)

	// Update modifies an existing store.
	// Returns ErrStoreNotFound if no store exists with the given ID.
	Update(ctx context.Context, params db.UpdateStoreParams) (*db.Store, error)

	// DeleteByID removes a store and its associations.
	// Returns ErrStoreNotFound if no store exists with the given ID.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
