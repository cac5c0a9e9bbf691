package store

import (
	"context"
	"errors"
	"fmt"

	cerrors "github.com/abgdnv/storecatalog/internal/errors"
	"github.com/abgdnv/storecatalog/internal/store/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ ProductStore = (*PgProductStore)(nil)

// PgProductStore implements ProductStore using PostgreSQL as the data store.
type PgProductStore struct {
	db Pool
	q  *db.Queries
}

// NewPgProductStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgProductStore(pool Pool) *PgProductStore {
	return &PgProductStore{
		db: pool,
		q:  db.New(pool),
	}
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgProductStore) FindByID(ctx context.Context, id uuid.UUID, withStores bool) (*ProductRecord, error) {
	product, err := p.q.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cerrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	record := &ProductRecord{Product: product}
	if !withStores {
		return record, nil
	}
	record.Stores, err = p.q.FindStoresByProductID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find stores of product: %w", err)
	}
	return record, nil
}

// FindAll retrieves a page of products ordered by name, each with its stores.
func (p *PgProductStore) FindAll(ctx context.Context, offset, limit int32) ([]ProductRecord, error) {
	products, err := p.q.FindAllProducts(ctx, db.FindAllProductsParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	records := make([]ProductRecord, 0, len(products))
	for _, product := range products {
		stores, err := p.q.FindStoresByProductID(ctx, product.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to find stores of product %s: %w", product.ID, err)
		}
		records = append(records, ProductRecord{Product: product, Stores: stores})
	}
	return records, nil
}

// Create adds a new product to the system.
func (p *PgProductStore) Create(ctx context.Context, params db.CreateProductParams) (*db.Product, error) {
	product, err := p.q.CreateProduct(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// Update modifies an existing product's details.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgProductStore) Update(ctx context.Context, params db.UpdateProductParams) (*db.Product, error) {
	product, err := p.q.UpdateProduct(ctx, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cerrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

// Save rewrites the join rows of the product in one transaction. The product row is locked for the
// duration of the transaction but its fields are not written; the returned record carries the row as stored.
func (p *PgProductStore) Save(ctx context.Context, record *ProductRecord) (*ProductRecord, error) {
	var saved *ProductRecord

	txErr := withTransaction(ctx, p.db, p.q, func(qtx *db.Queries) error {
		product, err := qtx.LockProductByID(ctx, record.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return cerrors.ErrProductNotFound
			}
			return fmt.Errorf("failed to lock product: %w", err)
		}
		if err := qtx.DeleteProductStores(ctx, record.ID); err != nil {
			return fmt.Errorf("failed to clear product stores: %w", err)
		}
		for _, s := range record.Stores {
			err := qtx.CreateProductStore(ctx, db.CreateProductStoreParams{ProductID: record.ID, StoreID: s.ID})
			if err != nil {
				if isForeignKeyViolation(err) {
					return cerrors.ErrStoreNotFound
				}
				return fmt.Errorf("failed to associate store %s: %w", s.ID, err)
			}
		}
		stores, err := qtx.FindStoresByProductID(ctx, record.ID)
		if err != nil {
			return fmt.Errorf("failed to find stores of product: %w", err)
		}
		saved = &ProductRecord{Product: product, Stores: stores}
		return nil
	})

	if txErr != nil {
		return nil, txErr
	}
	return saved, nil
}

// DeleteByID removes a product by its unique identifier. Join rows are removed by the cascade.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgProductStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	count, err := p.q.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if count == 0 {
		return cerrors.ErrProductNotFound
	}
	return nil
}
