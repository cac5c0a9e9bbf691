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

var _ StoreStore = (*PgStoreStore)(nil)

// PgStoreStore implements StoreStore using PostgreSQL as the data store.
type PgStoreStore struct {
	q *db.Queries
}

func NewPgStoreStore(pool Pool) *PgStoreStore {
	return &PgStoreStore{q: db.New(pool)}
}

func (p *PgStoreStore) FindByID(ctx context.Context, id uuid.UUID, withProducts bool) (*StoreRecord, error) {
	s, err := p.q.FindStoreByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cerrors.ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to find store by ID: %w", err)
	}
	record := &StoreRecord{Store: s}
	if !withProducts {
		return record, nil
	}
	record.Products, err = p.q.FindProductsByStoreID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find products of store: %w", err)
	}
	return record, nil
}

func (p *PgStoreStore) FindAll(ctx context.Context, offset, limit int32) ([]StoreRecord, error) {
	stores, err := p.q.FindAllStores(ctx, db.FindAllStoresParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("failed to find all stores: %w", err)
	}
	records := make([]StoreRecord, 0, len(stores))
	for _, s := range stores {
		products, err := p.q.FindProductsByStoreID(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to find products of store %s: %w", s.ID, err)
		}
		records = append(records, StoreRecord{Store: s, Products: products})
	}
	return records, nil
}

func (p *PgStoreStore) Create(ctx context.Context, params db.CreateStoreParams) (*db.Store, error) {
	s, err := p.q.CreateStore(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	return &s, nil
}

func (p *PgStoreStore) Update(ctx context.Context, params db.UpdateStoreParams) (*db.Store, error) {
	s, err := p.q.UpdateStore(ctx, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cerrors.ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to update store: %w", err)
	}
	return &s, nil
}

func (p *PgStoreStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	count, err := p.q.DeleteStore(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete store by ID: %w", err)
	}
	if count == 0 {
		return cerrors.ErrStoreNotFound
	}
	return nil
}

// Clear removes every store and, through the cascade, every association. Used by tests.
func (p *PgStoreStore) Clear(ctx context.Context) error {
	if err := p.q.DeleteAllStores(ctx); err != nil {
		return fmt.Errorf("failed to clear stores: %w", err)
	}
	return nil
}
