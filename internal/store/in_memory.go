package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	cerrors "github.com/abgdnv/storecatalog/internal/errors"
	"github.com/abgdnv/storecatalog/internal/store/db"
	"github.com/google/uuid"
)

// MemoryDB keeps products, stores and their associations in maps.
// Associations keep insertion order and are removed together with either side.
type MemoryDB struct {
	mu       sync.RWMutex
	products map[uuid.UUID]db.Product
	stores   map[uuid.UUID]db.Store
	edges    map[uuid.UUID][]uuid.UUID // product id -> store ids
}

// NewMemoryDB creates an empty in-memory database.
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		products: make(map[uuid.UUID]db.Product),
		stores:   make(map[uuid.UUID]db.Store),
		edges:    make(map[uuid.UUID][]uuid.UUID),
	}
}

// Products returns a ProductStore view of the database.
func (m *MemoryDB) Products() *InMemoryProductStore {
	return &InMemoryProductStore{m: m}
}

// Stores returns a StoreStore view of the database.
func (m *MemoryDB) Stores() *InMemoryStoreStore {
	return &InMemoryStoreStore{m: m}
}

var (
	_ ProductStore = (*InMemoryProductStore)(nil)
	_ StoreStore   = (*InMemoryStoreStore)(nil)
)

// InMemoryProductStore implements ProductStore on top of a MemoryDB.
type InMemoryProductStore struct {
	m *MemoryDB
}

func (s *InMemoryProductStore) FindByID(_ context.Context, id uuid.UUID, withStores bool) (*ProductRecord, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	product, ok := s.m.products[id]
	if !ok {
		return nil, cerrors.ErrProductNotFound
	}
	record := &ProductRecord{Product: product}
	if withStores {
		record.Stores = s.m.storesOf(id)
	}
	return record, nil
}

func (s *InMemoryProductStore) FindAll(_ context.Context, offset, limit int32) ([]ProductRecord, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	products := make([]db.Product, 0, len(s.m.products))
	for _, p := range s.m.products {
		products = append(products, p)
	}
	slices.SortFunc(products, func(a, b db.Product) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID.String(), b.ID.String()))
	})

	page := paginate(products, offset, limit)
	records := make([]ProductRecord, 0, len(page))
	for _, p := range page {
		records = append(records, ProductRecord{Product: p, Stores: s.m.storesOf(p.ID)})
	}
	return records, nil
}

func (s *InMemoryProductStore) Create(_ context.Context, params db.CreateProductParams) (*db.Product, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	product := db.Product{
		ID:       uuid.New(),
		Name:     params.Name,
		Price:    params.Price,
		Category: params.Category,
	}
	s.m.products[product.ID] = product
	return &product, nil
}

func (s *InMemoryProductStore) Update(_ context.Context, params db.UpdateProductParams) (*db.Product, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.products[params.ID]; !ok {
		return nil, cerrors.ErrProductNotFound
	}
	product := db.Product{
		ID:       params.ID,
		Name:     params.Name,
		Price:    params.Price,
		Category: params.Category,
	}
	s.m.products[product.ID] = product
	return &product, nil
}

// Save replaces the store set of the product atomically. Repeated store ids are stored once.
// The product fields in record are ignored.
func (s *InMemoryProductStore) Save(_ context.Context, record *ProductRecord) (*ProductRecord, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	product, ok := s.m.products[record.ID]
	if !ok {
		return nil, cerrors.ErrProductNotFound
	}
	ids := make([]uuid.UUID, 0, len(record.Stores))
	for _, st := range record.Stores {
		if _, ok := s.m.stores[st.ID]; !ok {
			return nil, cerrors.ErrStoreNotFound
		}
		if !slices.Contains(ids, st.ID) {
			ids = append(ids, st.ID)
		}
	}
	s.m.edges[record.ID] = ids
	return &ProductRecord{Product: product, Stores: s.m.storesOf(record.ID)}, nil
}

func (s *InMemoryProductStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.products[id]; !ok {
		return cerrors.ErrProductNotFound
	}
	delete(s.m.products, id)
	delete(s.m.edges, id)
	return nil
}

// InMemoryStoreStore implements StoreStore on top of a MemoryDB.
type InMemoryStoreStore struct {
	m *MemoryDB
}

func (s *InMemoryStoreStore) FindByID(_ context.Context, id uuid.UUID, withProducts bool) (*StoreRecord, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	st, ok := s.m.stores[id]
	if !ok {
		return nil, cerrors.ErrStoreNotFound
	}
	record := &StoreRecord{Store: st}
	if withProducts {
		record.Products = s.m.productsOf(id)
	}
	return record, nil
}

func (s *InMemoryStoreStore) FindAll(_ context.Context, offset, limit int32) ([]StoreRecord, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	stores := make([]db.Store, 0, len(s.m.stores))
	for _, st := range s.m.stores {
		stores = append(stores, st)
	}
	slices.SortFunc(stores, func(a, b db.Store) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID.String(), b.ID.String()))
	})

	page := paginate(stores, offset, limit)
	records := make([]StoreRecord, 0, len(page))
	for _, st := range page {
		records = append(records, StoreRecord{Store: st, Products: s.m.productsOf(st.ID)})
	}
	return records, nil
}

func (s *InMemoryStoreStore) Create(_ context.Context, params db.CreateStoreParams) (*db.Store, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	st := db.Store{
		ID:      uuid.New(),
		Name:    params.Name,
		City:    params.City,
		Address: params.Address,
	}
	s.m.stores[st.ID] = st
	return &st, nil
}

func (s *InMemoryStoreStore) Update(_ context.Context, params db.UpdateStoreParams) (*db.Store, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.stores[params.ID]; !ok {
		return nil, cerrors.ErrStoreNotFound
	}
	st := db.Store{
		ID:      params.ID,
		Name:    params.Name,
		City:    params.City,
		Address: params.Address,
	}
	s.m.stores[st.ID] = st
	return &st, nil
}

func (s *InMemoryStoreStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.stores[id]; !ok {
		return cerrors.ErrStoreNotFound
	}
	delete(s.m.stores, id)
	for productID, storeIDs := range s.m.edges {
		s.m.edges[productID] = slices.DeleteFunc(storeIDs, func(sid uuid.UUID) bool { return sid == id })
	}
	return nil
}

// Clear removes every store and every association.
func (s *InMemoryStoreStore) Clear(_ context.Context) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	clear(s.m.stores)
	clear(s.m.edges)
	return nil
}

// storesOf returns the stores of a product in association order. Callers hold the lock.
func (m *MemoryDB) storesOf(productID uuid.UUID) []db.Store {
	ids := m.edges[productID]
	stores := make([]db.Store, 0, len(ids))
	for _, id := range ids {
		stores = append(stores, m.stores[id])
	}
	return stores
}

// productsOf returns the products associated with a store ordered by name. Callers hold the lock.
func (m *MemoryDB) productsOf(storeID uuid.UUID) []db.Product {
	products := []db.Product{}
	for productID, ids := range m.edges {
		if slices.Contains(ids, storeID) {
			products = append(products, m.products[productID])
		}
	}
	slices.SortFunc(products, func(a, b db.Product) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID.String(), b.ID.String()))
	})
	return products
}

func paginate[T any](items []T, offset, limit int32) []T {
	if offset < 0 {
		offset = 0
	}
	if int(offset) >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && int(offset)+int(limit) < end {
		end = int(offset) + int(limit)
	}
	return items[offset:end]
}
