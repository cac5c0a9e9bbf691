package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	cerrors "github.com/abgdnv/storecatalog/internal/errors"
	"github.com/abgdnv/storecatalog/internal/store"
	"github.com/abgdnv/storecatalog/internal/store/db"
	"github.com/abgdnv/storecatalog/pkg/messaging"
	"github.com/abgdnv/storecatalog/pkg/messaging/events"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AssociationService manages the set of stores a product is sold in.
type AssociationService interface {
	// AddStoreToProduct attaches an existing store to an existing product.
	// The store is looked up before the product, so ErrStoreNotFound wins over ErrProductNotFound.
	// Adding a store that is already attached returns the product unchanged.
	AddStoreToProduct(ctx context.Context, productID, storeID uuid.UUID) (*ProductDto, error)

	// FindStoresFromProduct returns every store of the product.
	FindStoresFromProduct(ctx context.Context, productID uuid.UUID) ([]StoreDto, error)

	// FindStoreFromProduct returns one store of the product.
	// Returns ErrStoreNotAssociated if the store exists but is not attached to the product.
	FindStoreFromProduct(ctx context.Context, productID, storeID uuid.UUID) (*StoreDto, error)

	// UpdateStoresFromProduct replaces the complete store set of the product.
	// Stores are checked in the given order and nothing is written if one of them does not exist.
	UpdateStoresFromProduct(ctx context.Context, productID uuid.UUID, storeIDs []uuid.UUID) (*ProductDto, error)

	// DeleteStoreFromProduct detaches a store from the product.
	// Returns ErrStoreNotAssociated if the store is not attached to the product.
	DeleteStoreFromProduct(ctx context.Context, productID, storeID uuid.UUID) error
}

// AssociationSvc implements AssociationService.
// Mutations of the same product are serialised within the process.
type AssociationSvc struct {
	products         store.ProductStore
	stores           store.StoreStore
	publisher        messaging.Publisher
	locks            *keyedMutex
	mutationsCounter metric.Int64Counter
	now              func() time.Time
}

func NewAssociationService(products store.ProductStore, stores store.StoreStore, publisher messaging.Publisher) *AssociationSvc {
	meter := otel.Meter("catalog-service")
	mutationsCounter, err := meter.Int64Counter("product_store_mutations",
		metric.WithDescription("Total number of applied product/store association changes"))
	if err != nil {
		panic(fmt.Sprintf("failed to create product_store_mutations counter: %v", err))
	}
	return &AssociationSvc{
		products:         products,
		stores:           stores,
		publisher:        publisher,
		locks:            newKeyedMutex(),
		mutationsCounter: mutationsCounter,
		now:              time.Now,
	}
}

func (s *AssociationSvc) AddStoreToProduct(ctx context.Context, productID, storeID uuid.UUID) (*ProductDto, error) {
	unlock := s.locks.Lock(productID)
	defer unlock()

	found, err := s.stores.FindByID(ctx, storeID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch store by ID %s: %w", storeID, err)
	}
	product, err := s.products.FindByID(ctx, productID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", productID, err)
	}
	if containsStore(product.Stores, storeID) {
		return toProductDto(product), nil
	}

	product.Stores = append(product.Stores, found.Store)
	saved, err := s.products.Save(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to attach store %s to product %s: %w", storeID, productID, err)
	}

	s.mutationsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "attach")))
	s.publish(ctx, events.StoreAttachedEvent{ProductID: productID, StoreID: storeID, OccurredAt: s.now().UTC()})
	return toProductDto(saved), nil
}

func (s *AssociationSvc) FindStoresFromProduct(ctx context.Context, productID uuid.UUID) ([]StoreDto, error) {
	product, err := s.products.FindByID(ctx, productID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", productID, err)
	}
	return toProductDto(product).Stores, nil
}

func (s *AssociationSvc) FindStoreFromProduct(ctx context.Context, productID, storeID uuid.UUID) (*StoreDto, error) {
	if _, err := s.stores.FindByID(ctx, storeID, false); err != nil {
		return nil, fmt.Errorf("failed to fetch store by ID %s: %w", storeID, err)
	}
	product, err := s.products.FindByID(ctx, productID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", productID, err)
	}
	idx := slices.IndexFunc(product.Stores, func(st db.Store) bool { return st.ID == storeID })
	if idx < 0 {
		return nil, cerrors.ErrStoreNotAssociated
	}
	return toStoreDto(&product.Stores[idx]), nil
}

func (s *AssociationSvc) UpdateStoresFromProduct(ctx context.Context, productID uuid.UUID, storeIDs []uuid.UUID) (*ProductDto, error) {
	unlock := s.locks.Lock(productID)
	defer unlock()

	product, err := s.products.FindByID(ctx, productID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", productID, err)
	}
	stores := make([]db.Store, 0, len(storeIDs))
	for _, id := range storeIDs {
		found, err := s.stores.FindByID(ctx, id, false)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch store by ID %s: %w", id, err)
		}
		if !containsStore(stores, id) {
			stores = append(stores, found.Store)
		}
	}

	product.Stores = stores
	saved, err := s.products.Save(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to replace stores of product %s: %w", productID, err)
	}

	ids := make([]uuid.UUID, len(saved.Stores))
	for i, st := range saved.Stores {
		ids[i] = st.ID
	}
	s.mutationsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "replace")))
	s.publish(ctx, events.ProductStoresReplacedEvent{ProductID: productID, StoreIDs: ids, OccurredAt: s.now().UTC()})
	return toProductDto(saved), nil
}

func (s *AssociationSvc) DeleteStoreFromProduct(ctx context.Context, productID, storeID uuid.UUID) error {
	unlock := s.locks.Lock(productID)
	defer unlock()

	if _, err := s.stores.FindByID(ctx, storeID, false); err != nil {
		return fmt.Errorf("failed to fetch store by ID %s: %w", storeID, err)
	}
	product, err := s.products.FindByID(ctx, productID, true)
	if err != nil {
		return fmt.Errorf("failed to fetch product by ID %s: %w", productID, err)
	}
	if !containsStore(product.Stores, storeID) {
		return cerrors.ErrStoreNotAssociated
	}

	product.Stores = slices.DeleteFunc(product.Stores, func(st db.Store) bool { return st.ID == storeID })
	if _, err := s.products.Save(ctx, product); err != nil {
		return fmt.Errorf("failed to detach store %s from product %s: %w", storeID, productID, err)
	}

	s.mutationsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "detach")))
	s.publish(ctx, events.StoreDetachedEvent{ProductID: productID, StoreID: storeID, OccurredAt: s.now().UTC()})
	return nil
}

// publish sends the event; a broker failure never fails the operation that produced it.
func (s *AssociationSvc) publish(ctx context.Context, event messaging.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish association event", "subject", event.Subject(), "error", err)
	}
}

func containsStore(stores []db.Store, id uuid.UUID) bool {
	return slices.ContainsFunc(stores, func(st db.Store) bool { return st.ID == id })
}
