package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/abgdnv/storecatalog/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// toJSON is a helper function to convert a struct to JSON string
func toJSON(t *testing.T, v any) string {
	t.Helper()
	bytes, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal to JSON: %v", err)
	}
	return string(bytes)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type mockAssociationService struct {
	mock.Mock
}

func (m *mockAssociationService) AddStoreToProduct(ctx context.Context, productID, storeID uuid.UUID) (*service.ProductDto, error) {
	args := m.Called(ctx, productID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProductDto), args.Error(1)
}

func (m *mockAssociationService) FindStoresFromProduct(ctx context.Context, productID uuid.UUID) ([]service.StoreDto, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.StoreDto), args.Error(1)
}

func (m *mockAssociationService) FindStoreFromProduct(ctx context.Context, productID, storeID uuid.UUID) (*service.StoreDto, error) {
	args := m.Called(ctx, productID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StoreDto), args.Error(1)
}

func (m *mockAssociationService) UpdateStoresFromProduct(ctx context.Context, productID uuid.UUID, storeIDs []uuid.UUID) (*service.ProductDto, error) {
	args := m.Called(ctx, productID, storeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProductDto), args.Error(1)
}

func (m *mockAssociationService) DeleteStoreFromProduct(ctx context.Context, productID, storeID uuid.UUID) error {
	args := m.Called(ctx, productID, storeID)
	return args.Error(0)
}

// mockProductService is a mock implementation of the ProductService interface
type mockProductService struct {
	product  *service.ProductDto
	products []service.ProductDto
	error    error
	// update is the last DTO passed to Update
	update *service.ProductUpdateDto
}

func (m *mockProductService) FindByID(_ context.Context, _ uuid.UUID) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) FindAll(_ context.Context, _, _ int32) ([]service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.products, nil
}

func (m *mockProductService) Create(_ context.Context, _ service.ProductCreateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) Update(_ context.Context, _ uuid.UUID, dto service.ProductUpdateDto) (*service.ProductDto, error) {
	m.update = &dto
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) DeleteByID(_ context.Context, _ uuid.UUID) error {
	return m.error
}
