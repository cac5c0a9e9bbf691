package rest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cerrors "github.com/abgdnv/storecatalog/internal/errors"
	"github.com/abgdnv/storecatalog/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_ProductAPI_FindByID(t *testing.T) {
	mockID, _ := uuid.Parse("123e4567-e89b-12d3-a456-426614174000")
	product := &service.ProductDto{ID: mockID, Name: "Milk", Price: 250, Category: "Perishable", Stores: []service.StoreDto{}}
	testCases := []struct {
		name         string
		mockService  *mockProductService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product found",
			mockService:  &mockProductService{product: product},
			productID:    mockID.String(),
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, product),
		},
		{
			name:         "Error - product not found",
			mockService:  &mockProductService{error: cerrors.ErrProductNotFound},
			productID:    mockID.String(),
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "no product with that id"}),
		},
		{
			name:         "Error - internal",
			mockService:  &mockProductService{error: errors.New("boom")},
			productID:    mockID.String(),
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to retrieve product"}),
		},
		{
			name:         "Error - invalid ID",
			mockService:  &mockProductService{},
			productID:    "invalid-uuid",
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid ID: invalid-uuid"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			handler := NewHandler(tc.mockService, nil, nil, discardLogger())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+tc.productID, nil)
			req.SetPathValue("productId", tc.productID)
			rr := httptest.NewRecorder()

			// when
			handler.FindProductByID(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_FindAll(t *testing.T) {
	products := []service.ProductDto{{ID: uuid.New(), Name: "Milk", Category: "Perishable", Stores: []service.StoreDto{}}}
	testCases := []struct {
		name         string
		mockService  *mockProductService
		query        string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - default page",
			mockService:  &mockProductService{products: products},
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, products),
		},
		{
			name:         "Error - invalid limit",
			mockService:  &mockProductService{},
			query:        "?limit=-5",
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid limit number: -5"}),
		},
		{
			name:         "Error - storage failure",
			mockService:  &mockProductService{error: errors.New("db down")},
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to fetch products"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewHandler(tc.mockService, nil, nil, discardLogger())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products"+tc.query, nil)
			rr := httptest.NewRecorder()

			handler.FindAllProducts(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_Create(t *testing.T) {
	created := &service.ProductDto{ID: uuid.New(), Name: "Milk", Price: 250, Category: "Perishable", Stores: []service.StoreDto{}}
	testCases := []struct {
		name         string
		mockService  *mockProductService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success",
			mockService:  &mockProductService{product: created},
			body:         `{"name":"Milk","price":250,"category":"Perishable"}`,
			expectedCode: http.StatusCreated,
			expectedBody: toJSON(t, created),
		},
		{
			name:         "Error - invalid category",
			mockService:  &mockProductService{error: cerrors.ErrInvalidCategory},
			body:         `{"name":"Milk","price":250,"category":"Frozen"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "category must be one of: Perishable, Non-perishable"}),
		},
		{
			name:         "Error - missing name",
			mockService:  &mockProductService{},
			body:         `{"price":250,"category":"Perishable"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors":{"Name":"failed on rule: required"}}`,
		},
		{
			name:         "Error - negative price",
			mockService:  &mockProductService{},
			body:         `{"name":"Milk","price":-1,"category":"Perishable"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors":{"Price":"failed on rule: min"}}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewHandler(tc.mockService, nil, nil, discardLogger())
			req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			handler.CreateProduct(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_Update(t *testing.T) {
	id := uuid.New()
	product := &service.ProductDto{ID: id, Name: "Oat milk", Price: 250, Category: "Perishable", Stores: []service.StoreDto{}}
	testCases := []struct {
		name          string
		mockService   *mockProductService
		body          string
		expectedCode  int
		expectedName  *string
		expectedPrice *int64
	}{
		{
			name:         "Success - only the name is sent",
			mockService:  &mockProductService{product: product},
			body:         `{"name":"Oat milk"}`,
			expectedCode: http.StatusOK,
			expectedName: ptr("Oat milk"),
		},
		{
			name:          "Success - zero price is kept as a value",
			mockService:   &mockProductService{product: product},
			body:          `{"price":0}`,
			expectedCode:  http.StatusOK,
			expectedPrice: ptr(int64(0)),
		},
		{
			name:         "Error - empty name",
			mockService:  &mockProductService{},
			body:         `{"name":""}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - negative price",
			mockService:  &mockProductService{},
			body:         `{"price":-5}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - not found",
			mockService:  &mockProductService{error: cerrors.ErrProductNotFound},
			body:         `{"name":"Oat milk"}`,
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			handler := NewHandler(tc.mockService, nil, nil, discardLogger())
			req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+id.String(), strings.NewReader(tc.body))
			req.SetPathValue("productId", id.String())
			rr := httptest.NewRecorder()

			// when
			handler.UpdateProduct(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedCode != http.StatusOK {
				return
			}
			assert.Equal(t, tc.expectedName, tc.mockService.update.Name)
			assert.Equal(t, tc.expectedPrice, tc.mockService.update.Price)
			assert.Nil(t, tc.mockService.update.Category)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}

func Test_ProductAPI_DeleteByID(t *testing.T) {
	id := uuid.New()
	testCases := []struct {
		name         string
		mockService  *mockProductService
		expectedCode int
	}{
		{name: "Success", mockService: &mockProductService{}, expectedCode: http.StatusNoContent},
		{name: "Error - not found", mockService: &mockProductService{error: cerrors.ErrProductNotFound}, expectedCode: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewHandler(tc.mockService, nil, nil, discardLogger())
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+id.String(), nil)
			req.SetPathValue("productId", id.String())
			rr := httptest.NewRecorder()

			handler.DeleteProductByID(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
		})
	}
}
