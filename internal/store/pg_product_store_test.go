package store_test

import (
	"context"
	"errors"
	"testing"

	cerrors "github.com/abgdnv/storecatalog/internal/errors"
	"github.com/abgdnv/storecatalog/internal/store"
	"github.com/abgdnv/storecatalog/internal/store/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	productColumns = []string{"id", "name", "price", "category"}
	storeColumns   = []string{"id", "name", "city", "address"}
)

func TestPgProductStore_FindByID(t *testing.T) {
	t.Run("Should load product with its stores", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := store.NewPgProductStore(mockPool)
		productID, storeID := uuid.New(), uuid.New()

		mockPool.ExpectQuery("name: FindProductByID").
			WithArgs(productID).
			WillReturnRows(mockPool.NewRows(productColumns).AddRow(productID, "Milk", int64(250), "Perishable"))
		mockPool.ExpectQuery("name: FindStoresByProductID").
			WithArgs(productID).
			WillReturnRows(mockPool.NewRows(storeColumns).AddRow(storeID, "Alpha", "BOG", "Main st"))

		record, err := repo.FindByID(context.Background(), productID, true)

		require.NoError(t, err)
		assert.Equal(t, "Milk", record.Name)
		assert.Equal(t, []db.Store{{ID: storeID, Name: "Alpha", City: "BOG", Address: "Main st"}}, record.Stores)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should skip stores when not requested", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := store.NewPgProductStore(mockPool)
		productID := uuid.New()

		mockPool.ExpectQuery("name: FindProductByID").
			WithArgs(productID).
			WillReturnRows(mockPool.NewRows(productColumns).AddRow(productID, "Milk", int64(250), "Perishable"))

		record, err := repo.FindByID(context.Background(), productID, false)

		require.NoError(t, err)
		assert.Nil(t, record.Stores)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should map missing row to not found", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := store.NewPgProductStore(mockPool)
		productID := uuid.New()

		mockPool.ExpectQuery("name: FindProductByID").
			WithArgs(productID).
			WillReturnError(pgx.ErrNoRows)

		record, err := repo.FindByID(context.Background(), productID, true)

		assert.Nil(t, record)
		assert.ErrorIs(t, err, cerrors.ErrProductNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPgProductStore_Save(t *testing.T) {
	product := db.Product{ID: uuid.New(), Name: "Milk", Price: 250, Category: "Perishable"}
	s1 := db.Store{ID: uuid.New(), Name: "Alpha", City: "BOG", Address: "Main st"}
	s2 := db.Store{ID: uuid.New(), Name: "Beta", City: "MDE", Address: "Second st"}

	t.Run("Should replace join rows in one transaction without writing product fields", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := store.NewPgProductStore(mockPool)

		mockPool.ExpectBegin()
		mockPool.ExpectQuery("name: LockProductByID").
			WithArgs(product.ID).
			WillReturnRows(mockPool.NewRows(productColumns).AddRow(product.ID, product.Name, product.Price, product.Category))
		mockPool.ExpectExec("name: DeleteProductStores").
			WithArgs(product.ID).
			WillReturnResult(pgxmock.NewResult("DELETE", 3))
		mockPool.ExpectExec("name: CreateProductStore").
			WithArgs(product.ID, s1.ID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mockPool.ExpectExec("name: CreateProductStore").
			WithArgs(product.ID, s2.ID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mockPool.ExpectQuery("name: FindStoresByProductID").
			WithArgs(product.ID).
			WillReturnRows(mockPool.NewRows(storeColumns).
				AddRow(s1.ID, s1.Name, s1.City, s1.Address).
				AddRow(s2.ID, s2.Name, s2.City, s2.Address))
		mockPool.ExpectCommit()

		stale := db.Product{ID: product.ID, Name: "Old name", Price: 1, Category: "Non-perishable"}
		saved, err := repo.Save(context.Background(), &store.ProductRecord{Product: stale, Stores: []db.Store{s1, s2}})

		require.NoError(t, err)
		assert.Equal(t, product, saved.Product, "the locked row is returned, not the caller's copy")
		assert.Equal(t, []db.Store{s1, s2}, saved.Stores)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should roll back when a store does not exist", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := store.NewPgProductStore(mockPool)

		mockPool.ExpectBegin()
		mockPool.ExpectQuery("name: LockProductByID").
			WithArgs(product.ID).
			WillReturnRows(mockPool.NewRows(productColumns).AddRow(product.ID, product.Name, product.Price, product.Category))
		mockPool.ExpectExec("name: DeleteProductStores").
			WithArgs(product.ID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mockPool.ExpectExec("name: CreateProductStore").
			WithArgs(product.ID, s1.ID).
			WillReturnError(&pgconn.PgError{Code: "23503"})
		mockPool.ExpectRollback()

		saved, err := repo.Save(context.Background(), &store.ProductRecord{Product: product, Stores: []db.Store{s1}})

		assert.Nil(t, saved)
		assert.ErrorIs(t, err, cerrors.ErrStoreNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should roll back when the product does not exist", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := store.NewPgProductStore(mockPool)

		mockPool.ExpectBegin()
		mockPool.ExpectQuery("name: LockProductByID").
			WithArgs(product.ID).
			WillReturnError(pgx.ErrNoRows)
		mockPool.ExpectRollback()

		_, err = repo.Save(context.Background(), &store.ProductRecord{Product: product})

		assert.ErrorIs(t, err, cerrors.ErrProductNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should wrap begin failures", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := store.NewPgProductStore(mockPool)

		mockPool.ExpectBegin().WillReturnError(errors.New("connection refused"))

		_, err = repo.Save(context.Background(), &store.ProductRecord{Product: product})

		assert.ErrorIs(t, err, cerrors.ErrTransactionBegin)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should wrap commit failures", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := store.NewPgProductStore(mockPool)

		mockPool.ExpectBegin()
		mockPool.ExpectQuery("name: LockProductByID").
			WithArgs(product.ID).
			WillReturnRows(mockPool.NewRows(productColumns).AddRow(product.ID, product.Name, product.Price, product.Category))
		mockPool.ExpectExec("name: DeleteProductStores").
			WithArgs(product.ID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mockPool.ExpectQuery("name: FindStoresByProductID").
			WithArgs(product.ID).
			WillReturnRows(mockPool.NewRows(storeColumns))
		mockPool.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		_, err = repo.Save(context.Background(), &store.ProductRecord{Product: product})

		assert.ErrorIs(t, err, cerrors.ErrTransactionCommit)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestPgProductStore_FindAll(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()
	repo := store.NewPgProductStore(mockPool)
	p1, p2 := uuid.New(), uuid.New()

	mockPool.ExpectQuery("name: FindAllProducts").
		WithArgs(int32(10), int32(0)).
		WillReturnRows(mockPool.NewRows(productColumns).
			AddRow(p1, "Bread", int64(120), "Non-perishable").
			AddRow(p2, "Milk", int64(250), "Perishable"))
	mockPool.ExpectQuery("name: FindStoresByProductID").
		WithArgs(p1).
		WillReturnRows(mockPool.NewRows(storeColumns))
	mockPool.ExpectQuery("name: FindStoresByProductID").
		WithArgs(p2).
		WillReturnRows(mockPool.NewRows(storeColumns).AddRow(uuid.New(), "Alpha", "BOG", "Main st"))

	records, err := repo.FindAll(context.Background(), 0, 10)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Empty(t, records[0].Stores)
	assert.Len(t, records[1].Stores, 1)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPgProductStore_DeleteByID(t *testing.T) {
	testCases := []struct {
		name        string
		affected    int64
		expectError error
	}{
		{name: "Should delete existing product", affected: 1},
		{name: "Should report missing product", affected: 0, expectError: cerrors.ErrProductNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockPool, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mockPool.Close()
			repo := store.NewPgProductStore(mockPool)
			id := uuid.New()

			mockPool.ExpectExec("name: DeleteProduct :execrows").
				WithArgs(id).
				WillReturnResult(pgxmock.NewResult("DELETE", tc.affected))

			err = repo.DeleteByID(context.Background(), id)

			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mockPool.ExpectationsWereMet())
		})
	}
}
