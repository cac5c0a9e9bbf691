package db

import (
	"context"

	"github.com/google/uuid"
)

const findStoresByProductID = `-- name: FindStoresByProductID :many
SELECT s.id, s.name, s.city, s.address
FROM stores s
         JOIN product_stores ps ON ps.store_id = s.id
WHERE ps.product_id = $1
ORDER BY s.name, s.id
`

func (q *Queries) FindStoresByProductID(ctx context.Context, productID uuid.UUID) ([]Store, error) {
	rows, err := q.db.Query(ctx, findStoresByProductID, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Store{}
	for rows.Next() {
		var i Store
		if err := rows.Scan(&i.ID, &i.Name, &i.City, &i.Address); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findProductsByStoreID = `-- name: FindProductsByStoreID :many
SELECT p.id, p.name, p.price, p.category
FROM products p
         JOIN product_stores ps ON ps.product_id = p.id
WHERE ps.store_id = $1
ORDER BY p.name, p.id
`

func (q *Queries) FindProductsByStoreID(ctx context.Context, storeID uuid.UUID) ([]Product, error) {
	rows, err := q.db.Query(ctx, findProductsByStoreID, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		var i Product
		if err := rows.Scan(&i.ID, &i.Name, &i.Price, &i.Category); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteProductStores = `-- name: DeleteProductStores :exec
DELETE FROM product_stores
WHERE product_id = $1
`

func (q *Queries) DeleteProductStores(ctx context.Context, productID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteProductStores, productID)
	return err
}

const createProductStore = `-- name: CreateProductStore :exec
INSERT INTO product_stores (product_id, store_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`

type CreateProductStoreParams struct {
	ProductID uuid.UUID
	StoreID   uuid.UUID
}

func (q *Queries) CreateProductStore(ctx context.Context, arg CreateProductStoreParams) error {
	_, err := q.db.Exec(ctx, createProductStore, arg.ProductID, arg.StoreID)
	return err
}
