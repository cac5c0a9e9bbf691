package db

import (
	"context"

	"github.com/google/uuid"
)

const createProduct = `-- name: CreateProduct :one
INSERT INTO products (name, price, category)
VALUES ($1, $2, $3)
RETURNING id, name, price, category
`

type CreateProductParams struct {
	Name     string
	Price    int64
	Category string
}

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, createProduct, arg.Name, arg.Price, arg.Category)
	var i Product
	err := row.Scan(&i.ID, &i.Name, &i.Price, &i.Category)
	return i, err
}

const findProductByID = `-- name: FindProductByID :one
SELECT id, name, price, category
FROM products
WHERE id = $1
`

func (q *Queries) FindProductByID(ctx context.Context, id uuid.UUID) (Product, error) {
	row := q.db.QueryRow(ctx, findProductByID, id)
	var i Product
	err := row.Scan(&i.ID, &i.Name, &i.Price, &i.Category)
	return i, err
}

const lockProductByID = `-- name: LockProductByID :one
SELECT id, name, price, category
FROM products
WHERE id = $1
FOR UPDATE
`

func (q *Queries) LockProductByID(ctx context.Context, id uuid.UUID) (Product, error) {
	row := q.db.QueryRow(ctx, lockProductByID, id)
	var i Product
	err := row.Scan(&i.ID, &i.Name, &i.Price, &i.Category)
	return i, err
}

const findAllProducts = `-- name: FindAllProducts :many
SELECT id, name, price, category
FROM products
ORDER BY name, id
LIMIT $1 OFFSET $2
`

type FindAllProductsParams struct {
	Limit  int32
	Offset int32
}

func (q *Queries) FindAllProducts(ctx context.Context, arg FindAllProductsParams) ([]Product, error) {
	rows, err := q.db.Query(ctx, findAllProducts, arg.Limit, arg.Offset)
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

const updateProduct = `-- name: UpdateProduct :one
UPDATE products
SET name     = $2,
    price    = $3,
    category = $4
WHERE id = $1
RETURNING id, name, price, category
`

type UpdateProductParams struct {
	ID       uuid.UUID
	Name     string
	Price    int64
	Category string
}

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, updateProduct, arg.ID, arg.Name, arg.Price, arg.Category)
	var i Product
	err := row.Scan(&i.ID, &i.Name, &i.Price, &i.Category)
	return i, err
}

const deleteProduct = `-- name: DeleteProduct :execrows
DELETE FROM products
WHERE id = $1
`

func (q *Queries) DeleteProduct(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteProduct, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
