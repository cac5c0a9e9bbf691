package db

import (
	"context"

	"github.com/google/uuid"
)

const createStore = `-- name: CreateStore :one
INSERT INTO stores (name, city, address)
VALUES ($1, $2, $3)
RETURNING id, name, city, address
`

type CreateStoreParams struct {
	Name    string
	City    string
	Address string
}

func (q *Queries) CreateStore(ctx context.Context, arg CreateStoreParams) (Store, error) {
	row := q.db.QueryRow(ctx, createStore, arg.Name, arg.City, arg.Address)
	var i Store
	err := row.Scan(&i.ID, &i.Name, &i.City, &i.Address)
	return i, err
}

const findStoreByID = `-- name: FindStoreByID :one
SELECT id, name, city, address
FROM stores
WHERE id = $1
`

func (q *Queries) FindStoreByID(ctx context.Context, id uuid.UUID) (Store, error) {
	row := q.db.QueryRow(ctx, findStoreByID, id)
	var i Store
	err := row.Scan(&i.ID, &i.Name, &i.City, &i.Address)
	return i, err
}

const findAllStores = `-- name: FindAllStores :many
SELECT id, name, city, address
FROM stores
ORDER BY name, id
LIMIT $1 OFFSET $2
`

type FindAllStoresParams struct {
	Limit  int32
	Offset int32
}

func (q *Queries) FindAllStores(ctx context.Context, arg FindAllStoresParams) ([]Store, error) {
	rows, err := q.db.Query(ctx, findAllStores, arg.Limit, arg.Offset)
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

const updateStore = `-- name: UpdateStore :one
UPDATE stores
SET name    = $2,
    city    = $3,
    address = $4
WHERE id = $1
RETURNING id, name, city, address
`

type UpdateStoreParams struct {
	ID      uuid.UUID
	Name    string
	City    string
	Address string
}

func (q *Queries) UpdateStore(ctx context.Context, arg UpdateStoreParams) (Store, error) {
	row := q.db.QueryRow(ctx, updateStore, arg.ID, arg.Name, arg.City, arg.Address)
	var i Store
	err := row.Scan(&i.ID, &i.Name, &i.City, &i.Address)
	return i, err
}

const deleteStore = `-- name: DeleteStore :execrows
DELETE FROM stores
WHERE id = $1
`

func (q *Queries) DeleteStore(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteStore, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteAllStores = `-- name: DeleteAllStores :exec
DELETE FROM stores
`

func (q *Queries) DeleteAllStores(ctx context.Context) error {
	_, err := q.db.Exec(ctx, deleteAllStores)
	return err
}
