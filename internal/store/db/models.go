package db

import (
	"github.com/google/uuid"
)

type Product struct {
	ID       uuid.UUID
	Name     string
	Price    int64
	Category string
}

type Store struct {
	ID      uuid.UUID
	Name    string
	City    string
	Address string
}

type ProductStore struct {
	ProductID uuid.UUID
	StoreID   uuid.UUID
}
