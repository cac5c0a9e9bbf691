// Package events contains the events published when product/store associations change.
package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/storecatalog/pkg/messaging"
	"github.com/google/uuid"
)

type StoreAttachedEvent struct {
	ProductID  uuid.UUID `json:"product_id"`
	StoreID    uuid.UUID `json:"store_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e StoreAttachedEvent) Subject() string {
	return messaging.StoreAttachedSubject
}

func (e StoreAttachedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type StoreDetachedEvent struct {
	ProductID  uuid.UUID `json:"product_id"`
	StoreID    uuid.UUID `json:"store_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e StoreDetachedEvent) Subject() string {
	return messaging.StoreDetachedSubject
}

func (e StoreDetachedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

// ProductStoresReplacedEvent carries the complete store set of the product after the replacement.
type ProductStoresReplacedEvent struct {
	ProductID  uuid.UUID   `json:"product_id"`
	StoreIDs   []uuid.UUID `json:"store_ids"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func (e ProductStoresReplacedEvent) Subject() string {
	return messaging.StoresReplacedSubject
}

func (e ProductStoresReplacedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
