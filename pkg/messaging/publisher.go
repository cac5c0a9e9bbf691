// Package messaging defines the event publishing contract used by the services.
package messaging

import (
	"context"
)

const (
	StoreAttachedSubject  = "catalog.product.store.attached"
	StoreDetachedSubject  = "catalog.product.store.detached"
	StoresReplacedSubject = "catalog.product.store.replaced"

	// CatalogSubjects matches every subject published by the catalog service.
	CatalogSubjects = "catalog.>"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher discards every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error {
	return nil
}
