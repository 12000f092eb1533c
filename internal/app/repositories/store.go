package repositories

import (
	"context"
	"errors"
)

// Collection names. Each collection is persisted as one JSON document.
const (
	CollectionStudents     = "students"
	CollectionTransactions = "transactions"
	CollectionRooms        = "rooms"
)

// ErrCollectionNotFound is returned by a store when nothing was saved under a name
var ErrCollectionNotFound = errors.New("collection not found")

// CollectionStore persists whole collections as opaque payloads.
// Implementations must be safe for concurrent use.
type CollectionStore interface {
	// Load returns the payload saved under name or ErrCollectionNotFound
	Load(ctx context.Context, name string) ([]byte, error)
	// Save replaces the payload saved under name
	Save(ctx context.Context, name string, payload []byte) error
	Ping(ctx context.Context) error
	Close() error
}
