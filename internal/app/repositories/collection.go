package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/tenacity/erp/internal/pkg/apperrors"
	"github.com/tenacity/erp/internal/pkg/logger"
)

// Mutation is the outcome of a successful change to a collection.
// PersistErr is set when the new state is held in memory but could not be saved.
type Mutation[T any] struct {
	Items      []T
	PersistErr error
}

// Warnings renders PersistErr for API responses
func (m Mutation[T]) Warnings() []string {
	if m.PersistErr == nil {
		return nil
	}
	return []string{"changes are applied but could not be saved; they will be lost on restart"}
}

// collection caches one persisted collection and serialises writers.
// The store is read once on first access; afterwards the cache is the source
// of truth and every change is written through.
type collection[T any] struct {
	name      string
	store     CollectionStore
	seed      func() []T
	normalize func([]T) []T

	mu     sync.Mutex
	loaded bool
	items  []T
}

func newCollection[T any](name string, store CollectionStore, seed func() []T, normalize func([]T) []T) *collection[T] {
	return &collection[T]{
		name:      name,
		store:     store,
		seed:      seed,
		normalize: normalize,
	}
}

// Name returns the collection name
func (c *collection[T]) Name() string {
	return c.name
}

func (c *collection[T]) fallback(reason error) []T {
	logger.Warn().Err(reason).Str("collection", c.name).Msg("Falling back to default data")
	return c.seed()
}

// read loads the collection from the store, falling back to seed data when
// the payload is missing or unreadable
func (c *collection[T]) read(ctx context.Context) []T {
	payload, err := c.store.Load(ctx, c.name)
	if err != nil {
		return c.fallback(err)
	}

	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return c.fallback(fmt.Errorf("parse %s: %w", c.name, err))
	}
	if items == nil {
		items = []T{}
	}
	if c.normalize != nil {
		items = c.normalize(items)
	}
	return items
}

func (c *collection[T]) ensureLoaded(ctx context.Context) {
	if c.loaded {
		return
	}
	c.items = c.read(ctx)
	c.loaded = true
}

// write persists items; failures are logged and returned wrapped as
// ErrPersistenceFailure for the caller to report as a warning
func (c *collection[T]) write(ctx context.Context, items []T) error {
	payload, err := json.Marshal(items)
	if err == nil {
		err = c.store.Save(ctx, c.name, payload)
	}
	if err != nil {
		logger.Error().Err(err).Str("collection", c.name).Msg("Error saving collection, keeping in-memory state")
		return fmt.Errorf("%w: %s: %v", apperrors.ErrPersistenceFailure, c.name, err)
	}
	return nil
}

func (c *collection[T]) snapshot() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// All returns a snapshot of the collection
func (c *collection[T]) All(ctx context.Context) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ensureLoaded(ctx)
	return c.snapshot()
}

// Mutate runs fn on a snapshot under the collection lock and stores its
// result. An error from fn leaves the collection unchanged. The snapshot is
// shallow, so fn must clone an element before changing its slices.
func (c *collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) (Mutation[T], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ensureLoaded(ctx)
	next, err := fn(c.snapshot())
	if err != nil {
		return Mutation[T]{}, err
	}

	c.items = next
	persistErr := c.write(ctx, next)
	return Mutation[T]{Items: c.snapshot(), PersistErr: persistErr}, nil
}

// Reset restores the seed data
func (c *collection[T]) Reset(ctx context.Context) Mutation[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = c.seed()
	c.loaded = true
	persistErr := c.write(ctx, c.items)
	return Mutation[T]{Items: c.snapshot(), PersistErr: persistErr}
}

// Reload drops the cache so the next access reads the store again
func (c *collection[T]) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loaded = false
	c.items = nil
}

// SeedIfMissing saves the seed data when the store has nothing under this
// collection's name. It reports whether data was written.
func (c *collection[T]) SeedIfMissing(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.store.Load(ctx, c.name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrCollectionNotFound) {
		return false, fmt.Errorf("check collection %s: %w", c.name, err)
	}

	items := c.seed()
	if err := c.write(ctx, items); err != nil {
		return false, err
	}
	c.items = items
	c.loaded = true
	return true, nil
}
