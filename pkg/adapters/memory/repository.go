// Package memory provides ordered in-memory repositories with CRUD and a
// filter, sort and paginate search pipeline.
package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/seedwork/pkg/core"
)

const defaultEventBuffer = 100

// Config holds the configuration for a memory repository.
type Config struct {
	// Name identifies the repository in logs and introspection output.
	Name   string
	Logger *slog.Logger
	// EventBuffer is the per-subscriber channel size. Zero means default (100).
	EventBuffer int
}

// Repository is an insertion-ordered collection of entities of one kind.
// Identity uniqueness is the caller's responsibility.
type Repository[E core.Identifiable] struct {
	config Config
	broker *broker

	mu    sync.RWMutex
	items []E
}

// Compile-time contract assertions.
var (
	_ core.Repository[core.Identifiable] = (*Repository[core.Identifiable])(nil)
	_ core.Seeder[core.Identifiable]     = (*Repository[core.Identifiable])(nil)
	_ core.Watchable                     = (*Repository[core.Identifiable])(nil)
)

// NewRepository creates an empty repository.
func NewRepository[E core.Identifiable](config Config) *Repository[E] {
	if config.EventBuffer <= 0 {
		config.EventBuffer = defaultEventBuffer
	}
	return &Repository[E]{
		config: config,
		broker: newBroker(config.EventBuffer, config.Logger),
	}
}

// Insert appends entity to the end of the collection.
func (r *Repository[E]) Insert(ctx context.Context, entity E) error {
	r.mu.Lock()
	r.items = append(r.items, entity)
	r.mu.Unlock()

	r.emit(ctx, core.EventCreate, entity.Identity().String())
	return nil
}

// Seed appends items in order. It is the supported way to preload a repository.
func (r *Repository[E]) Seed(ctx context.Context, items ...E) error {
	r.mu.Lock()
	r.items = append(r.items, items...)
	r.mu.Unlock()

	if r.config.Logger != nil {
		r.config.Logger.Debug("repository seeded", "repository", r.config.Name, "count", len(items))
	}
	for _, item := range items {
		r.emit(ctx, core.EventCreate, item.Identity().String())
	}
	return nil
}

// FindByID returns the entity whose identity string equals id.
func (r *Repository[E]) FindByID(ctx context.Context, id string) (E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, err := r.indexOf(id)
	if err != nil {
		var zero E
		return zero, err
	}
	return r.items[idx], nil
}

// FindAll returns a copy of the ordered collection.
// Mutating the returned slice does not affect the repository.
func (r *Repository[E]) FindAll(ctx context.Context) ([]E, error) {
	return r.snapshot(), nil
}

// Update replaces the entity sharing entity's identity, keeping its position.
// Nothing changes when the identity is unknown.
func (r *Repository[E]) Update(ctx context.Context, entity E) error {
	id := entity.Identity().String()

	r.mu.Lock()
	idx, err := r.indexOf(id)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	r.items[idx] = entity
	r.mu.Unlock()

	r.emit(ctx, core.EventModify, id)
	return nil
}

// Delete removes the entity with the given id; the remaining order is preserved.
func (r *Repository[E]) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	idx, err := r.indexOf(id)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	r.items = slices.Delete(r.items, idx, idx+1)
	r.mu.Unlock()

	r.emit(ctx, core.EventDelete, id)
	return nil
}

// Len returns the number of stored entities.
func (r *Repository[E]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Watch streams change events for entity IDs matching pattern until ctx is done.
func (r *Repository[E]) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	return r.broker.subscribe(ctx, pattern)
}

// indexOf must be called with r.mu held.
func (r *Repository[E]) indexOf(id string) (int, error) {
	for i, item := range r.items {
		if item.Identity().String() == id {
			return i, nil
		}
	}
	return -1, &core.NotFoundError{ID: id}
}

func (r *Repository[E]) snapshot() []E {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items)
}

func (r *Repository[E]) emit(ctx context.Context, typ core.EventType, id string) {
	r.broker.publish(core.Event{
		Type:      typ,
		ID:        id,
		Reason:    core.ChangeReason(ctx),
		Timestamp: time.Now().Unix(),
	})
}
