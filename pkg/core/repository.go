package core

import "context"

// Repository defines the contract for storing and retrieving entities of one kind.
// Adhering to this interface keeps callers independent of the backing storage.
type Repository[E Identifiable] interface {
	// Insert appends an entity. Identities are not checked for duplicates.
	Insert(ctx context.Context, entity E) error

	// FindByID retrieves the entity whose identity string equals id.
	FindByID(ctx context.Context, id string) (E, error)

	// FindAll returns every entity in insertion order.
	FindAll(ctx context.Context) ([]E, error)

	// Update replaces the stored entity sharing entity's identity, keeping its position.
	Update(ctx context.Context, entity E) error

	// Delete removes the entity with the given id.
	Delete(ctx context.Context, id string) error
}

// Seeder is implemented by repositories that accept bulk loading.
type Seeder[E Identifiable] interface {
	// Seed appends items in order, as repeated Insert calls would.
	Seed(ctx context.Context, items ...E) error
}

// SearchableRepository extends Repository with the filter, sort and paginate pipeline.
type SearchableRepository[E Identifiable] interface {
	Repository[E]

	// Search never rejects input; params are normalized at construction.
	Search(ctx context.Context, params SearchParams) (SearchResult[E], error)

	// SortableFields lists the field names Search will sort by.
	SortableFields() []string
}

// Watchable defines an interface for repositories that publish change events.
type Watchable interface {
	// Watch streams events whose entity ID matches pattern until ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
