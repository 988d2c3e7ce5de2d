package seedwork

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/seedwork/internal/platform"
	"github.com/aretw0/seedwork/pkg/adapters/fixture"
	"github.com/aretw0/seedwork/pkg/category"
	"github.com/aretw0/seedwork/pkg/core"
)

// --- Types ---

// ID is the identity of an entity.
type ID = core.ID

// Value is an immutable wrapper around data of any shape.
type Value[T any] = core.Value[T]

// Event is a repository or fixture change notification.
type Event = core.Event

// SearchInput holds raw, possibly malformed search input.
type SearchInput = core.SearchInput

// SearchParams is the normalized, always valid search input.
type SearchParams = core.SearchParams

// SearchResult is one page of search output plus pagination metadata.
type SearchResult[E any] = core.SearchResult[E]

// SortDirection is the ordering of a sorted search.
type SortDirection = core.SortDirection

const (
	SortAsc  = core.SortAsc
	SortDesc = core.SortDesc
)

// Category is the sample aggregate.
type Category = category.Category

// CategoryProps holds the mutable state of a Category.
type CategoryProps = category.Props

// CategoryRepository is the searchable in-memory store of categories.
type CategoryRepository = category.Repository

// --- Configuration ---

// Option defines a functional option for configuring seedwork components.
type Option = platform.Option

// WithLogger sets the logger for repositories, loaders and watchers.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository injects an existing category repository.
func WithRepository(repo *CategoryRepository) Option {
	return platform.WithRepository(repo)
}

// WithEventBuffer sets the per-subscriber buffer of repository change events.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithFixtures seeds repositories from the files matching pattern.
func WithFixtures(pattern string) Option {
	return platform.WithFixtures(pattern)
}

// WithStrict enables strict number handling in fixture serializers.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithSerializer registers a fixture serializer for a file extension.
func WithSerializer(ext string, s fixture.Serializer) Option {
	return platform.WithSerializer(ext, s)
}

// WithWatchDebounce sets the quiet period before fixture changes are reported.
func WithWatchDebounce(d time.Duration) Option {
	return platform.WithWatchDebounce(d)
}

// WithWatcherErrorHandler registers a callback for runtime fixture watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factories ---

// NewID generates a fresh random identity.
func NewID() ID {
	return core.NewID()
}

// ParseID validates text as a v4 UUID.
func ParseID(text string) (ID, error) {
	return core.ParseID(text)
}

// NewValue wraps v in an immutable Value.
func NewValue[T any](v T) Value[T] {
	return core.NewValue(v)
}

// NewSearchParams normalizes raw search input.
func NewSearchParams(in SearchInput) SearchParams {
	return core.NewSearchParams(in)
}

// NewCategory builds a validated Category.
func NewCategory(props CategoryProps, id ...ID) (*Category, error) {
	return category.New(props, id...)
}

// OpenCategories returns a category repository, seeded from fixtures when configured.
func OpenCategories(ctx context.Context, opts ...Option) (*CategoryRepository, error) {
	return platform.OpenCategories(ctx, opts...)
}

// WatchFixtures streams changes to the configured fixture files until ctx is done.
func WatchFixtures(ctx context.Context, opts ...Option) (<-chan Event, error) {
	return platform.WatchFixtures(ctx, opts...)
}

// FindConfig looks upwards from startDir for a seedwork.yaml file.
func FindConfig(startDir string) (string, error) {
	return platform.FindConfig(startDir)
}
