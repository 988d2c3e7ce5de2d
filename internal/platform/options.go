package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/seedwork/pkg/adapters/fixture"
	"github.com/aretw0/seedwork/pkg/category"
)

// options holds the internal configuration shared by the factories.
type options struct {
	repository   *category.Repository
	logger       *slog.Logger
	eventBuffer  int
	fixtures     string
	strict       bool
	serializers  map[string]fixture.Serializer
	debounce     time.Duration
	errorHandler func(error)
}

// Option defines a functional option for configuring seedwork components.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		serializers: make(map[string]fixture.Serializer),
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger passed to repositories, loaders and watchers.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects an existing category repository.
// If provided, no new repository is created; fixtures are still seeded into it.
func WithRepository(repo *category.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithEventBuffer sets the per-subscriber buffer of repository change events.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithFixtures seeds new repositories from the files matching pattern
// (doublestar syntax, e.g. "fixtures/**/*.yaml").
func WithFixtures(pattern string) Option {
	return func(o *options) {
		o.fixtures = pattern
	}
}

// WithStrict enables strict mode for the default fixture serializers.
// When enabled, numbers in JSON/YAML are parsed as json.Number to preserve
// precision, and CSV cells stay text.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithSerializer registers a fixture serializer for a file extension such as ".toml".
func WithSerializer(ext string, s fixture.Serializer) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}

// WithWatchDebounce sets the quiet period before fixture changes are reported.
func WithWatchDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithWatcherErrorHandler registers a callback for runtime fixture watcher
// failures (e.g. permission denied) which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
