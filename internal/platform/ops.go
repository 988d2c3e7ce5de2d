package platform

import (
	"context"
	"errors"

	"github.com/aretw0/seedwork/pkg/adapters/fixture"
	"github.com/aretw0/seedwork/pkg/core"
)

// ErrNoFixtures is returned when watching without a fixture pattern.
var ErrNoFixtures = errors.New("no fixture pattern configured")

// WatchFixtures streams changes to the files matched by the WithFixtures
// pattern until ctx is done.
func WatchFixtures(ctx context.Context, opts ...Option) (<-chan core.Event, error) {
	o := buildOptions(opts)
	if o.fixtures == "" {
		return nil, ErrNoFixtures
	}

	w := fixture.NewWatcher(fixture.WatchConfig{
		Logger:       o.logger,
		Debounce:     o.debounce,
		ErrorHandler: o.errorHandler,
	})
	return w.Watch(ctx, o.fixtures)
}
