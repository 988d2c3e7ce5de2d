// Package lifecycle bridges repository change events into the lifecycle runtime.
package lifecycle

import (
	"context"
	"log/slog"
	"slices"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/seedwork/pkg/core"
)

// Option configures a Source.
type Option func(*eventSource)

// WithTypes forwards only events of the given types. No types means all.
func WithTypes(types ...core.EventType) Option {
	return func(s *eventSource) {
		s.types = append(s.types, types...)
	}
}

// WithLogger logs events that were filtered out or merged.
func WithLogger(logger *slog.Logger) Option {
	return func(s *eventSource) {
		s.logger = logger
	}
}

type eventSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
	types  []core.EventType
	logger *slog.Logger
}

// NewSource creates a lifecycle.Source over repository change events,
// typically the channel returned by core.Watchable.Watch.
//
// Events wait in a queue while the consumer is busy. A queued event is
// replaced in place by a later one for the same ID, so a slow consumer sees
// each changed ID once, with its latest change.
func NewSource(events <-chan core.Event, opts ...Option) lifecycle.Source {
	s := &eventSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *eventSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards until ctx is done, or until the upstream channel closes and
// the queue is drained. Events is closed on exit.
func (s *eventSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)

		var queue []core.Event
		in := s.events
		for in != nil || len(queue) > 0 {
			// A nil channel disables the send case while the queue is empty.
			var out chan lifecycle.Event
			var next lifecycle.Event
			if len(queue) > 0 {
				out = s.out
				next = queue[0]
			}

			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-in:
				if !ok {
					in = nil
					continue
				}
				if !s.accepts(e) {
					s.debug("event filtered", e)
					continue
				}
				var merged bool
				if queue, merged = enqueue(queue, e); merged {
					s.debug("event merged", e)
				}
			case out <- next:
				queue = queue[1:]
			}
		}
		return nil
	})
	return nil
}

func (s *eventSource) accepts(e core.Event) bool {
	return len(s.types) == 0 || slices.Contains(s.types, e.Type)
}

func (s *eventSource) debug(msg string, e core.Event) {
	if s.logger != nil {
		s.logger.Debug(msg, "type", e.Type, "id", e.ID)
	}
}

// enqueue appends e, or replaces the queued event with the same ID keeping its position.
func enqueue(queue []core.Event, e core.Event) ([]core.Event, bool) {
	if i := slices.IndexFunc(queue, func(q core.Event) bool { return q.ID == e.ID }); i >= 0 {
		queue[i] = e
		return queue, true
	}
	return append(queue, e), false
}
