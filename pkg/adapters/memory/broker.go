package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/seedwork/pkg/core"
)

type subscription struct {
	pattern string
	ch      chan core.Event
}

// broker fans repository events out to watchers without ever blocking a write.
// A full subscriber buffer drops the event for that subscriber.
type broker struct {
	buffer int
	logger *slog.Logger

	mu   sync.Mutex
	next int
	subs map[int]*subscription
}

func newBroker(buffer int, logger *slog.Logger) *broker {
	return &broker{
		buffer: buffer,
		logger: logger,
		subs:   make(map[int]*subscription),
	}
}

func (b *broker) subscribe(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	b.mu.Lock()
	id := b.next
	b.next++
	sub := &subscription{pattern: pattern, ch: make(chan core.Event, b.buffer)}
	b.subs[id] = sub
	b.mu.Unlock()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		b.unsubscribe(id)
		return nil
	})

	return sub.ch, nil
}

func (b *broker) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(sub.ch)
	}
}

func (b *broker) publish(e core.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if ok, _ := doublestar.Match(sub.pattern, e.ID); !ok {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			if b.logger != nil {
				b.logger.Warn("event dropped, subscriber buffer full", "type", e.Type, "id", e.ID)
			}
		}
	}
}

func (b *broker) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
