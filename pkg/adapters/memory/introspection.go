package memory

import (
	"github.com/aretw0/introspection"

	"github.com/aretw0/seedwork/pkg/core"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Name           string   `json:"name"`
	Size           int      `json:"size"`
	EventBuffer    int      `json:"event_buffer"`
	Subscribers    int      `json:"subscribers"`
	SortableFields []string `json:"sortable_fields,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository[E]) State() any {
	return r.state()
}

// ComponentType implements introspection.Component.
func (r *Repository[E]) ComponentType() string {
	return "repository"
}

func (r *Repository[E]) state() RepositoryState {
	return RepositoryState{
		Name:        r.config.Name,
		Size:        r.Len(),
		EventBuffer: r.config.EventBuffer,
		Subscribers: r.broker.count(),
	}
}

var (
	_ introspection.Introspectable = (*Repository[core.Identifiable])(nil)
	_ introspection.Component      = (*Repository[core.Identifiable])(nil)
	_ introspection.Introspectable = (*SearchableRepository[core.Identifiable])(nil)
)
