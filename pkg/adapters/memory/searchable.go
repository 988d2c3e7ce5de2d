package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/aretw0/seedwork/pkg/core"
)

// FilterFunc decides whether item matches the filter term.
// Matching semantics (substring, equality, numeric...) belong to each entity kind.
type FilterFunc[E any] func(item E, filter string) bool

// Sorter binds a whitelisted field name to a typed comparison.
type Sorter[E any] struct {
	Field   string
	Compare func(a, b E) int
}

// SortBy registers field with an accessor returning an ordered value.
func SortBy[E any, K cmp.Ordered](field string, key func(E) K) Sorter[E] {
	return Sorter[E]{
		Field: field,
		Compare: func(a, b E) int {
			return cmp.Compare(key(a), key(b))
		},
	}
}

// SortByTime registers field with an accessor returning a timestamp.
func SortByTime[E any](field string, key func(E) time.Time) Sorter[E] {
	return Sorter[E]{
		Field: field,
		Compare: func(a, b E) int {
			return key(a).Compare(key(b))
		},
	}
}

// SortByFunc registers field with a custom comparison.
func SortByFunc[E any](field string, compare func(a, b E) int) Sorter[E] {
	return Sorter[E]{Field: field, Compare: compare}
}

// SearchableRepository is a Repository with a filter → sort → paginate search.
type SearchableRepository[E core.Identifiable] struct {
	*Repository[E]

	filter   FilterFunc[E]
	sorters  map[string]func(a, b E) int
	sortable []string
}

var _ core.SearchableRepository[core.Identifiable] = (*SearchableRepository[core.Identifiable])(nil)

// NewSearchableRepository creates an empty searchable repository.
// filter may be nil, in which case the filter term is ignored.
// Later sorters replace earlier ones registered under the same field.
func NewSearchableRepository[E core.Identifiable](config Config, filter FilterFunc[E], sorters ...Sorter[E]) *SearchableRepository[E] {
	r := &SearchableRepository[E]{
		Repository: NewRepository[E](config),
		filter:     filter,
		sorters:    make(map[string]func(a, b E) int, len(sorters)),
	}
	for _, s := range sorters {
		if _, seen := r.sorters[s.Field]; !seen {
			r.sortable = append(r.sortable, s.Field)
		}
		r.sorters[s.Field] = s.Compare
	}
	return r
}

// SortableFields returns the whitelisted sort fields in registration order.
func (r *SearchableRepository[E]) SortableFields() []string {
	return slices.Clone(r.sortable)
}

// Search filters the whole collection, sorts the survivors and returns the requested page.
// Total counts every item that passed the filter.
func (r *SearchableRepository[E]) Search(ctx context.Context, params core.SearchParams) (core.SearchResult[E], error) {
	items := r.snapshot()

	filtered := r.applyFilter(items, params.Filter())
	sorted := r.applySort(filtered, params.Sort(), params.SortDir())
	page := applyPagination(sorted, params.Page(), params.PerPage())

	if r.config.Logger != nil {
		r.config.Logger.Debug("search executed",
			"repository", r.config.Name,
			"filter", params.Filter(),
			"sort", params.Sort(),
			"sort_dir", params.SortDir(),
			"page", params.Page(),
			"per_page", params.PerPage(),
			"total", len(filtered),
		)
	}

	return core.NewSearchResult(core.SearchResultProps[E]{
		Items:       page,
		Total:       len(filtered),
		CurrentPage: params.Page(),
		PerPage:     params.PerPage(),
		Sort:        params.Sort(),
		SortDir:     params.SortDir(),
		Filter:      params.Filter(),
	}), nil
}

// applyFilter does not evaluate the predicate at all when filter is empty.
func (r *SearchableRepository[E]) applyFilter(items []E, filter string) []E {
	if filter == "" || r.filter == nil {
		return items
	}
	out := make([]E, 0, len(items))
	for _, item := range items {
		if r.filter(item, filter) {
			out = append(out, item)
		}
	}
	return out
}

// applySort is stable: items comparing equal keep their filtered order.
func (r *SearchableRepository[E]) applySort(items []E, field string, dir core.SortDirection) []E {
	if field == "" {
		return items
	}
	compare, ok := r.sorters[field]
	if !ok {
		return items
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b E) int {
		if dir == core.SortDesc {
			return -compare(a, b)
		}
		return compare(a, b)
	})
	return sorted
}

func applyPagination[E any](items []E, page, perPage int) []E {
	if page < 1 || perPage < 1 || page-1 > len(items)/perPage {
		return []E{}
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return []E{}
	}
	end := len(items)
	if perPage < end-start {
		end = start + perPage
	}
	return slices.Clone(items[start:end])
}

// State implements introspection.Introspectable.
func (r *SearchableRepository[E]) State() any {
	state := r.Repository.state()
	state.SortableFields = r.SortableFields()
	return state
}
