package category

import (
	"strings"

	"github.com/aretw0/seedwork/pkg/adapters/memory"
)

// Repository is the in-memory searchable store of categories.
type Repository = memory.SearchableRepository[*Category]

// NewRepository creates an empty category store sortable by name and created_at.
// The filter term matches names case-insensitively as a substring.
func NewRepository(config memory.Config) *Repository {
	if config.Name == "" {
		config.Name = "categories"
	}
	return memory.NewSearchableRepository[*Category](config, matchName,
		memory.SortBy("name", (*Category).Name),
		memory.SortByTime("created_at", (*Category).CreatedAt),
	)
}

func matchName(c *Category, filter string) bool {
	return strings.Contains(strings.ToLower(c.Name()), strings.ToLower(filter))
}
