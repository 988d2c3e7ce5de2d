package memory_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/seedwork/pkg/adapters/memory"
	"github.com/aretw0/seedwork/pkg/core"
)

func nameContains(item *stub, filter string) bool {
	return strings.Contains(strings.ToLower(item.Props.Name), strings.ToLower(filter))
}

func newSearchable(t *testing.T, filter memory.FilterFunc[*stub], items ...*stub) *memory.SearchableRepository[*stub] {
	t.Helper()
	repo := memory.NewSearchableRepository(memory.Config{Name: "stubs"}, filter,
		memory.SortBy("name", func(s *stub) string { return s.Props.Name }),
		memory.SortBy("price", func(s *stub) int { return s.Props.Price }),
		memory.SortByTime("created_at", func(s *stub) time.Time { return s.Props.CreatedAt }),
	)
	require.NoError(t, repo.Seed(context.Background(), items...))
	return repo
}

func search(t *testing.T, repo *memory.SearchableRepository[*stub], in core.SearchInput) core.SearchResult[*stub] {
	t.Helper()
	result, err := repo.Search(context.Background(), core.NewSearchParams(in))
	require.NoError(t, err)
	return result
}

func TestSearch_DefaultsOverIdenticalItems(t *testing.T) {
	items := make([]*stub, 16)
	for i := range items {
		items[i] = newStub("same", 1)
	}
	repo := newSearchable(t, nameContains, items...)

	result := search(t, repo, core.SearchInput{})

	assert.Equal(t, items[:10], result.Items())
	assert.Equal(t, 16, result.Total())
	assert.Equal(t, 1, result.CurrentPage())
	assert.Equal(t, 10, result.PerPage())
	assert.Equal(t, 2, result.LastPage())
	assert.Empty(t, result.Sort())
	assert.Empty(t, result.SortDir())
	assert.Empty(t, result.Filter())
}

func TestSearch_CaseInsensitiveFilter(t *testing.T) {
	repo := newSearchable(t, nameContains,
		newStub("test", 1), newStub("a", 2), newStub("TeSt", 3), newStub("TESTE", 4),
	)

	result := search(t, repo, core.SearchInput{Page: 1, PerPage: 2, Filter: "TEST"})

	assert.Equal(t, []string{"test", "TeSt"}, names(result.Items()))
	assert.Equal(t, 3, result.Total())
	assert.Equal(t, 2, result.LastPage())
	assert.Equal(t, "TEST", result.Filter())
}

func TestSearch_FilterNotInvokedWithoutTerm(t *testing.T) {
	calls := 0
	spy := func(item *stub, filter string) bool {
		calls++
		return true
	}
	repo := newSearchable(t, spy, newStub("a", 1), newStub("b", 2))

	search(t, repo, core.SearchInput{})
	search(t, repo, core.SearchInput{Filter: ""})
	assert.Zero(t, calls)

	search(t, repo, core.SearchInput{Filter: "a"})
	assert.Equal(t, 2, calls)
}

func TestSearch_Sort(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := newStub("b", 2)
	a := newStub("a", 3)
	c := newStub("c", 1)
	b.Props.CreatedAt = base
	a.Props.CreatedAt = base.Add(2 * time.Hour)
	c.Props.CreatedAt = base.Add(time.Hour)
	repo := newSearchable(t, nameContains, b, a, c)

	tests := []struct {
		name string
		in   core.SearchInput
		want []string
	}{
		{"no sort keeps insertion order", core.SearchInput{}, []string{"b", "a", "c"}},
		{"name asc", core.SearchInput{Sort: "name"}, []string{"a", "b", "c"}},
		{"name desc", core.SearchInput{Sort: "name", SortDir: "desc"}, []string{"c", "b", "a"}},
		{"price asc", core.SearchInput{Sort: "price", SortDir: core.SortAsc}, []string{"c", "b", "a"}},
		{"created_at desc", core.SearchInput{Sort: "created_at", SortDir: 1}, []string{"a", "c", "b"}},
		{"unknown field is ignored", core.SearchInput{Sort: "colour", SortDir: "desc"}, []string{"b", "a", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := search(t, repo, tt.in)
			assert.Equal(t, tt.want, names(result.Items()))
		})
	}
}

func TestSearch_SortIsStable(t *testing.T) {
	x1, x2, x3 := newStub("x1", 5), newStub("x2", 5), newStub("x3", 5)
	repo := newSearchable(t, nameContains, x1, newStub("low", 1), x2, newStub("high", 9), x3)

	asc := search(t, repo, core.SearchInput{Sort: "price"})
	assert.Equal(t, []string{"low", "x1", "x2", "x3", "high"}, names(asc.Items()))

	desc := search(t, repo, core.SearchInput{Sort: "price", SortDir: "desc"})
	assert.Equal(t, []string{"high", "x1", "x2", "x3", "low"}, names(desc.Items()))
}

func TestSearch_Pagination(t *testing.T) {
	repo := newSearchable(t, nameContains,
		newStub("a", 1), newStub("b", 2), newStub("c", 3), newStub("d", 4), newStub("e", 5),
	)

	tests := []struct {
		page, perPage int
		want          []string
	}{
		{1, 2, []string{"a", "b"}},
		{2, 2, []string{"c", "d"}},
		{3, 2, []string{"e"}},
		{4, 2, []string{}},
		{1, 10, []string{"a", "b", "c", "d", "e"}},
	}
	for _, tt := range tests {
		result := search(t, repo, core.SearchInput{Page: tt.page, PerPage: tt.perPage})
		assert.Equal(t, tt.want, names(result.Items()), "page %d per_page %d", tt.page, tt.perPage)
		assert.Equal(t, 5, result.Total())
		assert.Equal(t, 5/tt.perPage+min(5%tt.perPage, 1), result.LastPage())
	}
}

func TestSearch_TotalIgnoresPaging(t *testing.T) {
	items := make([]*stub, 0, 7)
	for i := 0; i < 7; i++ {
		items = append(items, newStub("match", i))
	}
	items = append(items, newStub("other", 0))
	repo := newSearchable(t, nameContains, items...)

	for _, perPage := range []int{1, 3, 50} {
		for _, page := range []int{1, 2, 9} {
			result := search(t, repo, core.SearchInput{Page: page, PerPage: perPage, Filter: "match"})
			assert.Equal(t, 7, result.Total())
		}
	}
}

func TestSearch_NilFilterFunc(t *testing.T) {
	repo := newSearchable(t, nil, newStub("a", 1), newStub("b", 2))

	result := search(t, repo, core.SearchInput{Filter: "zzz"})
	assert.Equal(t, 2, result.Total())
}

func TestSearchableRepository_SortableFields(t *testing.T) {
	repo := newSearchable(t, nameContains)
	assert.Equal(t, []string{"name", "price", "created_at"}, repo.SortableFields())

	state, ok := repo.State().(memory.RepositoryState)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "price", "created_at"}, state.SortableFields)
}
