package core

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// SortDirection represents ordering direction for a sort field.
// The zero value means no direction, which only happens when no sort is requested.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SearchInput holds raw, possibly malformed search input as it arrives from callers.
type SearchInput struct {
	Page    any
	PerPage any
	Sort    any
	SortDir any
	Filter  any
}

// SearchParams is the normalized form of SearchInput. It can only be built
// through NewSearchParams (or With), so every instance is valid.
type SearchParams struct {
	page    int
	perPage int
	sort    string
	sortDir SortDirection
	filter  string
}

// NewSearchParams normalizes in. It never fails: invalid members fall back to defaults.
func NewSearchParams(in SearchInput) SearchParams {
	return SearchParams{}.With(in)
}

// DefaultSearchParams returns page 1 with 10 rows and no sort or filter.
func DefaultSearchParams() SearchParams {
	return NewSearchParams(SearchInput{})
}

// With normalizes in into a new SearchParams. An invalid per page value keeps
// the receiver's current value.
func (p SearchParams) With(in SearchInput) SearchParams {
	out := SearchParams{
		page:    DefaultPage,
		perPage: p.PerPage(),
	}

	if n, ok := wholeNumber(in.Page); ok && n > 0 {
		out.page = n
	}
	if n, ok := wholeNumber(in.PerPage); ok && n > 0 {
		out.perPage = n
	}

	out.sort = optionalText(in.Sort)
	if out.sort != "" {
		out.sortDir = parseSortDir(in.SortDir)
	}
	out.filter = optionalText(in.Filter)
	return out
}

func (p SearchParams) Page() int {
	if p.page < 1 {
		return DefaultPage
	}
	return p.page
}

func (p SearchParams) PerPage() int {
	if p.perPage < 1 {
		return DefaultPerPage
	}
	return p.perPage
}

// Sort returns the requested sort field, or "" when none.
func (p SearchParams) Sort() string { return p.sort }

// SortDir returns the direction, or "" when no sort is requested.
func (p SearchParams) SortDir() SortDirection { return p.sortDir }

// Filter returns the filter term, or "" when none.
func (p SearchParams) Filter() string { return p.filter }

// wholeNumber coerces numbers and numeric strings to an int when they hold a whole value.
func wholeNumber(v any) (int, bool) {
	switch x := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		return wholeFromText(x)
	case json.Number:
		return wholeFromText(x.String())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return 0, false
		}
		return wholeNumber(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n > math.MaxInt || n < math.MinInt {
			return 0, false
		}
		return int(n), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := rv.Uint()
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case reflect.Float32, reflect.Float64:
		return wholeFromFloat(rv.Float())
	case reflect.String:
		return wholeFromText(rv.String())
	}
	return 0, false
}

func wholeFromText(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return wholeFromFloat(f)
}

func wholeFromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}

// optionalText stringifies v, mapping nil and the empty string to "".
func optionalText(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return optionalText(rv.Elem().Interface())
	}
	return stringify(v)
}

func parseSortDir(v any) SortDirection {
	switch x := v.(type) {
	case SortDirection:
		if x == SortAsc || x == SortDesc {
			return x
		}
		return SortAsc
	case string:
		switch strings.ToLower(x) {
		case "asc":
			return SortAsc
		case "desc":
			return SortDesc
		}
		return SortAsc
	case nil, bool:
		return SortAsc
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() == 1 {
			return SortDesc
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() == 1 {
			return SortDesc
		}
	}
	return SortAsc
}

// SearchResultProps carries the values a SearchResult is computed from.
type SearchResultProps[E any] struct {
	Items       []E
	Total       int
	CurrentPage int
	PerPage     int
	Sort        string
	SortDir     SortDirection
	Filter      string
}

// SearchResult is the read-only outcome of a search.
type SearchResult[E any] struct {
	items       []E
	total       int
	currentPage int
	perPage     int
	lastPage    int
	sort        string
	sortDir     SortDirection
	filter      string
}

// NewSearchResult computes the derived pagination metadata from props.
func NewSearchResult[E any](props SearchResultProps[E]) SearchResult[E] {
	items := make([]E, len(props.Items))
	copy(items, props.Items)

	return SearchResult[E]{
		items:       items,
		total:       props.Total,
		currentPage: props.CurrentPage,
		perPage:     props.PerPage,
		lastPage:    lastPage(props.Total, props.PerPage),
		sort:        props.Sort,
		sortDir:     props.SortDir,
		filter:      props.Filter,
	}
}

func lastPage(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Items returns a copy of the page slice.
func (r SearchResult[E]) Items() []E {
	items := make([]E, len(r.items))
	copy(items, r.items)
	return items
}

// Total is the number of items that passed the filter, before pagination.
func (r SearchResult[E]) Total() int { return r.total }
func (r SearchResult[E]) CurrentPage() int { return r.currentPage }
func (r SearchResult[E]) PerPage() int { return r.perPage }
func (r SearchResult[E]) LastPage() int { return r.lastPage }
func (r SearchResult[E]) Sort() string { return r.sort }
func (r SearchResult[E]) SortDir() SortDirection { return r.sortDir }
func (r SearchResult[E]) Filter() string { return r.filter }

type searchResultJSON[E any] struct {
	Items       []E            `json:"items"`
	Total       int            `json:"total"`
	CurrentPage int            `json:"current_page"`
	PerPage     int            `json:"per_page"`
	LastPage    int            `json:"last_page"`
	Sort        *string        `json:"sort"`
	SortDir     *SortDirection `json:"sort_dir"`
	Filter      *string        `json:"filter"`
}

func (r SearchResult[E]) view() searchResultJSON[E] {
	out := searchResultJSON[E]{
		Items:       r.Items(),
		Total:       r.total,
		CurrentPage: r.currentPage,
		PerPage:     r.perPage,
		LastPage:    r.lastPage,
	}
	if r.sort != "" {
		sort := r.sort
		out.Sort = &sort
	}
	if r.sortDir != "" {
		dir := r.sortDir
		out.SortDir = &dir
	}
	if r.filter != "" {
		filter := r.filter
		out.Filter = &filter
	}
	return out
}

func (r SearchResult[E]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.view())
}
