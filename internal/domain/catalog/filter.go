// Package catalog defines the product listing semantics: which filter
// predicates exist, how they combine, how results are ordered and how
// pages are cut. Both the Postgres repository and the in-memory
// repository are driven by this package so listings behave identically
// regardless of the backing store.
package catalog

import (
	"sort"
	"strings"

	"github.com/invenlab/inventory-api/internal/domain/entity"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
	DefaultOrderBy  = "name"
)

// SortColumns maps recognized orderBy values to their SQL column. Kept as
// plain data so tests can enumerate the option table. Unrecognized keys
// fall back to DefaultOrderBy ascending rather than erroring.
var SortColumns = map[string]string{
	"name":  "name",
	"price": "price",
	"date":  "created_at",
	"stock": "stock",
}

// Filter carries the optional predicates and page parameters of a
// product listing request. All predicates combine conjunctively.
type Filter struct {
	SearchTerm string
	CategoryID *int64
	PriceMin   *float64
	PriceMax   *float64
	Available  *bool

	OrderBy    string
	Descending bool
	PageNumber int
	PageSize   int
}

// Normalize applies defaults and clamps page parameters in place and
// returns the resolved sort column. Always call it before using the
// filter against a store.
func (f *Filter) Normalize() string {
	if f.PageNumber < 1 {
		f.PageNumber = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	key := strings.ToLower(strings.TrimSpace(f.OrderBy))
	col, ok := SortColumns[key]
	if !ok {
		// Unknown sort keys degrade to name ascending.
		f.OrderBy = DefaultOrderBy
		f.Descending = false
		return SortColumns[DefaultOrderBy]
	}
	f.OrderBy = key
	return col
}

// Offset returns the zero-based slice start for the current page.
func (f *Filter) Offset() int {
	return (f.PageNumber - 1) * f.PageSize
}

// Matches reports whether a product satisfies every supplied predicate.
func (f *Filter) Matches(p *entity.Product) bool {
	if term := strings.ToLower(strings.TrimSpace(f.SearchTerm)); term != "" {
		name := strings.ToLower(p.Name)
		desc := strings.ToLower(p.Description)
		if !strings.Contains(name, term) && !strings.Contains(desc, term) {
			return false
		}
	}
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.PriceMin != nil && p.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && p.Price > *f.PriceMax {
		return false
	}
	if f.Available != nil && p.Available != *f.Available {
		return false
	}
	return true
}

// Less orders two products by the filter's sort key and direction,
// breaking ties by id so pagination is deterministic.
func (f *Filter) Less(a, b *entity.Product) bool {
	var less, greater bool
	switch f.OrderBy {
	case "price":
		less, greater = a.Price < b.Price, a.Price > b.Price
	case "date":
		less, greater = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.After(b.CreatedAt)
	case "stock":
		less, greater = a.Stock < b.Stock, a.Stock > b.Stock
	default:
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		less, greater = an < bn, an > bn
	}
	if less || greater {
		if f.Descending {
			return greater
		}
		return less
	}
	return a.ID < b.ID
}

// Apply runs the full listing pipeline over an in-memory product set:
// conjunctive filtering, total count before pagination, stable ordering
// and the page slice. Used by the memory repository and by tests as the
// reference semantics.
func (f *Filter) Apply(products []*entity.Product) ([]*entity.Product, int) {
	f.Normalize()

	matched := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			matched = append(matched, p)
		}
	}
	total := len(matched)

	sort.Slice(matched, func(i, j int) bool { return f.Less(matched[i], matched[j]) })

	start := f.Offset()
	if start >= total {
		return []*entity.Product{}, total
	}
	end := start + f.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total
}
