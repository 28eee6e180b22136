package catalog

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invenlab/inventory-api/internal/domain/entity"
)

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }
func boolp(v bool) *bool     { return &v }

func fixtureProducts() []*entity.Product {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*entity.Product{
		{ID: 1, Name: "Hammer", Description: "Steel claw hammer", Price: 12.50, Stock: 3, Available: true, CategoryID: 1, CreatedAt: base},
		{ID: 2, Name: "Screwdriver", Description: "Phillips #2", Price: 5.00, Stock: 40, Available: true, CategoryID: 1, CreatedAt: base.Add(24 * time.Hour)},
		{ID: 3, Name: "Drill", Description: "Cordless drill 18V", Price: 99.90, Stock: 0, Available: false, CategoryID: 1, CreatedAt: base.Add(48 * time.Hour)},
		{ID: 4, Name: "Notebook", Description: "Dotted A5 notebook", Price: 6.90, Stock: 140, Available: true, CategoryID: 2, CreatedAt: base.Add(72 * time.Hour)},
		{ID: 5, Name: "Desk Lamp", Description: "LED desk lamp", Price: 24.00, Stock: 7, Available: true, CategoryID: 2, CreatedAt: base.Add(96 * time.Hour)},
		{ID: 6, Name: "hammer drill", Description: "SDS-plus", Price: 159.00, Stock: 2, Available: true, CategoryID: 1, CreatedAt: base.Add(120 * time.Hour)},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	f := &Filter{}
	col := f.Normalize()

	assert.Equal(t, 1, f.PageNumber)
	assert.Equal(t, DefaultPageSize, f.PageSize)
	assert.Equal(t, DefaultOrderBy, f.OrderBy)
	assert.Equal(t, "name", col)
}

func TestNormalizeClampsPageSize(t *testing.T) {
	f := &Filter{PageSize: 500, PageNumber: 2}
	f.Normalize()
	assert.Equal(t, MaxPageSize, f.PageSize)
	assert.Equal(t, 2, f.PageNumber)

	f = &Filter{PageSize: -3, PageNumber: -1}
	f.Normalize()
	assert.Equal(t, DefaultPageSize, f.PageSize)
	assert.Equal(t, 1, f.PageNumber)
}

func TestNormalizeSortColumn(t *testing.T) {
	cases := map[string]string{
		"name":    "name",
		"price":   "price",
		"date":    "created_at",
		"stock":   "stock",
		"NAME":    "name",
		" PriCe ": "price",
	}
	for in, want := range cases {
		f := &Filter{OrderBy: in}
		assert.Equal(t, want, f.Normalize(), "orderBy=%q", in)
	}
}

func TestNormalizeUnknownSortDegradesToNameAsc(t *testing.T) {
	f := &Filter{OrderBy: "magic", Descending: true}
	col := f.Normalize()

	assert.Equal(t, "name", col)
	assert.Equal(t, DefaultOrderBy, f.OrderBy)
	assert.False(t, f.Descending, "unknown sort must not keep descending")
}

func TestMatchesSearchTermOverNameAndDescription(t *testing.T) {
	products := fixtureProducts()
	f := &Filter{SearchTerm: "HAMMER"}
	var ids []int64
	for _, p := range products {
		if f.Matches(p) {
			ids = append(ids, p.ID)
		}
	}
	assert.Equal(t, []int64{1, 6}, ids)

	f = &Filter{SearchTerm: "drill"}
	ids = nil
	for _, p := range products {
		if f.Matches(p) {
			ids = append(ids, p.ID)
		}
	}
	// "Drill" by name, "hammer drill" by name, id 1 not at all
	assert.Equal(t, []int64{3, 6}, ids)
}

func TestMatchesIsConjunctive(t *testing.T) {
	f := &Filter{
		SearchTerm: "hammer",
		CategoryID: i64(1),
		PriceMin:   f64(10),
		PriceMax:   f64(200),
		Available:  boolp(true),
	}
	products := fixtureProducts()
	var ids []int64
	for _, p := range products {
		if f.Matches(p) {
			ids = append(ids, p.ID)
		}
	}
	assert.Equal(t, []int64{1, 6}, ids)

	// Tightening one predicate must only shrink the set.
	f.PriceMax = f64(20)
	ids = nil
	for _, p := range products {
		if f.Matches(p) {
			ids = append(ids, p.ID)
		}
	}
	assert.Equal(t, []int64{1}, ids)
}

func TestApplyCountsBeforePagination(t *testing.T) {
	f := &Filter{CategoryID: i64(1), PageSize: 2, PageNumber: 1}
	page, total := f.Apply(fixtureProducts())

	assert.Equal(t, 4, total, "total is the filtered count, not the page length")
	assert.Len(t, page, 2)
}

func TestApplySortStableWithIDTiebreak(t *testing.T) {
	base := time.Now()
	products := []*entity.Product{
		{ID: 3, Name: "same", Price: 10, CreatedAt: base},
		{ID: 1, Name: "same", Price: 10, CreatedAt: base},
		{ID: 2, Name: "same", Price: 10, CreatedAt: base},
	}
	f := &Filter{OrderBy: "price"}
	page, _ := f.Apply(products)
	require.Len(t, page, 3)
	assert.Equal(t, int64(1), page[0].ID)
	assert.Equal(t, int64(2), page[1].ID)
	assert.Equal(t, int64(3), page[2].ID)
}

func TestApplyDescendingPrice(t *testing.T) {
	f := &Filter{OrderBy: "price", Descending: true}
	page, total := f.Apply(fixtureProducts())
	require.Equal(t, 6, total)
	for i := 1; i < len(page); i++ {
		assert.GreaterOrEqual(t, page[i-1].Price, page[i].Price)
	}
	assert.Equal(t, int64(6), page[0].ID) // 159.00 first
}

func TestApplyDateSortUsesCreatedAt(t *testing.T) {
	f := &Filter{OrderBy: "date", Descending: true}
	page, _ := f.Apply(fixtureProducts())
	require.NotEmpty(t, page)
	for i := 1; i < len(page); i++ {
		assert.False(t, page[i-1].CreatedAt.Before(page[i].CreatedAt))
	}
}

func TestApplyPageBeyondEndIsEmptyWithTotal(t *testing.T) {
	f := &Filter{PageNumber: 9, PageSize: 10}
	page, total := f.Apply(fixtureProducts())
	assert.Empty(t, page)
	assert.Equal(t, 6, total)
}

// TestApplyPaginationPartition walks every page and checks the union is
// exactly the filtered set, in order, with no duplicates.
func TestApplyPaginationPartition(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	products := make([]*entity.Product, 0, 137)
	for i := 1; i <= 137; i++ {
		products = append(products, &entity.Product{
			ID:        int64(i),
			Name:      fmt.Sprintf("item-%03d", rng.Intn(900)),
			Price:     float64(rng.Intn(10000)) / 100,
			Stock:     rng.Intn(50),
			Available: rng.Intn(4) > 0,
			CreatedAt: time.Unix(int64(rng.Intn(1_000_000)), 0),
		})
	}

	for _, orderBy := range []string{"name", "price", "date", "stock", "bogus"} {
		probe := &Filter{OrderBy: orderBy, Available: boolp(true), PageSize: MaxPageSize}
		_, total := probe.Apply(products)

		seen := map[int64]bool{}
		collected := 0
		for pageNum := 1; ; pageNum++ {
			f := &Filter{OrderBy: orderBy, Available: boolp(true), PageNumber: pageNum, PageSize: 12}
			page, pageTotal := f.Apply(products)
			assert.Equal(t, total, pageTotal)
			if len(page) == 0 {
				break
			}
			for _, p := range page {
				assert.False(t, seen[p.ID], "duplicate id %d across pages (orderBy=%s)", p.ID, orderBy)
				seen[p.ID] = true
			}
			collected += len(page)
		}
		assert.Equal(t, total, collected, "pages must partition the filtered set (orderBy=%s)", orderBy)
	}
}

// TestApplyRandomFiltersAgainstNaive cross-checks Apply against a naive
// re-implementation over random predicate subsets.
func TestApplyRandomFiltersAgainstNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	products := fixtureProducts()

	for iter := 0; iter < 200; iter++ {
		f := &Filter{PageSize: MaxPageSize}
		if rng.Intn(2) == 0 {
			f.SearchTerm = []string{"hammer", "drill", "a", "zzz"}[rng.Intn(4)]
		}
		if rng.Intn(2) == 0 {
			f.CategoryID = i64(int64(1 + rng.Intn(2)))
		}
		if rng.Intn(2) == 0 {
			f.PriceMin = f64(float64(rng.Intn(100)))
		}
		if rng.Intn(2) == 0 {
			f.PriceMax = f64(float64(50 + rng.Intn(150)))
		}
		if rng.Intn(2) == 0 {
			f.Available = boolp(rng.Intn(2) == 0)
		}

		want := 0
		for _, p := range products {
			if f.Matches(p) {
				want++
			}
		}
		page, total := f.Apply(products)
		assert.Equal(t, want, total, "iter %d", iter)
		assert.Len(t, page, want, "iter %d: single page holds everything", iter)
		for _, p := range page {
			assert.True(t, f.Matches(p), "iter %d: page contains non-matching product %d", iter, p.ID)
		}
	}
}

func TestMetadata(t *testing.T) {
	m := NewMetadata(1, 10, 0)
	assert.Equal(t, 0, m.TotalPages)
	assert.False(t, m.HasPrevious)
	assert.False(t, m.HasNext)

	m = NewMetadata(1, 10, 35)
	assert.Equal(t, 4, m.TotalPages)
	assert.False(t, m.HasPrevious)
	assert.True(t, m.HasNext)

	m = NewMetadata(4, 10, 35)
	assert.True(t, m.HasPrevious)
	assert.False(t, m.HasNext)

	m = NewMetadata(2, 10, 20)
	assert.Equal(t, 2, m.TotalPages)
	assert.True(t, m.HasPrevious)
	assert.False(t, m.HasNext)
}
