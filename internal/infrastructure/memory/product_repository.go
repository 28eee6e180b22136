package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/invenlab/inventory-api/internal/domain/catalog"
	"github.com/invenlab/inventory-api/internal/domain/entity"
	"github.com/invenlab/inventory-api/internal/domain/repository"
)

type ProductRepository struct {
	db *DB
}

func (r *ProductRepository) withCategoryName(p *entity.Product) *entity.Product {
	cp := copyProduct(p)
	if c, ok := r.db.categories[p.CategoryID]; ok {
		cp.CategoryName = c.Name
	}
	return cp
}

func (r *ProductRepository) snapshot() []*entity.Product {
	out := make([]*entity.Product, 0, len(r.db.products))
	for _, p := range r.db.products {
		out = append(out, r.withCategoryName(p))
	}
	return out
}

func (r *ProductRepository) List(ctx context.Context, f *catalog.Filter) ([]*entity.Product, int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	items, total := f.Apply(r.snapshot())
	return items, total, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.withCategoryName(p), nil
}

func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*entity.Product, 0)
	for _, p := range r.db.products {
		if p.CategoryID == categoryID {
			out = append(out, r.withCategoryName(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ProductRepository) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*entity.Product, 0)
	for _, p := range r.db.products {
		if p.Stock < entity.LowStockThreshold {
			out = append(out, r.withCategoryName(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stock != out[j].Stock {
			return out[i].Stock < out[j].Stock
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.nextProductID++
	p.ID = r.db.nextProductID
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if c, ok := r.db.categories[p.CategoryID]; ok {
		p.CategoryName = c.Name
	}
	r.db.products[p.ID] = copyProduct(p)
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.products[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Name = p.Name
	existing.Description = p.Description
	existing.Price = p.Price
	existing.Stock = p.Stock
	existing.ImageURL = p.ImageURL
	existing.Available = p.Available
	existing.CategoryID = p.CategoryID
	existing.UpdatedAt = time.Now()
	p.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *ProductRepository) UpdateStock(ctx context.Context, id int64, stock int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Stock = stock
	if stock == 0 {
		existing.Available = false
	}
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *ProductRepository) SetImageURL(ctx context.Context, id int64, url string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	existing.ImageURL = url
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.products, id)
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
