package memory

import (
	"context"
	"sort"
	"time"

	"github.com/invenlab/inventory-api/internal/domain/entity"
	"github.com/invenlab/inventory-api/internal/domain/repository"
)

type CategoryRepository struct {
	db *DB
}

func (r *CategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*entity.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		cp := copyCategory(c)
		cp.ProductCount = r.db.productCount(c.ID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := copyCategory(c)
	cp.ProductCount = r.db.productCount(id)
	return cp, nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	_, ok := r.db.categories[id]
	return ok, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.nextCategoryID++
	c.ID = r.db.nextCategoryID
	c.CreatedAt = time.Now()
	r.db.categories[c.ID] = copyCategory(c)
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.categories[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Name = c.Name
	existing.Description = c.Description
	existing.Active = c.Active
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.categories[id]; !ok {
		return repository.ErrNotFound
	}
	if r.db.productCount(id) > 0 {
		return repository.ErrCategoryReferenced
	}
	delete(r.db.categories, id)
	return nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
