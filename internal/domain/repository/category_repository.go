package repository

import (
	"context"

	"github.com/invenlab/inventory-api/internal/domain/entity"
)

// CategoryRepository defines database operations for categories. Reads
// include the owned product count.
type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.Category, error)
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, c *entity.Category) error
	Update(ctx context.Context, c *entity.Category) error

	// Delete fails with ErrCategoryReferenced while products still point
	// at the category.
	Delete(ctx context.Context, id int64) error
}
