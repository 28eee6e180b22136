package repository

import (
	"context"

	"github.com/invenlab/inventory-api/internal/domain/catalog"
	"github.com/invenlab/inventory-api/internal/domain/entity"
)

// ProductRepository defines database operations for products. Reads join
// the category name.
type ProductRepository interface {
	// List applies the catalog filter and returns the page items plus the
	// total count of the filtered set before pagination.
	List(ctx context.Context, f *catalog.Filter) ([]*entity.Product, int, error)

	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)

	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error

	// UpdateStock replaces the stock value; when it reaches zero the
	// product is also marked unavailable. Reaching nonzero never flips
	// availability back on.
	UpdateStock(ctx context.Context, id int64, stock int) error

	// SetImageURL updates only the stored image reference.
	SetImageURL(ctx context.Context, id int64, url string) error

	Delete(ctx context.Context, id int64) error
}
