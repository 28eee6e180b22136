package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invenlab/inventory-api/internal/domain/catalog"
	"github.com/invenlab/inventory-api/internal/domain/entity"
	"github.com/invenlab/inventory-api/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.stock, p.image_url, p.available,
	       p.created_at, p.updated_at, p.category_id, c.name AS category_name
	FROM products p
	JOIN categories c ON c.id = p.category_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL,
		&p.Available, &p.CreatedAt, &p.UpdatedAt, &p.CategoryID, &p.CategoryName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) collect(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	out := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// List translates the catalog filter into a conjunctive WHERE clause,
// counts the filtered set before paginating, and orders by the resolved
// sort column with an id tiebreak.
func (r *ProductRepository) List(ctx context.Context, f *catalog.Filter) ([]*entity.Product, int, error) {
	sortCol := f.Normalize()

	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if term := strings.TrimSpace(f.SearchTerm); term != "" {
		ph := arg("%" + term + "%")
		where = append(where, fmt.Sprintf("(p.name ILIKE %s OR p.description ILIKE %s)", ph, ph))
	}
	if f.CategoryID != nil {
		where = append(where, "p.category_id = "+arg(*f.CategoryID))
	}
	if f.PriceMin != nil {
		where = append(where, "p.price >= "+arg(*f.PriceMin))
	}
	if f.PriceMax != nil {
		where = append(where, "p.price <= "+arg(*f.PriceMax))
	}
	if f.Available != nil {
		where = append(where, "p.available = "+arg(*f.Available))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := `SELECT count(*) FROM products p` + clause
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dir := "ASC"
	if f.Descending {
		dir = "DESC"
	}
	// sortCol comes from the catalog allowlist, never from user input.
	order := fmt.Sprintf(" ORDER BY p.%s %s, p.id ASC", sortCol, dir)
	page := fmt.Sprintf(" LIMIT %s OFFSET %s", arg(f.PageSize), arg(f.Offset()))

	rows, err := r.pool.Query(ctx, productSelect+clause+order+page, args...)
	if err != nil {
		return nil, 0, err
	}
	items, err := r.collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
}

func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	rows, err := r.pool.Query(ctx, productSelect+` WHERE p.category_id = $1 ORDER BY p.name, p.id`, categoryID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *ProductRepository) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.pool.Query(ctx,
		productSelect+` WHERE p.stock < $1 ORDER BY p.stock ASC, p.id ASC`, entity.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO products (name, description, price, stock, image_url, available, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Description, p.Price, p.Stock, p.ImageURL, p.Available, p.CategoryID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, image_url = $5,
		    available = $6, category_id = $7, updated_at = now()
		WHERE id = $8
	`, p.Name, p.Description, p.Price, p.Stock, p.ImageURL, p.Available, p.CategoryID, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) UpdateStock(ctx context.Context, id int64, stock int) error {
	// Stock hitting zero disables the product; a restock never re-enables
	// it automatically.
	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET stock = $1,
		    available = CASE WHEN $1 = 0 THEN false ELSE available END,
		    updated_at = now()
		WHERE id = $2
	`, stock, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) SetImageURL(ctx context.Context, id int64, url string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE products SET image_url = $1, updated_at = now() WHERE id = $2
	`, url, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
