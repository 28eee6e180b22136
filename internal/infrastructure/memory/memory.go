// Package memory provides map-backed implementations of the domain
// repositories. They honor the same semantics as the Postgres
// implementations (catalog filtering included) and back the service
// test suites without a database.
package memory

import (
	"sync"

	"github.com/invenlab/inventory-api/internal/domain/entity"
)

// DB is the shared in-memory table set. A single lock covers all tables
// so cross-table checks (the category delete guard) stay consistent.
type DB struct {
	mu sync.RWMutex

	users      map[string]*entity.User
	categories map[int64]*entity.Category
	products   map[int64]*entity.Product

	nextCategoryID int64
	nextProductID  int64
	nextUserSeq    int64
}

func NewDB() *DB {
	return &DB{
		users:      make(map[string]*entity.User),
		categories: make(map[int64]*entity.Category),
		products:   make(map[int64]*entity.Product),
	}
}

// Users returns the user repository view of the database.
func (db *DB) Users() *UserRepository { return &UserRepository{db: db} }

// Categories returns the category repository view of the database.
func (db *DB) Categories() *CategoryRepository { return &CategoryRepository{db: db} }

// Products returns the product repository view of the database.
func (db *DB) Products() *ProductRepository { return &ProductRepository{db: db} }

func (db *DB) productCount(categoryID int64) int {
	n := 0
	for _, p := range db.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n
}

func copyUser(u *entity.User) *entity.User {
	cp := *u
	cp.Roles = append([]string(nil), u.Roles...)
	if u.BirthDate != nil {
		d := *u.BirthDate
		cp.BirthDate = &d
	}
	if u.Config.Security.LastPasswordChange != nil {
		t := *u.Config.Security.LastPasswordChange
		cp.Config.Security.LastPasswordChange = &t
	}
	return &cp
}

func copyProduct(p *entity.Product) *entity.Product {
	cp := *p
	return &cp
}

func copyCategory(c *entity.Category) *entity.Category {
	cp := *c
	return &cp
}
