package entity

import "time"

// LowStockThreshold marks products that need restocking.
const LowStockThreshold = 10

// Product belongs to exactly one Category via CategoryID.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Stock       int
	ImageURL    string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CategoryID  int64

	// CategoryName is joined on reads, never stored.
	CategoryName string
}

// LowStock reports whether the product is below the restock threshold.
// Derived at read time, not persisted.
func (p *Product) LowStock() bool { return p.Stock < LowStockThreshold }

// OutOfStock reports whether the product has no stock left.
func (p *Product) OutOfStock() bool { return p.Stock == 0 }
