package entity

import "time"

// Category groups products. A category cannot be deleted while it still
// owns products (enforced both in the service and by the FK RESTRICT).
type Category struct {
	ID          int64
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time

	// ProductCount is loaded on reads, never stored.
	ProductCount int
}
