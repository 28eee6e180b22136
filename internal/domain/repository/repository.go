package repository

import "errors"

// Sentinel errors shared by all repository implementations. Services map
// these onto the API error taxonomy.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrCategoryReferenced = errors.New("category still owns products")
)
