package application

import "errors"

// Service-level errors the handlers translate into HTTP statuses.
var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrWrongPassword       = errors.New("current password does not match")
	ErrResetTokenInvalid   = errors.New("reset token invalid or expired")
	ErrUserNotFound        = errors.New("user not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryHasProducts = errors.New("category still has products")
	ErrProductNotFound     = errors.New("product not found")
)
