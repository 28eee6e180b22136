package repository

import (
	"context"
	"time"

	"github.com/invenlab/inventory-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Implementations load roles and the configuration bundle together with the
// user row.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpdateProfile persists the basic profile fields (fullName, bio,
	// birthDate, photoUrl, avatarUrl).
	UpdateProfile(ctx context.Context, u *entity.User) error

	// UpdateConfig persists the whole configuration bundle.
	UpdateConfig(ctx context.Context, userID string, cfg entity.Configuration) error

	// UpdatePassword replaces the stored hash and records the change time.
	UpdatePassword(ctx context.Context, userID, hash string, changedAt time.Time) error

	// AssignRole grants a role to the user, creating the role row if needed.
	AssignRole(ctx context.Context, userID, role string) error
}
