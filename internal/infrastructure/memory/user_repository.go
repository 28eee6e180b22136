package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/invenlab/inventory-api/internal/domain/entity"
	"github.com/invenlab/inventory-api/internal/domain/repository"
)

type UserRepository struct {
	db *DB
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	r.db.nextUserSeq++
	u.ID = fmt.Sprintf("user-%d", r.db.nextUserSeq)
	now := time.Now()
	u.RegisteredAt = now
	u.UpdatedAt = now
	r.db.users[u.ID] = copyUser(u)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.FullName = u.FullName
	existing.Bio = u.Bio
	existing.BirthDate = u.BirthDate
	existing.PhotoURL = u.PhotoURL
	existing.AvatarURL = u.AvatarURL
	existing.UpdatedAt = time.Now()
	u.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *UserRepository) UpdateConfig(ctx context.Context, userID string, cfg entity.Configuration) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	// Security.LastPasswordChange is owned by the password path.
	cfg.Security.LastPasswordChange = existing.Config.Security.LastPasswordChange
	existing.Config = cfg
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID, hash string, changedAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Password = hash
	t := changedAt
	existing.Config.Security.LastPasswordChange = &t
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) AssignRole(ctx context.Context, userID, role string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, have := range existing.Roles {
		if have == role {
			return nil
		}
	}
	existing.Roles = append(existing.Roles, role)
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
