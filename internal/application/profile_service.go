package application

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/invenlab/inventory-api/internal/domain/entity"
	repo "github.com/invenlab/inventory-api/internal/domain/repository"
	"github.com/invenlab/inventory-api/pkg/helpers"
)

// ImageStore abstracts the attachment bucket. Satisfied by
// storage.Uploader.
type ImageStore interface {
	Upload(ctx context.Context, r io.Reader, filename, contentType, folder string, size int64) (string, error)
	Replace(ctx context.Context, r io.Reader, filename, contentType, folder string, size int64, oldURL string) (string, error)
	Remove(ctx context.Context, url string) (bool, error)
}

const profilePhotoFolder = "profiles"

// ProfileService owns the authenticated user's profile and settings
// bundle.
type ProfileService struct {
	Users  repo.UserRepository
	Images ImageStore
	Logger *logrus.Logger
}

func NewProfileService(users repo.UserRepository, images ImageStore, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Users: users, Images: images, Logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// BasicInfoUpdate carries the optional profile fields. Nil pointers
// leave the stored value untouched.
type BasicInfoUpdate struct {
	FullName  *string
	Bio       *string
	BirthDate *time.Time
	AvatarURL *string
}

// UpdateBasicInfo merges the provided fields into the profile and
// returns the updated user.
func (s *ProfileService) UpdateBasicInfo(ctx context.Context, userID string, in BasicInfoUpdate) (*entity.User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.BirthDate != nil {
		u.BirthDate = in.BirthDate
	}
	if in.AvatarURL != nil {
		u.AvatarURL = *in.AvatarURL
	}
	if err := s.Users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Each sub-config update replaces its section wholesale while keeping
// the rest of the bundle intact.

func (s *ProfileService) UpdateAppearance(ctx context.Context, userID string, a entity.Appearance) (*entity.User, error) {
	return s.updateConfig(ctx, userID, func(c *entity.Configuration) { c.Appearance = a })
}

func (s *ProfileService) UpdateLocale(ctx context.Context, userID string, l entity.Locale) (*entity.User, error) {
	return s.updateConfig(ctx, userID, func(c *entity.Configuration) { c.Locale = l })
}

func (s *ProfileService) UpdateNotifications(ctx context.Context, userID string, n entity.Notifications) (*entity.User, error) {
	return s.updateConfig(ctx, userID, func(c *entity.Configuration) { c.Notifications = n })
}

func (s *ProfileService) UpdatePrivacy(ctx context.Context, userID string, p entity.Privacy) (*entity.User, error) {
	return s.updateConfig(ctx, userID, func(c *entity.Configuration) { c.Privacy = p })
}

func (s *ProfileService) UpdateAccessibility(ctx context.Context, userID string, a entity.Accessibility) (*entity.User, error) {
	return s.updateConfig(ctx, userID, func(c *entity.Configuration) { c.Accessibility = a })
}

// UpdateSecurity replaces the toggles only; LastPasswordChange is owned
// by the password path and preserved by the store.
func (s *ProfileService) UpdateSecurity(ctx context.Context, userID string, sec entity.Security) (*entity.User, error) {
	return s.updateConfig(ctx, userID, func(c *entity.Configuration) {
		c.Security.MultiSession = sec.MultiSession
		c.Security.TwoFactor = sec.TwoFactor
	})
}

func (s *ProfileService) updateConfig(ctx context.Context, userID string, apply func(*entity.Configuration)) (*entity.User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	apply(&u.Config)
	if err := s.Users.UpdateConfig(ctx, userID, u.Config); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword verifies the current password before storing the new
// hash.
func (s *ProfileService) ChangePassword(ctx context.Context, userID, current, newPassword string) error {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !helpers.CompareHashAndPassword(u.Password, current) {
		return ErrWrongPassword
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, userID, hash, time.Now())
}

// UploadPhoto stores the new photo before the previous one is retired,
// so a failed upload leaves the profile untouched.
func (s *ProfileService) UploadPhoto(ctx context.Context, userID string, r io.Reader, filename, contentType string, size int64) (*entity.User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	url, err := s.Images.Replace(ctx, r, filename, contentType, profilePhotoFolder, size, u.PhotoURL)
	if err != nil {
		return nil, err
	}
	u.PhotoURL = url
	if err := s.Users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// RemovePhoto clears the stored URL even when the object is already
// gone from the bucket.
func (s *ProfileService) RemovePhoto(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.PhotoURL != "" {
		if _, err := s.Images.Remove(ctx, u.PhotoURL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("remove profile photo failed")
		}
		u.PhotoURL = ""
		if err := s.Users.UpdateProfile(ctx, u); err != nil {
			return nil, err
		}
	}
	return u, nil
}
