package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/invenlab/inventory-api/internal/domain/entity"
	repo "github.com/invenlab/inventory-api/internal/domain/repository"
	"github.com/invenlab/inventory-api/pkg/helpers"
	"github.com/invenlab/inventory-api/pkg/mailer"
	"github.com/invenlab/inventory-api/pkg/mailer/templates"
)

// EmailPublisher queues outbound email jobs. Satisfied by
// helpers.RabbitPublisher.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService owns registration, login and the password reset flow.
// Reset tokens live in Redis only; a consumed or expired token is
// indistinguishable from one that never existed.
type AuthService struct {
	Users       repo.UserRepository
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	Publisher   EmailPublisher
	Logger      *logrus.Logger
	AppName     string
	FrontendURL string
	ResetTTL    time.Duration
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, pub EmailPublisher, logger *logrus.Logger, appName, frontendURL string, resetTTL time.Duration) *AuthService {
	return &AuthService{
		Users:       users,
		JWT:         jwt,
		Redis:       rdb,
		Publisher:   pub,
		Logger:      logger,
		AppName:     appName,
		FrontendURL: frontendURL,
		ResetTTL:    resetTTL,
	}
}

// Session is what a successful login hands back to the client.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

func resetTokenKey(token string) string {
	return "pwd:reset:token:" + token
}

// Register creates an account with the default configuration and the
// base role, queues a welcome email and issues a session token so the
// client is signed in right away. Email comparison is case-insensitive
// at the store level.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*Session, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:    email,
		Password: hash,
		FullName: fullName,
		Config:   entity.DefaultConfiguration(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if err := s.Users.AssignRole(ctx, u.ID, entity.RoleUser); err != nil {
		return nil, err
	}
	u.Roles = append(u.Roles, entity.RoleUser)

	token, exp, err := s.JWT.Generate(u.ID, u.Email, u.FullName, u.Roles)
	if err != nil {
		return nil, err
	}

	s.queueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: templates.Welcome,
		Data: templates.ToMap(templates.EmailData{
			Name:    u.FullName,
			Email:   u.Email,
			AppName: s.AppName,
		}),
	})
	return &Session{Token: token, ExpiresAt: exp, User: u}, nil
}

// Login validates credentials and issues a signed token. Unknown email
// and wrong password both surface as ErrInvalidCredentials; the
// distinction stays in the debug log.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Debug("login: unknown email")
		}
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		if s.Logger != nil {
			s.Logger.WithField("user_id", u.ID).Debug("login: password mismatch")
		}
		return nil, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.Generate(u.ID, u.Email, u.FullName, u.Roles)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, User: u}, nil
}

// RequestPasswordReset stores a one-shot token in Redis and queues the
// reset email. It succeeds regardless of whether the email is
// registered, so the endpoint cannot be used to probe accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(s.ResetTTL)
	if err := s.Redis.Set(ctx, resetTokenKey(token), u.ID, s.ResetTTL).Err(); err != nil {
		return err
	}

	s.queueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: templates.PasswordReset,
		Data: templates.ToMap(templates.EmailData{
			Name:          u.FullName,
			Email:         u.Email,
			AppName:       s.AppName,
			ResetURL:      fmt.Sprintf("%s/reset-password?token=%s", s.FrontendURL, token),
			ExpiresAt:     expiresAt,
			ExpiresAtText: expiresAt.UTC().Format("Jan 2, 2006 15:04 MST"),
		}),
	})
	return nil
}

// ResetPassword consumes the token and stores the new password hash.
// The token must belong to the account identified by email; it is
// deleted before the update so it cannot be replayed.
func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	key := resetTokenKey(token)
	userID, err := s.Redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrResetTokenInvalid
	}
	if err != nil {
		return err
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u.ID != userID {
		return ErrResetTokenInvalid
	}
	if err := s.Redis.Del(ctx, key).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("delete reset token failed")
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, userID, hash, time.Now()); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}
	return nil
}

// queueEmail is best-effort: a broker outage must not fail the calling
// operation.
func (s *AuthService) queueEmail(ctx context.Context, job mailer.EmailJob) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"to":       job.To,
			"template": job.Template,
		}).Warn("queue email failed")
	}
}
