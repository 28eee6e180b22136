package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invenlab/inventory-api/internal/domain/entity"
	"github.com/invenlab/inventory-api/internal/domain/repository"
)

const uniqueViolation = "23505"

// userColumns is the select list shared by every user read. The flattened
// configuration columns map onto entity.Configuration.
const userColumns = `
	id, email, password_hash, full_name, bio, birth_date, photo_url, avatar_url,
	registered_at, updated_at,
	theme, primary_color, secondary_color, font_family, font_size, contrast_mode,
	language, timezone, date_format, currency,
	notify_email, notify_products, notify_categories, notify_promotions,
	public_profile, show_email, show_birth_date,
	reduce_animations, screen_reader, keyboard_navigation,
	multi_session, two_factor, last_password_change`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	c := &u.Config
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.FullName, &u.Bio, &u.BirthDate, &u.PhotoURL, &u.AvatarURL,
		&u.RegisteredAt, &u.UpdatedAt,
		&c.Appearance.Theme, &c.Appearance.PrimaryColor, &c.Appearance.SecondaryColor,
		&c.Appearance.FontFamily, &c.Appearance.FontSize, &c.Appearance.ContrastMode,
		&c.Locale.Language, &c.Locale.Timezone, &c.Locale.DateFormat, &c.Locale.Currency,
		&c.Notifications.Email, &c.Notifications.Products, &c.Notifications.Categories, &c.Notifications.Promotions,
		&c.Privacy.PublicProfile, &c.Privacy.ShowEmail, &c.Privacy.ShowBirthDate,
		&c.Accessibility.ReduceAnimations, &c.Accessibility.ScreenReader, &c.Accessibility.KeyboardNavigation,
		&c.Security.MultiSession, &c.Security.TwoFactor, &c.Security.LastPasswordChange,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) loadRoles(ctx context.Context, u *entity.User) error {
	rows, err := r.pool.Query(ctx, `
		SELECT r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.name
	`, u.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		u.Roles = append(u.Roles, name)
	}
	return rows.Err()
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	c := &u.Config
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (
			email, password_hash, full_name, bio, birth_date, photo_url, avatar_url,
			theme, primary_color, secondary_color, font_family, font_size, contrast_mode,
			language, timezone, date_format, currency,
			notify_email, notify_products, notify_categories, notify_promotions,
			public_profile, show_email, show_birth_date,
			reduce_animations, screen_reader, keyboard_navigation,
			multi_session, two_factor
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29)
		RETURNING id, registered_at, updated_at
	`,
		u.Email, u.Password, u.FullName, u.Bio, u.BirthDate, u.PhotoURL, u.AvatarURL,
		c.Appearance.Theme, c.Appearance.PrimaryColor, c.Appearance.SecondaryColor,
		c.Appearance.FontFamily, c.Appearance.FontSize, c.Appearance.ContrastMode,
		c.Locale.Language, c.Locale.Timezone, c.Locale.DateFormat, c.Locale.Currency,
		c.Notifications.Email, c.Notifications.Products, c.Notifications.Categories, c.Notifications.Promotions,
		c.Privacy.PublicProfile, c.Privacy.ShowEmail, c.Privacy.ShowBirthDate,
		c.Accessibility.ReduceAnimations, c.Accessibility.ScreenReader, c.Accessibility.KeyboardNavigation,
		c.Security.MultiSession, c.Security.TwoFactor,
	)
	if err := row.Scan(&u.ID, &u.RegisteredAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadRoles(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		return nil, err
	}
	if err := r.loadRoles(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET full_name = $1, bio = $2, birth_date = $3, photo_url = $4, avatar_url = $5, updated_at = $6
		WHERE id = $7
	`, u.FullName, u.Bio, u.BirthDate, u.PhotoURL, u.AvatarURL, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateConfig(ctx context.Context, userID string, cfg entity.Configuration) error {
	c := &cfg
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET
			theme = $1, primary_color = $2, secondary_color = $3,
			font_family = $4, font_size = $5, contrast_mode = $6,
			language = $7, timezone = $8, date_format = $9, currency = $10,
			notify_email = $11, notify_products = $12, notify_categories = $13, notify_promotions = $14,
			public_profile = $15, show_email = $16, show_birth_date = $17,
			reduce_animations = $18, screen_reader = $19, keyboard_navigation = $20,
			multi_session = $21, two_factor = $22,
			updated_at = now()
		WHERE id = $23
	`,
		c.Appearance.Theme, c.Appearance.PrimaryColor, c.Appearance.SecondaryColor,
		c.Appearance.FontFamily, c.Appearance.FontSize, c.Appearance.ContrastMode,
		c.Locale.Language, c.Locale.Timezone, c.Locale.DateFormat, c.Locale.Currency,
		c.Notifications.Email, c.Notifications.Products, c.Notifications.Categories, c.Notifications.Promotions,
		c.Privacy.PublicProfile, c.Privacy.ShowEmail, c.Privacy.ShowBirthDate,
		c.Accessibility.ReduceAnimations, c.Accessibility.ScreenReader, c.Accessibility.KeyboardNavigation,
		c.Security.MultiSession, c.Security.TwoFactor,
		userID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID, hash string, changedAt time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, last_password_change = $2, updated_at = now()
		WHERE id = $3
	`, hash, changedAt, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) AssignRole(ctx context.Context, userID, role string) error {
	var roleID string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO roles (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET updated_at = now()
		RETURNING id
	`, role).Scan(&roleID)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`, userID, roleID)
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
