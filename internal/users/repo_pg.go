package users

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements UsersRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, email, name, picture_url, motto, created_at, updated_at`

// Upsert creates the profile on first sign-in and refreshes the identity
// fields afterwards. The motto column is left alone on conflict.
func (r *PGRepo) Upsert(ctx context.Context, user User) (User, error) {
	query := `
INSERT INTO users (id, email, name, picture_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW())
ON CONFLICT (id) DO UPDATE
SET email = EXCLUDED.email,
    name = EXCLUDED.name,
    picture_url = EXCLUDED.picture_url,
    updated_at = NOW()
RETURNING ` + userColumns

	row := r.DB.QueryRowContext(ctx, query, user.ID, user.Email, user.Name, user.PictureURL)
	return scanUser(row)
}

// GetByID returns a user profile.
func (r *PGRepo) GetByID(ctx context.Context, userId string) (User, error) {
	query := `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, userId))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// UpdateMotto sets the profile motto.
func (r *PGRepo) UpdateMotto(ctx context.Context, userId, motto string) (User, error) {
	query := `
UPDATE users
SET motto = $1, updated_at = NOW()
WHERE id = $2
RETURNING ` + userColumns

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, motto, userId))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PictureURL,
		&user.Motto,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

var _ UsersRepo = (*PGRepo)(nil)
