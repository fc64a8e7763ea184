package db

import (
	"context"
	"fmt"

	"github.com/wobot-todo/backend/internal/errs"
	"github.com/wobot-todo/backend/internal/model"
)

// CreateUser inserts u and fills its timestamps. A taken email yields errs.ErrConflict.
func (db *Postgres) CreateUser(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := db.Pool.QueryRow(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash).Scan(
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already registered", errs.ErrConflict)
		}
		return err
	}
	return nil
}

// GetUserByEmail loads a user by exact email. No row yields errs.ErrNotFound.
func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	var user model.User
	err := db.Pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
