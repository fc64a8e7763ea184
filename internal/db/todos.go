package db

import (
	"context"

	"github.com/wobot-todo/backend/internal/errs"
	"github.com/wobot-todo/backend/internal/model"
)

const todoColumns = `id, title, description, user_email, created_at, updated_at`

// CreateTodo inserts t and fills its timestamps.
func (db *Postgres) CreateTodo(ctx context.Context, t *model.Todo) error {
	query := `
		INSERT INTO todos (id, title, description, user_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	return db.Pool.QueryRow(ctx, query, t.ID, t.Title, t.Description, t.OwnerEmail).Scan(
		&t.CreatedAt,
		&t.UpdatedAt,
	)
}

// GetTodo loads a todo by ID regardless of owner so callers can tell a
// missing todo from one owned by someone else.
func (db *Postgres) GetTodo(ctx context.Context, id string) (*model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`

	var t model.Todo
	err := db.Pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.OwnerEmail,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListTodosByOwner returns one page of the owner's todos, newest first.
func (db *Postgres) ListTodosByOwner(ctx context.Context, ownerEmail string, skip, limit int) ([]model.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE user_email = $1
		ORDER BY created_at DESC, id
		OFFSET $2 LIMIT $3
	`
	rows, err := db.Pool.Query(ctx, query, ownerEmail, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Todo{}
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.OwnerEmail, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// UpdateTodo rewrites title and description of a todo held by ownerEmail.
// user_email is only ever matched, never set.
func (db *Postgres) UpdateTodo(ctx context.Context, id, ownerEmail, title, description string) (*model.Todo, error) {
	query := `
		UPDATE todos
		SET title = $3, description = $4, updated_at = NOW()
		WHERE id = $1 AND user_email = $2
		RETURNING ` + todoColumns

	var t model.Todo
	err := db.Pool.QueryRow(ctx, query, id, ownerEmail, title, description).Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.OwnerEmail,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// DeleteTodo removes a todo held by ownerEmail.
func (db *Postgres) DeleteTodo(ctx context.Context, id, ownerEmail string) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_email = $2`

	tag, err := db.Pool.Exec(ctx, query, id, ownerEmail)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
