package db

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/wobot-todo/backend/internal/errs"
	"github.com/wobot-todo/backend/internal/model"
)

var todoCols = []string{"id", "title", "description", "user_email", "created_at", "updated_at"}

func TestCreateTodo(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	td := &model.Todo{ID: "t1", Title: "milk", Description: "2l", OwnerEmail: "a@x.com"}

	mock.ExpectQuery(`INSERT INTO todos`).
		WithArgs("t1", "milk", "2l", "a@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	require.NoError(t, db.CreateTodo(context.Background(), td))
	require.Equal(t, now, td.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTodo(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`FROM todos WHERE id = \$1`).
		WithArgs("t1").
		WillReturnRows(pgxmock.NewRows(todoCols).AddRow("t1", "milk", "", "b@x.com", now, now))
	td, err := db.GetTodo(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "b@x.com", td.OwnerEmail)

	mock.ExpectQuery(`FROM todos WHERE id = \$1`).
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)
	_, err = db.GetTodo(ctx, "nope")
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListTodosByOwner(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`WHERE user_email = \$1\s+ORDER BY created_at DESC, id\s+OFFSET \$2 LIMIT \$3`).
		WithArgs("a@x.com", 0, 10).
		WillReturnRows(pgxmock.NewRows(todoCols).
			AddRow("t2", "b", "", "a@x.com", now, now).
			AddRow("t1", "a", "", "a@x.com", now, now))
	list, err := db.ListTodosByOwner(ctx, "a@x.com", 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "t2", list[0].ID)

	mock.ExpectQuery(`WHERE user_email = \$1`).
		WithArgs("a@x.com", 20, 10).
		WillReturnRows(pgxmock.NewRows(todoCols))
	list, err = db.ListTodosByOwner(ctx, "a@x.com", 20, 10)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTodo(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`UPDATE todos\s+SET title = \$3, description = \$4, updated_at = NOW\(\)\s+WHERE id = \$1 AND user_email = \$2`).
		WithArgs("t1", "a@x.com", "new", "d").
		WillReturnRows(pgxmock.NewRows(todoCols).AddRow("t1", "new", "d", "a@x.com", now, now))
	td, err := db.UpdateTodo(ctx, "t1", "a@x.com", "new", "d")
	require.NoError(t, err)
	require.Equal(t, "new", td.Title)
	require.Equal(t, "a@x.com", td.OwnerEmail)

	mock.ExpectQuery(`UPDATE todos`).
		WithArgs("t1", "b@x.com", "new", "d").
		WillReturnError(pgx.ErrNoRows)
	_, err = db.UpdateTodo(ctx, "t1", "b@x.com", "new", "d")
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTodo(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM todos WHERE id = \$1 AND user_email = \$2`).
		WithArgs("t1", "a@x.com").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, db.DeleteTodo(ctx, "t1", "a@x.com"))

	mock.ExpectExec(`DELETE FROM todos`).
		WithArgs("t1", "a@x.com").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, db.DeleteTodo(ctx, "t1", "a@x.com"), errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
