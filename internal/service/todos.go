package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wobot-todo/backend/internal/auth"
	"github.com/wobot-todo/backend/internal/errs"
	"github.com/wobot-todo/backend/internal/model"
)

const (
	defaultTodoLimit = 10
	maxTodoLimit     = 100
)

type TodoRepository interface {
	CreateTodo(ctx context.Context, t *model.Todo) error
	GetTodo(ctx context.Context, id string) (*model.Todo, error)
	ListTodosByOwner(ctx context.Context, ownerEmail string, skip, limit int) ([]model.Todo, error)
	UpdateTodo(ctx context.Context, id, ownerEmail, title, description string) (*model.Todo, error)
	DeleteTodo(ctx context.Context, id, ownerEmail string) error
}

// TodoService performs todo CRUD on behalf of a resolved identity.
// Get, Update and Delete report a missing todo as errs.ErrNotFound and a todo
// owned by someone else as errs.ErrForbidden.
type TodoService struct {
	repo TodoRepository
}

func NewTodoService(repo TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) Create(ctx context.Context, owner auth.Identity, req model.TodoRequest) (*model.Todo, error) {
	title, err := validateTodo(req)
	if err != nil {
		return nil, err
	}

	todo := &model.Todo{
		ID:          uuid.NewString(),
		Title:       title,
		Description: req.Description,
		OwnerEmail:  owner.Email,
	}
	if err := s.repo.CreateTodo(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// List returns only todos owned by owner. An empty page is not an error.
func (s *TodoService) List(ctx context.Context, owner auth.Identity, page model.TodoPage) ([]model.Todo, error) {
	if page.Skip < 0 || page.Limit < 0 {
		return nil, fmt.Errorf("%w: skip and limit must not be negative", errs.ErrInvalidInput)
	}
	if page.Limit == 0 {
		page.Limit = defaultTodoLimit
	}
	if page.Limit > maxTodoLimit {
		page.Limit = maxTodoLimit
	}
	return s.repo.ListTodosByOwner(ctx, owner.Email, page.Skip, page.Limit)
}

func (s *TodoService) Get(ctx context.Context, owner auth.Identity, id string) (*model.Todo, error) {
	return s.owned(ctx, owner, id)
}

func (s *TodoService) Update(ctx context.Context, owner auth.Identity, id string, req model.TodoRequest) (*model.Todo, error) {
	title, err := validateTodo(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, owner, id); err != nil {
		return nil, err
	}
	return s.repo.UpdateTodo(ctx, id, owner.Email, title, req.Description)
}

func (s *TodoService) Delete(ctx context.Context, owner auth.Identity, id string) error {
	if _, err := s.owned(ctx, owner, id); err != nil {
		return err
	}
	return s.repo.DeleteTodo(ctx, id, owner.Email)
}

// owned loads a todo and applies the ownership guard.
func (s *TodoService) owned(ctx context.Context, owner auth.Identity, id string) (*model.Todo, error) {
	todo, err := s.repo.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwner(owner, todo.OwnerEmail); err != nil {
		return nil, err
	}
	return todo, nil
}

func validateTodo(req model.TodoRequest) (string, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", errs.ErrInvalidInput)
	}
	return title, nil
}
