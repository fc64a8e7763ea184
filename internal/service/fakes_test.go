package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wobot-todo/backend/internal/auth"
	"github.com/wobot-todo/backend/internal/errs"
	"github.com/wobot-todo/backend/internal/model"
)

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]*model.User

	getErr    error
	createErr error
}

var _ UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) CreateUser(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if f.byEmail == nil {
		f.byEmail = map[string]*model.User{}
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return fmt.Errorf("%w: email already registered", errs.ErrConflict)
	}
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	c := *u
	f.byEmail[u.Email] = &c
	return nil
}

type fakeTodos struct {
	mu   sync.Mutex
	byID map[string]*model.Todo
	seq  int
}

var _ TodoRepository = (*fakeTodos)(nil)

func (f *fakeTodos) CreateTodo(_ context.Context, t *model.Todo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byID == nil {
		f.byID = map[string]*model.Todo{}
	}
	f.seq++
	t.CreatedAt = time.Unix(int64(f.seq), 0).UTC()
	t.UpdatedAt = t.CreatedAt
	c := *t
	f.byID[t.ID] = &c
	return nil
}

func (f *fakeTodos) GetTodo(_ context.Context, id string) (*model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (f *fakeTodos) ListTodosByOwner(_ context.Context, owner string, skip, limit int) ([]model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []model.Todo{}
	for _, t := range f.byID {
		if t.OwnerEmail == owner {
			list = append(list, *t)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if skip >= len(list) {
		return []model.Todo{}, nil
	}
	list = list[skip:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (f *fakeTodos) UpdateTodo(_ context.Context, id, owner, title, description string) (*model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok || t.OwnerEmail != owner {
		return nil, errs.ErrNotFound
	}
	t.Title = title
	t.Description = description
	c := *t
	return &c, nil
}

func (f *fakeTodos) DeleteTodo(_ context.Context, id, owner string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok || t.OwnerEmail != owner {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func newTokens(t *testing.T, opts ...auth.TokenOption) *auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		Algorithm:     "HS256",
		AccessTTL:     30 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}, opts...)
	require.NoError(t, err)
	return svc
}
