package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wobot-todo/backend/internal/errs"
	"github.com/wobot-todo/backend/internal/model"
)

// Identity is an authenticated user as seen outside the auth subsystem.
// It never carries the password hash.
type Identity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IdentityFromUser strips the password hash from u.
func IdentityFromUser(u *model.User) Identity {
	return Identity{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserStore looks a user up by email with a bound parameter.
// It returns errs.ErrNotFound when no row matches.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// Resolver turns a bearer token into an Identity.
type Resolver struct {
	tokens *TokenService
	users  UserStore
}

// NewResolver constructs a Resolver.
func NewResolver(tokens *TokenService, users UserStore) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// Resolve validates an access token and loads its subject.
//
// Malformed or expired tokens yield errs.ErrUnauthenticated joined with the
// token error; an unknown subject yields errs.ErrNotFound. Store failures are
// returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, bearer string) (Identity, error) {
	return r.resolve(ctx, bearer, AccessToken)
}

// ResolveRefresh is Resolve for refresh tokens.
func (r *Resolver) ResolveRefresh(ctx context.Context, token string) (Identity, error) {
	return r.resolve(ctx, token, RefreshToken)
}

func (r *Resolver) resolve(ctx context.Context, token string, kind TokenKind) (Identity, error) {
	if token == "" {
		return Identity{}, fmt.Errorf("%w: missing bearer token", errs.ErrUnauthenticated)
	}

	payload, err := r.tokens.Decode(token, kind)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", errs.ErrUnauthenticated, err)
	}

	user, err := r.users.GetUserByEmail(ctx, payload.Subject)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return Identity{}, fmt.Errorf("%w: no such identity", errs.ErrNotFound)
		}
		return Identity{}, err
	}
	return IdentityFromUser(user), nil
}
