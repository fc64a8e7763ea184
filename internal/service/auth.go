package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wobot-todo/backend/internal/auth"
	"github.com/wobot-todo/backend/internal/errs"
	"github.com/wobot-todo/backend/internal/model"
	"github.com/wobot-todo/backend/internal/obs"
)

// UserRepository is the user storage the auth service needs.
type UserRepository interface {
	auth.UserStore
	CreateUser(ctx context.Context, u *model.User) error
}

type AuthService struct {
	repo     UserRepository
	tokens   *auth.TokenService
	resolver *auth.Resolver
	log      *zap.Logger
	metrics  *obs.Metrics
}

func NewAuthService(repo UserRepository, tokens *auth.TokenService, log *zap.Logger, metrics *obs.Metrics) *AuthService {
	return &AuthService{
		repo:     repo,
		tokens:   tokens,
		resolver: auth.NewResolver(tokens, repo),
		log:      log,
		metrics:  metrics,
	}
}

// Resolver exposes the identity resolver bound to this service's user store.
func (s *AuthService) Resolver() *auth.Resolver {
	return s.resolver
}

// Signup registers a new identity and returns it without the password hash.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (auth.Identity, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	if err := validateSignup(name, email, req.Password); err != nil {
		s.metrics.AuthEvent("signup", err)
		return auth.Identity{}, err
	}

	_, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		err = fmt.Errorf("%w: user with this email already exists", errs.ErrConflict)
		s.metrics.AuthEvent("signup", err)
		return auth.Identity{}, err
	case !errors.Is(err, errs.ErrNotFound):
		return auth.Identity{}, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return auth.Identity{}, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		s.metrics.AuthEvent("signup", err)
		return auth.Identity{}, err
	}

	s.metrics.AuthEvent("signup", nil)
	s.log.Debug("user registered", zap.String("user_id", user.ID))
	return auth.IdentityFromUser(user), nil
}

// Login verifies credentials and issues a token pair. Unknown email and wrong
// password both yield errs.ErrBadCredentials. email is looked up as given;
// normalization happens once, at signup.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.Tokens, error) {
	if email == "" || password == "" {
		s.metrics.AuthEvent("login", errs.ErrBadCredentials)
		return model.Tokens{}, errs.ErrBadCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			return model.Tokens{}, err
		}
		// Spend the same bcrypt work as a real comparison.
		auth.VerifyPassword(password, dummyHash())
		s.metrics.AuthEvent("login", errs.ErrBadCredentials)
		return model.Tokens{}, errs.ErrBadCredentials
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		s.log.Debug("login rejected", zap.String("user_id", user.ID))
		s.metrics.AuthEvent("login", errs.ErrBadCredentials)
		return model.Tokens{}, errs.ErrBadCredentials
	}

	tokens, err := s.issueTokens(user.Email)
	if err != nil {
		return model.Tokens{}, err
	}
	s.metrics.AuthEvent("login", nil)
	return tokens, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.Tokens, error) {
	identity, err := s.resolver.ResolveRefresh(ctx, strings.TrimSpace(refreshToken))
	if err != nil {
		s.metrics.AuthEvent("refresh", err)
		return model.Tokens{}, err
	}

	tokens, err := s.issueTokens(identity.Email)
	if err != nil {
		return model.Tokens{}, err
	}
	s.metrics.AuthEvent("refresh", nil)
	return tokens, nil
}

func (s *AuthService) issueTokens(subject string) (model.Tokens, error) {
	access, err := s.tokens.IssueAccess(subject, 0)
	if err != nil {
		return model.Tokens{}, err
	}
	refresh, err := s.tokens.IssueRefresh(subject, 0)
	if err != nil {
		return model.Tokens{}, err
	}
	return model.Tokens{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.tokens.AccessTTL(),
	}, nil
}

func validateSignup(name, email, password string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", errs.ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email", errs.ErrInvalidInput)
	}
	if strings.ContainsRune(email, 0) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: NUL byte in input", errs.ErrInvalidInput)
	}
	return auth.ValidatePassword(password)
}

var (
	dummyOnce sync.Once
	dummy     string
)

func dummyHash() string {
	dummyOnce.Do(func() {
		dummy, _ = auth.HashPassword(uuid.NewString())
	})
	return dummy
}
