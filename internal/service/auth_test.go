package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wobot-todo/backend/internal/auth"
	"github.com/wobot-todo/backend/internal/errs"
	"github.com/wobot-todo/backend/internal/model"
	"github.com/wobot-todo/backend/internal/obs"
)

func newAuthService(t *testing.T, users *fakeUsers, opts ...auth.TokenOption) *AuthService {
	t.Helper()
	return NewAuthService(users, newTokens(t, opts...), zaptest.NewLogger(t), obs.NewMetrics())
}

func TestSignup_ThenDuplicateConflicts(t *testing.T) {
	users := &fakeUsers{}
	s := newAuthService(t, users)
	ctx := context.Background()

	id, err := s.Signup(ctx, model.SignupRequest{Name: "A", Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	require.NotEmpty(t, id.ID)
	require.Equal(t, "A", id.Name)
	require.Equal(t, "a@x.com", id.Email)
	require.False(t, id.CreatedAt.IsZero())

	stored := users.byEmail["a@x.com"]
	require.NotEqual(t, "pw1", stored.PasswordHash)
	require.True(t, auth.VerifyPassword("pw1", stored.PasswordHash))

	_, err = s.Signup(ctx, model.SignupRequest{Name: "A2", Email: "a@x.com", Password: "pw2"})
	require.ErrorIs(t, err, errs.ErrConflict)
	require.Len(t, users.byEmail, 1)
}

func TestSignup_InsertRaceConflicts(t *testing.T) {
	users := &fakeUsers{createErr: errs.ErrConflict}
	s := newAuthService(t, users)

	_, err := s.Signup(context.Background(), model.SignupRequest{Name: "A", Email: "a@x.com", Password: "pw1"})
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestSignup_InvalidInput(t *testing.T) {
	s := newAuthService(t, &fakeUsers{})

	cases := map[string]model.SignupRequest{
		"no name":       {Name: " ", Email: "a@x.com", Password: "pw"},
		"no at":         {Name: "A", Email: "ax.com", Password: "pw"},
		"empty pw":      {Name: "A", Email: "a@x.com", Password: ""},
		"long pw":       {Name: "A", Email: "a@x.com", Password: strings.Repeat("p", 73)},
		"nul in email":  {Name: "A", Email: "a\x00@x.com", Password: "pw"},
		"nul in passwd": {Name: "A", Email: "a@x.com", Password: "p\x00w"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Signup(context.Background(), req)
			require.ErrorIs(t, err, errs.ErrInvalidInput)
		})
	}
}

func TestSignup_StoreFailurePropagates(t *testing.T) {
	boom := errors.New("db down")
	s := newAuthService(t, &fakeUsers{getErr: boom})

	_, err := s.Signup(context.Background(), model.SignupRequest{Name: "A", Email: "a@x.com", Password: "pw"})
	require.ErrorIs(t, err, boom)
}

func TestLogin(t *testing.T) {
	users := &fakeUsers{}
	s := newAuthService(t, users)
	ctx := context.Background()

	_, err := s.Signup(ctx, model.SignupRequest{Name: "A", Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	tokens, err := s.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	require.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)
	require.Equal(t, 30*time.Minute, tokens.ExpiresIn)

	id, err := s.Resolver().Resolve(ctx, tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", id.Email)

	_, wrongPw := s.Login(ctx, "a@x.com", "nope")
	require.ErrorIs(t, wrongPw, errs.ErrBadCredentials)

	_, unknown := s.Login(ctx, "b@x.com", "pw1")
	require.ErrorIs(t, unknown, errs.ErrBadCredentials)

	// Same message whichever half was wrong.
	require.Equal(t, wrongPw.Error(), unknown.Error())

	_, err = s.Login(ctx, "", "")
	require.ErrorIs(t, err, errs.ErrBadCredentials)
}

func TestLogin_StoreFailurePropagates(t *testing.T) {
	boom := errors.New("db down")
	s := newAuthService(t, &fakeUsers{getErr: boom})

	_, err := s.Login(context.Background(), "a@x.com", "pw1")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, errs.ErrBadCredentials)
}

func TestRefresh(t *testing.T) {
	users := &fakeUsers{}
	s := newAuthService(t, users)
	ctx := context.Background()

	_, err := s.Signup(ctx, model.SignupRequest{Name: "A", Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	tokens, err := s.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	next, err := s.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, next.AccessToken)

	_, err = s.Refresh(ctx, tokens.AccessToken)
	require.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = s.Refresh(ctx, "")
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestAccessTokenExpires(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s := newAuthService(t, &fakeUsers{}, auth.WithClock(clock))
	ctx := context.Background()

	_, err := s.Signup(ctx, model.SignupRequest{Name: "A", Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	tokens, err := s.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	now = now.Add(31 * time.Minute)
	_, err = s.Resolver().Resolve(ctx, tokens.AccessToken)
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
	require.ErrorIs(t, err, errs.ErrExpiredToken)

	// The refresh token is still good.
	_, err = s.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
}

func TestLogin_LongerPasswordWithSamePrefixRejected(t *testing.T) {
	s := newAuthService(t, &fakeUsers{})
	ctx := context.Background()
	pw := strings.Repeat("p", auth.MaxPasswordBytes)

	_, err := s.Signup(ctx, model.SignupRequest{Name: "A", Email: "a@x.com", Password: pw})
	require.NoError(t, err)

	_, err = s.Login(ctx, "a@x.com", pw+"p")
	require.ErrorIs(t, err, errs.ErrBadCredentials)

	_, err = s.Login(ctx, "a@x.com", pw)
	require.NoError(t, err)
}

func TestLogin_EmailIsExactKey(t *testing.T) {
	s := newAuthService(t, &fakeUsers{})
	ctx := context.Background()

	_, err := s.Signup(ctx, model.SignupRequest{Name: "A", Email: " a@x.com ", Password: "pw1"})
	require.NoError(t, err)

	_, err = s.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = s.Login(ctx, " a@x.com", "pw1")
	require.ErrorIs(t, err, errs.ErrBadCredentials)
}

func TestSignup_LogsAtDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewAuthService(&fakeUsers{}, newTokens(t), zap.New(core), nil)

	_, err := s.Signup(context.Background(), model.SignupRequest{Name: "A", Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	entries := logs.FilterMessage("user registered").All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.DebugLevel, entries[0].Level)
	require.Zero(t, logs.FilterLevelExact(zapcore.InfoLevel).Len())
}
