package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wobot-todo/backend/internal/errs"
)

func TestAuthorize(t *testing.T) {
	a := Identity{ID: "1", Email: "a@x.com"}

	require.Equal(t, Allowed, Authorize(a, "a@x.com"))
	require.Equal(t, Denied, Authorize(a, "b@x.com"))
	require.Equal(t, Denied, Authorize(a, "A@x.com"))
	require.Equal(t, Denied, Authorize(a, ""))
	require.Equal(t, Denied, Authorize(Identity{}, ""))
	require.Equal(t, "allowed", Allowed.String())
	require.Equal(t, "denied", Denied.String())
}

func TestRequireOwner(t *testing.T) {
	a := Identity{ID: "1", Email: "a@x.com"}

	require.NoError(t, RequireOwner(a, "a@x.com"))
	require.ErrorIs(t, RequireOwner(a, "b@x.com"), errs.ErrForbidden)
}
