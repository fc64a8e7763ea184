package auth

import (
	"fmt"

	"github.com/wobot-todo/backend/internal/errs"
)

// Decision is the outcome of an ownership check.
type Decision int

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// Authorize allows identity to act on a resource iff it owns it.
// Emails are compared exactly; any normalization happened at signup.
func Authorize(identity Identity, ownerEmail string) Decision {
	if identity.Email != "" && identity.Email == ownerEmail {
		return Allowed
	}
	return Denied
}

// RequireOwner returns errs.ErrForbidden unless identity owns the resource.
// Callers report a missing resource as errs.ErrNotFound before calling it.
func RequireOwner(identity Identity, ownerEmail string) error {
	if Authorize(identity, ownerEmail) == Denied {
		return fmt.Errorf("%w: resource belongs to another identity", errs.ErrForbidden)
	}
	return nil
}
