// Package auth implements credential hashing, bearer token issuance and
// validation, identity resolution and ownership checks.
//
// Nothing in this package depends on the transport; failures are reported as
// sentinel errors from internal/errs.
package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/wobot-todo/backend/internal/errs"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// ValidatePassword rejects plaintext that bcrypt cannot hash safely.
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return fmt.Errorf("%w: password is empty", errs.ErrInvalidInput)
	case len(password) > MaxPasswordBytes:
		return fmt.Errorf("%w: password longer than %d bytes", errs.ErrInvalidInput, MaxPasswordBytes)
	case strings.ContainsRune(password, 0):
		return fmt.Errorf("%w: password contains a NUL byte", errs.ErrInvalidInput)
	}
	return nil
}

// HashPassword hashes plaintext with bcrypt at the default cost.
// Every call uses a fresh salt, so equal inputs give different hashes.
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches hash.
// A structurally invalid hash yields false, and so does any password that
// HashPassword would refuse: bcrypt only reads the first 72 bytes.
func VerifyPassword(password, hash string) bool {
	if hash == "" || ValidatePassword(password) != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
