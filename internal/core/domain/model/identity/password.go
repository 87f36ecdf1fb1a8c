package identity

import (
	"transportconnect/internal/pkg/errs"
)

const (
	MinPasswordLength = 6
	// bcrypt ignores input beyond 72 bytes.
	MaxPasswordLength = 72
)

// PasswordDigest is a one-way hash of a password.
type PasswordDigest string

// PasswordHasher produces and checks digests.
//
// IsDigest must recognise values the hasher itself produced, so that a value
// already in digest form is never hashed a second time.
type PasswordHasher interface {
	Hash(plain string) (PasswordDigest, error)
	Compare(digest PasswordDigest, plain string) bool
	IsDigest(value string) bool
}

// ValidatePassword checks a plaintext password against the length policy.
func ValidatePassword(plain string) error {
	if plain == "" {
		return errs.NewValueIsRequiredError("password")
	}
	if len(plain) < MinPasswordLength || len(plain) > MaxPasswordLength {
		return errs.NewValueIsOutOfRangeError("password length", len(plain), MinPasswordLength, MaxPasswordLength)
	}
	return nil
}
