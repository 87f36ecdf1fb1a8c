// Package bcrypthasher implements identity.PasswordHasher with bcrypt.
package bcrypthasher

import (
	"fmt"

	"transportconnect/internal/core/domain/model/identity"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the fixed bcrypt work factor.
const Cost = 12

type Hasher struct {
	cost  int
	dummy []byte
}

// New returns a hasher using Cost.
func New() (*Hasher, error) {
	return NewWithCost(Cost)
}

// NewWithCost lets tests trade strength for speed, e.g. with bcrypt.MinCost.
func NewWithCost(cost int) (*Hasher, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("transportconnect-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy digest: %w", err)
	}
	return &Hasher{cost: cost, dummy: dummy}, nil
}

// Hash salts and hashes plain. bcrypt generates the salt.
func (h *Hasher) Hash(plain string) (identity.PasswordDigest, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return identity.PasswordDigest(digest), nil
}

// Compare runs in time independent of where plain and digest differ.
func (h *Hasher) Compare(digest identity.PasswordDigest, plain string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	return err == nil
}

// IsDigest parses value as a bcrypt hash header rather than sniffing a prefix.
func (h *Hasher) IsDigest(value string) bool {
	_, err := bcrypt.Cost([]byte(value))
	return err == nil
}

// CompareDummy burns the same work as a real comparison. Callers use it when
// no identity matched, so response time does not reveal whether an email exists.
func (h *Hasher) CompareDummy(plain string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plain))
}
