package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const maxNameLength = 100

var ErrIdentityIsNotConstructed = errors.New("Identity must be created via Register or Restore")

// Rating is the aggregate score other parties gave this identity.
type Rating struct {
	Average decimal.Decimal
	Count   int
}

// Registration carries the fields supplied at sign-up.
type Registration struct {
	FirstName string
	LastName  string
	Email     kernel.Email
	Password  string
	Role      Role
	Phone     string
}

// Identity is the aggregate root for a registered account.
//
// Invariants:
//   - email is normalized and unique across the store
//   - digest is always the output of a PasswordHasher
//   - role never changes
//   - active and verified flags change only through admin actions
//   - completedTransports only grows, one per delivered request
type Identity struct {
	id                  kernel.UUID
	firstName           string
	lastName            string
	email               kernel.Email
	digest              PasswordDigest
	role                Role
	phone               string
	verified            bool
	active              bool
	rating              Rating
	completedTransports int
	createdAt           time.Time
	updatedAt           time.Time

	isConstructed bool
}

// Register builds a new, unverified, active identity and hashes its password.
func Register(id kernel.UUID, reg Registration, hasher PasswordHasher, now time.Time) (*Identity, error) {
	if hasher == nil {
		return nil, errs.NewValueIsRequiredError("password hasher")
	}

	identity := &Identity{
		active:        true,
		rating:        Rating{Average: decimal.Zero},
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		identity.setID(id),
		identity.setNames(reg.FirstName, reg.LastName),
		identity.setEmail(reg.Email),
		identity.setRole(reg.Role),
		identity.setPhone(reg.Phone),
		ValidatePassword(reg.Password),
	); err != nil {
		return nil, err
	}

	// Registration input is always plaintext, even when it parses as a digest.
	digest, err := hasher.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	identity.digest = digest

	return identity, nil
}

// RestoreParams is the persisted state of an identity.
type RestoreParams struct {
	ID                  kernel.UUID
	FirstName           string
	LastName            string
	Email               kernel.Email
	Digest              PasswordDigest
	Role                Role
	Phone               string
	Verified            bool
	Active              bool
	Rating              Rating
	CompletedTransports int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Restore rebuilds an identity loaded from storage.
func Restore(p RestoreParams) (*Identity, error) {
	identity := &Identity{
		digest:              p.Digest,
		verified:            p.Verified,
		active:              p.Active,
		rating:              p.Rating,
		completedTransports: p.CompletedTransports,
		createdAt:           p.CreatedAt,
		updatedAt:           p.UpdatedAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		identity.setID(p.ID),
		identity.setNames(p.FirstName, p.LastName),
		identity.setEmail(p.Email),
		identity.setRole(p.Role),
	); err != nil {
		return nil, err
	}
	if p.Digest == "" {
		return nil, errs.NewValueIsRequiredError("password digest")
	}
	if p.CompletedTransports < 0 {
		return nil, errs.NewValueIsOutOfRangeError("completed transports", p.CompletedTransports, 0, "unbounded")
	}
	identity.phone = p.Phone

	return identity, nil
}

func (i *Identity) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrIdentityIsNotConstructed
	}
	return nil
}

func (i *Identity) ID() kernel.UUID {
	return i.id
}

func (i *Identity) FirstName() string {
	return i.firstName
}

func (i *Identity) LastName() string {
	return i.lastName
}

func (i *Identity) Email() kernel.Email {
	return i.email
}

func (i *Identity) Role() Role {
	return i.role
}

func (i *Identity) Phone() string {
	return i.phone
}

func (i *Identity) IsVerified() bool {
	return i.verified
}

func (i *Identity) IsActive() bool {
	return i.active
}

func (i *Identity) Rating() Rating {
	return i.rating
}

func (i *Identity) CompletedTransports() int {
	return i.completedTransports
}

func (i *Identity) CreatedAt() time.Time {
	return i.createdAt
}

func (i *Identity) UpdatedAt() time.Time {
	return i.updatedAt
}

// Digest is for persistence adapters only.
func (i *Identity) Digest() PasswordDigest {
	return i.digest
}

// SetPassword stores a new digest for value.
//
// A value already in digest form is stored as-is, and a plaintext matching the
// current digest is not re-hashed. The returned flag reports whether the digest changed.
func (i *Identity) SetPassword(hasher PasswordHasher, value string, now time.Time) (bool, error) {
	if value == "" {
		return false, errs.NewValueIsRequiredError("password")
	}

	if hasher.IsDigest(value) {
		if PasswordDigest(value) == i.digest {
			return false, nil
		}
		i.digest = PasswordDigest(value)
		i.updatedAt = now
		return true, nil
	}

	if err := ValidatePassword(value); err != nil {
		return false, err
	}
	if i.digest != "" && hasher.Compare(i.digest, value) {
		return false, nil
	}

	digest, err := hasher.Hash(value)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	i.digest = digest
	i.updatedAt = now
	return true, nil
}

// PasswordMatches compares plain against the stored digest.
func (i *Identity) PasswordMatches(hasher PasswordHasher, plain string) bool {
	if i.digest == "" || plain == "" {
		return false
	}
	return hasher.Compare(i.digest, plain)
}

// SetActive toggles the active flag and reports whether it changed.
func (i *Identity) SetActive(active bool, now time.Time) bool {
	if i.active == active {
		return false
	}
	i.active = active
	i.updatedAt = now
	return true
}

// Verify marks the identity as verified and reports whether it changed.
func (i *Identity) Verify(now time.Time) bool {
	if i.verified {
		return false
	}
	i.verified = true
	i.updatedAt = now
	return true
}

// RecordCompletedTransport counts one delivered request. Stores that cannot
// increment in place apply it to their own copy.
func (i *Identity) RecordCompletedTransport(now time.Time) {
	i.completedTransports++
	i.updatedAt = now
}

// Summary is the digest-free view of an identity.
type Summary struct {
	ID                  kernel.UUID
	FirstName           string
	LastName            string
	Email               string
	Role                Role
	Phone               string
	IsVerified          bool
	IsActive            bool
	Rating              Rating
	CompletedTransports int
	CreatedAt           time.Time
}

func (i *Identity) Summary() Summary {
	return Summary{
		ID:                  i.id,
		FirstName:           i.firstName,
		LastName:            i.lastName,
		Email:               i.email.String(),
		Role:                i.role,
		Phone:               i.phone,
		IsVerified:          i.verified,
		IsActive:            i.active,
		Rating:              i.rating,
		CompletedTransports: i.completedTransports,
		CreatedAt:           i.createdAt,
	}
}

func (i *Identity) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Identity) setNames(first, last string) error {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if err := errors.Join(validateName("first name", first), validateName("last name", last)); err != nil {
		return err
	}
	i.firstName, i.lastName = first, last
	return nil
}

func (i *Identity) setEmail(email kernel.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	i.email = email
	return nil
}

func (i *Identity) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	i.role = role
	return nil
}

func (i *Identity) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	i.phone = phone
	return nil
}

func validateName(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	if len(value) > maxNameLength {
		return errs.NewValueIsOutOfRangeError(param+" length", len(value), 1, maxNameLength)
	}
	return nil
}
