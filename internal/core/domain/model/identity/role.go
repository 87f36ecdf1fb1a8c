package identity

import (
	"fmt"
	"strings"

	"transportconnect/internal/pkg/errs"
)

// Role is the closed set of account kinds.
type Role string

const (
	RoleDriver Role = "driver"
	RoleSender Role = "sender"
	RoleAdmin  Role = "admin"
)

// ParseRole accepts the role names case-insensitively.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleDriver, RoleSender, RoleAdmin:
		return nil
	}
	if r == "" {
		return errs.NewValueIsRequiredError("role")
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not one of driver, sender, admin", string(r)))
}

// SelfRegistrable reports whether the role may be chosen at public sign-up.
// Administrators are provisioned out of band.
func (r Role) SelfRegistrable() bool {
	return r == RoleDriver || r == RoleSender
}

func (r Role) String() string {
	return string(r)
}
