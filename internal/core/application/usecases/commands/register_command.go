package commands

import (
	"errors"
	"strings"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/pkg/errs"
	"transportconnect/internal/pkg/guard"
)

var ErrRegisterCommandIsNotConstructed = errors.New(
	"RegisterCommand must be created via NewRegisterCommand or NewRegisterAdminCommand constructor",
)

// RegisterCommand carries sign-up data.
//
// Example:
//
//	cmd, err := NewRegisterCommand("Anna", "Nowak", "anna@example.com", "secret-pass", "sender", "+48 600 100 200")
//	if err != nil {
//	    return err // validation error, safe to show the caller
//	}
//	result, err := handler.Handle(ctx, cmd)
type RegisterCommand struct {
	firstName string
	lastName  string
	email     kernel.Email
	password  string
	role      identity.Role
	phone     string
	verified  bool

	guard guard.ConstructorGuard
}

// NewRegisterCommand validates a public sign-up. Only roles that may
// self-register are accepted.
func NewRegisterCommand(firstName, lastName, email, password, role, phone string) (RegisterCommand, error) {
	cmd := RegisterCommand{guard: guard.NewConstructorGuard()}

	roleErr := cmd.setRole(role)
	if roleErr == nil && !cmd.role.SelfRegistrable() {
		roleErr = errs.NewValueIsInvalidErrorWithCause("role", errors.New("must be driver or sender"))
	}

	if err := errors.Join(
		cmd.setNames(firstName, lastName),
		cmd.setEmail(email),
		cmd.setPassword(password),
		roleErr,
		cmd.setPhone(phone),
	); err != nil {
		return RegisterCommand{}, err
	}
	return cmd, nil
}

// NewRegisterAdminCommand is for operator tooling. The admin is created verified.
func NewRegisterAdminCommand(firstName, lastName, email, password, phone string) (RegisterCommand, error) {
	cmd := RegisterCommand{
		role:     identity.RoleAdmin,
		verified: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setNames(firstName, lastName),
		cmd.setEmail(email),
		cmd.setPassword(password),
		cmd.setPhone(phone),
	); err != nil {
		return RegisterCommand{}, err
	}
	return cmd, nil
}

func (c RegisterCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCommandIsNotConstructed)
}

func (c RegisterCommand) Registration() identity.Registration {
	return identity.Registration{
		FirstName: c.firstName,
		LastName:  c.lastName,
		Email:     c.email,
		Password:  c.password,
		Role:      c.role,
		Phone:     c.phone,
	}
}

func (c RegisterCommand) Email() kernel.Email {
	return c.email
}

func (c RegisterCommand) Role() identity.Role {
	return c.role
}

// Verified reports whether the identity is created already verified.
func (c RegisterCommand) Verified() bool {
	return c.verified
}

func (c *RegisterCommand) setNames(first, last string) error {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	var errList []error
	if first == "" {
		errList = append(errList, errs.NewValueIsRequiredError("first name"))
	}
	if last == "" {
		errList = append(errList, errs.NewValueIsRequiredError("last name"))
	}
	c.firstName, c.lastName = first, last
	return errors.Join(errList...)
}

func (c *RegisterCommand) setEmail(raw string) error {
	email, err := kernel.NewEmail(raw)
	if err != nil {
		return err
	}
	c.email = email
	return nil
}

func (c *RegisterCommand) setPassword(password string) error {
	if err := identity.ValidatePassword(password); err != nil {
		return err
	}
	c.password = password
	return nil
}

func (c *RegisterCommand) setRole(raw string) error {
	role, err := identity.ParseRole(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return err
	}
	c.role = role
	return nil
}

func (c *RegisterCommand) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}
