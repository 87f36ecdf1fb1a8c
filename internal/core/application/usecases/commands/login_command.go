package commands

import (
	"errors"

	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/pkg/errs"
	"transportconnect/internal/pkg/guard"
)

var ErrLoginCommandIsNotConstructed = errors.New("LoginCommand must be created via NewLoginCommand constructor")

type LoginCommand struct {
	email    kernel.Email
	password string

	guard guard.ConstructorGuard
}

// NewLoginCommand only checks presence and email shape. The password policy
// is not applied here so that a policy change never locks out existing accounts.
func NewLoginCommand(email, password string) (LoginCommand, error) {
	cmd := LoginCommand{guard: guard.NewConstructorGuard()}

	addr, emailErr := kernel.NewEmail(email)
	var passwordErr error
	if password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}
	if err := errors.Join(emailErr, passwordErr); err != nil {
		return LoginCommand{}, err
	}

	cmd.email, cmd.password = addr, password
	return cmd, nil
}

func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

func (c LoginCommand) Email() kernel.Email {
	return c.email
}

func (c LoginCommand) Password() string {
	return c.password
}
