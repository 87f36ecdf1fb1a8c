package commands

import (
	"errors"
	"strings"

	"transportconnect/internal/pkg/errs"
	"transportconnect/internal/pkg/guard"
)

var ErrLogoutCommandIsNotConstructed = errors.New("LogoutCommand must be created via NewLogoutCommand constructor")

type LogoutCommand struct {
	token string

	guard guard.ConstructorGuard
}

func NewLogoutCommand(rawToken string) (LogoutCommand, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return LogoutCommand{}, errs.ErrInvalidToken
	}
	return LogoutCommand{token: rawToken, guard: guard.NewConstructorGuard()}, nil
}

func (c LogoutCommand) Validate() error {
	return c.guard.Validate(ErrLogoutCommandIsNotConstructed)
}

func (c LogoutCommand) Token() string {
	return c.token
}
