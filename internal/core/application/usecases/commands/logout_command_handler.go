package commands

import (
	"context"

	"transportconnect/internal/core/ports"
)

// LogoutCommandHandler revokes a token by putting its ID on the denylist
// until the token would have expired.
type LogoutCommandHandler struct {
	tokens   ports.TokenService
	denylist ports.TokenDenylist
}

func NewLogoutCommandHandler(tokens ports.TokenService, denylist ports.TokenDenylist) LogoutCommandHandler {
	return LogoutCommandHandler{tokens: tokens, denylist: denylist}
}

func (h LogoutCommandHandler) Handle(ctx context.Context, cmd LogoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	claims, err := h.tokens.Parse(cmd.Token())
	if err != nil {
		return err
	}

	return h.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt)
}
