package commands

import (
	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/ports"
)

// AuthResult is what register and login hand back: the caller's summary,
// never the digest, and a fresh token.
type AuthResult struct {
	Identity identity.Summary
	Token    ports.Token
}
