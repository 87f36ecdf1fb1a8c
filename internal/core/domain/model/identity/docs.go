// Package identity models registered marketplace accounts.
//
// An Identity owns its password digest, role and status flags. The digest never
// leaves the credential store path: read models are built through Summary,
// which omits it. Role is a closed set and never changes after registration.
package identity
