package errs

import "errors"

// Domain failures shared across the identity and lifecycle components.
var (
	ErrDuplicateIdentity  = errors.New("identity already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrInvalidToken       = errors.New("invalid token")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid transition")
)

// Kind classifies an error for callers at the boundary. Every error maps to
// exactly one kind; unknown errors are internal failures.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicateIdentity
	KindInvalidCredentials
	KindAccountInactive
	KindInvalidToken
	KindIdentityNotFound
	KindForbidden
	KindNotFound
	KindInvalidTransition
)

var kindNames = map[Kind]string{
	KindInternal:           "InternalFailure",
	KindValidation:         "ValidationError",
	KindDuplicateIdentity:  "DuplicateIdentity",
	KindInvalidCredentials: "InvalidCredentials",
	KindAccountInactive:    "AccountInactive",
	KindInvalidToken:       "InvalidToken",
	KindIdentityNotFound:   "IdentityNotFound",
	KindForbidden:          "Forbidden",
	KindNotFound:           "NotFound",
	KindInvalidTransition:  "InvalidTransition",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindInternal]
}

// Order matters: domain sentinels win over the generic validation and lookup
// errors they may wrap.
var kindTable = []struct {
	target error
	kind   Kind
}{
	{ErrDuplicateIdentity, KindDuplicateIdentity},
	{ErrInvalidCredentials, KindInvalidCredentials},
	{ErrAccountInactive, KindAccountInactive},
	{ErrInvalidToken, KindInvalidToken},
	{ErrIdentityNotFound, KindIdentityNotFound},
	{ErrForbidden, KindForbidden},
	{ErrInvalidTransition, KindInvalidTransition},
	{ErrObjectNotFound, KindNotFound},
	{ErrValueIsRequired, KindValidation},
	{ErrValueIsInvalid, KindValidation},
	{ErrValueIsOutOfRange, KindValidation},
}

// KindOf returns the kind of the first matching error in err's tree.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	for _, entry := range kindTable {
		if errors.Is(err, entry.target) {
			return entry.kind
		}
	}
	return KindInternal
}
