package kernel

import (
	"strings"

	"transportconnect/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

const maxEmailLength = 254

var emailValidator = validator.New()

// Email is a trimmed, lowercased address. Two emails differing only in case
// are the same Email, which gives the credential store case-insensitive uniqueness.
type Email struct {
	value string
}

// NewEmail normalizes and validates raw.
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	if len(normalized) > maxEmailLength {
		return Email{}, errs.NewValueIsOutOfRangeError("email", len(normalized), 3, maxEmailLength)
	}
	if err := emailValidator.Var(normalized, "email"); err != nil {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	return Email{value: normalized}, nil
}

func (e Email) String() string {
	return e.value
}

func (e Email) IsEqual(other Email) bool {
	return e.value == other.value
}

func (e Email) Validate() error {
	if e.value == "" {
		return errs.NewValueIsRequiredError("email")
	}
	return nil
}
