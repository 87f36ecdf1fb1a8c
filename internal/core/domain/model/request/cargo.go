package request

import (
	"errors"
	"fmt"
	"strings"

	"transportconnect/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Dimensions in metres. Zero means unknown.
type Dimensions struct {
	Length decimal.Decimal
	Width  decimal.Decimal
	Height decimal.Decimal
}

// Cargo is what the sender wants moved.
type Cargo struct {
	Type        string
	WeightKg    decimal.Decimal
	Dimensions  Dimensions
	Description string
}

func (c Cargo) validate() error {
	var errList []error
	if strings.TrimSpace(c.Type) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("cargo type"))
	}
	if !c.WeightKg.IsPositive() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("cargo weight", fmt.Errorf("%s is not greater than 0", c.WeightKg)))
	}
	for name, v := range map[string]decimal.Decimal{
		"cargo length": c.Dimensions.Length,
		"cargo width":  c.Dimensions.Width,
		"cargo height": c.Dimensions.Height,
	} {
		if v.IsNegative() {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", v)))
		}
	}
	return errors.Join(errList...)
}
