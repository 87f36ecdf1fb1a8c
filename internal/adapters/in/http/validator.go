package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"transportconnect/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// requestValidator plugs validator/v10 into echo and reports failures as
// errs validation errors, keyed by the JSON field path.
type requestValidator struct {
	validate *validator.Validate
}

var _ echo.Validator = (*requestValidator)(nil)

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	errList := make([]error, 0, len(validationErrs))
	for _, fe := range validationErrs {
		field := fieldPath(fe)
		if fe.Tag() == "required" {
			errList = append(errList, errs.NewValueIsRequiredError(field))
			continue
		}
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(field, ruleError(fe)))
	}
	return errors.Join(errList...)
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	parts := strings.SplitN(fe.Namespace(), ".", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return fe.Field()
}

func ruleError(fe validator.FieldError) error {
	if fe.Param() != "" {
		return fmt.Errorf("must satisfy %s=%s", fe.Tag(), fe.Param())
	}
	return fmt.Errorf("must satisfy %s", fe.Tag())
}

// bindBody decodes the request body into dst and validates it.
func bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", bindCause(err))
	}
	return c.Validate(dst)
}

func bindCause(err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Internal != nil {
		return httpErr.Internal
	}
	return err
}
