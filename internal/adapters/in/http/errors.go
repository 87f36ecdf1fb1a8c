package http

import (
	"errors"
	"net/http"

	"transportconnect/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const internalFailureMessage = "internal server error"

var kindStatus = map[errs.Kind]int{
	errs.KindValidation:         http.StatusBadRequest,
	errs.KindDuplicateIdentity:  http.StatusConflict,
	errs.KindInvalidCredentials: http.StatusUnauthorized,
	errs.KindAccountInactive:    http.StatusForbidden,
	errs.KindInvalidToken:       http.StatusUnauthorized,
	errs.KindIdentityNotFound:   http.StatusUnauthorized,
	errs.KindForbidden:          http.StatusForbidden,
	errs.KindNotFound:           http.StatusNotFound,
	errs.KindInvalidTransition:  http.StatusConflict,
	errs.KindInternal:           http.StatusInternalServerError,
}

// ErrorResponse is the body of every failed call.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind errs.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// newErrorHandler renders handler errors as ErrorResponse. Internal causes are
// logged and replaced with a generic message.
func newErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := toErrorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Warn("failed to write error response", zap.Error(writeErr))
		}
	}
}

func toErrorResponse(err error) (int, ErrorResponse) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return fromEchoError(httpErr)
	}

	kind := errs.KindOf(err)
	message := err.Error()
	if kind == errs.KindInternal {
		message = internalFailureMessage
	}
	return StatusOf(kind), ErrorResponse{Error: ErrorDetail{Kind: kind.String(), Message: message}}
}

// fromEchoError covers failures raised by echo itself: unknown routes,
// unsupported methods, malformed bodies.
func fromEchoError(httpErr *echo.HTTPError) (int, ErrorResponse) {
	kind := errs.KindInternal
	switch httpErr.Code {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		kind = errs.KindValidation
	case http.StatusUnauthorized:
		kind = errs.KindInvalidToken
	case http.StatusForbidden:
		kind = errs.KindForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		kind = errs.KindNotFound
	}

	message := http.StatusText(httpErr.Code)
	if m, ok := httpErr.Message.(string); ok && m != "" {
		message = m
	}
	if httpErr.Code >= http.StatusInternalServerError {
		message = internalFailureMessage
	}
	return httpErr.Code, ErrorResponse{Error: ErrorDetail{Kind: kind.String(), Message: message}}
}
