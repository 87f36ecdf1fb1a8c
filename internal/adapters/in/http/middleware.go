package http

import (
	"fmt"
	"strings"

	"transportconnect/internal/core/application/usecases/queries"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const authContextKey = "transportconnect.auth"

// RequireAuth rejects calls without a valid bearer token. On success the
// authenticated caller is available through authOf.
func (s *Server) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, err := bearerToken(c)
		if err != nil {
			return err
		}
		query, err := queries.NewAuthenticateQuery(raw)
		if err != nil {
			return err
		}
		auth, err := s.authenticateHandler.Handle(c.Request().Context(), query)
		if err != nil {
			return err
		}
		c.Set(authContextKey, auth)
		return next(c)
	}
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w: missing bearer token", errs.ErrInvalidToken)
	}
	return strings.TrimSpace(token), nil
}

func authOf(c echo.Context) queries.AuthenticateQueryResponse {
	auth, _ := c.Get(authContextKey).(queries.AuthenticateQueryResponse)
	return auth
}

func actorOf(c echo.Context) services.Actor {
	return authOf(c).Actor
}
