package middleware

import (
	"strings"

	domainerrors "pantry/internal/domain/errors"
	"pantry/internal/domain/identity"
	"pantry/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware authenticates API requests against the active session.
type AuthMiddleware struct {
	session usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(session usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{session: session}
}

// Authenticate validates the Bearer ID token and installs the verified
// identity on the request context for the usecase layer.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return domainerrors.ErrUnauthenticated.WithDetails("missing bearer token")
		}

		id, err := m.session.Verify(c.Request().Context(), token)
		if err != nil {
			return errors.WithStack(err)
		}

		ctx := identity.WithIdentity(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
