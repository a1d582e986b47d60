package middlewares

import (
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/cmsadmin/internal/apierror"
	"github.com/mdouchement/cmsadmin/internal/server/session"
	"github.com/pkg/errors"
)

// CurrentUserContextKey is the key to retrieve the current_user from echo.Context.
const CurrentUserContextKey = "current_user"

// Session returns a bearer token auth middleware.
// It stores current_user into echo.Context
func Session(m session.Manager) echo.MiddlewareFunc {
	keyfunc := func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.SigningKey(), nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := token(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return apierror.Unauthorized("No token provided.")
			}

			tk, err := jwt.Parse(raw, keyfunc)
			if err != nil || !tk.Valid {
				return apierror.Unauthorized("Invalid token.")
			}

			user, err := m.UserFromToken(tk)
			if err != nil {
				return err
			}

			// Store current_user for handlers.
			c.Set(CurrentUserContextKey, user)
			return next(c)
		}
	}
}

func token(authorization string) string {
	parts := strings.Fields(authorization)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}
