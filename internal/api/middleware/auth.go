package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/pkg/auth"
	"github.com/todoapp/todo-api/internal/pkg/config"
)

// AuthFailedMessage is the only message returned for rejected credentials.
const AuthFailedMessage = "Authentication failed"

// SessionChecker reports whether a token's session is still active.
type SessionChecker interface {
	Active(ctx context.Context, sessionID string) (bool, error)
}

// Auth validates the bearer token and injects the caller identity into the
// context. When sessions is non-nil the token's jti must also be an active
// session.
func Auth(cfg config.JWTConfig, sessions SessionChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, AuthFailedMessage)
			}

			claims, err := auth.ParseAccessToken(cfg, strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, AuthFailedMessage)
			}

			if sessions != nil {
				active, err := sessions.Active(c.Request().Context(), claims.ID)
				if err != nil {
					return fmt.Errorf("session lookup: %w", err)
				}
				if !active {
					return echo.NewHTTPError(http.StatusUnauthorized, AuthFailedMessage)
				}
			}

			SetIdentity(c, claims.Identity())
			return next(c)
		}
	}
}
