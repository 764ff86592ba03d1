package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/core/ports"
)

// Persistence acquires a request-scoped handle from gw and releases it when
// the handler returns, discarding anything the handler did not commit.
func Persistence(gw ports.Gateway) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h, err := gw.Acquire(c.Request().Context())
			if err != nil {
				return fmt.Errorf("acquire persistence handle: %w", err)
			}
			defer h.Release()

			SetHandle(c, h)
			return next(c)
		}
	}
}
