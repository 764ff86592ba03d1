package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
)

// Keys under which the middleware stores request-scoped values.
const (
	identityKey = "identity"
	handleKey   = "db_handle"
)

// CallerIdentity returns the identity set by Auth. The zero Identity is
// returned when the request was not authenticated.
func CallerIdentity(c echo.Context) domain.Identity {
	id, _ := c.Get(identityKey).(domain.Identity)
	return id
}

// DBHandle returns the handle set by Persistence.
func DBHandle(c echo.Context) (ports.Handle, bool) {
	h, ok := c.Get(handleKey).(ports.Handle)
	return h, ok && h != nil
}

// SetIdentity stores the authenticated caller on the request context.
func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

// SetHandle stores the request's persistence handle on the context.
func SetHandle(c echo.Context, h ports.Handle) {
	c.Set(handleKey, h)
}
