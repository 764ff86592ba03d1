package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/api/middleware"
	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
)

var errNoHandle = errors.New("persistence handle missing from request context")

// requestScope returns the caller and persistence handle injected by the
// Auth and Persistence middleware.
func requestScope(c echo.Context) (domain.Identity, ports.Handle, error) {
	caller := middleware.CallerIdentity(c)
	if !caller.Authenticated() {
		return domain.Identity{}, nil, domain.ErrUnauthenticated
	}
	h, ok := middleware.DBHandle(c)
	if !ok {
		return domain.Identity{}, nil, errNoHandle
	}
	return caller, h, nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
// Undecodable bodies are reported as 422.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid payload")
	}
	return c.Validate(req)
}

// pathID parses the :id path parameter, which must be a positive integer.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

// pathParam returns a path parameter with percent-escapes decoded. Echo
// routes on the raw path when the request URL carries one, leaving the
// captured value escaped.
func pathParam(c echo.Context, name string) (string, error) {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v, nil
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusUnprocessableEntity, "malformed "+name)
	}
	return decoded, nil
}
