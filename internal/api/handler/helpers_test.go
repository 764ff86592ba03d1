package handler

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/todoapp/todo-api/internal/api/metrics"
	"github.com/todoapp/todo-api/internal/api/middleware"
	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
)

var caller = domain.Identity{ID: 7, Username: "alice", Role: domain.RoleUser, SessionID: "jti-7"}

type noopHandle struct{}

func (noopHandle) Todos() ports.TodoRepository { return nil }
func (noopHandle) Users() ports.UserRepository { return nil }
func (noopHandle) Commit() error               { return nil }
func (noopHandle) Release()                    {}

func newMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

// newContext builds an echo context as the Auth and Persistence middleware
// would leave it. A zero identity leaves the request unauthenticated.
func newContext(t *testing.T, method, target string, body io.Reader, id domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if id.Authenticated() {
		middleware.SetIdentity(c, id)
	}
	middleware.SetHandle(c, noopHandle{})
	return c, rec
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

// httpStatus extracts the status of an *echo.HTTPError, or 0.
func httpStatus(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}
