package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/todoapp/todo-api/docs"
	"github.com/todoapp/todo-api/internal/api/handler"
	"github.com/todoapp/todo-api/internal/api/metrics"
	"github.com/todoapp/todo-api/internal/api/middleware"
	"github.com/todoapp/todo-api/internal/core/ports"
	"github.com/todoapp/todo-api/internal/core/service"
	"github.com/todoapp/todo-api/internal/pkg/config"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	JWT     config.JWTConfig
	Gateway ports.Gateway
	// Sessions is nil when no session store is configured.
	Sessions ports.SessionStore
	Logger   zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlashWithConfig(echomiddleware.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool { return strings.HasPrefix(c.Request().URL.Path, "/swagger") },
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/swagger")
		},
	}))

	// --- Dependencies ---
	m := metrics.New(deps.Registerer)
	authHandler := handler.NewAuthHandler(service.NewAuthService(deps.JWT, deps.Sessions, deps.Logger), m)
	todoHandler := handler.NewTodoHandler(service.NewTodoService(deps.Logger), m)
	userHandler := handler.NewUserHandler(service.NewUserService(deps.Logger))

	var sessions middleware.SessionChecker
	if deps.Sessions != nil {
		sessions = deps.Sessions
	}
	authenticated := middleware.Auth(deps.JWT, sessions)
	persistence := middleware.Persistence(deps.Gateway)

	// --- Auth routes ---
	authGroup := e.Group("/auth")
	authGroup.POST("", authHandler.Register, persistence)
	authGroup.POST("/token", authHandler.Token, persistence)
	authGroup.POST("/logout", authHandler.Logout, authenticated)

	// --- Todo routes (auth runs before persistence) ---
	todos := e.Group("/todos", authenticated, persistence)
	todos.GET("", todoHandler.List)
	todos.GET("/:id", todoHandler.Get)
	todos.POST("/todo", todoHandler.Create)
	todos.PUT("/todo/:id", todoHandler.Update)
	todos.DELETE("/todo/:id", todoHandler.Delete)

	// --- Current user routes ---
	users := e.Group("/user", authenticated, persistence)
	users.GET("", userHandler.Me)
	users.PUT("/password", userHandler.ChangePassword)
	users.PUT("/phonenumber/:phone_number", userHandler.ChangePhoneNumber)

	// --- Health probes, metrics and docs (no auth required) ---
	checks := map[string]handler.Pinger{"database": deps.Gateway}
	if deps.Sessions != nil {
		checks["redis"] = deps.Sessions
	}
	healthHandler := handler.NewHealthHandler(checks)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
