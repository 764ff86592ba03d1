package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/api/metrics"
	"github.com/todoapp/todo-api/internal/core/ports"
)

// TodoHandler handles HTTP requests for the caller's todos.
type TodoHandler struct {
	service ports.TodoService
	metrics *metrics.Metrics
}

func NewTodoHandler(service ports.TodoService, m *metrics.Metrics) *TodoHandler {
	return &TodoHandler{service: service, metrics: m}
}

// List handles GET /todos/.
//
// @Summary      List the caller's todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   todoResponse
// @Failure      401  {object}  errorBody
// @Router       /todos/ [get]
func (h *TodoHandler) List(c echo.Context) error {
	caller, dbh, err := requestScope(c)
	if err != nil {
		return err
	}

	todos, err := h.service.List(c.Request().Context(), caller, dbh)
	if err != nil {
		return err
	}

	resp := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		resp = append(resp, toTodoResponse(t))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /todos/:id.
//
// @Summary      Get one of the caller's todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Todo id (> 0)"
// @Success      200  {object}  todoResponse
// @Failure      401  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Failure      422  {object}  errorBody
// @Router       /todos/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	caller, dbh, err := requestScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	todo, err := h.service.Get(c.Request().Context(), caller, dbh, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

// Create handles POST /todos/todo.
//
// @Summary      Create a todo owned by the caller
// @Tags         todos
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  todoRequest  true  "Todo fields"
// @Success      201
// @Header       201  {string}  Location  "/todos/{id}"
// @Failure      401  {object}  errorBody
// @Failure      422  {object}  errorBody
// @Router       /todos/todo [post]
func (h *TodoHandler) Create(c echo.Context) error {
	caller, dbh, err := requestScope(c)
	if err != nil {
		return err
	}

	var req todoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	todo, err := h.service.Create(c.Request().Context(), caller, dbh, req.toFields())
	if err != nil {
		return err
	}

	h.metrics.TodoMutationsTotal.WithLabelValues("create").Inc()
	c.Response().Header().Set(echo.HeaderLocation, "/todos/"+strconv.FormatInt(todo.ID, 10))
	return c.NoContent(http.StatusCreated)
}

// Update handles PUT /todos/todo/:id.
//
// @Summary      Replace the fields of one of the caller's todos
// @Tags         todos
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int          true  "Todo id (> 0)"
// @Param        body  body  todoRequest  true  "Todo fields"
// @Success      204
// @Failure      401  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Failure      422  {object}  errorBody
// @Router       /todos/todo/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	caller, dbh, err := requestScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req todoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.Update(c.Request().Context(), caller, dbh, id, req.toFields()); err != nil {
		return err
	}

	h.metrics.TodoMutationsTotal.WithLabelValues("update").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /todos/todo/:id.
//
// @Summary      Delete one of the caller's todos
// @Tags         todos
// @Security     BearerAuth
// @Param        id  path  int  true  "Todo id (> 0)"
// @Success      204
// @Failure      401  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Failure      422  {object}  errorBody
// @Router       /todos/todo/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	caller, dbh, err := requestScope(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, dbh, id); err != nil {
		return err
	}

	h.metrics.TodoMutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
