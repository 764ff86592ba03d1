package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/core/ports"
)

// UserHandler serves the caller's own account.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Me handles GET /user/.
//
// @Summary      Get the current user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /user/ [get]
func (h *UserHandler) Me(c echo.Context) error {
	caller, dbh, err := requestScope(c)
	if err != nil {
		return err
	}

	user, err := h.service.Me(c.Request().Context(), caller, dbh)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ChangePassword handles PUT /user/password.
//
// @Summary      Change the current user's password
// @Tags         user
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  passwordChangeRequest  true  "Current and new password"
// @Success      204
// @Failure      401  {object}  errorBody
// @Failure      422  {object}  errorBody
// @Router       /user/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	caller, dbh, err := requestScope(c)
	if err != nil {
		return err
	}

	var req passwordChangeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.ChangePassword(c.Request().Context(), caller, dbh, req.Password, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangePhoneNumber handles PUT /user/phonenumber/:phone_number.
//
// @Summary      Change the current user's phone number
// @Tags         user
// @Security     BearerAuth
// @Param        phone_number  path  string  true  "New phone number"
// @Success      204
// @Failure      401  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Failure      422  {object}  errorBody
// @Router       /user/phonenumber/{phone_number} [put]
func (h *UserHandler) ChangePhoneNumber(c echo.Context) error {
	caller, dbh, err := requestScope(c)
	if err != nil {
		return err
	}

	phone, err := pathParam(c, "phone_number")
	if err != nil {
		return err
	}

	if err := h.service.ChangePhoneNumber(c.Request().Context(), caller, dbh, phone); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
