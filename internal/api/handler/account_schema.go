package handler

import "github.com/todoapp/todo-api/internal/core/domain"

// errorBody documents the {"error": "..."} envelope written by the central error handler.
type errorBody struct {
	Error string `json:"error" example:"Todo not found."`
}

type registerRequest struct {
	Username    string  `json:"username" validate:"required" example:"alice"`
	Email       string  `json:"email" validate:"required,email" example:"alice@example.com"`
	FirstName   string  `json:"first_name" example:"Alice"`
	LastName    string  `json:"last_name" example:"Liddell"`
	Password    string  `json:"password" validate:"required" example:"s3cret!"`
	Role        string  `json:"role" validate:"required,oneof=admin user" example:"user"`
	PhoneNumber *string `json:"phone_number,omitempty" example:"555-0100"`
}

// tokenRequest accepts both an OAuth2 password form and a JSON body.
type tokenRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

type passwordChangeRequest struct {
	Password    string `json:"password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type userResponse struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Role        string  `json:"role"`
	PhoneNumber *string `json:"phone_number"`
	IsActive    bool    `json:"is_active"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		IsActive:    u.IsActive,
	}
}
