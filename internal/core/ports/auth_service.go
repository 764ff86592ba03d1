package ports

import (
	"context"

	"github.com/todoapp/todo-api/internal/core/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Password    string
	Role        string
	PhoneNumber *string
}

type AuthService interface {
	Register(ctx context.Context, h Handle, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, h Handle, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, caller domain.Identity) error
}
