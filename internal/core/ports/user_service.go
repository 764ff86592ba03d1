package ports

import (
	"context"

	"github.com/todoapp/todo-api/internal/core/domain"
)

// UserService covers self-service account operations of the caller.
type UserService interface {
	Me(ctx context.Context, caller domain.Identity, h Handle) (*domain.User, error)
	ChangePassword(ctx context.Context, caller domain.Identity, h Handle, current, next string) error
	ChangePhoneNumber(ctx context.Context, caller domain.Identity, h Handle, phone string) error
}
