package ports

import (
	"context"

	"github.com/todoapp/todo-api/internal/core/domain"
)

// TodoService is the owner-scoped todo access layer. Every operation takes
// the authenticated caller and the request's persistence handle.
type TodoService interface {
	List(ctx context.Context, caller domain.Identity, h Handle) ([]*domain.Todo, error)
	Get(ctx context.Context, caller domain.Identity, h Handle, id int64) (*domain.Todo, error)
	Create(ctx context.Context, caller domain.Identity, h Handle, in domain.TodoFields) (*domain.Todo, error)
	Update(ctx context.Context, caller domain.Identity, h Handle, id int64, in domain.TodoFields) error
	Delete(ctx context.Context, caller domain.Identity, h Handle, id int64) error
}
