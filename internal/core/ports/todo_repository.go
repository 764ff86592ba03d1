package ports

import (
	"context"

	"github.com/todoapp/todo-api/internal/core/domain"
)

// TodoRepository defines persistence operations for todos. Every lookup that
// takes an owner id filters on both id and owner_id.
type TodoRepository interface {
	// ListByOwner returns the owner's todos ordered by id ascending.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Todo, error)
	// FindByIDAndOwner returns domain.ErrTodoNotFound when no row matches both.
	FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Todo, error)
	// Create inserts t and sets t.ID.
	Create(ctx context.Context, t *domain.Todo) error
	// Update overwrites the editable fields of the row matching t.ID and t.OwnerID.
	Update(ctx context.Context, t *domain.Todo) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) error
}
