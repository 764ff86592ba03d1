package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
)

// TodoService implements ports.TodoService. Lookups are always scoped by the
// caller's id, so a todo owned by someone else is reported as not found.
type TodoService struct {
	logger zerolog.Logger
}

func NewTodoService(logger zerolog.Logger) *TodoService {
	return &TodoService{logger: logger}
}

// List returns the caller's todos in insertion order.
func (s *TodoService) List(ctx context.Context, caller domain.Identity, h ports.Handle) ([]*domain.Todo, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	todos, err := h.Todos().ListByOwner(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	if todos == nil {
		todos = []*domain.Todo{}
	}
	return todos, nil
}

func (s *TodoService) Get(ctx context.Context, caller domain.Identity, h ports.Handle, id int64) (*domain.Todo, error) {
	if err := checkAccess(caller, id); err != nil {
		return nil, err
	}

	todo, err := h.Todos().FindByIDAndOwner(ctx, id, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return todo, nil
}

// Create stores a new todo owned by the caller and commits it.
func (s *TodoService) Create(ctx context.Context, caller domain.Identity, h ports.Handle, in domain.TodoFields) (*domain.Todo, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	todo := &domain.Todo{OwnerID: caller.ID}
	todo.Apply(in)

	if err := h.Todos().Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	if err := h.Commit(); err != nil {
		return nil, fmt.Errorf("create todo: commit: %w", err)
	}

	s.logger.Info().Int64("todo_id", todo.ID).Int64("owner_id", caller.ID).Msg("todo created")
	return todo, nil
}

// Update overwrites the editable fields of one of the caller's todos.
func (s *TodoService) Update(ctx context.Context, caller domain.Identity, h ports.Handle, id int64, in domain.TodoFields) error {
	if err := checkAccess(caller, id); err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}

	repo := h.Todos()
	todo, err := repo.FindByIDAndOwner(ctx, id, caller.ID)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}

	todo.Apply(in)
	if err := repo.Update(ctx, todo); err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if err := h.Commit(); err != nil {
		return fmt.Errorf("update todo: commit: %w", err)
	}

	s.logger.Info().Int64("todo_id", id).Int64("owner_id", caller.ID).Msg("todo updated")
	return nil
}

// Delete permanently removes one of the caller's todos.
func (s *TodoService) Delete(ctx context.Context, caller domain.Identity, h ports.Handle, id int64) error {
	if err := checkAccess(caller, id); err != nil {
		return err
	}

	repo := h.Todos()
	if _, err := repo.FindByIDAndOwner(ctx, id, caller.ID); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if err := repo.DeleteByIDAndOwner(ctx, id, caller.ID); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if err := h.Commit(); err != nil {
		return fmt.Errorf("delete todo: commit: %w", err)
	}

	s.logger.Info().Int64("todo_id", id).Int64("owner_id", caller.ID).Msg("todo deleted")
	return nil
}

func checkAccess(caller domain.Identity, id int64) error {
	if !caller.Authenticated() {
		return domain.ErrUnauthenticated
	}
	if id <= 0 {
		return domain.ErrInvalidID
	}
	return nil
}
