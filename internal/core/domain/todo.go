package domain

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	TitleMinLen       = 3
	DescriptionMinLen = 3
	DescriptionMaxLen = 100
	PriorityMin       = 1
	PriorityMax       = 5
)

var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrInvalidTodo  = errors.New("invalid todo")
	ErrInvalidID    = errors.New("id must be a positive integer")
)

// Todo is a single item on a user's list. OwnerID is fixed at creation.
type Todo struct {
	ID          int64
	Title       string
	Description string
	Priority    int
	Completed   bool
	OwnerID     int64
}

// TodoFields holds the user-editable part of a Todo.
type TodoFields struct {
	Title       string
	Description string
	Priority    int
	Completed   bool
}

// Validate reports the first field that violates the todo constraints.
func (f TodoFields) Validate() error {
	if utf8.RuneCountInString(f.Title) < TitleMinLen {
		return fmt.Errorf("%w: title must be at least %d characters", ErrInvalidTodo, TitleMinLen)
	}
	n := utf8.RuneCountInString(f.Description)
	if n < DescriptionMinLen || n > DescriptionMaxLen {
		return fmt.Errorf("%w: description must be between %d and %d characters",
			ErrInvalidTodo, DescriptionMinLen, DescriptionMaxLen)
	}
	if f.Priority < PriorityMin || f.Priority > PriorityMax {
		return fmt.Errorf("%w: priority must be between %d and %d", ErrInvalidTodo, PriorityMin, PriorityMax)
	}
	return nil
}

// Apply overwrites the editable fields. OwnerID and ID are left untouched.
func (t *Todo) Apply(f TodoFields) {
	t.Title = f.Title
	t.Description = f.Description
	t.Priority = f.Priority
	t.Completed = f.Completed
}
