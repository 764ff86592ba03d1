package sqlstore

import (
	"errors"

	"gorm.io/gorm"

	"github.com/todoapp/todo-api/internal/core/ports"
)

var errHandleClosed = errors.New("sqlstore: handle already committed or released")

type handle struct {
	tx   *gorm.DB
	done bool
}

func (h *handle) Todos() ports.TodoRepository { return &todoRepository{db: h.tx} }
func (h *handle) Users() ports.UserRepository { return &userRepository{db: h.tx} }

func (h *handle) Commit() error {
	if h.done {
		return errHandleClosed
	}
	h.done = true
	return h.tx.Commit().Error
}

// Release rolls back unless Commit already ran.
func (h *handle) Release() {
	if h.done {
		return
	}
	h.done = true
	h.tx.Rollback()
}
