package handler

import "github.com/todoapp/todo-api/internal/core/domain"

// todoRequest is the create/update payload. owner_id and id are not part of
// it and are ignored when sent.
type todoRequest struct {
	Title       string `json:"title" validate:"required,min=3" example:"Buy milk"`
	Description string `json:"description" validate:"required,min=3,max=100" example:"Two litres, semi-skimmed"`
	Priority    int    `json:"priority" validate:"gte=1,lte=5" example:"3"`
	Completed   *bool  `json:"completed" validate:"required" example:"false"`
}

func (r todoRequest) toFields() domain.TodoFields {
	return domain.TodoFields{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Completed:   *r.Completed,
	}
}

type todoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Completed   bool   `json:"completed"`
	OwnerID     int64  `json:"owner_id"`
}

func toTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Completed:   t.Completed,
		OwnerID:     t.OwnerID,
	}
}
