package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/todoapp/todo-api/internal/core/domain"
)

type todoRepository struct {
	db *gorm.DB
}

func (r *todoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Todo, error) {
	var rows []todoModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	todos := make([]*domain.Todo, 0, len(rows))
	for i := range rows {
		todos = append(todos, rows[i].toDomain())
	}
	return todos, nil
}

func (r *todoRepository) FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Todo, error) {
	var row todoModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *todoRepository) Create(ctx context.Context, t *domain.Todo) error {
	row := todoModel{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Completed:   t.Completed,
		OwnerID:     t.OwnerID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	t.ID = row.ID
	return nil
}

func (r *todoRepository) Update(ctx context.Context, t *domain.Todo) error {
	// A map is used so that false and zero values are written.
	res := r.db.WithContext(ctx).
		Model(&todoModel{}).
		Where("id = ? AND owner_id = ?", t.ID, t.OwnerID).
		Updates(map[string]any{
			"title":       t.Title,
			"description": t.Description,
			"priority":    t.Priority,
			"completed":   t.Completed,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *todoRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&todoModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}
