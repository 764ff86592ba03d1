package sqlstore

import "github.com/todoapp/todo-api/internal/core/domain"

type userModel struct {
	ID             int64 `gorm:"primaryKey;autoIncrement"`
	Email          string
	Username       string
	FirstName      string
	LastName       string
	HashedPassword string
	IsActive       bool
	Role           string
	PhoneNumber    *string
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:             m.ID,
		Username:       m.Username,
		Email:          m.Email,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		HashedPassword: m.HashedPassword,
		Role:           m.Role,
		PhoneNumber:    m.PhoneNumber,
		IsActive:       m.IsActive,
	}
}

func userFromDomain(u *domain.User) *userModel {
	return &userModel{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		HashedPassword: u.HashedPassword,
		IsActive:       u.IsActive,
		Role:           u.Role,
		PhoneNumber:    u.PhoneNumber,
	}
}

type todoModel struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	Title       string
	Description string
	Priority    int
	Completed   bool
	OwnerID     int64 `gorm:"index"`
}

func (todoModel) TableName() string { return "todos" }

func (m *todoModel) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Priority:    m.Priority,
		Completed:   m.Completed,
		OwnerID:     m.OwnerID,
	}
}
