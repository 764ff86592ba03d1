package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
)

const minPasswordLen = 6

type UserService struct {
	logger zerolog.Logger
}

func NewUserService(logger zerolog.Logger) *UserService {
	return &UserService{logger: logger}
}

// Me returns the caller's account.
func (s *UserService) Me(ctx context.Context, caller domain.Identity, h ports.Handle) (*domain.User, error) {
	if !caller.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	user, err := h.Users().FindByID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the caller's password after verifying the current one.
func (s *UserService) ChangePassword(ctx context.Context, caller domain.Identity, h ports.Handle, current, next string) error {
	if !caller.Authenticated() {
		return domain.ErrUnauthenticated
	}
	if utf8.RuneCountInString(next) < minPasswordLen {
		return fmt.Errorf("%w: new password must be at least %d characters", domain.ErrInvalidUser, minPasswordLen)
	}

	repo := h.Users()
	user, err := repo.FindByID(ctx, caller.ID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}
	if err := repo.UpdatePassword(ctx, caller.ID, string(hash)); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := h.Commit(); err != nil {
		return fmt.Errorf("change password: commit: %w", err)
	}

	s.logger.Info().Int64("user_id", caller.ID).Msg("password changed")
	return nil
}

// ChangePhoneNumber sets the caller's phone number. A blank value clears it.
func (s *UserService) ChangePhoneNumber(ctx context.Context, caller domain.Identity, h ports.Handle, phone string) error {
	if !caller.Authenticated() {
		return domain.ErrUnauthenticated
	}

	var value *string
	if p := strings.TrimSpace(phone); p != "" {
		value = &p
	}

	repo := h.Users()
	if _, err := repo.FindByID(ctx, caller.ID); err != nil {
		return fmt.Errorf("change phone number: %w", err)
	}
	if err := repo.UpdatePhoneNumber(ctx, caller.ID, value); err != nil {
		return fmt.Errorf("change phone number: %w", err)
	}
	if err := h.Commit(); err != nil {
		return fmt.Errorf("change phone number: commit: %w", err)
	}
	return nil
}
