package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/todoapp/todo-api/internal/core/domain"
)

func seedUser(t *testing.T, h *stubHandle) domain.Identity {
	t.Helper()
	svc := NewAuthService(testJWT, nil, discardLogger)
	user, err := svc.Register(context.Background(), h, registerInput("alice"))
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return domain.Identity{ID: user.ID, Username: user.Username, Role: user.Role}
}

func TestUserService_Me(t *testing.T) {
	h := newStubHandle()
	caller := seedUser(t, h)
	svc := NewUserService(discardLogger)

	user, err := svc.Me(context.Background(), caller, h)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user.Username != "alice" || user.PhoneNumber != nil {
		t.Fatalf("unexpected user %+v", user)
	}

	if _, err := svc.Me(context.Background(), domain.Identity{ID: 999}, h); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Me(context.Background(), domain.Identity{}, h); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	h := newStubHandle()
	caller := seedUser(t, h)
	svc := NewUserService(discardLogger)
	commits := h.commits

	if err := svc.ChangePassword(context.Background(), caller, h, "pass123", "newpass"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if h.commits != commits+1 {
		t.Fatalf("expected commit")
	}
	stored := h.users.rows[caller.ID].HashedPassword
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte("newpass")); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}
}

func TestUserService_ChangePassword_Rejections(t *testing.T) {
	h := newStubHandle()
	caller := seedUser(t, h)
	svc := NewUserService(discardLogger)
	before := h.users.rows[caller.ID].HashedPassword

	if err := svc.ChangePassword(context.Background(), caller, h, "wrong", "newpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), caller, h, "pass123", "short"); !errors.Is(err, domain.ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
	if h.users.rows[caller.ID].HashedPassword != before {
		t.Fatalf("password changed despite rejection")
	}
}

func TestUserService_ChangePhoneNumber(t *testing.T) {
	h := newStubHandle()
	caller := seedUser(t, h)
	svc := NewUserService(discardLogger)

	if err := svc.ChangePhoneNumber(context.Background(), caller, h, " 555-0100 "); err != nil {
		t.Fatalf("ChangePhoneNumber: %v", err)
	}
	phone := h.users.rows[caller.ID].PhoneNumber
	if phone == nil || *phone != "555-0100" {
		t.Fatalf("unexpected phone %v", phone)
	}

	if err := svc.ChangePhoneNumber(context.Background(), caller, h, ""); err != nil {
		t.Fatalf("clear phone: %v", err)
	}
	if h.users.rows[caller.ID].PhoneNumber != nil {
		t.Fatalf("expected phone to be cleared")
	}

	if err := svc.ChangePhoneNumber(context.Background(), domain.Identity{ID: 42}, h, "1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
