package domain

import "errors"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("could not validate user")
	ErrInvalidUser        = errors.New("invalid user")
	ErrUnauthenticated    = errors.New("authentication failed")
)

// User models an account holder. PhoneNumber is nil until set.
type User struct {
	ID             int64
	Username       string
	Email          string
	FirstName      string
	LastName       string
	HashedPassword string
	Role           string
	PhoneNumber    *string
	IsActive       bool
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
