package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
	"github.com/todoapp/todo-api/internal/pkg/auth"
	"github.com/todoapp/todo-api/internal/pkg/config"
)

// AuthService implements registration, token issuance and logout.
type AuthService struct {
	jwt      config.JWTConfig
	sessions ports.SessionStore
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAuthService builds an AuthService. sessions may be nil, in which case
// tokens are stateless and Logout is a no-op.
func NewAuthService(jwtCfg config.JWTConfig, sessions ports.SessionStore, logger zerolog.Logger) *AuthService {
	if jwtCfg.TTL <= 0 {
		jwtCfg.TTL = 20 * time.Minute
	}
	return &AuthService{jwt: jwtCfg, sessions: sessions, logger: logger, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, h ports.Handle, in ports.RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidUser)
	}
	if !domain.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: role must be one of %s, %s", domain.ErrInvalidUser, domain.RoleAdmin, domain.RoleUser)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:       in.Username,
		Email:          in.Email,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		HashedPassword: string(hash),
		Role:           in.Role,
		PhoneNumber:    in.PhoneNumber,
		IsActive:       true,
	}

	if err := h.Users().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := h.Commit(); err != nil {
		return nil, fmt.Errorf("register: commit: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Str("role", user.Role).Msg("user registered")
	return user, nil
}

// Login verifies the credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, h ports.Handle, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := h.Users().FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Str("username", username).Msg("login for unknown user")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !user.IsActive || bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		s.logger.Warn().Str("username", username).Msg("login rejected")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, identity, err := auth.MintAccessToken(s.jwt, s.now(), user)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if s.sessions != nil {
		if err := s.sessions.Register(ctx, identity.SessionID, user.ID, s.jwt.TTL); err != nil {
			return "", nil, fmt.Errorf("login: register session: %w", err)
		}
	}

	return token, user, nil
}

// Logout revokes the caller's session so the token stops being accepted.
func (s *AuthService) Logout(ctx context.Context, caller domain.Identity) error {
	if !caller.Authenticated() {
		return domain.ErrUnauthenticated
	}
	if s.sessions == nil || caller.SessionID == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, caller.SessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info().Int64("user_id", caller.ID).Msg("session revoked")
	return nil
}
