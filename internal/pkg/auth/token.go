package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/pkg/config"
)

var signingMethod = jwt.SigningMethodHS256

// Claims is the payload of an access token. Subject carries the username.
type Claims struct {
	UserID int64  `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// MintAccessToken signs a token for user valid for cfg.TTL from now. The
// returned identity carries the generated session id (jti) and expiry.
func MintAccessToken(cfg config.JWTConfig, now time.Time, user *domain.User) (string, domain.Identity, error) {
	if cfg.Secret == "" {
		return "", domain.Identity{}, errors.New("jwt secret is required")
	}
	if cfg.TTL <= 0 {
		return "", domain.Identity{}, errors.New("jwt ttl must be positive")
	}

	expiresAt := now.Add(cfg.TTL)
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", domain.Identity{}, fmt.Errorf("signing jwt: %w", err)
	}
	return signed, claims.Identity(), nil
}

// ParseAccessToken validates the signature, issuer and expiry of raw.
func ParseAccessToken(cfg config.JWTConfig, raw string) (*Claims, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" || claims.UserID <= 0 {
		return nil, errors.New("token missing user identity")
	}
	return claims, nil
}

// Identity converts the claims into the caller identity used by services.
func (c *Claims) Identity() domain.Identity {
	id := domain.Identity{
		ID:        c.UserID,
		Username:  c.Subject,
		Role:      c.Role,
		SessionID: c.ID,
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
	}
	return id
}
