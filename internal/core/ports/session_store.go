package ports

import (
	"context"
	"time"
)

// SessionStore tracks issued access tokens by their session id (jwt jti) so
// that they can be revoked before they expire.
type SessionStore interface {
	Register(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error
	Active(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}
