package domain

import "time"

// Identity is the authenticated caller attached to a request.
// Role is carried for completeness; todo access only compares ID.
type Identity struct {
	ID        int64
	Username  string
	Role      string
	SessionID string
	ExpiresAt time.Time
}

// Authenticated reports whether the identity refers to a real user.
func (i Identity) Authenticated() bool {
	return i.ID > 0
}
