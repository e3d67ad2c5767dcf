package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the set of public attributes obtained from the external
// identity provider during OAuth completion. It is captured on the session
// row so the resolver can still return a best-effort identity when the
// UserProfile lookup or creation fails.
type Identity struct {
	AccountID string `json:"accountId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// Session is a server-side login session. The client holds only the opaque
// random token (as an HTTP-only cookie); the database stores its SHA-256
// hash, so a leaked sessions table cannot be replayed.
type Session struct {
	ID        uuid.UUID
	TokenHash string
	Identity  Identity
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool { return now.After(s.ExpiresAt) }

// OAuthState is a pending OAuth authorization, created when a sign-in flow
// starts and consumed exactly once by the callback. RedirectTo carries the
// page the user intended to visit, round-tripped through the provider via
// the opaque State value instead of client-local storage.
type OAuthState struct {
	State      string
	RedirectTo string
	ExpiresAt  time.Time
}
