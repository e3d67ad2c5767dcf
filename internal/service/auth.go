// Package service contains the business logic for the Tourvisto backend.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tourvisto/backend/internal/auth"
	"github.com/tourvisto/backend/internal/domain"
	"github.com/tourvisto/backend/internal/repo"
)

// stateTTL bounds how long a sign-in flow may sit between start and callback.
const stateTTL = 10 * time.Minute

// AuthService owns the sign-in state machine:
//
//	unauthenticated → (OAuth redirect) → authenticated, no profile →
//	profile created on first resolve → authenticated with profile
//
// Failures resolve toward "unauthenticated" (redirect to sign-in) except
// profile creation, which degrades to a best-effort identity so a page load
// never fails because one INSERT did.
type AuthService struct {
	users    repo.UserRepo
	sessions repo.SessionRepo
	provider auth.Provider
	ttl      time.Duration

	now func() time.Time // injectable for tests
}

// NewAuthService constructs an AuthService. ttl is the session lifetime.
func NewAuthService(users repo.UserRepo, sessions repo.SessionRepo, provider auth.Provider, ttl time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		provider: provider,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Begin starts a sign-in flow. redirectTo is the page the user intended to
// visit; it is carried server-side on the state record and round-tripped
// through the provider as the opaque state value, never through client-local
// storage. Returns the provider consent URL to redirect the user to.
func (s *AuthService) Begin(ctx context.Context, redirectTo string) (string, error) {
	state, _, err := auth.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("service.AuthService.Begin: %w", err)
	}

	record := domain.OAuthState{
		State:      state,
		RedirectTo: sanitizeRedirect(redirectTo),
		ExpiresAt:  s.now().Add(stateTTL),
	}
	if err := s.sessions.CreateState(ctx, record); err != nil {
		return "", fmt.Errorf("service.AuthService.Begin: %w", err)
	}

	return s.provider.AuthCodeURL(state), nil
}

// Complete finishes the OAuth flow: it consumes the one-time state record,
// exchanges the code for an identity, stores the profile if this is a first
// sign-in, and mints a session. Returns the session token and the post-login
// redirect target.
//
// A missing code or state, an unknown/expired state, and a failed exchange
// all collapse to domain.ErrUnauthenticated — no token exchange is attempted
// without a credential, and the caller redirects to sign-in either way.
func (s *AuthService) Complete(ctx context.Context, code, state string) (string, string, error) {
	if code == "" || state == "" {
		return "", "", fmt.Errorf("service.AuthService.Complete: missing credential: %w", domain.ErrUnauthenticated)
	}

	record, err := s.sessions.ConsumeState(ctx, state)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", fmt.Errorf("service.AuthService.Complete: unknown state: %w", domain.ErrUnauthenticated)
		}
		return "", "", fmt.Errorf("service.AuthService.Complete: %w", err)
	}

	identity, err := s.provider.Exchange(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "oauth exchange failed", "error", err)
		return "", "", fmt.Errorf("service.AuthService.Complete: %w", domain.ErrUnauthenticated)
	}

	// First sign-in creates the profile. Best-effort: a failure here is
	// logged and the sign-in continues without a persisted profile.
	s.ensureProfile(ctx, identity)

	token, hash, err := auth.GenerateToken()
	if err != nil {
		return "", "", fmt.Errorf("service.AuthService.Complete: %w", err)
	}

	session := domain.Session{
		ID:        uuid.New(),
		TokenHash: hash,
		Identity:  identity,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", "", fmt.Errorf("service.AuthService.Complete: %w", err)
	}

	redirectTo := record.RedirectTo
	if redirectTo == "" {
		redirectTo = "/"
	}
	return token, redirectTo, nil
}

// Resolve authenticates a request by session token and returns the caller's
// UserProfile, creating it on first use. Invoked at the start of every
// protected endpoint (via middleware).
//
// Returns domain.ErrUnauthenticated when no valid session exists. Profile
// lookup/creation failures do NOT fail the request: the identity captured at
// sign-in time is returned instead, so callers must tolerate a partial
// profile (zero ID, default status).
func (s *AuthService) Resolve(ctx context.Context, token string) (domain.UserProfile, error) {
	if token == "" {
		return domain.UserProfile{}, fmt.Errorf("service.AuthService.Resolve: %w", domain.ErrUnauthenticated)
	}

	session, err := s.sessions.GetByTokenHash(ctx, auth.HashToken(token))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			// Store unavailable is indistinguishable from signed-out for
			// the caller: both redirect to sign-in.
			slog.ErrorContext(ctx, "session lookup failed", "error", err)
		}
		return domain.UserProfile{}, fmt.Errorf("service.AuthService.Resolve: %w", domain.ErrUnauthenticated)
	}

	if session.Expired(s.now()) {
		if err := s.sessions.DeleteByTokenHash(ctx, session.TokenHash); err != nil {
			slog.ErrorContext(ctx, "expired session cleanup failed", "error", err)
		}
		return domain.UserProfile{}, fmt.Errorf("service.AuthService.Resolve: session expired: %w", domain.ErrUnauthenticated)
	}

	profile, err := s.users.GetByAccountID(ctx, session.Identity.AccountID)
	switch {
	case err == nil:
		return profile, nil
	case errors.Is(err, domain.ErrNotFound):
		if created, ok := s.ensureProfile(ctx, session.Identity); ok {
			return created, nil
		}
	default:
		slog.ErrorContext(ctx, "profile lookup failed", "error", err, "account_id", session.Identity.AccountID)
	}

	// Degraded path: return the raw identity so the page still loads.
	return profileFromIdentity(session.Identity), nil
}

// Logout destroys the session for the given token. Idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteByTokenHash(ctx, auth.HashToken(token)); err != nil {
		return fmt.Errorf("service.AuthService.Logout: %w", err)
	}
	return nil
}

// ensureProfile creates a UserProfile for the identity if none exists.
// Returns the profile and whether a persisted record is available.
func (s *AuthService) ensureProfile(ctx context.Context, identity domain.Identity) (domain.UserProfile, bool) {
	existing, err := s.users.GetByAccountID(ctx, identity.AccountID)
	if err == nil {
		return existing, true
	}
	if !errors.Is(err, domain.ErrNotFound) {
		slog.ErrorContext(ctx, "profile lookup failed", "error", err, "account_id", identity.AccountID)
		return domain.UserProfile{}, false
	}

	created, err := s.users.Create(ctx, domain.UserProfile{
		AccountID: identity.AccountID,
		Name:      identity.Name,
		Email:     identity.Email,
		ImageURL:  identity.ImageURL,
		JoinedAt:  s.now(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "profile creation failed", "error", err, "account_id", identity.AccountID)
		return domain.UserProfile{}, false
	}
	return created, true
}

// profileFromIdentity builds the transient profile returned when the store
// cannot supply one.
func profileFromIdentity(identity domain.Identity) domain.UserProfile {
	return domain.UserProfile{
		AccountID: identity.AccountID,
		Name:      identity.Name,
		Email:     identity.Email,
		ImageURL:  identity.ImageURL,
		Status:    domain.StatusUser,
	}
}

// sanitizeRedirect keeps post-login redirects on-site: only absolute paths
// are accepted, anything else falls back to "/".
func sanitizeRedirect(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return "/"
	}
	return p
}
