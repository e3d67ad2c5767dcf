package handler

import (
	"context"
	"net/http"

	"github.com/tourvisto/backend/internal/domain"
)

// sessionCookie is the name of the HTTP-only cookie holding the session token.
const sessionCookie = "tourvisto_session"

// ctxKey is unexported so no other package can collide with our context keys.
type ctxKey int

const profileKey ctxKey = iota

// profileFromContext returns the UserProfile attached by requireUser.
// The second return is false for handlers outside the protected tree.
func profileFromContext(ctx context.Context) (domain.UserProfile, bool) {
	p, ok := ctx.Value(profileKey).(domain.UserProfile)
	return p, ok
}

// handleAuthStart handles GET /auth/google/start.
// It records the intended post-login page and redirects to the provider.
func (s *Server) handleAuthStart(w http.ResponseWriter, r *http.Request) {
	authURL, err := s.auth.Begin(r.Context(), r.URL.Query().Get("redirect_to"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, authURL, http.StatusFound)
}

// handleAuthCallback handles GET /auth/google/callback.
// Every failure collapses to a sign-in redirect carrying error=oauth_failed;
// success sets the session cookie and sends the browser to the page recorded
// when the flow started.
func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	token, redirectTo, err := s.auth.Complete(r.Context(), q.Get("code"), q.Get("state"))
	if err != nil {
		http.Redirect(w, r, s.baseURL+"/sign-in?error=oauth_failed", http.StatusFound)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, s.baseURL+redirectTo, http.StatusFound)
}

// handleLogout handles POST /auth/logout. Idempotent: logging out without a
// session still succeeds and clears the cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context(), sessionToken(r)); err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// handleMe handles GET /api/me.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	profile, _ := profileFromContext(r.Context())
	writeJSON(w, http.StatusOK, profile)
}

// requireUser resolves the session on every protected request and attaches
// the profile to the context. No valid session → 401 envelope; API clients
// (and the frontend router) translate that into a sign-in redirect.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, err := s.auth.Resolve(r.Context(), sessionToken(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), profileKey, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin admits only profiles with admin status. Run it after
// requireUser. A status "user" profile gets 403.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, ok := profileFromContext(r.Context())
		if !ok || !profile.IsAdmin() {
			writeError(w, r, domain.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sessionToken extracts the session token from the request cookie, or ""
// when absent.
func sessionToken(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}
