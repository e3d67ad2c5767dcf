package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tourvisto/backend/internal/domain"
)

// SessionRepo defines persistence for login sessions and pending OAuth
// authorizations. Sessions store only a token hash; OAuth states are
// single-use rows consumed by the callback handler.
type SessionRepo interface {
	// Create inserts a new session row.
	Create(ctx context.Context, session domain.Session) error

	// GetByTokenHash retrieves a session by the SHA-256 hash of its token.
	// Returns domain.ErrNotFound if no such session exists.
	GetByTokenHash(ctx context.Context, hash string) (domain.Session, error)

	// DeleteByTokenHash removes a session. Deleting an absent session is
	// not an error — logout must be idempotent.
	DeleteByTokenHash(ctx context.Context, hash string) error

	// DeleteExpired removes sessions past their expiry and returns the
	// number of rows deleted.
	DeleteExpired(ctx context.Context) (int64, error)

	// CreateState records a pending OAuth authorization.
	CreateState(ctx context.Context, state domain.OAuthState) error

	// ConsumeState atomically deletes and returns the pending authorization
	// for the given state value. Returns domain.ErrNotFound if the state is
	// unknown, already used, or expired — all three are indistinguishable
	// to the caller on purpose.
	ConsumeState(ctx context.Context, state string) (domain.OAuthState, error)
}

// pgSessionRepo is the Postgres implementation of SessionRepo.
type pgSessionRepo struct {
	db db
}

// NewSessionRepo constructs a SessionRepo backed by the provided db connection.
func NewSessionRepo(db db) SessionRepo {
	return &pgSessionRepo{db: db}
}

// Create inserts a session row.
func (r *pgSessionRepo) Create(ctx context.Context, session domain.Session) error {
	const q = `
		INSERT INTO sessions (id, token_hash, account_id, name, email, image_url, expires_at)
		VALUES (@id, @token_hash, @account_id, @name, @email, @image_url, @expires_at)`

	args := pgx.NamedArgs{
		"id":         session.ID,
		"token_hash": session.TokenHash,
		"account_id": session.Identity.AccountID,
		"name":       session.Identity.Name,
		"email":      session.Identity.Email,
		"image_url":  session.Identity.ImageURL,
		"expires_at": session.ExpiresAt,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.SessionRepo.Create: %w", err)
	}
	return nil
}

// GetByTokenHash retrieves a session by token hash.
func (r *pgSessionRepo) GetByTokenHash(ctx context.Context, hash string) (domain.Session, error) {
	const q = `
		SELECT id, token_hash, account_id, name, email, image_url, expires_at, created_at
		FROM sessions
		WHERE token_hash = @token_hash`

	var (
		s  domain.Session
		id pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"token_hash": hash}).Scan(
		&id, &s.TokenHash,
		&s.Identity.AccountID, &s.Identity.Name, &s.Identity.Email, &s.Identity.ImageURL,
		&s.ExpiresAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Session{}, fmt.Errorf("repo.SessionRepo.GetByTokenHash: %w", domain.ErrNotFound)
		}
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.GetByTokenHash: %w", err)
	}

	s.ID = uuid.UUID(id.Bytes)
	return s, nil
}

// DeleteByTokenHash removes a session row if present.
func (r *pgSessionRepo) DeleteByTokenHash(ctx context.Context, hash string) error {
	const q = `DELETE FROM sessions WHERE token_hash = @token_hash`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"token_hash": hash}); err != nil {
		return fmt.Errorf("repo.SessionRepo.DeleteByTokenHash: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry.
func (r *pgSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	const q = `DELETE FROM sessions WHERE expires_at < now()`

	tag, err := r.db.Exec(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("repo.SessionRepo.DeleteExpired: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CreateState records a pending OAuth authorization.
func (r *pgSessionRepo) CreateState(ctx context.Context, state domain.OAuthState) error {
	const q = `
		INSERT INTO oauth_states (state, redirect_to, expires_at)
		VALUES (@state, @redirect_to, @expires_at)`

	args := pgx.NamedArgs{
		"state":       state.State,
		"redirect_to": state.RedirectTo,
		"expires_at":  state.ExpiresAt,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.SessionRepo.CreateState: %w", err)
	}
	return nil
}

// ConsumeState deletes and returns a pending authorization in one statement,
// so a state value can never be redeemed twice even under concurrent callbacks.
func (r *pgSessionRepo) ConsumeState(ctx context.Context, state string) (domain.OAuthState, error) {
	const q = `
		DELETE FROM oauth_states
		WHERE state = @state AND expires_at > now()
		RETURNING state, redirect_to, expires_at`

	var s domain.OAuthState
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"state": state}).Scan(&s.State, &s.RedirectTo, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.OAuthState{}, fmt.Errorf("repo.SessionRepo.ConsumeState: %w", domain.ErrNotFound)
		}
		return domain.OAuthState{}, fmt.Errorf("repo.SessionRepo.ConsumeState: %w", err)
	}
	return s, nil
}
