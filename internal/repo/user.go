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

// UserRepo defines the persistence operations for UserProfiles.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type UserRepo interface {
	// Create inserts a new profile and returns the persisted record. The
	// status column is NOT set here — the database default ("user") applies.
	Create(ctx context.Context, profile domain.UserProfile) (domain.UserProfile, error)

	// GetByAccountID retrieves the profile mirroring the given identity
	// provider account. Returns domain.ErrNotFound if none exists.
	GetByAccountID(ctx context.Context, accountID string) (domain.UserProfile, error)

	// List returns one page of profiles ordered by joined_at descending,
	// plus the total number of profiles for pagination.
	List(ctx context.Context, params domain.PaginationParams) ([]domain.UserProfile, int64, error)

	// ListAll returns every profile. Used by the dashboard aggregator,
	// which buckets in memory.
	ListAll(ctx context.Context) ([]domain.UserProfile, error)
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

// Create inserts a new profile row and returns the full persisted record,
// including the store-defaulted status.
func (r *pgUserRepo) Create(ctx context.Context, profile domain.UserProfile) (domain.UserProfile, error) {
	const q = `
		INSERT INTO users (account_id, name, email, image_url, joined_at)
		VALUES (@account_id, @name, @email, @image_url, @joined_at)
		RETURNING id, account_id, name, email, image_url, joined_at, status`

	args := pgx.NamedArgs{
		"account_id": profile.AccountID,
		"name":       profile.Name,
		"email":      profile.Email,
		"image_url":  profile.ImageURL,
		"joined_at":  profile.JoinedAt,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

// GetByAccountID retrieves a profile by the external account identifier.
func (r *pgUserRepo) GetByAccountID(ctx context.Context, accountID string) (domain.UserProfile, error) {
	const q = `
		SELECT id, account_id, name, email, image_url, joined_at, status
		FROM users
		WHERE account_id = @account_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"account_id": accountID})
	result, err := scanUser(row)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("repo.UserRepo.GetByAccountID: %w", err)
	}
	return result, nil
}

// List returns one page of profiles, newest joiners first, plus the total count.
func (r *pgUserRepo) List(ctx context.Context, params domain.PaginationParams) ([]domain.UserProfile, int64, error) {
	const q = `
		SELECT id, account_id, name, email, image_url, joined_at, status,
		       count(*) OVER () AS total
		FROM users
		ORDER BY joined_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": params.Limit, "offset": params.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.UserRepo.List: %w", err)
	}
	defer rows.Close()

	var (
		users []domain.UserProfile
		total int64
	)
	for rows.Next() {
		var (
			u  domain.UserProfile
			id pgtype.UUID
		)
		err := rows.Scan(&id, &u.AccountID, &u.Name, &u.Email, &u.ImageURL, &u.JoinedAt, &u.Status, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.UserRepo.List: scan: %w", err)
		}
		u.ID = uuid.UUID(id.Bytes)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.UserRepo.List: rows: %w", err)
	}

	return users, total, nil
}

// ListAll returns every profile ordered by joined_at ascending.
func (r *pgUserRepo) ListAll(ctx context.Context) ([]domain.UserProfile, error) {
	const q = `
		SELECT id, account_id, name, email, image_url, joined_at, status
		FROM users
		ORDER BY joined_at`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.ListAll: %w", err)
	}
	defer rows.Close()

	var users []domain.UserProfile
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.UserRepo.ListAll: scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.UserRepo.ListAll: rows: %w", err)
	}

	return users, nil
}

// scanUser maps a single database row into a domain.UserProfile.
func scanUser(s scanner) (domain.UserProfile, error) {
	var (
		u  domain.UserProfile
		id pgtype.UUID
	)

	err := s.Scan(&id, &u.AccountID, &u.Name, &u.Email, &u.ImageURL, &u.JoinedAt, &u.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UserProfile{}, domain.ErrNotFound
		}
		return domain.UserProfile{}, err
	}

	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}
