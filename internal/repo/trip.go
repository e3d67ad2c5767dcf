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

// TripRepo defines the persistence operations for TripRecords.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id and created_at populated).
	Create(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.TripRecord, error)

	// List returns one page of trips ordered by created_at descending,
	// plus the total number of trips for pagination.
	List(ctx context.Context, params domain.PaginationParams) ([]domain.TripRecord, int64, error)

	// ListAll returns every trip. Used by the dashboard aggregator.
	ListAll(ctx context.Context) ([]domain.TripRecord, error)

	// SetPaymentLink stores the hosted payment link for a trip.
	// Returns domain.ErrNotFound if the trip does not exist.
	SetPaymentLink(ctx context.Context, id uuid.UUID, link string) error

	// Delete removes a trip by ID. Irreversible; there is no soft-delete.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByUserID returns the number of trips created by the given
	// identity-provider account.
	CountByUserID(ctx context.Context, accountID string) (int64, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error) {
	const q = `
		INSERT INTO trips (user_id, detail, image_urls, payment_link)
		VALUES (@user_id, @detail, @image_urls, @payment_link)
		RETURNING id, user_id, detail, image_urls, payment_link, created_at`

	// A nil slice would encode as SQL NULL and trip the NOT NULL constraint;
	// trips created without photos must still insert cleanly.
	images := trip.ImageURLs
	if images == nil {
		images = []string{}
	}

	args := pgx.NamedArgs{
		"user_id":      trip.UserID,
		"detail":       trip.Detail,
		"image_urls":   images,
		"payment_link": trip.PaymentLink,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TripRecord, error) {
	const q = `
		SELECT id, user_id, detail, image_urls, payment_link, created_at
		FROM trips
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of trips, most recently created first, plus the total count.
func (r *pgTripRepo) List(ctx context.Context, params domain.PaginationParams) ([]domain.TripRecord, int64, error) {
	const q = `
		SELECT id, user_id, detail, image_urls, payment_link, created_at,
		       count(*) OVER () AS total
		FROM trips
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": params.Limit, "offset": params.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var (
		trips []domain.TripRecord
		total int64
	)
	for rows.Next() {
		var (
			t  domain.TripRecord
			id pgtype.UUID
		)
		err := rows.Scan(&id, &t.UserID, &t.Detail, &t.ImageURLs, &t.PaymentLink, &t.CreatedAt, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		t.ID = uuid.UUID(id.Bytes)
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	return trips, total, nil
}

// ListAll returns every trip ordered by created_at ascending.
func (r *pgTripRepo) ListAll(ctx context.Context) ([]domain.TripRecord, error) {
	const q = `
		SELECT id, user_id, detail, image_urls, payment_link, created_at
		FROM trips
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListAll: %w", err)
	}
	defer rows.Close()

	var trips []domain.TripRecord
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListAll: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListAll: rows: %w", err)
	}

	return trips, nil
}

// SetPaymentLink stores the hosted payment link on an existing trip.
func (r *pgTripRepo) SetPaymentLink(ctx context.Context, id uuid.UUID, link string) error {
	const q = `UPDATE trips SET payment_link = @payment_link WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "payment_link": link})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.SetPaymentLink: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.SetPaymentLink: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// CountByUserID counts the trips created by one account.
func (r *pgTripRepo) CountByUserID(ctx context.Context, accountID string) (int64, error) {
	const q = `SELECT count(*) FROM trips WHERE user_id = @user_id`

	var n int64
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": accountID}).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repo.TripRepo.CountByUserID: %w", err)
	}
	return n, nil
}

// scanTrip maps a single database row into a domain.TripRecord.
func scanTrip(s scanner) (domain.TripRecord, error) {
	var (
		t  domain.TripRecord
		id pgtype.UUID
	)

	err := s.Scan(&id, &t.UserID, &t.Detail, &t.ImageURLs, &t.PaymentLink, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripRecord{}, domain.ErrNotFound
		}
		return domain.TripRecord{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
