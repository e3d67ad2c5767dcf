package repo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourvisto/backend/internal/domain"
	"github.com/tourvisto/backend/internal/repo"
	"github.com/tourvisto/backend/testutil"
)

// newUserRepo opens a transaction against the test database and returns a
// UserRepo backed by that transaction. The transaction is rolled back when the
// test finishes, giving free per-test isolation.
func newUserRepo(t *testing.T) repo.UserRepo {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repo.NewUserRepo(tx)
}

func userFixture(accountID string) domain.UserProfile {
	return domain.UserProfile{
		AccountID: accountID,
		Name:      "Ada Lovelace",
		Email:     accountID + "@example.com",
		ImageURL:  "https://img.example/ada.jpg",
		JoinedAt:  time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestUserRepo_Create(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	got, err := r.Create(ctx, userFixture("acct-1"))

	require.NoError(t, err)
	assert.NotEqual(t, [16]byte{}, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, "acct-1", got.AccountID)
	assert.Equal(t, "Ada Lovelace", got.Name)
	// The status column default applies; application code never sets it.
	assert.Equal(t, domain.StatusUser, got.Status)
	assert.False(t, got.JoinedAt.IsZero())
}

func TestUserRepo_GetByAccountID(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, userFixture("acct-1"))
	require.NoError(t, err)

	got, err := r.GetByAccountID(ctx, "acct-1")

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Email, got.Email)
}

func TestUserRepo_GetByAccountID_NotFound(t *testing.T) {
	r := newUserRepo(t)

	_, err := r.GetByAccountID(context.Background(), "never-signed-in")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_List_PaginatesWithTotal(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := r.Create(ctx, userFixture(fmt.Sprintf("acct-%d", i)))
		require.NoError(t, err)
	}

	page, limit := 1, 2
	users, total, err := r.List(ctx, domain.NewPaginationParams(&page, &limit))

	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(3), total)

	page = 2
	users, total, err = r.List(ctx, domain.NewPaginationParams(&page, &limit))

	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, int64(3), total)
}

func TestUserRepo_List_Empty(t *testing.T) {
	r := newUserRepo(t)

	users, total, err := r.List(context.Background(), domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Zero(t, total)
}

func TestUserRepo_ListAll(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := r.Create(ctx, userFixture(fmt.Sprintf("acct-%d", i)))
		require.NoError(t, err)
	}

	users, err := r.ListAll(ctx)

	require.NoError(t, err)
	assert.Len(t, users, 2)
}
