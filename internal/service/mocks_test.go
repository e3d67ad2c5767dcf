package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/tourvisto/backend/internal/domain"
	"github.com/tourvisto/backend/internal/generator"
	"github.com/tourvisto/backend/internal/payment"
	"github.com/tourvisto/backend/internal/repo"
)

// ---- mock repos ------------------------------------------------------------

// mockUserRepo is a hand-written test double for repo.UserRepo.
type mockUserRepo struct {
	create         func(ctx context.Context, profile domain.UserProfile) (domain.UserProfile, error)
	getByAccountID func(ctx context.Context, accountID string) (domain.UserProfile, error)
	list           func(ctx context.Context, p domain.PaginationParams) ([]domain.UserProfile, int64, error)
	listAll        func(ctx context.Context) ([]domain.UserProfile, error)
}

func (m *mockUserRepo) Create(ctx context.Context, profile domain.UserProfile) (domain.UserProfile, error) {
	return m.create(ctx, profile)
}
func (m *mockUserRepo) GetByAccountID(ctx context.Context, accountID string) (domain.UserProfile, error) {
	return m.getByAccountID(ctx, accountID)
}
func (m *mockUserRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.UserProfile, int64, error) {
	return m.list(ctx, p)
}
func (m *mockUserRepo) ListAll(ctx context.Context) ([]domain.UserProfile, error) {
	return m.listAll(ctx)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

// mockTripRepo is a hand-written test double for repo.TripRepo.
type mockTripRepo struct {
	create         func(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.TripRecord, error)
	list           func(ctx context.Context, p domain.PaginationParams) ([]domain.TripRecord, int64, error)
	listAll        func(ctx context.Context) ([]domain.TripRecord, error)
	setPaymentLink func(ctx context.Context, id uuid.UUID, link string) error
	delete         func(ctx context.Context, id uuid.UUID) error
	countByUserID  func(ctx context.Context, accountID string) (int64, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.TripRecord) (domain.TripRecord, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TripRecord, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.TripRecord, int64, error) {
	return m.list(ctx, p)
}
func (m *mockTripRepo) ListAll(ctx context.Context) ([]domain.TripRecord, error) {
	return m.listAll(ctx)
}
func (m *mockTripRepo) SetPaymentLink(ctx context.Context, id uuid.UUID, link string) error {
	if m.setPaymentLink != nil {
		return m.setPaymentLink(ctx, id, link)
	}
	return nil
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripRepo) CountByUserID(ctx context.Context, accountID string) (int64, error) {
	return m.countByUserID(ctx, accountID)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockSessionRepo is a hand-written test double for repo.SessionRepo.
type mockSessionRepo struct {
	create            func(ctx context.Context, session domain.Session) error
	getByTokenHash    func(ctx context.Context, hash string) (domain.Session, error)
	deleteByTokenHash func(ctx context.Context, hash string) error
	deleteExpired     func(ctx context.Context) (int64, error)
	createState       func(ctx context.Context, state domain.OAuthState) error
	consumeState      func(ctx context.Context, state string) (domain.OAuthState, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, session domain.Session) error {
	return m.create(ctx, session)
}
func (m *mockSessionRepo) GetByTokenHash(ctx context.Context, hash string) (domain.Session, error) {
	return m.getByTokenHash(ctx, hash)
}
func (m *mockSessionRepo) DeleteByTokenHash(ctx context.Context, hash string) error {
	return m.deleteByTokenHash(ctx, hash)
}
func (m *mockSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return m.deleteExpired(ctx)
}
func (m *mockSessionRepo) CreateState(ctx context.Context, state domain.OAuthState) error {
	return m.createState(ctx, state)
}
func (m *mockSessionRepo) ConsumeState(ctx context.Context, state string) (domain.OAuthState, error) {
	return m.consumeState(ctx, state)
}

var _ repo.SessionRepo = (*mockSessionRepo)(nil)

// ---- mock collaborators ----------------------------------------------------

// mockProvider is a test double for auth.Provider.
type mockProvider struct {
	authCodeURL func(state string) string
	exchange    func(ctx context.Context, code string) (domain.Identity, error)
}

func (m *mockProvider) AuthCodeURL(state string) string {
	if m.authCodeURL != nil {
		return m.authCodeURL(state)
	}
	return "https://provider.example/consent?state=" + state
}
func (m *mockProvider) Exchange(ctx context.Context, code string) (domain.Identity, error) {
	return m.exchange(ctx, code)
}

// mockGenerator is a test double for generator.Generator.
type mockGenerator struct {
	generate func(ctx context.Context, req generator.Request) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, req generator.Request) (string, error) {
	return m.generate(ctx, req)
}

// mockImageSearcher is a test double for generator.ImageSearcher.
type mockImageSearcher struct {
	search func(ctx context.Context, query string, limit int) ([]string, error)
}

func (m *mockImageSearcher) Search(ctx context.Context, query string, limit int) ([]string, error) {
	return m.search(ctx, query, limit)
}

// mockLinkCreator is a test double for payment.LinkCreator.
type mockLinkCreator struct {
	createLink func(ctx context.Context, req payment.LinkRequest) (string, error)
}

func (m *mockLinkCreator) CreateLink(ctx context.Context, req payment.LinkRequest) (string, error) {
	return m.createLink(ctx, req)
}
