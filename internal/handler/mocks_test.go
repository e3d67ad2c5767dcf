package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tourvisto/backend/internal/domain"
	"github.com/tourvisto/backend/internal/handler"
	"github.com/tourvisto/backend/internal/service"
)

// ---- mock servicers --------------------------------------------------------
// Hand-written test doubles for the handler's consumer interfaces.
// Set only the method fields your test needs.

type mockTripServicer struct {
	generate func(ctx context.Context, req service.GenerateTripRequest) (domain.TripRecord, error)
	getByID  func(ctx context.Context, id uuid.UUID) (domain.TripRecord, error)
	list     func(ctx context.Context, params domain.PaginationParams) ([]domain.TripRecord, int64, error)
	delete   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Generate(ctx context.Context, req service.GenerateTripRequest) (domain.TripRecord, error) {
	return m.generate(ctx, req)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.TripRecord, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context, params domain.PaginationParams) ([]domain.TripRecord, int64, error) {
	return m.list(ctx, params)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockUserServicer struct {
	list func(ctx context.Context, params domain.PaginationParams) ([]domain.UserWithTripCount, int64, error)
}

func (m *mockUserServicer) List(ctx context.Context, params domain.PaginationParams) ([]domain.UserWithTripCount, int64, error) {
	return m.list(ctx, params)
}

var _ handler.UserServicer = (*mockUserServicer)(nil)

type mockDashboardServicer struct {
	stats              func(ctx context.Context) domain.DashboardStats
	userGrowthPerDay   func(ctx context.Context) []domain.GrowthPoint
	tripsCreatedPerDay func(ctx context.Context) []domain.GrowthPoint
	tripsByTravelStyle func(ctx context.Context) []domain.TravelStyleCount
}

func (m *mockDashboardServicer) Stats(ctx context.Context) domain.DashboardStats {
	if m.stats != nil {
		return m.stats(ctx)
	}
	return domain.DashboardStats{}
}
func (m *mockDashboardServicer) UserGrowthPerDay(ctx context.Context) []domain.GrowthPoint {
	if m.userGrowthPerDay != nil {
		return m.userGrowthPerDay(ctx)
	}
	return []domain.GrowthPoint{}
}
func (m *mockDashboardServicer) TripsCreatedPerDay(ctx context.Context) []domain.GrowthPoint {
	if m.tripsCreatedPerDay != nil {
		return m.tripsCreatedPerDay(ctx)
	}
	return []domain.GrowthPoint{}
}
func (m *mockDashboardServicer) TripsByTravelStyle(ctx context.Context) []domain.TravelStyleCount {
	if m.tripsByTravelStyle != nil {
		return m.tripsByTravelStyle(ctx)
	}
	return []domain.TravelStyleCount{}
}

var _ handler.DashboardServicer = (*mockDashboardServicer)(nil)

type mockAuthServicer struct {
	begin    func(ctx context.Context, redirectTo string) (string, error)
	complete func(ctx context.Context, code, state string) (string, string, error)
	resolve  func(ctx context.Context, token string) (domain.UserProfile, error)
	logout   func(ctx context.Context, token string) error
}

func (m *mockAuthServicer) Begin(ctx context.Context, redirectTo string) (string, error) {
	return m.begin(ctx, redirectTo)
}
func (m *mockAuthServicer) Complete(ctx context.Context, code, state string) (string, string, error) {
	return m.complete(ctx, code, state)
}
func (m *mockAuthServicer) Resolve(ctx context.Context, token string) (domain.UserProfile, error) {
	return m.resolve(ctx, token)
}
func (m *mockAuthServicer) Logout(ctx context.Context, token string) error {
	if m.logout != nil {
		return m.logout(ctx, token)
	}
	return nil
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

// ---- helpers ---------------------------------------------------------------

const testBaseURL = "https://tourvisto.example"

// newHTTPHandler wires a Server with the given mocks into the full route tree,
// exactly as main does in production. Nil mocks are fine for routes the test
// does not touch.
func newHTTPHandler(trips handler.TripServicer, users handler.UserServicer, dashboard handler.DashboardServicer, auth handler.AuthServicer) http.Handler {
	return handler.NewServer(trips, users, dashboard, auth, testBaseURL, 24*time.Hour).Routes()
}

// resolveAs returns an auth mock whose Resolve always yields the profile.
func resolveAs(profile domain.UserProfile) *mockAuthServicer {
	return &mockAuthServicer{
		resolve: func(_ context.Context, token string) (domain.UserProfile, error) {
			if token == "" {
				return domain.UserProfile{}, domain.ErrUnauthenticated
			}
			return profile, nil
		},
	}
}

func regularUser() domain.UserProfile {
	return domain.UserProfile{
		ID:        uuid.New(),
		AccountID: "acct-123",
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Status:    domain.StatusUser,
	}
}

func adminUser() domain.UserProfile {
	p := regularUser()
	p.Status = domain.StatusAdmin
	return p
}

// withSession attaches a session cookie to the request.
func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: "tourvisto_session", Value: "test-token"})
	return req
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func doRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}
