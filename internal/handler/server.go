// Package handler implements the HTTP layer of the Tourvisto backend.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, auth.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tourvisto/backend/internal/domain"
	"github.com/tourvisto/backend/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Generate(ctx context.Context, req service.GenerateTripRequest) (domain.TripRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.TripRecord, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.TripRecord, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserServicer defines the operations the admin user list depends on.
type UserServicer interface {
	List(ctx context.Context, params domain.PaginationParams) ([]domain.UserWithTripCount, int64, error)
}

// DashboardServicer defines the aggregate operations for the admin dashboard.
// None of these return errors: fetch failures degrade to empty aggregates
// inside the service.
type DashboardServicer interface {
	Stats(ctx context.Context) domain.DashboardStats
	UserGrowthPerDay(ctx context.Context) []domain.GrowthPoint
	TripsCreatedPerDay(ctx context.Context) []domain.GrowthPoint
	TripsByTravelStyle(ctx context.Context) []domain.TravelStyleCount
}

// AuthServicer defines the session-resolution operations used by the auth
// handlers and the request middleware.
type AuthServicer interface {
	Begin(ctx context.Context, redirectTo string) (string, error)
	Complete(ctx context.Context, code, state string) (token, redirectTo string, err error)
	Resolve(ctx context.Context, token string) (domain.UserProfile, error)
	Logout(ctx context.Context, token string) error
}

// Server holds every handler dependency.
type Server struct {
	trips      TripServicer
	users      UserServicer
	dashboard  DashboardServicer
	auth       AuthServicer
	baseURL    string
	sessionTTL time.Duration
}

// NewServer constructs the Server with all its dependencies. baseURL is the
// public frontend URL used for browser redirects after OAuth.
func NewServer(trips TripServicer, users UserServicer, dashboard DashboardServicer, auth AuthServicer, baseURL string, sessionTTL time.Duration) *Server {
	return &Server{
		trips:      trips,
		users:      users,
		dashboard:  dashboard,
		auth:       auth,
		baseURL:    baseURL,
		sessionTTL: sessionTTL,
	}
}

// Routes builds the full route tree. Mount it at "/" in main.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/google/start", s.handleAuthStart)
		r.Get("/google/callback", s.handleAuthCallback)
		r.Post("/logout", s.handleLogout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)

			r.Get("/me", s.handleMe)
			r.Get("/trips", s.handleListTrips)
			r.Post("/trips", s.handleGenerateTrip)
			r.Get("/trips/{id}", s.handleGetTrip)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireUser, s.requireAdmin)

			r.Get("/users", s.handleListUsers)
			r.Get("/dashboard", s.handleDashboard)
			r.Delete("/trips/{id}", s.handleDeleteTrip)
		})
	})

	return r
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parsePagination reads ?page= and ?limit= into PaginationParams,
// falling back to the domain defaults for absent or malformed values.
func parsePagination(r *http.Request) domain.PaginationParams {
	return domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
}

func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
