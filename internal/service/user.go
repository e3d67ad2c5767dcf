package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tourvisto/backend/internal/domain"
	"github.com/tourvisto/backend/internal/repo"
)

// UserService implements business logic for UserProfile operations.
type UserService struct {
	users repo.UserRepo
	trips repo.TripRepo
}

// NewUserService constructs a UserService.
func NewUserService(users repo.UserRepo, trips repo.TripRepo) *UserService {
	return &UserService{users: users, trips: trips}
}

// List returns one page of profiles decorated with each user's itinerary
// count, plus the total number of profiles.
//
// A failed count is logged and reported as zero rather than failing the
// whole page — the admin list degrades, it does not disappear.
func (s *UserService) List(ctx context.Context, params domain.PaginationParams) ([]domain.UserWithTripCount, int64, error) {
	users, total, err := s.users.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("service.UserService.List: %w", err)
	}

	result := make([]domain.UserWithTripCount, 0, len(users))
	for _, u := range users {
		count, err := s.trips.CountByUserID(ctx, u.AccountID)
		if err != nil {
			slog.ErrorContext(ctx, "itinerary count failed", "error", err, "account_id", u.AccountID)
			count = 0
		}
		result = append(result, domain.UserWithTripCount{
			UserProfile:    u,
			ItineraryCount: int(count),
		})
	}

	return result, total, nil
}
