package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tourvisto/backend/internal/domain"
	"github.com/tourvisto/backend/internal/repo"
)

// DashboardService computes the admin dashboard aggregates. All bucketing
// happens in memory over the full record sets; the datasets are small enough
// that this beats a zoo of aggregate queries.
//
// Failure policy: a fetch failure is logged and yields zero-valued/empty
// aggregates. The dashboard renders zeros, it never errors out.
type DashboardService struct {
	users repo.UserRepo
	trips repo.TripRepo

	now func() time.Time // injectable for tests
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(users repo.UserRepo, trips repo.TripRepo) *DashboardService {
	return &DashboardService{users: users, trips: trips, now: time.Now}
}

// monthWindow is the pair of bucketing boundaries derived from "now":
// the first instant of the current month (inclusive lower bound, no upper
// bound) and the previous month as [first day, last day at midnight],
// inclusive on both ends.
type monthWindow struct {
	currentStart time.Time
	prevStart    time.Time
	prevEnd      time.Time
}

func newMonthWindow(now time.Time) monthWindow {
	y, m, _ := now.Date()
	loc := now.Location()
	currentStart := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	return monthWindow{
		currentStart: currentStart,
		prevStart:    currentStart.AddDate(0, -1, 0),
		// Last day of the previous month, at midnight. Records later that
		// same day fall outside both buckets.
		prevEnd: currentStart.AddDate(0, 0, -1),
	}
}

// bucket returns the TrendCounts for the given timestamps.
func (w monthWindow) bucket(times []time.Time) domain.TrendCounts {
	var counts domain.TrendCounts
	for _, t := range times {
		if !t.Before(w.currentStart) {
			counts.CurrentMonth++
		}
		if !t.Before(w.prevStart) && !t.After(w.prevEnd) {
			counts.LastMonth++
		}
	}
	return counts
}

// Stats returns the headline dashboard aggregates. Users and trips are
// fetched concurrently; either fetch failing zeroes its side of the result.
func (s *DashboardService) Stats(ctx context.Context) domain.DashboardStats {
	var (
		wg    sync.WaitGroup
		users []domain.UserProfile
		trips []domain.TripRecord
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		if users, err = s.users.ListAll(ctx); err != nil {
			slog.ErrorContext(ctx, "dashboard user fetch failed", "error", err)
			users = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if trips, err = s.trips.ListAll(ctx); err != nil {
			slog.ErrorContext(ctx, "dashboard trip fetch failed", "error", err)
			trips = nil
		}
	}()
	wg.Wait()

	window := newMonthWindow(s.now())

	joined := make([]time.Time, 0, len(users))
	roleJoined := make([]time.Time, 0, len(users))
	roleTotal := 0
	for _, u := range users {
		joined = append(joined, u.JoinedAt)
		if u.Status == domain.StatusUser {
			roleJoined = append(roleJoined, u.JoinedAt)
			roleTotal++
		}
	}

	created := make([]time.Time, 0, len(trips))
	for _, t := range trips {
		created = append(created, t.CreatedAt)
	}

	role := window.bucket(roleJoined)
	return domain.DashboardStats{
		TotalUsers:  len(users),
		UsersJoined: window.bucket(joined),
		UserRole: domain.RoleCounts{
			Total:        roleTotal,
			CurrentMonth: role.CurrentMonth,
			LastMonth:    role.LastMonth,
		},
		TotalTrips:   len(trips),
		TripsCreated: window.bucket(created),
	}
}

// UserGrowthPerDay returns the count of users joined per calendar day.
func (s *DashboardService) UserGrowthPerDay(ctx context.Context) []domain.GrowthPoint {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "user growth fetch failed", "error", err)
		return []domain.GrowthPoint{}
	}

	times := make([]time.Time, 0, len(users))
	for _, u := range users {
		times = append(times, u.JoinedAt)
	}
	return bucketByDay(times)
}

// TripsCreatedPerDay returns the count of trips created per calendar day.
func (s *DashboardService) TripsCreatedPerDay(ctx context.Context) []domain.GrowthPoint {
	trips, err := s.trips.ListAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "trip growth fetch failed", "error", err)
		return []domain.GrowthPoint{}
	}

	times := make([]time.Time, 0, len(trips))
	for _, t := range trips {
		times = append(times, t.CreatedAt)
	}
	return bucketByDay(times)
}

// TripsByTravelStyle returns the number of trips per distinct travel style.
// Styles come out of the detail blob via the normalizer; trips with an
// unparseable blob or no style are skipped, not counted as "unknown".
func (s *DashboardService) TripsByTravelStyle(ctx context.Context) []domain.TravelStyleCount {
	trips, err := s.trips.ListAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "travel style fetch failed", "error", err)
		return []domain.TravelStyleCount{}
	}

	counts := map[string]int{}
	var order []string
	for _, t := range trips {
		style := domain.ParseTripDetail(t.Detail).TravelStyle
		if style == "" {
			continue
		}
		if _, seen := counts[style]; !seen {
			order = append(order, style)
		}
		counts[style]++
	}

	result := make([]domain.TravelStyleCount, 0, len(order))
	for _, style := range order {
		result = append(result, domain.TravelStyleCount{TravelStyle: style, Count: counts[style]})
	}
	return result
}

// bucketByDay groups timestamps under "Jan 2" style labels, preserving
// first-seen order so the series follows record order deterministically.
func bucketByDay(times []time.Time) []domain.GrowthPoint {
	counts := map[string]int{}
	var order []string
	for _, t := range times {
		day := t.Format("Jan 2")
		if _, seen := counts[day]; !seen {
			order = append(order, day)
		}
		counts[day]++
	}

	result := make([]domain.GrowthPoint, 0, len(order))
	for _, day := range order {
		result = append(result, domain.GrowthPoint{Day: day, Count: counts[day]})
	}
	return result
}
