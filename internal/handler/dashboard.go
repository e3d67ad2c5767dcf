package handler

import (
	"net/http"
	"sync"

	"github.com/tourvisto/backend/internal/domain"
)

// dashboardResponse bundles everything the admin dashboard renders in one
// round trip.
type dashboardResponse struct {
	Stats              domain.DashboardStats     `json:"stats"`
	UserGrowth         []domain.GrowthPoint      `json:"userGrowth"`
	TripGrowth         []domain.GrowthPoint      `json:"tripGrowth"`
	TripsByTravelStyle []domain.TravelStyleCount `json:"tripsByTravelStyle"`
}

// handleDashboard handles GET /api/admin/dashboard.
// The four aggregates are independent, so they are fetched with a
// wait-for-all fan-out. None of them can fail: each degrades to empty
// values inside the service.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		wg   sync.WaitGroup
		resp dashboardResponse
	)
	wg.Add(4)
	go func() { defer wg.Done(); resp.Stats = s.dashboard.Stats(ctx) }()
	go func() { defer wg.Done(); resp.UserGrowth = s.dashboard.UserGrowthPerDay(ctx) }()
	go func() { defer wg.Done(); resp.TripGrowth = s.dashboard.TripsCreatedPerDay(ctx) }()
	go func() { defer wg.Done(); resp.TripsByTravelStyle = s.dashboard.TripsByTravelStyle(ctx) }()
	wg.Wait()

	writeJSON(w, http.StatusOK, resp)
}
