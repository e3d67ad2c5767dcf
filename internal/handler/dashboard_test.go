package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourvisto/backend/internal/domain"
)

func TestDashboard_200(t *testing.T) {
	dashboard := &mockDashboardServicer{
		stats: func(_ context.Context) domain.DashboardStats {
			return domain.DashboardStats{
				TotalUsers:  12,
				UsersJoined: domain.TrendCounts{CurrentMonth: 4, LastMonth: 2},
				UserRole:    domain.RoleCounts{Total: 11, CurrentMonth: 4, LastMonth: 2},
				TotalTrips:  30,
				TripsCreated: domain.TrendCounts{
					CurrentMonth: 9,
					LastMonth:    5,
				},
			}
		},
		userGrowthPerDay: func(_ context.Context) []domain.GrowthPoint {
			return []domain.GrowthPoint{{Day: "Aug 1", Count: 2}}
		},
		tripsCreatedPerDay: func(_ context.Context) []domain.GrowthPoint {
			return []domain.GrowthPoint{{Day: "Aug 2", Count: 1}}
		},
		tripsByTravelStyle: func(_ context.Context) []domain.TravelStyleCount {
			return []domain.TravelStyleCount{{TravelStyle: "Adventure", Count: 7}}
		},
	}
	h := newHTTPHandler(nil, nil, dashboard, resolveAs(adminUser()))

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))
	rec := doRequest(h, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Stats struct {
			TotalUsers int `json:"totalUsers"`
			TotalTrips int `json:"totalTrips"`
		} `json:"stats"`
		UserGrowth         []domain.GrowthPoint      `json:"userGrowth"`
		TripGrowth         []domain.GrowthPoint      `json:"tripGrowth"`
		TripsByTravelStyle []domain.TravelStyleCount `json:"tripsByTravelStyle"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 12, resp.Stats.TotalUsers)
	assert.Equal(t, 30, resp.Stats.TotalTrips)
	assert.Equal(t, []domain.GrowthPoint{{Day: "Aug 1", Count: 2}}, resp.UserGrowth)
	assert.Equal(t, []domain.GrowthPoint{{Day: "Aug 2", Count: 1}}, resp.TripGrowth)
	assert.Equal(t, []domain.TravelStyleCount{{TravelStyle: "Adventure", Count: 7}}, resp.TripsByTravelStyle)
}

func TestDashboard_EmptyAggregatesStillRender(t *testing.T) {
	// Zero-valued mock: every aggregate degrades to its empty form.
	h := newHTTPHandler(nil, nil, &mockDashboardServicer{}, resolveAs(adminUser()))

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))
	rec := doRequest(h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userGrowth":[]`)
	assert.Contains(t, rec.Body.String(), `"totalUsers":0`)
}

func TestDashboard_403_ForRegularUser(t *testing.T) {
	h := newHTTPHandler(nil, nil, &mockDashboardServicer{}, resolveAs(regularUser()))

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))
	rec := doRequest(h, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
