package domain

// TrendCounts partitions a count into the current calendar month and the
// immediately preceding one.
type TrendCounts struct {
	CurrentMonth int `json:"currentMonth"`
	LastMonth    int `json:"lastMonth"`
}

// RoleCounts is TrendCounts plus a total, for the status="user" slice.
type RoleCounts struct {
	Total        int `json:"total"`
	CurrentMonth int `json:"currentMonth"`
	LastMonth    int `json:"lastMonth"`
}

// DashboardStats aggregates user and trip counts for the admin dashboard.
// Derived at read time from timestamps; never persisted.
type DashboardStats struct {
	TotalUsers   int         `json:"totalUsers"`
	UsersJoined  TrendCounts `json:"usersJoined"`
	UserRole     RoleCounts  `json:"userRole"`
	TotalTrips   int         `json:"totalTrips"`
	TripsCreated TrendCounts `json:"tripsCreated"`
}

// GrowthPoint is one day-bucketed data point of a growth series.
// Day is a locale-style "Jan 2" label.
type GrowthPoint struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// TravelStyleCount is the number of trips sharing one travel style.
type TravelStyleCount struct {
	TravelStyle string `json:"travelStyle"`
	Count       int    `json:"count"`
}
