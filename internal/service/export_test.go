package service

import "time"

// SetAuthNow overrides the AuthService clock for tests.
func SetAuthNow(s *AuthService, fn func() time.Time) { s.now = fn }

// SetDashboardNow overrides the DashboardService clock for tests.
func SetDashboardNow(s *DashboardService, fn func() time.Time) { s.now = fn }
