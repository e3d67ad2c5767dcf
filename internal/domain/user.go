// Package domain contains the core data types for the Tourvisto backend.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User statuses. The database column defaults to StatusUser; application
// code never sets a status on creation.
const (
	StatusUser  = "user"
	StatusAdmin = "admin"
)

// UserProfile mirrors an external identity inside the application.
// It is created on first successful sign-in and never deleted in-app.
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	AccountID string    `json:"accountId"` // identity-provider account ID
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	JoinedAt  time.Time `json:"joinedAt"`
	Status    string    `json:"status"`
}

// IsAdmin reports whether the profile may access admin endpoints.
func (u UserProfile) IsAdmin() bool { return u.Status == StatusAdmin }

// UserWithTripCount is a UserProfile plus the number of itineraries the
// user has created. Built for the admin user list; not persisted.
type UserWithTripCount struct {
	UserProfile
	ItineraryCount int `json:"itineraryCount"`
}
