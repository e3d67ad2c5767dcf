package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripRecord is a persisted, bookable itinerary. The itinerary content lives
// in Detail as an opaque JSON text blob written by the generation pipeline;
// decode it on demand with ParseTripDetail.
type TripRecord struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"userId"` // accountId of the creating user
	Detail      string    `json:"tripDetail"`
	ImageURLs   []string  `json:"imageUrls"`
	PaymentLink string    `json:"paymentLink,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
