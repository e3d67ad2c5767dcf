package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/tourvisto/backend/internal/domain"
	"github.com/tourvisto/backend/internal/generator"
	"github.com/tourvisto/backend/internal/payment"
	"github.com/tourvisto/backend/internal/repo"
)

// GenerateTripRequest is the input for TripService.Generate, taken from the
// trip-creation form.
type GenerateTripRequest struct {
	Country      string `json:"country"`
	NumberOfDays int    `json:"numberOfDays"`
	TravelStyle  string `json:"travelStyle"`
	Interests    string `json:"interests"`
	Budget       string `json:"budget"`
	GroupType    string `json:"groupType"`
	UserID       string `json:"userId"`
}

// TripService implements business logic for TripRecord operations.
type TripService struct {
	trips     repo.TripRepo
	generator generator.Generator
	images    generator.ImageSearcher
	payments  payment.LinkCreator
	baseURL   string
}

// NewTripService constructs a TripService. baseURL is the public frontend
// URL used to build payment-completion redirects.
func NewTripService(trips repo.TripRepo, gen generator.Generator, images generator.ImageSearcher, payments payment.LinkCreator, baseURL string) *TripService {
	return &TripService{
		trips:     trips,
		generator: gen,
		images:    images,
		payments:  payments,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
	}
}

// Generate validates the request, produces an itinerary, persists the trip,
// and provisions a payment link.
//
// The payment link and the image lookup are best-effort: their failure is
// logged and the trip is still returned, just without a link or photos.
// Generation failure is NOT tolerated — without a detail blob there is no
// trip to store.
func (s *TripService) Generate(ctx context.Context, req GenerateTripRequest) (domain.TripRecord, error) {
	if err := validateGenerateRequest(req); err != nil {
		return domain.TripRecord{}, fmt.Errorf("service.TripService.Generate: %w", err)
	}

	detail, err := s.generator.Generate(ctx, generator.Request{
		Country:      req.Country,
		NumberOfDays: req.NumberOfDays,
		TravelStyle:  req.TravelStyle,
		Interests:    req.Interests,
		Budget:       req.Budget,
		GroupType:    req.GroupType,
	})
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("service.TripService.Generate: %w", err)
	}

	var imageURLs []string
	if s.images != nil {
		query := strings.Join([]string{req.Country, req.Interests, req.TravelStyle}, " ")
		imageURLs, err = s.images.Search(ctx, query, 3)
		if err != nil {
			slog.ErrorContext(ctx, "image search failed", "error", err, "country", req.Country)
			imageURLs = nil
		}
	}

	created, err := s.trips.Create(ctx, domain.TripRecord{
		UserID:    req.UserID,
		Detail:    detail,
		ImageURLs: imageURLs,
	})
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("service.TripService.Generate: %w", err)
	}

	if link := s.createPaymentLink(ctx, created); link != "" {
		created.PaymentLink = link
	}

	return created, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.TripRecord, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns one page of trips plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, params domain.PaginationParams) ([]domain.TripRecord, int64, error) {
	trips, total, err := s.trips.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.TripRecord{}
	}
	return trips, total, nil
}

// Delete removes a trip permanently. Returns domain.ErrNotFound for a trip
// that does not exist — the handler reports that as a failure envelope, it
// never panics.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// createPaymentLink provisions a hosted payment link for a stored trip and
// saves it on the record. Returns "" when anything goes wrong; every failure
// path is logged and swallowed.
func (s *TripService) createPaymentLink(ctx context.Context, trip domain.TripRecord) string {
	if s.payments == nil {
		return ""
	}

	detail := domain.ParseTripDetail(trip.Detail)
	cents := parsePriceCents(detail.EstimatedPrice)
	if cents <= 0 {
		slog.WarnContext(ctx, "trip has no usable price, skipping payment link", "trip_id", trip.ID)
		return ""
	}

	name := detail.Name
	if name == "" {
		name = detail.Country + " Trip"
	}

	link, err := s.payments.CreateLink(ctx, payment.LinkRequest{
		Name:        name,
		Description: detail.Description,
		Images:      trip.ImageURLs,
		AmountCents: cents,
		TripID:      trip.ID.String(),
		SuccessURL:  fmt.Sprintf("%s/travel/%s/success", s.baseURL, trip.ID),
	})
	if err != nil {
		slog.ErrorContext(ctx, "payment link creation failed", "error", err, "trip_id", trip.ID)
		return ""
	}

	if err := s.trips.SetPaymentLink(ctx, trip.ID, link); err != nil {
		slog.ErrorContext(ctx, "storing payment link failed", "error", err, "trip_id", trip.ID)
	}
	return link
}

// validateGenerateRequest checks the required form fields and the day range.
func validateGenerateRequest(req GenerateTripRequest) error {
	required := map[string]string{
		"country":     req.Country,
		"travelStyle": req.TravelStyle,
		"interests":   req.Interests,
		"budget":      req.Budget,
		"groupType":   req.GroupType,
		"userId":      req.UserID,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
		}
	}
	if req.NumberOfDays < 1 || req.NumberOfDays > 10 {
		return fmt.Errorf("%w: numberOfDays must be between 1 and 10", domain.ErrValidation)
	}
	return nil
}

// parsePriceCents extracts the digits from a display price such as "€1,200"
// and converts to the smallest currency unit. Returns 0 when no digits exist.
func parsePriceCents(price string) int64 {
	var digits strings.Builder
	for _, r := range price {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n * 100
}
