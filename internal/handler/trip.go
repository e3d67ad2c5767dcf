package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tourvisto/backend/internal/domain"
	"github.com/tourvisto/backend/internal/service"
)

// tripResponse is a TripRecord plus its decoded detail, so clients never
// parse the blob themselves.
type tripResponse struct {
	domain.TripRecord
	TripDetail domain.TripDetail `json:"detail"`
}

func toTripResponse(t domain.TripRecord) tripResponse {
	return tripResponse{TripRecord: t, TripDetail: domain.ParseTripDetail(t.Detail)}
}

// pagination mirrors the page/limit/total block on list responses.
type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// handleListTrips handles GET /api/trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	params := parsePagination(r)
	trips, total, err := s.trips.List(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = toTripResponse(t)
	}
	writeJSON(w, http.StatusOK, struct {
		Data       []tripResponse `json:"data"`
		Pagination pagination     `json:"pagination"`
	}{
		Data:       data,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// handleGetTrip handles GET /api/trips/{id}.
func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorCode(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTripResponse(trip))
}

// handleGenerateTrip handles POST /api/trips.
// The creating user is the resolved session profile; a userId in the body is
// accepted for compatibility but the session wins.
func (s *Server) handleGenerateTrip(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorCode(w, http.StatusUnprocessableEntity, "validation_error", "request body is required")
		return
	}

	if profile, ok := profileFromContext(r.Context()); ok && profile.AccountID != "" {
		req.UserID = profile.AccountID
	}

	trip, err := s.trips.Generate(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": trip.ID.String()})
}

// handleDeleteTrip handles DELETE /api/admin/trips/{id}.
func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorCode(w, http.StatusNotFound, "not_found", "trip not found")
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
