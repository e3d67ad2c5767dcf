package handler

import "net/http"

// handleListUsers handles GET /api/admin/users.
// Supports ?page= and ?limit= like the trip list.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	params := parsePagination(r)
	users, total, err := s.users.List(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Data       any        `json:"data"`
		Pagination pagination `json:"pagination"`
	}{
		Data:       users,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}
