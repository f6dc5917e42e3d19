package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/team-survey/internal/schemas"
	"github.com/jonathan/team-survey/internal/types"
)

const maxBodyBytes = 1 << 20

// handleSubmit handles POST /api/submit
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large.")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body.")
		return
	}
	if !json.Valid(body) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	if err := schemas.ValidateSubmission(body); err != nil {
		var ve *schemas.ValidationError
		if !errors.As(err, &ve) {
			s.serviceError(w, r, err)
			return
		}
		first := ve.First()
		msg := first.Field + ": " + first.Message
		if ve.Missing() {
			msg = MissingFieldsMessage
		}
		s.serviceError(w, r, &ErrValidation{Field: first.Field, Message: msg})
		return
	}

	var req types.SubmitRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	id, err := s.submissions.Submit(r.Context(), &req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, types.SubmitResponse{
		Message: types.SubmitSuccessMessage,
		ID:      id,
	})
}

// handleFilterOptions handles GET /api/filter-options
func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.stats.FilterOptions(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, opts)
}

// handleDashboardStats handles GET /api/dashboard-stats
func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	dashboard, err := s.stats.DashboardStats(r.Context(), Filter{
		Department: query.Get("department"),
		Location:   query.Get("location"),
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, dashboard)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
