package server

import (
	"encoding/json"
	"net/http"

	"github.com/candyhouse/talent-profile/internal/server/middleware"
	"github.com/candyhouse/talent-profile/internal/types"
	"go.uber.org/zap"
)

// handleGetProfile returns the caller's resume.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	accountID, err := middleware.GetAccountID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resume, err := s.accounts.GetResume(r.Context(), accountID)
	if err != nil {
		s.serviceError(w, "get profile", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handlePutProfile replaces the caller's resume with the request body.
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	accountID, err := middleware.GetAccountID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var resume types.Resume
	if err := json.NewDecoder(r.Body).Decode(&resume); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	saved, err := s.accounts.SaveResume(r.Context(), accountID, resume)
	if err != nil {
		s.serviceError(w, "save profile", err)
		return
	}

	s.logger.Debug("profile saved", zap.Stringer("account_id", accountID))
	s.jsonResponse(w, http.StatusOK, saved)
}

// serviceError maps err to a status. Internal failures are logged and masked.
func (s *Server) serviceError(w http.ResponseWriter, op string, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(op+" failed", zap.Error(err))
		s.errorResponse(w, status, msgInternalFailed)
		return
	}
	s.errorResponse(w, status, err.Error())
}
