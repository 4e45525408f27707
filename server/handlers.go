package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	apperrors "github.com/stonefield/sitegate/internal/errors"
	"github.com/stonefield/sitegate/token"
)

// User-facing messages for the known verification outcomes. Deliberately
// free of any upstream detail.
const (
	msgEmptyEmail  = "Please enter your email address."
	msgNotFound    = "We couldn't find that email. Please subscribe first."
	msgNotMember   = "That email doesn't have access yet."
	msgServerError = "Something went wrong. Please try again later."
)

type verifyRequest struct {
	Email string `json:"email"`
}

type verifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeVerifyResponse(w http.ResponseWriter, status int, resp verifyResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// VerifyHandler checks the submitted email against the CRM list and, on
// success, issues the access cookie.
func (s *Server) VerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeVerifyResponse(w, http.StatusBadRequest, verifyResponse{Success: false, Message: msgEmptyEmail})
			return
		}

		email := token.NormalizeEmail(req.Email)
		if email == "" {
			writeVerifyResponse(w, http.StatusBadRequest, verifyResponse{Success: false, Message: msgEmptyEmail})
			return
		}

		granted, err := s.verifier.VerifyAccess(r.Context(), email)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrContactNotFound):
				writeVerifyResponse(w, http.StatusOK, verifyResponse{Success: false, Message: msgNotFound})
			case errors.Is(err, apperrors.ErrCrmNotConfigured):
				log.Error().Msg("verify called without a crm access token configured")
				writeVerifyResponse(w, http.StatusInternalServerError, verifyResponse{Success: false, Message: msgServerError})
			default:
				log.Err(err).Msg("verification failed")
				writeVerifyResponse(w, http.StatusInternalServerError, verifyResponse{Success: false, Message: msgServerError})
			}
			return
		}

		if !granted {
			writeVerifyResponse(w, http.StatusOK, verifyResponse{Success: false, Message: msgNotMember})
			return
		}

		s.SetAccessCookie(w, r, s.codec.Sign(email))
		writeVerifyResponse(w, http.StatusOK, verifyResponse{Success: true})
	}
}

// LogoutHandler clears the access cookie and sends the visitor back to the
// landing page.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ClearAccessCookie(w, r)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// HealthzHandler is a liveness probe.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}
