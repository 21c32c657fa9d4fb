package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

// AuthStatusResponse is the body of /auth/status and /auth/login. AuthURL is
// present only when the caller still has to log in.
type AuthStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	AuthURL       string `json:"authUrl,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// AuthStatusHandler reports whether a Canva session exists. The frontend
// polls this to decide whether to show the login prompt; a fresh auth URL is
// generated on every unauthenticated check so the PKCE challenge is never
// reused.
func (s *Server) AuthStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.auth.IsAuthenticated() {
			writeJSON(w, http.StatusOK, AuthStatusResponse{Authenticated: true})
			return
		}

		authURL, err := s.auth.AuthorizationURL()
		if err != nil {
			log.Err(err).Msg("Failed to generate authorization URL")
			http.Error(w, "failed to generate authorization URL", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, AuthStatusResponse{Authenticated: false, AuthURL: authURL})
	}
}

// LoginHandler always hands out a fresh authorization URL.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authURL, err := s.auth.AuthorizationURL()
		if err != nil {
			log.Err(err).Msg("Failed to generate authorization URL")
			http.Error(w, "failed to generate authorization URL", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, AuthStatusResponse{Authenticated: false, AuthURL: authURL})
	}
}

// CallbackHandler completes the OAuth flow after Canva redirects back.
// Whatever happens, the user ends up at the frontend with a query flag; no
// exchange detail leaks into the redirect beyond success or failure.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		state := r.URL.Query().Get("state")

		if code == "" || state == "" {
			log.Error().Msg("OAuth callback missing code or state parameter")
			s.redirectToFrontend(w, r, "auth=failed")
			return
		}

		if err := s.auth.ExchangeCode(r.Context(), code, state); err != nil {
			log.Err(err).Msg("OAuth flow failed")
			s.redirectToFrontend(w, r, "auth=failed")
			return
		}

		log.Info().Msg("OAuth flow completed successfully")
		s.redirectToFrontend(w, r, "auth=success")
	}
}

// LogoutHandler clears the current session.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.auth.ClearSession()
		log.Info().Msg("User logged out")
		w.WriteHeader(http.StatusOK)
	}
}

// PreflightHandler terminates OPTIONS requests the CORS middleware let
// through.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) redirectToFrontend(w http.ResponseWriter, r *http.Request, queryFlag string) {
	http.Redirect(w, r, s.config.GetFrontendOrigin()+"?"+queryFlag, http.StatusFound)
}
