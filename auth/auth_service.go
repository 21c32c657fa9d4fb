package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/dripapps/canva-connect/authstate"
	"github.com/dripapps/canva-connect/internal/config"
	errs "github.com/dripapps/canva-connect/internal/errors"
	"github.com/dripapps/canva-connect/sessions"
)

const (
	stateEntropyBytes    = 32
	verifierEntropyBytes = 64
)

// AuthorizationService drives the OAuth 2.0 + PKCE flow against Canva:
// it hands out authorization URLs and completes the code-for-token exchange.
type AuthorizationService struct {
	oauth    *oauth2.Config
	pending  authstate.Repo
	sessions sessions.Repo
}

func NewAuthorizationService(cfg config.CanvaConfig, pending authstate.Repo, sessionRepo sessions.Repo) (*AuthorizationService, error) {
	if cfg.GetClientID() == "" {
		return nil, fmt.Errorf("[auth NewAuthorizationService] CANVA_CLIENT_ID is not configured")
	}
	if cfg.GetClientSecret() == "" {
		return nil, fmt.Errorf("[auth NewAuthorizationService] CANVA_CLIENT_SECRET is not configured")
	}
	if cfg.GetAuthorizationURL() == "" || cfg.GetTokenURL() == "" {
		return nil, fmt.Errorf("[auth NewAuthorizationService] Canva OAuth endpoints are not configured")
	}

	return &AuthorizationService{
		oauth: &oauth2.Config{
			ClientID:     cfg.GetClientID(),
			ClientSecret: cfg.GetClientSecret(),
			RedirectURL:  cfg.GetRedirectURI(),
			Scopes:       strings.Fields(cfg.GetScopes()),
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.GetAuthorizationURL(),
				TokenURL: cfg.GetTokenURL(),
				// Canva's token endpoint takes the client credentials in the
				// form body, not via basic auth.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		pending:  pending,
		sessions: sessionRepo,
	}, nil
}

// AuthorizationURL generates a fresh authorization redirect target.
// The state parameter and PKCE verifier are generated here; the verifier is
// parked in the pending-authorization repo until the callback claims it.
func (s *AuthorizationService) AuthorizationURL() (string, error) {
	state := generateRandomString(stateEntropyBytes)
	verifier := generateRandomString(verifierEntropyBytes)

	err := s.pending.Upsert(state, &authstate.PendingAuthorization{
		CodeVerifier: verifier,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("auth.AuthorizationURL store verifier: %w", err)
	}

	url := s.oauth.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
	log.Info().Str("state", state).Msg("Generated Canva authorization URL")
	return url, nil
}

// ExchangeCode completes the flow after Canva redirects back with a code.
// An unknown state means the callback was forged, replayed, or expired; that
// comes back as ErrStateNotFound rather than a transport error so the caller
// can keep the redirect response generic.
func (s *AuthorizationService) ExchangeCode(ctx context.Context, code, state string) error {
	pending, err := s.pending.Consume(state)
	if err != nil {
		log.Error().Str("state", state).Msg("No code verifier found for state")
		return errs.ErrStateNotFound
	}

	token, err := s.oauth.Exchange(ctx, code, oauth2.VerifierOption(pending.CodeVerifier))
	if err != nil {
		log.Err(err).Str("state", state).Msg("Token exchange failed")
		return fmt.Errorf("auth.ExchangeCode: %w", errs.ErrTokenExchange)
	}
	if token.AccessToken == "" {
		log.Error().Str("state", state).Msg("Token response missing access_token")
		return fmt.Errorf("auth.ExchangeCode: %w", errs.ErrTokenExchange)
	}

	if err := s.sessions.Set(sessions.Session{
		State:       state,
		AccessToken: token.AccessToken,
		CreatedAt:   time.Now(),
	}); err != nil {
		return fmt.Errorf("auth.ExchangeCode store session: %w", err)
	}

	log.Info().Str("state", state).Msg("Obtained Canva access token")

	// Refresh tokens are intentionally discarded: the single-user setup just
	// re-runs the login flow when the access token lapses.
	if token.RefreshToken != "" {
		log.Info().Msg("Refresh token also received (not stored)")
	}
	if expiresIn := time.Until(token.Expiry); token.Expiry.After(time.Now()) {
		log.Info().Dur("expires_in", expiresIn).Msg("Access token expiry reported")
	}

	return nil
}

// IsAuthenticated reports whether a session with an access token exists.
func (s *AuthorizationService) IsAuthenticated() bool {
	session, ok := s.sessions.Current()
	return ok && session.AccessToken != ""
}

// AccessToken returns the current session's token, or false when logged out.
func (s *AuthorizationService) AccessToken() (string, bool) {
	session, ok := s.sessions.Current()
	if !ok || session.AccessToken == "" {
		return "", false
	}
	return session.AccessToken, true
}

// ClearSession logs the user out. Safe to call repeatedly.
func (s *AuthorizationService) ClearSession() {
	s.sessions.Clear()
	log.Info().Msg("Session cleared")
}

// generateRandomString creates a random base64url string from n entropy bytes
func generateRandomString(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
