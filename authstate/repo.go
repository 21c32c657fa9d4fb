package authstate

import "time"

// PendingAuthorization holds the PKCE verifier generated alongside an
// authorization URL until the OAuth callback claims it.
type PendingAuthorization struct {
	CodeVerifier string
	CreatedAt    time.Time
}

type Repo interface {
	Upsert(state string, pending *PendingAuthorization) error
	// Consume retrieves and removes the entry for state. A state can only be
	// claimed once; a second claim signals CSRF tampering or a replayed callback.
	Consume(state string) (*PendingAuthorization, error)
	Delete(state string) error
	// Cleanup evicts entries older than maxAge and reports how many were removed.
	Cleanup(maxAge time.Duration) int
}
