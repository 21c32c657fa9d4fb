package sessions

import "time"

// Session is one authenticated Canva session. The State parameter from the
// OAuth flow doubles as the session key. The access token stays inside the
// backend boundary; it is never written to a response or a log line.
type Session struct {
	State       string
	AccessToken string
	CreatedAt   time.Time
}

// Repo holds at most one live session. The process-wide single slot is a
// deliberate single-user simplification: extending to multiple users means
// replacing this interface with one keyed by a real user identifier, not
// widening the slot.
type Repo interface {
	Set(session Session) error
	Current() (Session, bool)
	// Clear drops the current session. Clearing an empty slot is a no-op.
	Clear()
}
