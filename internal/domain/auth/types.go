package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Phase represents the lifecycle phase of a session record.
// Kept as a string for easy logging and serialization.
type Phase string

const (
	// PhasePending marks a session awaiting second-factor confirmation.
	// Pending sessions never grant access.
	PhasePending Phase = "pending"
	// PhaseActive marks a fully authenticated, access-granting session.
	PhaseActive Phase = "active"
)

// Identity represents the authenticated principal looked up in the
// player directory. Set once at session creation, immutable thereafter.
type Identity struct {
	Nickname   string `json:"nickname"`
	AdminLevel int    `json:"admin"`
}

// Session is the server-side record kept for a login in progress or an
// authenticated admin. Token is an opaque random identifier; a fresh one
// is issued on every phase transition.
type Session struct {
	Token    string   `json:"token"`
	Phase    Phase    `json:"phase"`
	Identity Identity `json:"identity"`

	// ConfirmationCode is the 6-digit second-factor code.
	// Only meaningful while Phase is PhasePending.
	ConfirmationCode string `json:"confirmation_code,omitempty"`

	ExpiresAt time.Time `json:"expires_at"`
}

// IsPending returns true while the session awaits confirmation.
func (s Session) IsPending() bool { return s.Phase == PhasePending }

// IsExpired reports whether the session has lapsed at the given instant.
func (s Session) IsExpired(now time.Time) bool { return now.After(s.ExpiresAt) }
