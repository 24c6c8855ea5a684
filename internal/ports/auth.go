package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/sunrise-rp/admin-api/internal/domain/auth"
)

// CreateSessionParams groups inputs for SessionStore.Create.
type CreateSessionParams struct {
	Identity domainauth.Identity
	Phase    domainauth.Phase
	TTL      time.Duration

	// ConfirmationCode is required when Phase is PhasePending.
	ConfirmationCode string
}

// SessionStore is the exclusive owner of all session records.
// Every operation is a single atomic step from the caller's point of view;
// implementations must be safe for concurrent use by request handlers and
// the expiry sweeper.
type SessionStore interface {
	// Create inserts a new record under a freshly generated token and
	// returns the token. Token collisions are regenerated internally.
	Create(ctx context.Context, params CreateSessionParams) (string, error)

	// Get returns the record for token without mutating it.
	// Returns ErrSessionNotFound when absent.
	Get(ctx context.Context, token string) (domainauth.Session, error)

	// Extend resets the record's expiry to now+ttl.
	// Returns ErrSessionNotFound when absent.
	Extend(ctx context.Context, token string, ttl time.Duration) error

	// Promote atomically deletes the record for token and creates a new
	// active record under a fresh token carrying over the identity. There
	// is no window in which both tokens resolve, and no concurrent reader
	// observes a half-completed transition.
	Promote(ctx context.Context, token string, ttl time.Duration) (domainauth.Session, error)

	// Delete removes the record if present; it is idempotent.
	Delete(ctx context.Context, token string) error

	// SweepExpired removes every record with ExpiresAt before now and
	// returns the number removed.
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}
