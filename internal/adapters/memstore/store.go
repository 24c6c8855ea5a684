package memstore

// Package memstore keeps every session record in process memory. Sessions
// are intentionally not shared across instances; a restart logs everyone
// out, which is acceptable for an admin panel.

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/sunrise-rp/admin-api/internal/domain/auth"
	"github.com/sunrise-rp/admin-api/internal/ports"
)

// Store is an in-memory session store guarded by a single mutex, so every
// operation observes either the state before or after any other operation,
// never a partial one.
type Store struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	now      func() time.Time
	newToken func() string
}

// Option customizes a Store.
type Option func(*Store)

// WithNowFunc overrides the clock, useful for expiry tests.
func WithNowFunc(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithTokenFunc overrides token generation, useful for collision tests.
func WithTokenFunc(fn func() string) Option {
	return func(s *Store) {
		s.newToken = fn
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]domainauth.Session),
		now:      time.Now,
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create inserts a new record under a freshly generated token.
func (s *Store) Create(_ context.Context, params ports.CreateSessionParams) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.uniqueTokenLocked()
	s.sessions[token] = domainauth.Session{
		Token:            token,
		Phase:            params.Phase,
		Identity:         params.Identity,
		ConfirmationCode: params.ConfirmationCode,
		ExpiresAt:        s.now().Add(params.TTL),
	}
	return token, nil
}

// Get returns the record for token. Records past their expiry behave as
// missing even before the sweeper removes them.
func (s *Store) Get(_ context.Context, token string) (domainauth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getLocked(token)
	if err != nil {
		return domainauth.Session{}, err
	}
	return sess, nil
}

// Extend resets the record's expiry to now+ttl.
func (s *Store) Extend(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getLocked(token)
	if err != nil {
		return err
	}
	sess.ExpiresAt = s.now().Add(ttl)
	s.sessions[token] = sess
	return nil
}

// Promote removes the record for token and creates an active record under a
// fresh token carrying over the identity. Both steps happen under the same
// lock, so no reader ever resolves both tokens or neither.
func (s *Store) Promote(_ context.Context, token string, ttl time.Duration) (domainauth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.getLocked(token)
	if err != nil {
		return domainauth.Session{}, err
	}
	delete(s.sessions, token)

	fresh := s.uniqueTokenLocked()
	sess := domainauth.Session{
		Token:     fresh,
		Phase:     domainauth.PhaseActive,
		Identity:  old.Identity,
		ExpiresAt: s.now().Add(ttl),
	}
	s.sessions[fresh] = sess
	return sess, nil
}

// Delete removes the record if present. Deleting an unknown token is a no-op.
func (s *Store) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

// SweepExpired removes every record whose expiry is before now and returns
// the number removed.
func (s *Store) SweepExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, sess := range s.sessions {
		if sess.IsExpired(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of live records, expired ones included until the
// next sweep.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// getLocked fetches a live record. Callers must hold s.mu.
func (s *Store) getLocked(token string) (domainauth.Session, error) {
	sess, ok := s.sessions[token]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	if sess.IsExpired(s.now()) {
		delete(s.sessions, token)
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

// uniqueTokenLocked generates a token not currently in use. Collisions are
// vanishingly rare with UUIDs but injectable token funcs make them possible.
func (s *Store) uniqueTokenLocked() string {
	for {
		token := s.newToken()
		if _, exists := s.sessions[token]; !exists {
			return token
		}
	}
}
