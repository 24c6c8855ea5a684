package config

import "time"

// AuthConfig groups authentication and session configuration.
type AuthConfig struct {
	// AdminLevelThreshold is the minimum admin level that may log in.
	// A player's level must be strictly greater than this value.
	AdminLevelThreshold int `env:"AUTH_ADMIN_LEVEL_THRESHOLD" envDefault:"7"`

	// PendingTTL is the lifetime of a pending (unconfirmed) session.
	PendingTTL time.Duration `env:"AUTH_PENDING_TTL" envDefault:"5m"`

	// SessionTTL is the lifetime of an active session. Extended on every
	// authenticated request (sliding expiration).
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"10m"`

	// ExposeConfirmationCode leaks the confirmation code into the login
	// response instead of delivering it out of band.
	// WARNING: debug aid for test environments only. NEVER enable in
	// production; it defeats the second factor entirely.
	ExposeConfirmationCode bool `env:"AUTH_EXPOSE_CONFIRMATION_CODE" envDefault:"false"`

	// PublicLogs serves /api/logs without authentication. The legacy
	// backend flip-flopped on this between revisions; default is protected.
	PublicLogs bool `env:"AUTH_PUBLIC_LOGS" envDefault:"false"`

	// PublicStats serves /api/stats without authentication.
	PublicStats bool `env:"AUTH_PUBLIC_STATS" envDefault:"false"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.AdminLevelThreshold < 0 {
		a.AdminLevelThreshold = 0
	}
	if a.PendingTTL < time.Minute {
		a.PendingTTL = time.Minute
	}
	if a.SessionTTL < time.Minute {
		a.SessionTTL = time.Minute
	}
}
