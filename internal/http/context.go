package httpx

import (
	"context"

	domainauth "github.com/sunrise-rp/admin-api/internal/domain/auth"
)

// sessionContextKey is an unexported context key type for the session.
type sessionContextKey struct{}

// SetSessionInContext stores the verified session in the request context.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// SessionFromContext retrieves the verified session, or nil when the
// request passed through no auth middleware.
func SessionFromContext(ctx context.Context) *domainauth.Session {
	if session, ok := ctx.Value(sessionContextKey{}).(*domainauth.Session); ok {
		return session
	}
	return nil
}
