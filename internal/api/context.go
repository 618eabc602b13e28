package api

import (
	"context"
	"net/http"

	"drivesync-backend/internal/domain"
)

type contextKey string

const sessionKey contextKey = "session"

func withSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// sessionFrom returns the authenticated session, set by the Authenticate
// middleware. Handlers behind it can rely on a non-nil session.
func sessionFrom(r *http.Request) *domain.Session {
	session, _ := r.Context().Value(sessionKey).(*domain.Session)
	return session
}
