package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"drivesync-backend/internal/domain"
	"drivesync-backend/internal/logger"
	"drivesync-backend/internal/security"
)

// RequestLogger tags every request with an id and logs method, path, status
// and duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)

		logger.Info("request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Authenticate validates the Bearer token and stores the session in the
// request context. Refresh tokens are not accepted here.
func Authenticate(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token", Kind: domain.KindAuthorization})
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil || claims.Type != security.TokenTypeAccess {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token", Kind: domain.KindAuthorization})
				return
			}

			session := &domain.Session{
				UserID:   claims.UserID,
				Username: claims.Username,
				Role:     domain.Role(claims.Role),
			}
			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
		})
	}
}

// RequireAdmin rejects non-admin sessions before the handler runs. Services
// check the role again; this just fails fast with a uniform response.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := sessionFrom(r)
		if session == nil || !session.IsAdmin() {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin access required", Kind: domain.KindAuthorization})
			return
		}
		next.ServeHTTP(w, r)
	})
}
