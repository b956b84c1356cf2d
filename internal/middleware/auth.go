package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/moodtrail/moodtrail-backend/internal/errs"
	"github.com/moodtrail/moodtrail-backend/internal/models"
	"github.com/moodtrail/moodtrail-backend/internal/services"
)

// SessionCookie is the name of the cookie carrying the opaque session token.
const SessionCookie = "moodtrail_session"

type contextKey int

const userKey contextKey = iota

// RequireAuth resolves the session cookie to a user and stores it in
// the request context. Requests without a valid session get 401 before
// reaching the handler. Session-store or database failures during
// resolution are not an authentication verdict: they are logged and
// returned as an opaque 500 so clients keep their session.
func RequireAuth(auth *services.Auth, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.CurrentUser(r.Context(), SessionToken(r))
			if err != nil {
				if errors.Is(err, errs.ErrUnauthenticated) {
					writeMessage(w, http.StatusUnauthorized, "Authentication required")
					return
				}
				logger.Error("session resolution failed",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
		})
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// SessionToken extracts the session token from the request cookie, or
// "" when the cookie is absent.
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// UserFrom returns the authenticated user stored by RequireAuth.
func UserFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}
