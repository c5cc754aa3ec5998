package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/utils/response"
)

type userContextKey string

const UserContextKey = userContextKey("user_session")

// SessionAuthenticator resolves the auth state held for a browser session.
type SessionAuthenticator interface {
	RequireSession(ctx context.Context, sessionID string) (*models.Session, error)
}

type AuthMiddleware struct {
	auth SessionAuthenticator
}

func NewAuthMiddleware(auth SessionAuthenticator) *AuthMiddleware {

	return &AuthMiddleware{auth: auth}

}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		sessionID := SessionIDFromContext(r.Context())
		if sessionID == "" {
			logger.Warn("Missing session id")
			response.Error(w, errors.UnauthorizedError("Authentication required").WithDetail("/login"))
			return
		}

		session, err := m.auth.RequireSession(r.Context(), sessionID)
		if err != nil {
			logger.Warn("Session not authenticated", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, session)

		requestScopedLogger := logger.With(slog.String("userId", session.User.ID))
		ctx = WithLogger(ctx, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(UserContextKey).(*models.Session)

	return session, ok && session.IsAuthenticated()
}
