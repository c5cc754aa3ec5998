package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type sessionContextKey string

const SessionIDKey = sessionContextKey("session_id")

// SessionHeader lets non-browser clients carry the session without cookies.
const SessionHeader = "X-Session-ID"

// RememberFunc reports whether a session signed in with remember me.
type RememberFunc func(ctx context.Context, sessionID string) bool

type SessionMiddleware struct {
	cookieName  string
	ttl         time.Duration
	rememberTTL time.Duration
	secure      bool
	remembered  RememberFunc
}

func NewSessionMiddleware(cookieName string, ttl, rememberTTL time.Duration, secure bool) *SessionMiddleware {
	return &SessionMiddleware{cookieName: cookieName, ttl: ttl, rememberTTL: rememberTTL, secure: secure}
}

// WithRememberLookup lets Handle keep the long cookie lifetime of remembered sessions.
func (m *SessionMiddleware) WithRememberLookup(fn RememberFunc) *SessionMiddleware {
	m.remembered = fn
	return m
}

// Issue writes the session cookie and header, replacing any cookie already
// set on this response. Remembered sessions get the longer lifetime.
func (m *SessionMiddleware) Issue(w http.ResponseWriter, sessionID string, remember bool) {

	ttl := m.ttl
	if remember {
		ttl = m.rememberTTL
	}

	header := w.Header()
	prefix := m.cookieName + "="

	var kept []string
	for _, c := range header["Set-Cookie"] {
		if !strings.HasPrefix(c, prefix) {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		header.Del("Set-Cookie")
	} else {
		header["Set-Cookie"] = kept
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	header.Set(SessionHeader, sessionID)
}

// Handle makes sure every request carries a session id, issuing a fresh
// cookie when the client has none or sends a malformed one.
func (m *SessionMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" {
			if cookie, err := r.Cookie(m.cookieName); err == nil {
				sessionID = cookie.Value
			}
		}

		remember := false
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
		} else if m.remembered != nil {
			remember = m.remembered(r.Context(), sessionID)
		}

		m.Issue(w, sessionID, remember)

		logger := LoggerFromContext(r.Context()).With(slog.String("session_id", sessionID))

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		ctx = WithLogger(ctx, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func SessionIDFromContext(ctx context.Context) string {
	if sid, ok := ctx.Value(SessionIDKey).(string); ok {
		return sid
	}

	return ""
}

func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}
