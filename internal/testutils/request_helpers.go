package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
)

// TestSession is the signed-in state placed on requests built by CreateTestRequestWithContext.
func TestSession() *models.Session {
	return &models.Session{
		Token: "test-token",
		User:  models.User{ID: "user-1", Name: "Test User", Email: "test@example.com"},
	}
}

// CreateTestRequestWithContext builds a request as it looks after the session
// and auth middleware ran for a signed-in user.
func CreateTestRequestWithContext(method, target string, body io.Reader, sessionID string, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutContext(method, target, body, sessionID, pathParams)

	ctx := context.WithValue(req.Context(), middleware.UserContextKey, TestSession())

	return req.WithContext(ctx)
}

// CreateTestRequestWithoutContext builds a guest request. An empty sessionID
// leaves the session id off the context.
func CreateTestRequestWithoutContext(method, target string, body io.Reader, sessionID string, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := middleware.WithLogger(req.Context(), logger)
	if sessionID != "" {
		ctx = middleware.WithSessionID(ctx, sessionID)
	}

	return req.WithContext(ctx)
}
