package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/utils/response"
)

// sessionIDOrError returns the browser session id set by the session
// middleware, writing a 400 when it is absent.
func sessionIDOrError(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {

	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		logger.Warn("Request without session id")
		response.Error(w, errors.BadRequestError("Missing session").WithDetail(middleware.SessionHeader))
		return "", false
	}

	return sessionID, true
}

// queryInt parses an optional positive integer query parameter. Missing keys yield 0.
func queryInt(q url.Values, key string) (int, error) {

	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.AddValidationError(key, "must be a positive integer")
	}

	return n, nil
}
