package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/pawsome-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/metrics"
	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 4 << 20

// Request describes one logical call against the backend API. Route is the
// low-cardinality label used for metrics, e.g. "/products/{id}".
type Request struct {
	Method         string
	Path           string
	Route          string
	Query          url.Values
	Token          string
	Body           any
	IdempotencyKey string
}

// APIClient issues JSON calls to the storefront backend with a per-attempt
// timeout, bounded retries and a circuit breaker.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	cfg        *config.API
	breaker    *gobreaker.CircuitBreaker[*apiResult]
}

type apiResult struct {
	status int
	body   []byte
}

// serverError marks a 5xx (or throttled) answer so it can be retried while
// the caller can still read the body.
type serverError struct {
	result *apiResult
}

func (e *serverError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.result.status)
}

type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
}

func NewAPIClient(cfg *config.API, httpClient *http.Client) *APIClient {

	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	breaker := gobreaker.NewCircuitBreaker[*apiResult](gobreaker.Settings{
		Name:    "storefront-api",
		Timeout: cfg.BreakerOpenDelay,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Backend circuit breaker changed state",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &APIClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		cfg:        cfg,
		breaker:    breaker,
	}
}

// Do performs the request and decodes the response payload into out (which
// may be nil). Failures are returned as *errors.AppError.
func (c *APIClient) Do(ctx context.Context, req Request, out any) error {

	logger := middleware.LoggerFromContext(ctx)
	start := time.Now()

	route := req.Route
	if route == "" {
		route = req.Path
	}

	var payload []byte
	if req.Body != nil {
		var err error
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return appErrors.InternalError("Failed to encode request").WithError(err)
		}
	}

	attempt := 0
	operation := func() (*apiResult, error) {
		attempt++

		result, err := c.breaker.Execute(func() (*apiResult, error) {
			return c.send(ctx, req, payload)
		})

		if err == nil && result.status == http.StatusTooManyRequests {
			err = &serverError{result: result}
		}

		if err == nil {
			return result, nil
		}

		if !c.shouldRetry(ctx, req, err) {
			return result, backoff.Permanent(err)
		}

		logger.Warn("Retrying backend request",
			slog.String("method", req.Method),
			slog.String("route", route),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)

		return result, err
	}

	result, err := backoff.RetryWithData(operation, c.newBackOff(ctx))

	outcome := outcomeOf(result, err)
	metrics.ObserveBackendRequest(req.Method, route, outcome, time.Since(start))

	if err != nil {
		var se *serverError
		if errors.As(err, &se) {
			return decodeError(se.result)
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return appErrors.NetworkError("Store service is temporarily unavailable").WithError(err)
		}

		logger.Error("Backend request failed",
			slog.String("method", req.Method),
			slog.String("route", route),
			slog.String("error", err.Error()),
		)

		return appErrors.NetworkError("Could not reach the store service").WithError(err)
	}

	if result.status >= http.StatusBadRequest {
		return decodeError(result)
	}

	return decodePayload(result, out)
}

func (c *APIClient) send(ctx context.Context, req Request, payload []byte) (*apiResult, error) {

	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, target, body)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}

	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	result := &apiResult{status: resp.StatusCode, body: data}
	if resp.StatusCode >= http.StatusInternalServerError {
		return result, &serverError{result: result}
	}

	return result, nil
}

func (c *APIClient) shouldRetry(ctx context.Context, req Request, err error) bool {

	if ctx.Err() != nil {
		return false
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}

	// a POST may already have been applied unless the backend can dedupe it
	if !isIdempotent(req.Method) && req.IdempotencyKey == "" {
		return false
	}

	var se *serverError
	if errors.As(err, &se) {
		switch se.result.status {
		case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}

	return true
}

func (c *APIClient) newBackOff(ctx context.Context) backoff.BackOff {

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.cfg.RetryBaseDelay
	exp.MaxInterval = 5 * time.Second
	exp.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(exp, c.cfg.MaxRetries), ctx)
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

func outcomeOf(result *apiResult, err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	case result != nil:
		return strconv.Itoa(result.status)
	default:
		return "network_error"
	}
}

func decodePayload(result *apiResult, out any) error {

	if out == nil || len(result.body) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(result.body, &env); err == nil && env.Success != nil {
		if len(env.Data) == 0 || string(env.Data) == "null" {
			return nil
		}

		if err := json.Unmarshal(env.Data, out); err != nil {
			return appErrors.UpstreamError("Unexpected response from store service").WithError(err)
		}

		return nil
	}

	if err := json.Unmarshal(result.body, out); err != nil {
		return appErrors.UpstreamError("Unexpected response from store service").WithError(err)
	}

	return nil
}

func decodeError(result *apiResult) error {

	code, message := defaultErrorFor(result.status)

	var env envelope
	if err := json.Unmarshal(result.body, &env); err == nil && env.Error != nil {
		if env.Error.Code != "" {
			code = env.Error.Code
		}
		if env.Error.Message != "" {
			message = env.Error.Message
		}
	}

	appErr := appErrors.NewAppError(code, message, result.status)
	if env.Error != nil && len(env.Error.Details) > 0 {
		appErr.WithDetail(strings.Join(env.Error.Details, "; "))
	}

	if result.status >= http.StatusInternalServerError {
		appErr.Code = appErrors.ErrCodeUpstream
		appErr.StatusCode = http.StatusBadGateway
	}

	return appErr
}

func defaultErrorFor(status int) (string, string) {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return appErrors.ErrCodeValidation, "The request was rejected by the store service"
	case status == http.StatusUnauthorized:
		return appErrors.ErrCodeUnauthorized, "Authentication required"
	case status == http.StatusForbidden:
		return appErrors.ErrCodeForbidden, "Access denied"
	case status == http.StatusNotFound:
		return appErrors.ErrCodeNotFound, "Resource not found"
	case status == http.StatusConflict:
		return appErrors.ErrCodeConflict, "The request conflicts with the current state"
	case status == http.StatusTooManyRequests:
		return appErrors.ErrCodeTooManyRequests, "Too many requests, slow down"
	default:
		return appErrors.ErrCodeUpstream, "The store service failed to handle the request"
	}
}
