package repository_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/pawsome-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pawsome-storefront/internal/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAPIConfig(baseURL string) *config.API {
	return &config.API{
		BaseURL:          baseURL,
		Timeout:          time.Second,
		MaxRetries:       2,
		RetryBaseDelay:   time.Millisecond,
		BreakerFailures:  5,
		BreakerOpenDelay: time.Minute,
	}
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return srv
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestAPIClientDo(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Envelope payload decoded", func(t *testing.T) {
		// Arrange
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products", r.URL.Path)
			assert.Equal(t, "dog", r.URL.Query().Get("petType"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))

			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"data": map[string]any{
					"products":   []map[string]any{{"_id": "65f1c2a9e4b0a1b2c3d4e5f6", "name": "Chew Rope", "price": 12.5}},
					"pagination": map[string]any{"page": 1, "limit": 12, "total": 1, "pages": 1},
				},
			})
		})
		repo := repository.NewProductRepo(repository.NewAPIClient(testAPIConfig(srv.URL+"/api/"), srv.Client()))

		// Act
		page, err := repo.ListProducts(ctx, url.Values{"petType": {"dog"}})

		// Assert
		require.NoError(t, err)
		require.Len(t, page.Products, 1)
		assert.Equal(t, "Chew Rope", page.Products[0].Name)
		assert.True(t, decimal.NewFromFloat(12.5).Equal(page.Products[0].Price))
		assert.Equal(t, 1, page.Pagination.Pages)
	})

	t.Run("Success - Raw payload decoded and slug route used", func(t *testing.T) {
		// Arrange
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products/slug/salmon-kibble", r.URL.Path)
			writeJSON(w, http.StatusOK, map[string]any{"id": "p-1", "slug": "salmon-kibble", "name": "Salmon Kibble"})
		})
		repo := repository.NewProductRepo(repository.NewAPIClient(testAPIConfig(srv.URL), srv.Client()))

		// Act
		product, err := repo.GetProduct(ctx, "salmon-kibble")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "p-1", product.ID)
		assert.Equal(t, "Salmon Kibble", product.Name)
	})

	t.Run("Success - Object id uses id route", func(t *testing.T) {
		// Arrange
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/products/65f1c2a9e4b0a1b2c3d4e5f6", r.URL.Path)
			writeJSON(w, http.StatusOK, map[string]any{"_id": "65f1c2a9e4b0a1b2c3d4e5f6"})
		})
		repo := repository.NewProductRepo(repository.NewAPIClient(testAPIConfig(srv.URL), srv.Client()))

		// Act
		product, err := repo.GetProduct(ctx, "65f1c2a9e4b0a1b2c3d4e5f6")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "65f1c2a9e4b0a1b2c3d4e5f6", product.MongoID)
	})

	t.Run("Success - Token and idempotency key forwarded", func(t *testing.T) {
		// Arrange
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			assert.Equal(t, "idem-1", r.Header.Get("Idempotency-Key"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body models.CreateOrderRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "pi_123", body.PaymentIntentID)

			writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": map[string]any{"id": "order-1"}})
		})
		repo := repository.NewOrderRepo(repository.NewAPIClient(testAPIConfig(srv.URL), srv.Client()))

		// Act
		order, err := repo.CreateOrder(ctx, "tok-123", &models.CreateOrderRequest{PaymentIntentID: "pi_123"}, "idem-1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "order-1", order.ID)
	})

	t.Run("Success - Transient failures retried", func(t *testing.T) {
		// Arrange
		var calls atomic.Int32
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"id": "u-1", "email": "sam@example.com"})
		})
		repo := repository.NewUserRepo(repository.NewAPIClient(testAPIConfig(srv.URL), srv.Client()))

		// Act
		user, err := repo.GetProfile(ctx, "tok")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "u-1", user.ID)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("Success - Throttled request retried", func(t *testing.T) {
		// Arrange
		var calls atomic.Int32
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"items": []any{}})
		})
		repo := repository.NewCartRepo(repository.NewAPIClient(testAPIConfig(srv.URL), srv.Client()))

		// Act
		cart, err := repo.GetCart(ctx, "tok")

		// Assert
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("Failure - Client error not retried", func(t *testing.T) {
		// Arrange
		var calls atomic.Int32
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			writeJSON(w, http.StatusNotFound, map[string]any{
				"success": false,
				"error":   map[string]any{"code": appErrors.ErrCodeNotFound, "message": "Product not found"},
			})
		})
		repo := repository.NewProductRepo(repository.NewAPIClient(testAPIConfig(srv.URL), srv.Client()))

		// Act
		product, err := repo.GetProduct(ctx, "missing")

		// Assert
		assert.Nil(t, product)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Product not found", appErr.Message)
		assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("Failure - Validation details joined", func(t *testing.T) {
		// Arrange
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"error": map[string]any{
					"message": "Invalid registration",
					"details": []string{"email is taken", "password too short"},
				},
			})
		})
		repo := repository.NewUserRepo(repository.NewAPIClient(testAPIConfig(srv.URL), srv.Client()))

		// Act
		_, err := repo.Register(ctx, &models.RegisterRequest{Email: "a@b.co"})

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		assert.Equal(t, "email is taken; password too short", appErr.Detail)
	})

	t.Run("Failure - POST without idempotency key not retried", func(t *testing.T) {
		// Arrange
		var calls atomic.Int32
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		repo := repository.NewUserRepo(repository.NewAPIClient(testAPIConfig(srv.URL), srv.Client()))

		// Act
		auth, err := repo.Login(ctx, &models.LoginRequest{Email: "sam@example.com", Password: "secret"})

		// Assert
		assert.Nil(t, auth)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUpstream, appErr.Code)
		assert.Equal(t, http.StatusBadGateway, appErr.StatusCode)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("Failure - Internal server error not retried", func(t *testing.T) {
		// Arrange
		var calls atomic.Int32
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		})
		repo := repository.NewOrderRepo(repository.NewAPIClient(testAPIConfig(srv.URL), srv.Client()))

		// Act
		_, err := repo.GetOrder(ctx, "tok", "order-1")

		// Assert
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUpstream))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("Failure - Backend unreachable", func(t *testing.T) {
		// Arrange
		srv := httptest.NewServer(http.NotFoundHandler())
		baseURL := srv.URL
		srv.Close()
		repo := repository.NewProductRepo(repository.NewAPIClient(testAPIConfig(baseURL), nil))

		// Act
		_, err := repo.ListProducts(ctx, nil)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNetwork, appErr.Code)
		assert.Equal(t, "Could not reach the store service", appErr.Message)
	})

	t.Run("Failure - Open breaker short-circuits requests", func(t *testing.T) {
		// Arrange
		var calls atomic.Int32
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		})
		cfg := testAPIConfig(srv.URL)
		cfg.MaxRetries = 0
		cfg.BreakerFailures = 2
		repo := repository.NewCartRepo(repository.NewAPIClient(cfg, srv.Client()))

		// Act
		_, firstErr := repo.GetCart(ctx, "tok")
		_, secondErr := repo.GetCart(ctx, "tok")
		_, thirdErr := repo.GetCart(ctx, "tok")

		// Assert
		assert.True(t, appErrors.HasCode(firstErr, appErrors.ErrCodeUpstream))
		assert.True(t, appErrors.HasCode(secondErr, appErrors.ErrCodeUpstream))
		appErr, ok := appErrors.IsAppError(thirdErr)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNetwork, appErr.Code)
		assert.Equal(t, "Store service is temporarily unavailable", appErr.Message)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("Failure - Malformed payload", func(t *testing.T) {
		// Arrange
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"success": true, "data": {"id": 42}}`))
		})
		repo := repository.NewUserRepo(repository.NewAPIClient(testAPIConfig(srv.URL), srv.Client()))

		// Act
		_, err := repo.GetProfile(ctx, "tok")

		// Assert
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUpstream))
	})
}

func TestRecordView(t *testing.T) {
	t.Run("Success - Posts to view route", func(t *testing.T) {
		// Arrange
		var hit atomic.Bool
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/products/p-1/view", r.URL.Path)
			hit.Store(true)
			w.WriteHeader(http.StatusNoContent)
		})
		repo := repository.NewProductRepo(repository.NewAPIClient(testAPIConfig(srv.URL), srv.Client()))

		// Act
		err := repo.RecordView(t.Context(), "p-1")

		// Assert
		assert.NoError(t, err)
		assert.True(t, hit.Load())
	})
}
