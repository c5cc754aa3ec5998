package repository_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pawsome-storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seenRequest struct {
	method string
	path   string
	query  string
	auth   string
	idem   string
	body   map[string]any
}

// recordingBackend answers every call with data and records what it saw.
func recordingBackend(t *testing.T, data any) (*repository.APIClient, *seenRequest) {
	t.Helper()

	seen := &seenRequest{}
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		seen.method = r.Method
		seen.path = r.URL.EscapedPath()
		seen.query = r.URL.RawQuery
		seen.auth = r.Header.Get("Authorization")
		seen.idem = r.Header.Get("Idempotency-Key")
		seen.body = nil
		if r.ContentLength > 0 {
			_ = json.NewDecoder(r.Body).Decode(&seen.body)
		}

		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
	})

	return repository.NewAPIClient(testAPIConfig(srv.URL), srv.Client()), seen
}

func TestCartRepositoryRoutes(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Add item posts line with bearer token", func(t *testing.T) {
		// Arrange
		api, seen := recordingBackend(t, map[string]any{"items": []any{}})
		repo := repository.NewCartRepo(api)

		// Act
		_, err := repo.AddItem(ctx, "tok", &models.CartItem{ProductID: "p-1", Quantity: 2, Color: "red"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, seen.method)
		assert.Equal(t, "/cart/items", seen.path)
		assert.Equal(t, "Bearer tok", seen.auth)
		assert.Equal(t, "p-1", seen.body["product_id"])
		assert.Equal(t, "red", seen.body["color"])
	})

	t.Run("Success - Update, remove and clear", func(t *testing.T) {
		// Arrange
		api, seen := recordingBackend(t, map[string]any{"items": []any{}})
		repo := repository.NewCartRepo(api)

		// Act & Assert
		_, err := repo.UpdateItem(ctx, "tok", &models.UpdateQuantityRequest{ProductID: "p-1", Quantity: 3})
		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, seen.method)
		assert.EqualValues(t, 3, seen.body["quantity"])

		_, err = repo.RemoveItem(ctx, "tok", &models.RemoveItemRequest{ProductID: "p-1", Size: "L"})
		require.NoError(t, err)
		assert.Equal(t, http.MethodDelete, seen.method)
		assert.Equal(t, "/cart/items", seen.path)
		assert.Equal(t, "L", seen.body["size"])

		require.NoError(t, repo.ClearCart(ctx, "tok"))
		assert.Equal(t, http.MethodDelete, seen.method)
		assert.Equal(t, "/cart", seen.path)
	})
}

func TestOrderRepositoryRoutes(t *testing.T) {
	t.Run("Success - List sends page and limit", func(t *testing.T) {
		// Arrange
		api, seen := recordingBackend(t, map[string]any{
			"orders":     []map[string]any{{"id": "ord-1"}},
			"pagination": map[string]any{"page": 2, "limit": 5, "total": 6},
		})
		repo := repository.NewOrderRepo(api)

		// Act
		history, err := repo.ListOrders(t.Context(), "tok", 2, 5)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "/orders", seen.path)
		assert.Equal(t, "limit=5&page=2", seen.query)
		require.Len(t, history.Orders, 1)
		assert.Equal(t, 6, history.Pagination.Total)
	})

	t.Run("Success - Get escapes the id", func(t *testing.T) {
		// Arrange
		api, seen := recordingBackend(t, map[string]any{"id": "a/b", "payment_status": "paid"})
		repo := repository.NewOrderRepo(api)

		// Act
		order, err := repo.GetOrder(t.Context(), "tok", "a/b")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "/orders/a%2Fb", seen.path)
		assert.True(t, order.IsPaid())
	})
}

func TestUserRepositoryRoutes(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Login returns token and user", func(t *testing.T) {
		// Arrange
		api, seen := recordingBackend(t, map[string]any{
			"token": "jwt-token",
			"user":  map[string]any{"id": "user-1", "email": "sam@example.com"},
		})
		repo := repository.NewUserRepo(api)

		// Act
		auth, err := repo.Login(ctx, &models.LoginRequest{Email: "sam@example.com", Password: "pw"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "/auth/login", seen.path)
		assert.Empty(t, seen.auth)
		assert.Equal(t, "jwt-token", auth.Token)
		assert.Equal(t, "user-1", auth.User.ID)
	})

	t.Run("Success - Logout and profile carry token", func(t *testing.T) {
		// Arrange
		api, seen := recordingBackend(t, map[string]any{"id": "user-1", "name": "Sam"})
		repo := repository.NewUserRepo(api)

		// Act & Assert
		require.NoError(t, repo.Logout(ctx, "tok"))
		assert.Equal(t, "/auth/logout", seen.path)
		assert.Equal(t, "Bearer tok", seen.auth)

		user, err := repo.GetProfile(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, "/auth/me", seen.path)
		assert.Equal(t, "Sam", user.Name)
	})

	t.Run("Success - Register", func(t *testing.T) {
		// Arrange
		api, seen := recordingBackend(t, map[string]any{"token": "jwt-token", "user": map[string]any{"id": "user-2"}})
		repo := repository.NewUserRepo(api)

		// Act
		auth, err := repo.Register(ctx, &models.RegisterRequest{Email: "new@example.com", Password: "password123", Name: "New"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "/auth/register", seen.path)
		assert.Equal(t, "new@example.com", seen.body["email"])
		assert.Equal(t, "user-2", auth.User.ID)
	})
}

func TestPaymentRepositoryRoutes(t *testing.T) {
	t.Run("Success - Intent request forwards idempotency key", func(t *testing.T) {
		// Arrange
		api, seen := recordingBackend(t, map[string]any{
			"payment_intent_id": "pi_123",
			"client_secret":     "pi_123_secret_abc",
			"amount":            49.19,
			"currency":          "usd",
		})
		repo := repository.NewPaymentRepo(api)

		// Act
		intent, err := repo.CreatePaymentIntent(t.Context(), "tok", &models.CreatePaymentIntentRequest{
			Amount:         4919,
			Currency:       "usd",
			IdempotencyKey: "key-1",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "/payments/create-intent", seen.path)
		assert.Equal(t, "key-1", seen.idem)
		assert.EqualValues(t, 4919, seen.body["amount"])
		assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
	})
}
