package service_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/pawsome-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	service "github.com/aaravmahajanofficial/pawsome-storefront/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testSessionID = "8b7a1c7e-52d4-4f0e-9a57-3f1d2b6c9e10"

// memoryStore is an in-process SessionStore.
type memoryStore struct {
	mu   sync.Mutex
	data map[string]map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]map[string][]byte)}
}

func (m *memoryStore) Get(_ context.Context, sessionID, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.data[sessionID][key]

	return value, ok, nil
}

func (m *memoryStore) Set(_ context.Context, sessionID, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data[sessionID] == nil {
		m.data[sessionID] = make(map[string][]byte)
	}
	m.data[sessionID][key] = append([]byte(nil), value...)

	return nil
}

func (m *memoryStore) Delete(_ context.Context, sessionID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.data[sessionID], key)
	}

	return nil
}

func (m *memoryStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, sessionID)

	return nil
}

func (m *memoryStore) has(sessionID, key string) bool {
	_, ok, _ := m.Get(context.Background(), sessionID, key)

	return ok
}

// stubSessions reports a fixed auth state.
type stubSessions struct {
	session *models.Session
}

func (s *stubSessions) Current(context.Context, string) (*models.Session, error) {
	return s.session, nil
}

func (s *stubSessions) RequireSession(context.Context, string) (*models.Session, error) {
	if s.session == nil {
		return nil, appErrors.UnauthorizedError("Authentication required").WithDetail(service.LoginPath)
	}

	return s.session, nil
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	claims := &models.Claims{UserID: "user-1", Email: "sam@example.com"}
	if !expiresAt.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	return token
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testPricing() service.Pricing {
	pricing := service.DefaultPricing()
	pricing.PromoCodes = map[string]decimal.Decimal{"WOOF10": dec("10"), "HALF": dec("50")}

	return pricing
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return data
}
