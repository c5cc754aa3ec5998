package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

// Keys held for every browser session.
const (
	KeyCart       = "cart"
	KeyAuthToken  = "auth_token"
	KeyAuthUser   = "auth_user"
	KeyRememberMe = "remember_me"
	KeyCheckout   = "checkout"
)

// SessionStore is the server-side replacement for browser storage: a small
// key/value map per session id.
type SessionStore interface {
	Get(ctx context.Context, sessionID, key string) ([]byte, bool, error)
	Set(ctx context.Context, sessionID, key string, value []byte) error
	Delete(ctx context.Context, sessionID string, keys ...string) error
	Clear(ctx context.Context, sessionID string) error
}

type redisSessionStore struct {
	client *redis.Client
	cfg    *config.Session
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.RedisConnect.Username, cfg.RedisConnect.Host, cfg.RedisConnect.Port)))

	opt, err := redis.ParseURL(cfg.RedisConnect.GetDSN())
	if err != nil {
		slog.Error("Failed to parse Redis URL", slog.Any("error", err))
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("✅ Successfully connected to Redis")
	return client, nil

}

func NewSessionStore(client *redis.Client, cfg *config.Session) SessionStore {
	return &redisSessionStore{client: client, cfg: cfg}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID, key string) ([]byte, bool, error) {

	data, err := s.client.HGet(ctx, sessionKey(sessionID), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("failed to read %s for session: %w", key, err)
	}

	return data, true, nil
}

// Set writes one field and slides the session expiry. Sessions flagged
// remember_me keep the longer expiry.
func (s *redisSessionStore) Set(ctx context.Context, sessionID, key string, value []byte) error {

	logger := middleware.LoggerFromContext(ctx)
	hashKey := sessionKey(sessionID)

	pipe := s.client.Pipeline()
	pipe.HSet(ctx, hashKey, key, value)
	remember := pipe.HGet(ctx, hashKey, KeyRememberMe)

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		logger.Error("Redis pipeline failed for session write", slog.String("key", key), slog.Any("error", err))
		return fmt.Errorf("failed to write %s for session: %w", key, err)
	}

	ttl := s.cfg.TTL
	if remember.Val() == "true" {
		ttl = s.cfg.RememberTTL
	}

	if err := s.client.Expire(ctx, hashKey, ttl).Err(); err != nil {
		return fmt.Errorf("failed to extend session expiry: %w", err)
	}

	return nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string, keys ...string) error {

	if len(keys) == 0 {
		return nil
	}

	if err := s.client.HDel(ctx, sessionKey(sessionID), keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete session keys: %w", err)
	}

	return nil
}

func (s *redisSessionStore) Clear(ctx context.Context, sessionID string) error {

	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}

// GetJSON decodes a stored value. A value that no longer decodes is reported
// as an error so callers can decide whether to reset it.
func GetJSON(ctx context.Context, store SessionStore, sessionID, key string, dest any) (bool, error) {

	data, found, err := store.Get(ctx, sessionID, key)
	if err != nil || !found {
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode session %s: %w", key, err)
	}

	return true, nil
}

func SetJSON(ctx context.Context, store SessionStore, sessionID, key string, value any) error {

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", key, err)
	}

	return store.Set(ctx, sessionID, key, data)
}
