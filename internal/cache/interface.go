package cache

import (
	"context"
	"strings"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key joins a prefix and key parts with ":".
func Key(prefix string, parts ...string) string {
	return prefix + ":" + strings.Join(parts, ":")
}

const (
	ProductKeyPrefix     = "product"
	ProductListKeyPrefix = "products:list"
)

// prefixOf returns the metric label for a key: everything before the last ":".
func prefixOf(key string) string {
	if i := strings.LastIndex(key, ":"); i > 0 {
		return key[:i]
	}

	return key
}
