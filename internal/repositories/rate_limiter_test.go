package repository_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/config"
	repository "github.com/aaravmahajanofficial/pawsome-storefront/internal/repositories"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestCheckLoginRateLimit(t *testing.T) {
	ctx := t.Context()
	cfg := &config.RateConfig{MaxAttempts: 3, WindowSize: time.Minute}
	fixed := time.Unix(1_700_000_100, 0)
	now := fixed.Unix()
	key := "login_attempts:sam@example.com"

	expectPipeline := func(mock redismock.ClientMock, count int64) {
		mock.ExpectZRemRangeByScore(key, "0", fmt.Sprintf("%d", now-60)).SetVal(0)
		mock.ExpectZAdd(key, redis.Z{Score: float64(now), Member: now}).SetVal(1)
		mock.ExpectZCard(key).SetVal(count)
		mock.ExpectExpire(key, cfg.WindowSize).SetVal(true)
	}

	t.Run("Success - Attempt allowed", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		limiter := repository.NewRateLimitRepoWithClock(client, cfg, func() time.Time { return fixed })
		expectPipeline(mock, 1)

		// Act
		allowed, remaining, retryAfter, err := limiter.CheckLoginRateLimit(ctx, " Sam@Example.com")

		// Assert
		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2, remaining)
		assert.Zero(t, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Last allowed attempt", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		limiter := repository.NewRateLimitRepoWithClock(client, cfg, func() time.Time { return fixed })
		expectPipeline(mock, 3)

		// Act
		allowed, remaining, _, err := limiter.CheckLoginRateLimit(ctx, "sam@example.com")

		// Assert
		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.Zero(t, remaining)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Limit exceeded", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		limiter := repository.NewRateLimitRepoWithClock(client, cfg, func() time.Time { return fixed })
		expectPipeline(mock, 4)
		mock.ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]redis.Z{{Score: float64(now - 20), Member: fmt.Sprintf("%d", now-20)}})

		// Act
		allowed, remaining, retryAfter, err := limiter.CheckLoginRateLimit(ctx, "sam@example.com")

		// Assert
		assert.NoError(t, err)
		assert.False(t, allowed)
		assert.Zero(t, remaining)
		assert.Equal(t, 40, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Pipeline error", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		limiter := repository.NewRateLimitRepoWithClock(client, cfg, func() time.Time { return fixed })
		mock.ExpectZRemRangeByScore(key, "0", fmt.Sprintf("%d", now-60)).SetErr(errors.New("connection refused"))

		// Act
		allowed, _, _, err := limiter.CheckLoginRateLimit(ctx, "sam@example.com")

		// Assert
		assert.Error(t, err)
		assert.False(t, allowed)
	})
}
