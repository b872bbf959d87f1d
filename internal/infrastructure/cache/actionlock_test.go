package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sezzlegate/internal/shared/logger"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestOrderActionLock_ExclusivePerOrder(t *testing.T) {
	_, client := setupTestRedis(t)
	lock := NewOrderActionLock(client, time.Minute, logger.NewNopLogger())
	ctx := context.Background()

	release, ok, err := lock.TryAcquire(ctx, "order-1")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = lock.TryAcquire(ctx, "order-1")
	require.NoError(t, err)
	assert.False(t, ok, "second action on the same order must wait")

	releaseOther, ok, err := lock.TryAcquire(ctx, "order-2")
	require.NoError(t, err)
	assert.True(t, ok, "other orders are independent")
	releaseOther()

	release()

	release2, ok, err := lock.TryAcquire(ctx, "order-1")
	require.NoError(t, err)
	assert.True(t, ok)
	release2()
}

func TestOrderActionLock_ExpiresWithTTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	lock := NewOrderActionLock(client, 5*time.Second, logger.NewNopLogger())
	ctx := context.Background()

	_, ok, err := lock.TryAcquire(ctx, "order-1")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(6 * time.Second)

	_, ok, err = lock.TryAcquire(ctx, "order-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOrderActionLock_StaleReleaseKeepsNewOwner(t *testing.T) {
	mr, client := setupTestRedis(t)
	lock := NewOrderActionLock(client, 5*time.Second, logger.NewNopLogger())
	ctx := context.Background()

	staleRelease, ok, err := lock.TryAcquire(ctx, "order-1")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(6 * time.Second)
	_, ok, err = lock.TryAcquire(ctx, "order-1")
	require.NoError(t, err)
	require.True(t, ok)

	staleRelease()
	assert.True(t, mr.Exists(actionLockKeyPrefix+"order-1"))
}

func TestOrderActionLock_RedisDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	lock := NewOrderActionLock(client, time.Minute, logger.NewNopLogger())
	mr.Close()

	release, ok, err := lock.TryAcquire(context.Background(), "order-1")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.NotPanics(t, release)
}
