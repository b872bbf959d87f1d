package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"sezzlegate/internal/shared/logger"
)

const (
	actionLockKeyPrefix  = "sezzlegate:order_action:"
	defaultActionLockTTL = 30 * time.Second
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// OrderActionLock serialises payment actions per order across instances.
type OrderActionLock struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewOrderActionLock(client *redis.Client, ttl time.Duration, log logger.Interface) *OrderActionLock {
	if ttl <= 0 {
		ttl = defaultActionLockTTL
	}
	return &OrderActionLock{client: client, ttl: ttl, logger: log}
}

// TryAcquire returns acquired=false when another action holds the order. The
// returned release func is safe to call when nothing was acquired.
func (l *OrderActionLock) TryAcquire(ctx context.Context, orderUUID string) (func(), bool, error) {
	key := actionLockKeyPrefix + orderUUID
	token := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return func() {}, false, fmt.Errorf("failed to acquire order action lock: %w", err)
	}
	if !acquired {
		return func() {}, false, nil
	}

	release := func() {
		// the request context may already be cancelled
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
			l.logger.Warnw("failed to release order action lock", "order_uuid", orderUUID, "error", err)
		}
	}
	return release, true, nil
}
