package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type redisSlotLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSlotLocker creates a locker backed by per-slot Redis keys set with
// SET NX and a TTL, so a crashed holder cannot wedge a slot.
func NewRedisSlotLocker(client *redis.Client, ttl time.Duration) Locker {
	return &redisSlotLocker{client: client, ttl: ttl}
}

func (l *redisSlotLocker) WithSlotLocks(ctx context.Context, keys []string, fn func(ctx context.Context) error) error {
	token := uuid.NewString()

	acquired := make([]string, 0, len(keys))
	defer func() {
		for _, key := range acquired {
			_ = l.release(ctx, key, token)
		}
	}()

	for _, key := range keys {
		redisKey := "lock:slot:" + key
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("acquire slot lock: %w", err)
		}
		if !ok {
			return ErrLockNotAcquired
		}
		acquired = append(acquired, redisKey)
	}

	lockCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockCtx)
}

// Only the holder's token may delete the key; an expired lock that was
// re-acquired by another request must not be released here.
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisSlotLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release slot lock: %w", err)
	}
	return nil
}
