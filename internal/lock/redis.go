package lock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript удаляет ключ, только если он всё ещё наш
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis - блокировка между процессами (SET NX PX)
type Redis struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedis создаёт блокировку поверх redis клиента.
// ttl ограничивает время жизни блокировки, если процесс упал, не отпустив её.
func NewRedis(rdb *redis.Client, ttl time.Duration, prefix string) *Redis {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "lock"
	}
	return &Redis{rdb: rdb, ttl: ttl, prefix: prefix}
}

// TryLock берёт блокировку по ключу
func (r *Redis) TryLock(ctx context.Context, key string) (Unlock, error) {
	fullKey := r.prefix + ":" + key
	token := uuid.NewString()

	ok, err := r.rdb.SetNX(ctx, fullKey, token, r.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire redis lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, r.rdb, []string{fullKey}, token).Err(); err != nil {
			return fmt.Errorf("release redis lock: %w", err)
		}
		return nil
	}, nil
}
