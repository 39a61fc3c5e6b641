package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal(t *testing.T) {
	ctx := context.Background()
	l := NewLocal()

	unlock, err := l.TryLock(ctx, "generate")
	require.NoError(t, err)

	_, err = l.TryLock(ctx, "generate")
	assert.ErrorIs(t, err, ErrLocked)

	other, err := l.TryLock(ctx, "other")
	require.NoError(t, err)
	require.NoError(t, other(ctx))

	require.NoError(t, unlock(ctx))
	require.NoError(t, unlock(ctx))

	again, err := l.TryLock(ctx, "generate")
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestRedis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	l := NewRedis(rdb, time.Minute, "tutoring")

	unlock, err := l.TryLock(ctx, "generate")
	require.NoError(t, err)
	assert.True(t, mr.Exists("tutoring:generate"))
	assert.Equal(t, time.Minute, mr.TTL("tutoring:generate"))

	_, err = l.TryLock(ctx, "generate")
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("tutoring:generate"))

	again, err := l.TryLock(ctx, "generate")
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestRedisExpiredLockIsNotReleasedByPreviousHolder(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	l := NewRedis(rdb, time.Second, "")

	stale, err := l.TryLock(ctx, "generate")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	fresh, err := l.TryLock(ctx, "generate")
	require.NoError(t, err)

	// старый владелец не должен снять чужую блокировку
	require.NoError(t, stale(ctx))
	assert.True(t, mr.Exists("lock:generate"))

	require.NoError(t, fresh(ctx))
	assert.False(t, mr.Exists("lock:generate"))
}
