package lock

import (
	"context"
	"errors"
)

// ErrLocked возвращается, если блокировку уже держит другой прогон
var ErrLocked = errors.New("lock is held by another run")

// Unlock освобождает блокировку
type Unlock func(ctx context.Context) error

// Locker сериализует прогоны генерации занятий
type Locker interface {
	// TryLock берёт блокировку без ожидания или возвращает ErrLocked
	TryLock(ctx context.Context, key string) (Unlock, error)
}
