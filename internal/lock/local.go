package lock

import (
	"context"
	"sync"
)

// Local - блокировка в пределах одного процесса
type Local struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocal создаёт локальную блокировку
func NewLocal() *Local {
	return &Local{held: make(map[string]struct{})}
}

// TryLock берёт блокировку по ключу
func (l *Local) TryLock(_ context.Context, key string) (Unlock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, ErrLocked
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
		return nil
	}, nil
}
