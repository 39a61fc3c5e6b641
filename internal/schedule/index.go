package schedule

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
)

// SessionLister отдаёт все сохранённые занятия в минимальном виде
type SessionLister interface {
	ListSessionRefs(ctx context.Context) ([]model.SessionRef, error)
}

// KeySet - множество ключей дедупликации
type KeySet map[string]struct{}

// Has проверяет наличие ключа
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Add добавляет ключ
func (s KeySet) Add(key string) {
	s[key] = struct{}{}
}

// LoadExistingKeys загружает ключи всех уже сохранённых занятий
func LoadExistingKeys(ctx context.Context, lister SessionLister) (KeySet, error) {
	refs, err := lister.ListSessionRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load existing session keys: %w", err)
	}

	keys := make(KeySet, len(refs))
	for _, ref := range refs {
		if ref.Date.IsZero() {
			continue
		}
		keys.Add(BuildKey(ref.StudentID, ref.TutorID, ref.Date))
	}

	return keys, nil
}
