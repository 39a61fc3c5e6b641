package schedule

import (
	"time"

	"github.com/google/uuid"
)

// keyTimeLayout - канонический формат времени в ключе, точность до минуты
const keyTimeLayout = "2006-01-02-15:04"

// BuildKey строит ключ дедупликации занятия: студент, репетитор, начало до минуты.
// Время приводится к UTC, поэтому один и тот же момент в разных локациях даёт один ключ.
func BuildKey(studentID, tutorID uuid.UUID, start time.Time) string {
	return studentID.String() + "-" + tutorID.String() + "-" + start.UTC().Format(keyTimeLayout)
}

// MinuteStart обрезает время до начала минуты. Все записи занятий хранят дату
// в таком виде, иначе уникальный индекс по дате не совпадёт с ключом дедупликации.
func MinuteStart(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}
