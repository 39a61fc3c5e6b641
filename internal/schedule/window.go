package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// naiveLayouts - форматы без смещения, интерпретируются в локации генератора
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISO разбирает ISO-8601 дату. Строки со смещением сохраняют свой момент времени,
// строки без смещения считаются временем в loc.
func ParseISO(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO date %q", s)
}

// WeekWindow возвращает границы недели (Пн 00:00:00 - Вс 23:59:59), содержащей day
func WeekWindow(day time.Time) (time.Time, time.Time) {
	start := startOfDay(day)

	daysSinceMonday := int(start.Weekday()) - 1
	if start.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}

	start = start.AddDate(0, 0, -daysSinceMonday)
	end := start.AddDate(0, 0, 7).Add(-time.Second)
	return start, end
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
