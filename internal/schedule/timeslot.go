package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
)

var (
	ErrEmptyStartTime = errors.New("start time is empty")
	ErrPackedRange    = errors.New("start time contains a range separator")
	ErrInvalidTime    = errors.New("invalid time of day")
	ErrUnknownDay     = errors.New("unknown day of week")
	ErrEmptyRange     = errors.New("end time is not after start time")
)

// DayOfWeek - день недели слота доступности
type DayOfWeek time.Weekday

// ParseDayOfWeek разбирает английское название дня ("Monday"), регистр не важен
func ParseDayOfWeek(name string) (DayOfWeek, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(name, d.String()) {
			return DayOfWeek(d), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDay, name)
}

// Weekday возвращает значение time.Weekday
func (d DayOfWeek) Weekday() time.Weekday {
	return time.Weekday(d)
}

func (d DayOfWeek) String() string {
	return time.Weekday(d).String()
}

// TimeOfDay - время суток с точностью до минуты
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay разбирает строку "HH:MM" (24h). Единственная точка разбора времени.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hour, err := parseDigits(hh)
	if err != nil || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	minute, err := parseDigits(mm)
	if err != nil || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// parseDigits принимает только цифры (strconv.Atoi пропускает знак)
func parseDigits(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// Minutes возвращает количество минут от начала суток
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On возвращает момент этого времени в календарный день day (в его локации)
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// Slot - провалидированный слот доступности
type Slot struct {
	Day   DayOfWeek
	Start TimeOfDay
	End   TimeOfDay
}

// ParseSlot валидирует сырой слот из записи
func ParseSlot(raw model.AvailabilitySlot) (Slot, error) {
	if raw.StartTime == "" {
		return Slot{}, ErrEmptyStartTime
	}
	// Старый формат "15:00-18:00" в одном поле - не пытаемся угадать
	if strings.Contains(raw.StartTime, "-") {
		return Slot{}, fmt.Errorf("%w: %q", ErrPackedRange, raw.StartTime)
	}

	day, err := ParseDayOfWeek(raw.Day)
	if err != nil {
		return Slot{}, err
	}
	start, err := ParseTimeOfDay(raw.StartTime)
	if err != nil {
		return Slot{}, fmt.Errorf("start time: %w", err)
	}
	end, err := ParseTimeOfDay(raw.EndTime)
	if err != nil {
		return Slot{}, fmt.Errorf("end time: %w", err)
	}
	return Slot{Day: day, Start: start, End: end}, nil
}

// CheckRange проверяет что конец позже начала. Генератор такие слоты не отбрасывает,
// проверка нужна только при записи новых слотов.
func (s Slot) CheckRange() error {
	if s.End.Minutes() <= s.Start.Minutes() {
		return fmt.Errorf("%w: %s-%s", ErrEmptyRange, s.Start, s.End)
	}
	return nil
}

// On возвращает начало и конец занятия в календарный день day
func (s Slot) On(day time.Time) (time.Time, time.Time) {
	return s.Start.On(day), s.End.On(day)
}

// Matches проверяет совпадение дня недели
func (s Slot) Matches(day time.Time) bool {
	return day.Weekday() == s.Day.Weekday()
}
