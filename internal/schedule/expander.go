package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"go.uber.org/zap"
)

// ErrDuplicateSession возвращается хранилищем, если занятие с таким ключом уже есть
var ErrDuplicateSession = errors.New("session already exists")

// SessionStore - хранилище занятий, нужное генератору
type SessionStore interface {
	SessionLister
	Create(ctx context.Context, session *model.Session) error
}

// Stats - итоги одного прогона генерации
type Stats struct {
	Enrollments        int
	SkippedEnrollments int
	InvalidSlots       int
	OutOfWindow        int
	Duplicates         int
	Failed             int
	Created            int
}

// Expander разворачивает еженедельные слоты записей в конкретные занятия
type Expander struct {
	store    SessionStore
	location *time.Location
	logger   *zap.Logger
}

// NewExpander создаёт генератор. location - локация "настенного" времени слотов.
func NewExpander(store SessionStore, location *time.Location, logger *zap.Logger) *Expander {
	if location == nil {
		location = time.Local
	}
	return &Expander{
		store:    store,
		location: location,
		logger:   logger,
	}
}

// Location возвращает локацию, в которой интерпретируются слоты
func (e *Expander) Location() *time.Location {
	return e.location
}

// Expand создаёт занятия для всех записей в окне [windowStart, windowEnd].
// Возвращает только новые занятия; существующие пропускаются.
func (e *Expander) Expand(ctx context.Context, windowStart, windowEnd time.Time, enrollments []*model.Enrollment) ([]*model.Session, error) {
	sessions, _, err := e.ExpandWithStats(ctx, windowStart, windowEnd, enrollments)
	return sessions, err
}

// ExpandISO - то же, что Expand, но границы окна заданы ISO-строками
func (e *Expander) ExpandISO(ctx context.Context, windowStartISO, windowEndISO string, enrollments []*model.Enrollment) ([]*model.Session, error) {
	windowStart, err := ParseISO(windowStartISO, e.location)
	if err != nil {
		return nil, fmt.Errorf("parse window start: %w", err)
	}
	windowEnd, err := ParseISO(windowEndISO, e.location)
	if err != nil {
		return nil, fmt.Errorf("parse window end: %w", err)
	}
	return e.Expand(ctx, windowStart, windowEnd, enrollments)
}

// ExpandWithStats - Expand с подробной статистикой прогона
func (e *Expander) ExpandWithStats(ctx context.Context, windowStart, windowEnd time.Time, enrollments []*model.Enrollment) ([]*model.Session, Stats, error) {
	var stats Stats

	windowStart = windowStart.In(e.location)
	windowEnd = windowEnd.In(e.location)
	if windowEnd.Before(windowStart) {
		return nil, stats, fmt.Errorf("window end %s is before window start %s",
			windowEnd.Format(time.RFC3339), windowStart.Format(time.RFC3339))
	}

	// Ключи загружаются один раз до любой проверки на дубликаты
	seen, err := LoadExistingKeys(ctx, e.store)
	if err != nil {
		return nil, stats, err
	}

	e.logger.Info("Starting session generation",
		zap.Time("window_start", windowStart),
		zap.Time("window_end", windowEnd),
		zap.Int("enrollments", len(enrollments)),
		zap.Int("existing_sessions", len(seen)))

	sessions := make([]*model.Session, 0)
	for _, enrollment := range enrollments {
		stats.Enrollments++

		if enrollment == nil || enrollment.Student == nil || enrollment.Tutor == nil {
			stats.SkippedEnrollments++
			e.logger.Debug("Enrollment without student or tutor, skipping", enrollmentField(enrollment))
			continue
		}

		for _, raw := range enrollment.Availability {
			slot, err := ParseSlot(raw)
			if err != nil {
				stats.InvalidSlots++
				e.logger.Warn("Invalid availability slot, skipping",
					zap.String("enrollment_id", enrollment.ID.String()),
					zap.String("day", raw.Day),
					zap.String("start_time", raw.StartTime),
					zap.String("end_time", raw.EndTime),
					zap.Error(err))
				continue
			}

			created, err := e.expandSlot(ctx, enrollment, slot, windowStart, windowEnd, seen, &stats)
			sessions = append(sessions, created...)
			if err != nil {
				return sessions, stats, err
			}
		}
	}

	stats.Created = len(sessions)
	e.logger.Info("Session generation completed",
		zap.Int("created", stats.Created),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("invalid_slots", stats.InvalidSlots),
		zap.Int("skipped_enrollments", stats.SkippedEnrollments),
		zap.Int("failed", stats.Failed))

	return sessions, stats, nil
}

// expandSlot проходит все календарные дни окна для одного слота
func (e *Expander) expandSlot(ctx context.Context, enrollment *model.Enrollment, slot Slot,
	windowStart, windowEnd time.Time, seen KeySet, stats *Stats) ([]*model.Session, error) {

	var created []*model.Session

	firstDay := startOfDay(windowStart)
	for day := firstDay; !day.After(windowEnd); day = day.AddDate(0, 0, 1) {
		if !slot.Matches(day) {
			continue
		}

		start, end := slot.On(day)
		if start.Before(windowStart) || end.After(windowEnd) {
			stats.OutOfWindow++
			continue
		}

		key := BuildKey(enrollment.Student.ID, enrollment.Tutor.ID, start)
		if seen.Has(key) {
			stats.Duplicates++
			e.logger.Warn("Duplicate session detected", zap.String("key", key))
			continue
		}

		if err := ctx.Err(); err != nil {
			return created, fmt.Errorf("generate sessions: %w", err)
		}

		session := &model.Session{
			Date:      start,
			EndsAt:    end,
			StudentID: enrollment.Student.ID,
			TutorID:   enrollment.Tutor.ID,
			Status:    model.SessionStatusActive,
			Summary:   enrollment.Summary,
			MeetingID: copyID(enrollment.MeetingID),
		}

		if err := e.store.Create(ctx, session); err != nil {
			if errors.Is(err, ErrDuplicateSession) {
				// Занятие появилось в хранилище после загрузки ключей
				stats.Duplicates++
				seen.Add(key)
				e.logger.Warn("Duplicate session rejected by store", zap.String("key", key))
				continue
			}
			stats.Failed++
			e.logger.Warn("Failed to create session",
				zap.String("enrollment_id", enrollment.ID.String()),
				zap.Time("start_time", start),
				zap.Error(err))
			continue
		}

		created = append(created, session)
		seen.Add(key)
	}

	return created, nil
}

func enrollmentField(enrollment *model.Enrollment) zap.Field {
	if enrollment == nil {
		return zap.Skip()
	}
	return zap.String("enrollment_id", enrollment.ID.String())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
