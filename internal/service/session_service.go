package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/lock"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/repository"
	"github.com/Freeeeeet/tutoring_bot/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// generationLockKey - один ключ на все прогоны: генерация пишет в общую таблицу занятий
const generationLockKey = "session-generation"

// GenerationResult - итоги генерации за окно
type GenerationResult struct {
	From     time.Time
	To       time.Time
	Sessions []*model.Session
	Stats    schedule.Stats
}

type SessionService struct {
	sessions    SessionStore
	enrollments ActiveEnrollments
	profiles    *ProfileService
	expander    *schedule.Expander
	locker      lock.Locker
	logger      *zap.Logger
}

func NewSessionService(
	sessions SessionStore,
	enrollments ActiveEnrollments,
	profiles *ProfileService,
	locker lock.Locker,
	location *time.Location,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		sessions:    sessions,
		enrollments: enrollments,
		profiles:    profiles,
		expander:    schedule.NewExpander(sessions, location, logger),
		locker:      locker,
		logger:      logger,
	}
}

// Location возвращает локацию, в которой трактуется время слотов
func (s *SessionService) Location() *time.Location {
	return s.expander.Location()
}

// GenerateSessions создаёт занятия по всем записям, действующим в окне [from, to].
// Параллельные прогоны исключаются блокировкой.
func (s *SessionService) GenerateSessions(ctx context.Context, from, to time.Time) (*GenerationResult, error) {
	unlock, err := s.locker.TryLock(ctx, generationLockKey)
	if errors.Is(err, lock.ErrLocked) {
		return nil, ErrGenerationRunning
	}
	if err != nil {
		return nil, fmt.Errorf("acquire generation lock: %w", err)
	}
	defer func() {
		// Контекст запроса может быть уже отменён, снимаем блокировку отдельным
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := unlock(releaseCtx); err != nil {
			s.logger.Warn("Failed to release generation lock", zap.Error(err))
		}
	}()

	enrollments, err := s.enrollments.ListActiveBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list active enrollments: %w", err)
	}

	sessions, stats, err := s.expander.ExpandWithStats(ctx, from, to, enrollments)
	return &GenerationResult{
		From:     from,
		To:       to,
		Sessions: sessions,
		Stats:    stats,
	}, err
}

// GenerateWeek генерирует занятия за неделю (Пн-Вс), содержащую day
func (s *SessionService) GenerateWeek(ctx context.Context, day time.Time) (*GenerationResult, error) {
	from, to := schedule.WeekWindow(day.In(s.Location()))
	return s.GenerateSessions(ctx, from, to)
}

// GetByID получает занятие с профилями; nil, если занятия нет
func (s *SessionService) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, nil
	}
	if _, err := s.hydrate(ctx, []*model.Session{session}); err != nil {
		return nil, err
	}
	return session, nil
}

// ListBetween получает занятия, начинающиеся в интервале
func (s *SessionService) ListBetween(ctx context.Context, from, to time.Time) ([]*model.Session, error) {
	sessions, err := s.sessions.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, sessions)
}

// ListForProfile получает занятия студента или репетитора начиная с from
func (s *SessionService) ListForProfile(ctx context.Context, profileID uuid.UUID, from time.Time) ([]*model.Session, error) {
	sessions, err := s.sessions.ListByProfile(ctx, profileID, from)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, sessions)
}

// Reschedule переносит занятие на newDate, сохраняя длительность.
// Перенос на время, где у той же пары уже есть занятие, запрещён.
func (s *SessionService) Reschedule(ctx context.Context, id uuid.UUID, newDate time.Time) (*model.Session, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	newDate = schedule.MinuteStart(newDate.In(s.Location()))
	if schedule.BuildKey(session.StudentID, session.TutorID, newDate) ==
		schedule.BuildKey(session.StudentID, session.TutorID, session.Date) {
		return session, nil
	}

	exists, err := s.sessions.Exists(ctx, session.StudentID, session.TutorID, newDate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSessionConflict
	}

	duration := session.EndsAt.Sub(session.Date)
	previous := session.Date
	endsAt := newDate.Add(duration)

	err = s.sessions.UpdateDate(ctx, id, newDate, endsAt, model.SessionStatusRescheduled)
	switch {
	case errors.Is(err, schedule.ErrDuplicateSession):
		return nil, ErrSessionConflict
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrSessionNotFound
	case err != nil:
		return nil, fmt.Errorf("reschedule session: %w", err)
	}

	session.Date = newDate
	session.EndsAt = endsAt
	session.Status = model.SessionStatusRescheduled

	s.logger.Info("Session rescheduled",
		zap.String("session_id", id.String()),
		zap.Time("previous_date", previous),
		zap.Time("new_date", newDate))

	return session, nil
}

// UpdateSummary меняет описание занятия
func (s *SessionService) UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error {
	return mapSessionErr(s.sessions.UpdateSummary(ctx, id, summary), "update session summary")
}

// SetStatus меняет статус занятия
func (s *SessionService) SetStatus(ctx context.Context, id uuid.UUID, status model.SessionStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid session status %q", status)
	}
	return mapSessionErr(s.sessions.UpdateStatus(ctx, id, status), "update session status")
}

// Delete удаляет занятие
func (s *SessionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := mapSessionErr(s.sessions.Delete(ctx, id), "delete session"); err != nil {
		return err
	}
	s.logger.Info("Session deleted", zap.String("session_id", id.String()))
	return nil
}

func mapSessionErr(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *SessionService) hydrate(ctx context.Context, sessions []*model.Session) ([]*model.Session, error) {
	ids := make([]uuid.UUID, 0, len(sessions)*2)
	for _, session := range sessions {
		ids = append(ids, session.StudentID, session.TutorID)
	}

	profiles, err := s.profiles.hydrate(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load session profiles: %w", err)
	}

	for _, session := range sessions {
		session.Student = profiles[session.StudentID]
		session.Tutor = profiles[session.TutorID]
	}

	return sessions, nil
}
