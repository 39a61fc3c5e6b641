package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationService struct {
	notifications NotificationStore
	sessions      *SessionService
	logger        *zap.Logger
	now           func() time.Time
}

func NewNotificationService(notifications NotificationStore, sessions *SessionService, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		sessions:      sessions,
		logger:        logger,
		now:           time.Now,
	}
}

// RequestReschedule создаёт запрос на перенос занятия.
// Запросить перенос может только студент или репетитор этого занятия.
func (s *NotificationService) RequestReschedule(ctx context.Context, sessionID, requesterID uuid.UUID, suggestedDate time.Time, summary string) (*model.Notification, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if requesterID != session.StudentID && requesterID != session.TutorID {
		return nil, ErrNotParticipant
	}
	if !suggestedDate.After(s.now()) {
		return nil, ErrDateInPast
	}

	n := &model.Notification{
		SessionID:     session.ID,
		PreviousDate:  session.Date,
		SuggestedDate: suggestedDate,
		StudentID:     session.StudentID,
		TutorID:       session.TutorID,
		Status:        model.NotificationStatusActive,
		Summary:       summary,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create reschedule request: %w", err)
	}

	s.logger.Info("Reschedule requested",
		zap.String("notification_id", n.ID.String()),
		zap.String("session_id", sessionID.String()),
		zap.String("requester_id", requesterID.String()),
		zap.Time("suggested_date", suggestedDate))

	return n, nil
}

func (s *NotificationService) GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	return s.notifications.GetByID(ctx, id)
}

// ListActive получает необработанные запросы
func (s *NotificationService) ListActive(ctx context.Context) ([]*model.Notification, error) {
	return s.notifications.ListByStatus(ctx, model.NotificationStatusActive)
}

func (s *NotificationService) ListAll(ctx context.Context) ([]*model.Notification, error) {
	return s.notifications.ListAll(ctx)
}

// Resolve закрывает запрос без изменения занятия
func (s *NotificationService) Resolve(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, model.NotificationStatusResolved)
}

// Reopen возвращает запрос в активные
func (s *NotificationService) Reopen(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, model.NotificationStatusActive)
}

// ApproveReschedule переносит занятие на предложенную дату и закрывает запрос
func (s *NotificationService) ApproveReschedule(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get notification: %w", err)
	}
	if n == nil {
		return nil, ErrNotificationNotFound
	}
	if !n.IsActive() {
		return nil, ErrAlreadyResolved
	}

	session, err := s.sessions.Reschedule(ctx, n.SessionID, n.SuggestedDate)
	if err != nil {
		return nil, err
	}

	if err := s.setStatus(ctx, id, model.NotificationStatusResolved); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *NotificationService) setStatus(ctx context.Context, id uuid.UUID, status model.NotificationStatus) error {
	err := s.notifications.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotificationNotFound
	}
	if err != nil {
		return fmt.Errorf("update notification status: %w", err)
	}

	s.logger.Info("Notification status changed",
		zap.String("notification_id", id.String()),
		zap.String("status", string(status)))

	return nil
}
