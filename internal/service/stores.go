package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/schedule"
	"github.com/google/uuid"
)

// Интерфейсы хранилищ. Реализуются репозиториями из internal/repository.

type ProfileStore interface {
	Create(ctx context.Context, profile *model.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.Profile, error)
	ListByRole(ctx context.Context, role model.ProfileRole) ([]*model.Profile, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ProfileStatus) error
	SetTelegramID(ctx context.Context, id uuid.UUID, telegramID int64) error
}

type EnrollmentStore interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Enrollment, error)
	ListAll(ctx context.Context) ([]*model.Enrollment, error)
	ListActiveBetween(ctx context.Context, from, to time.Time) ([]*model.Enrollment, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*model.Enrollment, error)
	Update(ctx context.Context, enrollment *model.Enrollment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SessionStore interface {
	schedule.SessionStore
	Exists(ctx context.Context, studentID, tutorID uuid.UUID, date time.Time) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*model.Session, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID, from time.Time) ([]*model.Session, error)
	UpdateDate(ctx context.Context, id uuid.UUID, date, endsAt time.Time, status model.SessionStatus) error
	UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.SessionStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MeetingStore interface {
	Create(ctx context.Context, meeting *model.Meeting) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Meeting, error)
	List(ctx context.Context) ([]*model.Meeting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	ListByStatus(ctx context.Context, status model.NotificationStatus) ([]*model.Notification, error)
	ListAll(ctx context.Context) ([]*model.Notification, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.NotificationStatus) error
}

// ActiveEnrollments отдаёт записи с заполненными профилями для генерации
type ActiveEnrollments interface {
	ListActiveBetween(ctx context.Context, from, to time.Time) ([]*model.Enrollment, error)
}
