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

// EnrollmentInput - данные для создания и изменения записи
type EnrollmentInput struct {
	StudentID    uuid.UUID                `json:"studentId" validate:"required"`
	TutorID      uuid.UUID                `json:"tutorId" validate:"required"`
	Summary      string                   `json:"summary" validate:"max=500"`
	StartDate    time.Time                `json:"startDate" validate:"required"`
	EndDate      *time.Time               `json:"endDate"`
	Availability []model.AvailabilitySlot `json:"availability" validate:"required,min=1,dive"`
	MeetingID    *uuid.UUID               `json:"meetingId"`
}

type EnrollmentService struct {
	enrollments EnrollmentStore
	profiles    *ProfileService
	meetings    MeetingStore
	logger      *zap.Logger
}

func NewEnrollmentService(enrollments EnrollmentStore, profiles *ProfileService, meetings MeetingStore, logger *zap.Logger) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		profiles:    profiles,
		meetings:    meetings,
		logger:      logger,
	}
}

// Create создаёт запись студента к репетитору
func (s *EnrollmentService) Create(ctx context.Context, in EnrollmentInput) (*model.Enrollment, error) {
	if err := s.checkInput(ctx, in); err != nil {
		return nil, err
	}

	enrollment := &model.Enrollment{}
	applyEnrollmentInput(enrollment, in)

	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("create enrollment: %w", err)
	}

	s.logger.Info("Enrollment created",
		zap.String("enrollment_id", enrollment.ID.String()),
		zap.String("student_id", in.StudentID.String()),
		zap.String("tutor_id", in.TutorID.String()),
		zap.Int("slots", len(in.Availability)))

	return s.hydrateOne(ctx, enrollment)
}

// Update заменяет данные записи. Уже созданные занятия не меняются.
func (s *EnrollmentService) Update(ctx context.Context, id uuid.UUID, in EnrollmentInput) (*model.Enrollment, error) {
	enrollment, err := s.enrollments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, ErrEnrollmentNotFound
	}

	if err := s.checkInput(ctx, in); err != nil {
		return nil, err
	}

	applyEnrollmentInput(enrollment, in)

	err = s.enrollments.Update(ctx, enrollment)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update enrollment: %w", err)
	}

	s.logger.Info("Enrollment updated", zap.String("enrollment_id", id.String()))

	return s.hydrateOne(ctx, enrollment)
}

// Delete удаляет запись
func (s *EnrollmentService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.enrollments.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrEnrollmentNotFound
	}
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}

	s.logger.Info("Enrollment deleted", zap.String("enrollment_id", id.String()))
	return nil
}

// GetByID получает запись с профилями; nil, если записи нет
func (s *EnrollmentService) GetByID(ctx context.Context, id uuid.UUID) (*model.Enrollment, error) {
	enrollment, err := s.enrollments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, nil
	}
	return s.hydrateOne(ctx, enrollment)
}

func (s *EnrollmentService) ListAll(ctx context.Context) ([]*model.Enrollment, error) {
	enrollments, err := s.enrollments.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, enrollments)
}

// ListActiveBetween получает записи, действующие в интервале, с заполненными профилями
func (s *EnrollmentService) ListActiveBetween(ctx context.Context, from, to time.Time) ([]*model.Enrollment, error) {
	enrollments, err := s.enrollments.ListActiveBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, enrollments)
}

func (s *EnrollmentService) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]*model.Enrollment, error) {
	enrollments, err := s.enrollments.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, enrollments)
}

func (s *EnrollmentService) checkInput(ctx context.Context, in EnrollmentInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	if err := s.requireRole(ctx, in.StudentID, model.ProfileRoleStudent); err != nil {
		return fmt.Errorf("student: %w", err)
	}
	if err := s.requireRole(ctx, in.TutorID, model.ProfileRoleTutor); err != nil {
		return fmt.Errorf("tutor: %w", err)
	}

	if in.MeetingID != nil {
		meeting, err := s.meetings.GetByID(ctx, *in.MeetingID)
		if err != nil {
			return fmt.Errorf("get meeting: %w", err)
		}
		if meeting == nil {
			return ErrMeetingNotFound
		}
	}

	return nil
}

func (s *EnrollmentService) requireRole(ctx context.Context, id uuid.UUID, role model.ProfileRole) error {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	if profile == nil {
		return ErrProfileNotFound
	}
	if profile.Role != role {
		return fmt.Errorf("profile %s has role %s, expected %s", id, profile.Role, role)
	}
	return nil
}

func applyEnrollmentInput(enrollment *model.Enrollment, in EnrollmentInput) {
	studentID, tutorID := in.StudentID, in.TutorID
	enrollment.StudentID = &studentID
	enrollment.TutorID = &tutorID
	enrollment.Summary = in.Summary
	enrollment.StartDate = in.StartDate
	enrollment.EndDate = in.EndDate
	enrollment.Availability = in.Availability
	enrollment.MeetingID = in.MeetingID
}

func (s *EnrollmentService) hydrateOne(ctx context.Context, enrollment *model.Enrollment) (*model.Enrollment, error) {
	hydrated, err := s.hydrate(ctx, []*model.Enrollment{enrollment})
	if err != nil {
		return nil, err
	}
	return hydrated[0], nil
}

// hydrate заполняет Student и Tutor; отсутствующий профиль остаётся nil
func (s *EnrollmentService) hydrate(ctx context.Context, enrollments []*model.Enrollment) ([]*model.Enrollment, error) {
	ids := make([]uuid.UUID, 0, len(enrollments)*2)
	for _, e := range enrollments {
		if e.StudentID != nil {
			ids = append(ids, *e.StudentID)
		}
		if e.TutorID != nil {
			ids = append(ids, *e.TutorID)
		}
	}

	profiles, err := s.profiles.hydrate(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load enrollment profiles: %w", err)
	}

	for _, e := range enrollments {
		e.Student, e.Tutor = nil, nil
		if e.StudentID != nil {
			e.Student = profiles[*e.StudentID]
		}
		if e.TutorID != nil {
			e.Tutor = profiles[*e.TutorID]
		}
	}

	return enrollments, nil
}
