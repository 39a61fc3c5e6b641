package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const enrollmentColumns = `id, created_at, student_id, tutor_id, summary, start_date, end_date, availability, meeting_id`

// EnrollmentRepository управляет записями студент-репетитор
type EnrollmentRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewEnrollmentRepository(pool *pgxpool.Pool, logger *zap.Logger) *EnrollmentRepository {
	return &EnrollmentRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// scanEnrollment читает запись; повреждённый JSON расписания не ломает чтение
func (r *EnrollmentRepository) scanEnrollment(row pgx.Row) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	var availability []byte

	err := row.Scan(
		&enrollment.ID,
		&enrollment.CreatedAt,
		&enrollment.StudentID,
		&enrollment.TutorID,
		&enrollment.Summary,
		&enrollment.StartDate,
		&enrollment.EndDate,
		&availability,
		&enrollment.MeetingID,
	)
	if err != nil {
		return nil, err
	}

	if len(availability) > 0 {
		if err := json.Unmarshal(availability, &enrollment.Availability); err != nil {
			r.logger.Warn("Failed to decode enrollment availability",
				zap.String("enrollment_id", enrollment.ID.String()),
				zap.Error(err))
			enrollment.Availability = nil
		}
	}

	return &enrollment, nil
}

func encodeAvailability(slots []model.AvailabilitySlot) ([]byte, error) {
	if slots == nil {
		slots = []model.AvailabilitySlot{}
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return nil, fmt.Errorf("encode availability: %w", err)
	}
	return data, nil
}

// Create создаёт новую запись
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	availability, err := encodeAvailability(enrollment.Availability)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO enrollments (student_id, tutor_id, summary, start_date, end_date, availability, meeting_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err = r.QueryRow(
		ctx, query,
		enrollment.StudentID,
		enrollment.TutorID,
		enrollment.Summary,
		enrollment.StartDate,
		enrollment.EndDate,
		availability,
		enrollment.MeetingID,
	).Scan(&enrollment.ID, &enrollment.CreatedAt)

	if err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}

	return nil
}

// GetByID получает запись по ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1`

	enrollment, err := r.scanEnrollment(r.QueryRow(ctx, query, id))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get enrollment by id: %w", err)
	}

	return enrollment, nil
}

// ListAll получает все записи, новые первыми
func (r *EnrollmentRepository) ListAll(ctx context.Context) ([]*model.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments ORDER BY start_date DESC`
	return r.list(ctx, "list enrollments", query)
}

// ListActiveBetween получает записи, срок действия которых пересекается с [from, to]
func (r *EnrollmentRepository) ListActiveBetween(ctx context.Context, from, to time.Time) ([]*model.Enrollment, error) {
	query := `
		SELECT ` + enrollmentColumns + `
		FROM enrollments
		WHERE start_date <= $2
		  AND (end_date IS NULL OR end_date >= $1)
		ORDER BY created_at
	`
	return r.list(ctx, "list active enrollments", query, from, to)
}

// ListByProfile получает записи, где профиль - студент или репетитор
func (r *EnrollmentRepository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*model.Enrollment, error) {
	query := `
		SELECT ` + enrollmentColumns + `
		FROM enrollments
		WHERE student_id = $1 OR tutor_id = $1
		ORDER BY start_date DESC
	`
	return r.list(ctx, "list enrollments by profile", query, profileID)
}

func (r *EnrollmentRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]*model.Enrollment, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var enrollments []*model.Enrollment
	for rows.Next() {
		enrollment, err := r.scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return enrollments, nil
}

// Update обновляет запись
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *model.Enrollment) error {
	availability, err := encodeAvailability(enrollment.Availability)
	if err != nil {
		return err
	}

	query := `
		UPDATE enrollments
		SET student_id = $2, tutor_id = $3, summary = $4, start_date = $5, end_date = $6, availability = $7, meeting_id = $8
		WHERE id = $1
	`

	affected, err := r.ExecAffected(
		ctx, query,
		enrollment.ID,
		enrollment.StudentID,
		enrollment.TutorID,
		enrollment.Summary,
		enrollment.StartDate,
		enrollment.EndDate,
		availability,
		enrollment.MeetingID,
	)
	if err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete удаляет запись (созданные занятия остаются)
func (r *EnrollmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
