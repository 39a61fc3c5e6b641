package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/repository/base"
	"github.com/Freeeeeet/tutoring_bot/internal/schedule"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionColumns = `id, created_at, date, ends_at, student_id, tutor_id, status, summary, meeting_id`

type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(pool)}
}

func scanSession(row pgx.Row) (*model.Session, error) {
	var session model.Session
	err := row.Scan(
		&session.ID,
		&session.CreatedAt,
		&session.Date,
		&session.EndsAt,
		&session.StudentID,
		&session.TutorID,
		&session.Status,
		&session.Summary,
		&session.MeetingID,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Create создаёт занятие. Если занятие с тем же студентом, репетитором и временем
// уже есть, возвращает schedule.ErrDuplicateSession.
func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	if session.Status == "" {
		session.Status = model.SessionStatusActive
	}
	duration := session.EndsAt.Sub(session.Date)
	session.Date = schedule.MinuteStart(session.Date)
	session.EndsAt = session.Date.Add(duration)

	query := `
		INSERT INTO sessions (date, ends_at, student_id, tutor_id, status, summary, meeting_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ON CONSTRAINT uq_sessions_student_tutor_date DO NOTHING
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		session.Date,
		session.EndsAt,
		session.StudentID,
		session.TutorID,
		session.Status,
		session.Summary,
		session.MeetingID,
	).Scan(&session.ID, &session.CreatedAt)

	if base.IsNotFound(err) {
		return schedule.ErrDuplicateSession
	}
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

// ListSessionRefs отдаёт ключевые поля всех занятий для дедупликации
func (r *SessionRepository) ListSessionRefs(ctx context.Context) ([]model.SessionRef, error) {
	rows, err := r.Query(ctx, `SELECT student_id, tutor_id, date FROM sessions`)
	if err != nil {
		return nil, fmt.Errorf("list session refs: %w", err)
	}
	defer rows.Close()

	var refs []model.SessionRef
	for rows.Next() {
		var ref model.SessionRef
		if err := rows.Scan(&ref.StudentID, &ref.TutorID, &ref.Date); err != nil {
			return nil, fmt.Errorf("scan session ref: %w", err)
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list session refs: %w", err)
	}

	return refs, nil
}

// Exists проверяет наличие занятия с тем же ключом
func (r *SessionRepository) Exists(ctx context.Context, studentID, tutorID uuid.UUID, date time.Time) (bool, error) {
	var exists bool
	err := r.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM sessions WHERE student_id = $1 AND tutor_id = $2 AND date = $3)`,
		studentID, tutorID, schedule.MinuteStart(date),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check session exists: %w", err)
	}
	return exists, nil
}

// GetByID получает занятие по ID
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	session, err := scanSession(r.QueryRow(ctx, query, id))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session by id: %w", err)
	}

	return session, nil
}

// ListBetween получает занятия, начинающиеся в интервале [from, to]
func (r *SessionRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*model.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE date >= $1 AND date <= $2
		ORDER BY date
	`
	return r.list(ctx, "list sessions between", query, from, to)
}

// ListByProfile получает занятия профиля начиная с from
func (r *SessionRepository) ListByProfile(ctx context.Context, profileID uuid.UUID, from time.Time) ([]*model.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE (student_id = $1 OR tutor_id = $1) AND date >= $2
		ORDER BY date
	`
	return r.list(ctx, "list sessions by profile", query, profileID, from)
}

func (r *SessionRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]*model.Session, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var sessions []*model.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sessions, nil
}

// UpdateDate переносит занятие и выставляет статус
func (r *SessionRepository) UpdateDate(ctx context.Context, id uuid.UUID, date, endsAt time.Time, status model.SessionStatus) error {
	query := `UPDATE sessions SET date = $2, ends_at = $3, status = $4 WHERE id = $1`

	duration := endsAt.Sub(date)
	date = schedule.MinuteStart(date)
	endsAt = date.Add(duration)

	affected, err := r.ExecAffected(ctx, query, id, date, endsAt, status)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return schedule.ErrDuplicateSession
		}
		return fmt.Errorf("update session date: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSummary обновляет описание занятия
func (r *SessionRepository) UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error {
	affected, err := r.ExecAffected(ctx, `UPDATE sessions SET summary = $2 WHERE id = $1`, id, summary)
	if err != nil {
		return fmt.Errorf("update session summary: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus обновляет статус занятия
func (r *SessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SessionStatus) error {
	affected, err := r.ExecAffected(ctx, `UPDATE sessions SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update session status: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete удаляет занятие
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
