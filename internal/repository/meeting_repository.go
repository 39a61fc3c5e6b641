package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MeetingRepository struct {
	*base.Repository
}

func NewMeetingRepository(pool *pgxpool.Pool) *MeetingRepository {
	return &MeetingRepository{Repository: base.NewRepository(pool)}
}

func scanMeeting(row pgx.Row) (*model.Meeting, error) {
	var meeting model.Meeting
	err := row.Scan(
		&meeting.ID,
		&meeting.Name,
		&meeting.Link,
		&meeting.MeetingCode,
		&meeting.Password,
		&meeting.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// Create создаёт встречу
func (r *MeetingRepository) Create(ctx context.Context, meeting *model.Meeting) error {
	query := `
		INSERT INTO meetings (name, link, meeting_code, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, meeting.Name, meeting.Link, meeting.MeetingCode, meeting.Password).
		Scan(&meeting.ID, &meeting.CreatedAt)
	if err != nil {
		return fmt.Errorf("create meeting: %w", err)
	}

	return nil
}

// GetByID получает встречу по ID
func (r *MeetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Meeting, error) {
	query := `SELECT id, name, link, meeting_code, password, created_at FROM meetings WHERE id = $1`

	meeting, err := scanMeeting(r.QueryRow(ctx, query, id))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meeting by id: %w", err)
	}

	return meeting, nil
}

// List получает все встречи
func (r *MeetingRepository) List(ctx context.Context) ([]*model.Meeting, error) {
	rows, err := r.Query(ctx, `SELECT id, name, link, meeting_code, password, created_at FROM meetings ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	var meetings []*model.Meeting
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, meeting)
	}

	return meetings, rows.Err()
}

// Delete удаляет встречу; ссылки в записях и занятиях обнуляются
func (r *MeetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
