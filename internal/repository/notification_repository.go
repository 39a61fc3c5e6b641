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

const notificationColumns = `id, created_at, session_id, previous_date, suggested_date, student_id, tutor_id, status, summary`

type NotificationRepository struct {
	*base.Repository
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{Repository: base.NewRepository(pool)}
}

func scanNotification(row pgx.Row) (*model.Notification, error) {
	var n model.Notification
	err := row.Scan(
		&n.ID,
		&n.CreatedAt,
		&n.SessionID,
		&n.PreviousDate,
		&n.SuggestedDate,
		&n.StudentID,
		&n.TutorID,
		&n.Status,
		&n.Summary,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create создаёт запрос на перенос
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if n.Status == "" {
		n.Status = model.NotificationStatusActive
	}

	query := `
		INSERT INTO notifications (session_id, previous_date, suggested_date, student_id, tutor_id, status, summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		n.SessionID,
		n.PreviousDate,
		n.SuggestedDate,
		n.StudentID,
		n.TutorID,
		n.Status,
		n.Summary,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

// GetByID получает запрос по ID
func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	n, err := scanNotification(r.QueryRow(ctx, query, id))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notification by id: %w", err)
	}

	return n, nil
}

// ListByStatus получает запросы с указанным статусом, старые первыми
func (r *NotificationRepository) ListByStatus(ctx context.Context, status model.NotificationStatus) ([]*model.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE status = $1 ORDER BY created_at`
	return r.list(ctx, "list notifications by status", query, status)
}

// ListAll получает все запросы, новые первыми
func (r *NotificationRepository) ListAll(ctx context.Context) ([]*model.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications ORDER BY created_at DESC`
	return r.list(ctx, "list notifications", query)
}

func (r *NotificationRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]*model.Notification, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		result = append(result, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// UpdateStatus обновляет статус запроса
func (r *NotificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.NotificationStatus) error {
	affected, err := r.ExecAffected(ctx, `UPDATE notifications SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update notification status: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
