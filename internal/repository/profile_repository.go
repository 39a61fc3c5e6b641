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

const profileColumns = `id, created_at, role, telegram_id, first_name, last_name, email, timezone, subjects_of_interest, status`

type ProfileRepository struct {
	*base.Repository
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{Repository: base.NewRepository(pool)}
}

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var profile model.Profile
	err := row.Scan(
		&profile.ID,
		&profile.CreatedAt,
		&profile.Role,
		&profile.TelegramID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Email,
		&profile.Timezone,
		&profile.SubjectsOfInterest,
		&profile.Status,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Create создаёт новый профиль
func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	query := `
		INSERT INTO profiles (role, telegram_id, first_name, last_name, email, timezone, subjects_of_interest, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	subjects := profile.SubjectsOfInterest
	if subjects == nil {
		subjects = []string{}
	}

	err := r.QueryRow(
		ctx, query,
		profile.Role,
		profile.TelegramID,
		profile.FirstName,
		profile.LastName,
		profile.Email,
		profile.Timezone,
		subjects,
		profile.Status,
	).Scan(&profile.ID, &profile.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create profile: %w", err)
	}

	return nil
}

// GetByID получает профиль по ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	profile, err := scanProfile(r.QueryRow(ctx, query, id))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile by id: %w", err)
	}

	return profile, nil
}

// GetByEmail получает профиль по email (без учёта регистра)
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE lower(email) = lower($1)`

	profile, err := scanProfile(r.QueryRow(ctx, query, email))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile by email: %w", err)
	}

	return profile, nil
}

// GetByTelegramID получает профиль по привязанному Telegram ID
func (r *ProfileRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE telegram_id = $1`

	profile, err := scanProfile(r.QueryRow(ctx, query, telegramID))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile by telegram id: %w", err)
	}

	return profile, nil
}

// GetByIDs получает профили пачкой, результат - map id -> профиль
func (r *ProfileRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.Profile, error) {
	result := make(map[uuid.UUID]*model.Profile, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ANY($1)`

	rows, err := r.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get profiles by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		result[profile.ID] = profile
	}

	return result, rows.Err()
}

// ListByRole получает все профили с указанной ролью
func (r *ProfileRepository) ListByRole(ctx context.Context, role model.ProfileRole) ([]*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE role = $1 ORDER BY last_name, first_name`

	rows, err := r.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("list profiles by role: %w", err)
	}
	defer rows.Close()

	var profiles []*model.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// UpdateStatus меняет статус профиля
func (r *ProfileRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ProfileStatus) error {
	affected, err := r.ExecAffected(ctx, `UPDATE profiles SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update profile status: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTelegramID привязывает Telegram аккаунт к профилю
func (r *ProfileRepository) SetTelegramID(ctx context.Context, id uuid.UUID, telegramID int64) error {
	affected, err := r.ExecAffected(ctx, `UPDATE profiles SET telegram_id = $1 WHERE id = $2`, telegramID, id)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("set profile telegram id: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
