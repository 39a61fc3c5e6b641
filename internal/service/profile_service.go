package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateProfileInput - данные нового профиля
type CreateProfileInput struct {
	Role               model.ProfileRole `json:"role" validate:"required,oneof=Student Tutor Admin"`
	FirstName          string            `json:"firstName" validate:"notblank,max=100"`
	LastName           string            `json:"lastName" validate:"max=100"`
	Email              string            `json:"email" validate:"required,email"`
	Timezone           string            `json:"timezone" validate:"max=64"`
	SubjectsOfInterest []string          `json:"subjectsOfInterest" validate:"dive,notblank"`
	TelegramID         *int64            `json:"telegramId"`
}

type ProfileService struct {
	profiles ProfileStore
	logger   *zap.Logger
}

func NewProfileService(profiles ProfileStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		logger:   logger,
	}
}

// GetByID получает профиль по ID; nil, если профиля нет
func (s *ProfileService) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	return s.profiles.GetByID(ctx, id)
}

// GetByTelegramID получает профиль по Telegram ID; nil, если аккаунт не привязан
func (s *ProfileService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Profile, error) {
	return s.profiles.GetByTelegramID(ctx, telegramID)
}

func (s *ProfileService) ListByRole(ctx context.Context, role model.ProfileRole) ([]*model.Profile, error) {
	return s.profiles.ListByRole(ctx, role)
}

// Create создаёт профиль. Email обязателен и уникален.
func (s *ProfileService) Create(ctx context.Context, in CreateProfileInput) (*model.Profile, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	existing, err := s.profiles.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing profile: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	profile := &model.Profile{
		Role:               in.Role,
		TelegramID:         in.TelegramID,
		FirstName:          strings.TrimSpace(in.FirstName),
		LastName:           strings.TrimSpace(in.LastName),
		Email:              in.Email,
		Timezone:           in.Timezone,
		SubjectsOfInterest: in.SubjectsOfInterest,
		Status:             model.ProfileStatusActive,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.logger.Info("Profile created",
		zap.String("profile_id", profile.ID.String()),
		zap.String("role", string(profile.Role)),
		zap.String("email", profile.Email))

	return profile, nil
}

// Deactivate помечает профиль неактивным
func (s *ProfileService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, model.ProfileStatusInactive)
}

// Reactivate возвращает профиль в активное состояние
func (s *ProfileService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, model.ProfileStatusActive)
}

func (s *ProfileService) setStatus(ctx context.Context, id uuid.UUID, status model.ProfileStatus) error {
	err := s.profiles.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProfileNotFound
	}
	if err != nil {
		return fmt.Errorf("update profile status: %w", err)
	}

	s.logger.Info("Profile status changed",
		zap.String("profile_id", id.String()),
		zap.String("status", string(status)))

	return nil
}

// LinkTelegram привязывает Telegram аккаунт к профилю с указанным email
func (s *ProfileService) LinkTelegram(ctx context.Context, email string, telegramID int64) (*model.Profile, error) {
	profile, err := s.profiles.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("get profile by email: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	if !profile.IsActive() {
		return nil, ErrProfileInactive
	}

	if profile.TelegramID != nil {
		if *profile.TelegramID == telegramID {
			return profile, nil
		}
		return nil, ErrTelegramAlreadyBound
	}

	if err := s.profiles.SetTelegramID(ctx, profile.ID, telegramID); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrTelegramAlreadyBound
		}
		return nil, fmt.Errorf("link telegram: %w", err)
	}
	profile.TelegramID = &telegramID

	s.logger.Info("Telegram account linked",
		zap.String("profile_id", profile.ID.String()),
		zap.Int64("telegram_id", telegramID))

	return profile, nil
}

// EnsureAdmins создаёт профили администраторов для Telegram ID из конфигурации
func (s *ProfileService) EnsureAdmins(ctx context.Context, telegramIDs []int64) error {
	for _, telegramID := range telegramIDs {
		existing, err := s.profiles.GetByTelegramID(ctx, telegramID)
		if err != nil {
			return fmt.Errorf("get admin profile: %w", err)
		}
		if existing != nil {
			if !existing.IsAdmin() {
				s.logger.Warn("Configured admin is linked to a non-admin profile",
					zap.Int64("telegram_id", telegramID),
					zap.String("profile_id", existing.ID.String()),
					zap.String("role", string(existing.Role)))
			}
			continue
		}

		id := telegramID
		_, err = s.Create(ctx, CreateProfileInput{
			Role:       model.ProfileRoleAdmin,
			FirstName:  "Admin",
			Email:      fmt.Sprintf("admin-%d@telegram.local", telegramID),
			TelegramID: &id,
		})
		if err != nil && !errors.Is(err, ErrEmailTaken) {
			return fmt.Errorf("bootstrap admin %d: %w", telegramID, err)
		}
	}

	return nil
}

// hydrate загружает профили пачкой
func (s *ProfileService) hydrate(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.Profile, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*model.Profile{}, nil
	}
	return s.profiles.GetByIDs(ctx, uniqueIDs(ids))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
