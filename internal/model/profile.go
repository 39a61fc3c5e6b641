package model

import (
	"time"

	"github.com/google/uuid"
)

type ProfileRole string

const (
	ProfileRoleStudent ProfileRole = "Student"
	ProfileRoleTutor   ProfileRole = "Tutor"
	ProfileRoleAdmin   ProfileRole = "Admin"
)

type ProfileStatus string

const (
	ProfileStatusActive   ProfileStatus = "Active"
	ProfileStatusInactive ProfileStatus = "Inactive"
	ProfileStatusDeleted  ProfileStatus = "Deleted"
)

// Profile - студент, репетитор или администратор центра
type Profile struct {
	ID                 uuid.UUID     `json:"id"`
	CreatedAt          time.Time     `json:"created_at"`
	Role               ProfileRole   `json:"role"`
	TelegramID         *int64        `json:"telegram_id"` // nil, пока аккаунт не привязан
	FirstName          string        `json:"first_name"`
	LastName           string        `json:"last_name"`
	Email              string        `json:"email"`
	Timezone           string        `json:"timezone"`
	SubjectsOfInterest []string      `json:"subjects_of_interest"`
	Status             ProfileStatus `json:"status"`
}

// FullName возвращает имя и фамилию через пробел
func (p *Profile) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// IsAdmin проверяет роль администратора
func (p *Profile) IsAdmin() bool {
	return p.Role == ProfileRoleAdmin
}

// IsActive проверяет что профиль не деактивирован
func (p *Profile) IsActive() bool {
	return p.Status == ProfileStatusActive
}
