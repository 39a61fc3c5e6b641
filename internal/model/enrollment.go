package model

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment - постоянная пара студент-репетитор с еженедельным расписанием
type Enrollment struct {
	ID           uuid.UUID          `json:"id"`
	CreatedAt    time.Time          `json:"created_at"`
	StudentID    *uuid.UUID         `json:"student_id"`
	TutorID      *uuid.UUID         `json:"tutor_id"`
	Summary      string             `json:"summary"`
	StartDate    time.Time          `json:"start_date"`
	EndDate      *time.Time         `json:"end_date"` // nil = бессрочно
	Availability []AvailabilitySlot `json:"availability"`
	MeetingID    *uuid.UUID         `json:"meeting_id"`

	// Заполняются сервисом (не из БД); nil, если профиль не найден
	Student *Profile `json:"student,omitempty"`
	Tutor   *Profile `json:"tutor,omitempty"`
}

// ActiveBetween проверяет пересечение срока действия записи с интервалом [from, to]
func (e *Enrollment) ActiveBetween(from, to time.Time) bool {
	if e.StartDate.After(to) {
		return false
	}
	if e.EndDate != nil && e.EndDate.Before(from) {
		return false
	}
	return true
}
