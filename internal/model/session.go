package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusActive      SessionStatus = "Active"
	SessionStatusComplete    SessionStatus = "Complete"
	SessionStatusRescheduled SessionStatus = "Rescheduled"
)

// Valid проверяет что статус входит в допустимый набор
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusActive, SessionStatusComplete, SessionStatusRescheduled:
		return true
	}
	return false
}

// Session - конкретное занятие в конкретное время
type Session struct {
	ID        uuid.UUID     `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Date      time.Time     `json:"date"`
	EndsAt    time.Time     `json:"ends_at"`
	StudentID uuid.UUID     `json:"student_id"`
	TutorID   uuid.UUID     `json:"tutor_id"`
	Status    SessionStatus `json:"status"`
	Summary   string        `json:"summary"`
	MeetingID *uuid.UUID    `json:"meeting_id"`

	// Заполняются сервисом для отображения (не из БД)
	Student *Profile `json:"student,omitempty"`
	Tutor   *Profile `json:"tutor,omitempty"`
}

// SessionRef - минимальный набор полей для дедупликации
type SessionRef struct {
	StudentID uuid.UUID
	TutorID   uuid.UUID
	Date      time.Time
}
