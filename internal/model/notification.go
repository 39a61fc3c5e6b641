package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationStatusActive   NotificationStatus = "Active"
	NotificationStatusResolved NotificationStatus = "Resolved"
)

// Notification - запрос на перенос занятия для администратора
type Notification struct {
	ID            uuid.UUID          `json:"id"`
	CreatedAt     time.Time          `json:"created_at"`
	SessionID     uuid.UUID          `json:"session_id"`
	PreviousDate  time.Time          `json:"previous_date"`
	SuggestedDate time.Time          `json:"suggested_date"`
	StudentID     uuid.UUID          `json:"student_id"`
	TutorID       uuid.UUID          `json:"tutor_id"`
	Status        NotificationStatus `json:"status"`
	Summary       string             `json:"summary"`
}

// IsActive проверяет что запрос ещё не обработан
func (n *Notification) IsActive() bool {
	return n.Status == NotificationStatusActive
}
