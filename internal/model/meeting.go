package model

import (
	"time"

	"github.com/google/uuid"
)

// Meeting - ссылка на онлайн-встречу, привязываемая к записям и занятиям
type Meeting struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Link        string    `json:"link"`
	MeetingCode string    `json:"meeting_code"`
	Password    string    `json:"password"`
	CreatedAt   time.Time `json:"created_at"`
}
