package formatting

import "github.com/Freeeeeet/tutoring_bot/internal/model"

// StatusDisplay - emoji и текст для отображения статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetSessionStatusDisplay возвращает emoji и текст для статуса занятия
func GetSessionStatusDisplay(status model.SessionStatus) StatusDisplay {
	displays := map[model.SessionStatus]StatusDisplay{
		model.SessionStatusActive:      {"🟢", "Scheduled"},
		model.SessionStatusComplete:    {"✔️", "Complete"},
		model.SessionStatusRescheduled: {"🔁", "Rescheduled"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Unknown"}
}

// GetNotificationStatusDisplay возвращает emoji и текст для статуса запроса переноса
func GetNotificationStatusDisplay(status model.NotificationStatus) StatusDisplay {
	displays := map[model.NotificationStatus]StatusDisplay{
		model.NotificationStatusActive:   {"⏳", "Pending"},
		model.NotificationStatusResolved: {"✅", "Resolved"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Unknown"}
}
