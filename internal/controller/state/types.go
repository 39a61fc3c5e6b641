package state

import "time"

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Привязка Telegram аккаунта к профилю по email
	StateLinkEmail UserState = "link_email"

	// Запрос переноса занятия: ввод новой даты, затем комментария
	StateRescheduleDate    UserState = "reschedule_date"
	StateRescheduleComment UserState = "reschedule_comment"
)

// Ключи временных данных диалога
const (
	DataSessionID     = "session_id"
	DataSuggestedDate = "suggested_date"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State     UserState
	Data      map[string]interface{} // Временные данные для текущего диалога
	UpdatedAt time.Time
}
