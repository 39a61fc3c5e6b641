package common

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/tutoring_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrProfileNotLinked = errors.New("telegram account is not linked to a profile")
	ErrNotAnAdmin       = errors.New("profile is not an admin")
	ErrNoMessage        = errors.New("no message in callback")
	ErrInvalidFormat    = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return "❌ " + verr.Error()
	}

	switch {
	case errors.Is(err, ErrProfileNotLinked):
		return "❌ Your Telegram account is not linked yet. Use /start"
	case errors.Is(err, ErrNotAnAdmin):
		return "❌ This action is available to administrators only"
	case errors.Is(err, ErrNoMessage):
		return "❌ Failed to process the message"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Invalid data format"
	case errors.Is(err, service.ErrProfileNotFound):
		return "❌ No profile with this email. Check the address or contact the center"
	case errors.Is(err, service.ErrProfileInactive):
		return "❌ This profile is deactivated. Please contact the center"
	case errors.Is(err, service.ErrTelegramAlreadyBound):
		return "❌ This profile is already linked to another Telegram account"
	case errors.Is(err, service.ErrEmailTaken):
		return "❌ A user with this email already exists"
	case errors.Is(err, service.ErrEnrollmentNotFound):
		return "❌ Enrollment not found"
	case errors.Is(err, service.ErrMeetingNotFound):
		return "❌ Meeting not found"
	case errors.Is(err, service.ErrSessionNotFound):
		return "❌ Session not found"
	case errors.Is(err, service.ErrNotificationNotFound):
		return "❌ Request not found"
	case errors.Is(err, service.ErrAlreadyResolved):
		return "ℹ️ This request is already resolved"
	case errors.Is(err, service.ErrSessionConflict):
		return "❌ The student and tutor already have a session at that time"
	case errors.Is(err, service.ErrNotParticipant):
		return "❌ You can only reschedule your own sessions"
	case errors.Is(err, service.ErrDateInPast):
		return "❌ The new date must be in the future"
	case errors.Is(err, service.ErrGenerationRunning):
		return "⏳ Session generation is already running, try again in a minute"
	default:
		return "❌ Something went wrong"
	}
}

// IsMessageNotModifiedError проверяет ошибку Telegram "message is not modified"
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
