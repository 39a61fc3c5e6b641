package keyboard

import "github.com/go-telegram/bot/models"

// CancelButton создаёт кнопку "Cancel"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Cancel", callbackData)
}

// ConfirmButton создаёт кнопку "Confirm"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Confirm", callbackData)
}

// ConfirmCancelRow создаёт ряд Confirm/Cancel
func ConfirmCancelRow(confirmCallback, cancelCallback string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		ConfirmButton(confirmCallback),
		CancelButton(cancelCallback),
	}
}
