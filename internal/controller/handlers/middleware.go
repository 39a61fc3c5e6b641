package handlers

import (
	"context"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// sender извлекает Telegram ID и чат из сообщения или callback
func sender(update *models.Update) (telegramID, chatID int64, ok bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID, update.Message.Chat.ID, true
	case update.CallbackQuery != nil:
		msg := common.GetMessageFromCallback(update.CallbackQuery)
		if msg == nil {
			return 0, 0, false
		}
		return update.CallbackQuery.From.ID, msg.Chat.ID, true
	}
	return 0, 0, false
}

// requireProfile проверяет что Telegram аккаунт привязан к активному профилю
// Возвращает profile и true если OK, nil и false если нет
func (h *Handlers) requireProfile(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Profile, int64, bool) {
	telegramID, chatID, ok := sender(update)
	if !ok {
		return nil, 0, false
	}

	profile, err := h.profileService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get profile", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Something went wrong. Please try again later.")
		return nil, chatID, false
	}

	if profile == nil || !profile.IsActive() {
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrProfileNotLinked))
		return nil, chatID, false
	}

	return profile, chatID, true
}

// requireAdmin проверяет что профиль - администратор
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Profile, int64, bool) {
	profile, chatID, ok := h.requireProfile(ctx, b, update)
	if !ok {
		return nil, chatID, false
	}

	if !profile.IsAdmin() {
		h.logger.Warn("Admin command rejected",
			zap.String("profile_id", profile.ID.String()),
			zap.String("role", string(profile.Role)))
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrNotAnAdmin))
		return nil, chatID, false
	}

	return profile, chatID, true
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет HTML сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil && len(keyboard.InlineKeyboard) > 0 {
		params.ReplyMarkup = keyboard
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
