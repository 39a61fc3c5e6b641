package admin

import (
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// notifyParticipants отправляет сообщение участникам с привязанным Telegram.
// Ошибки доставки только логируются.
func notifyParticipants(hc *common.HandlerContext, text string, profileIDs ...uuid.UUID) {
	for _, id := range profileIDs {
		profile, err := hc.Handler.ProfileService.GetByID(hc.Ctx, id)
		if err != nil || profile == nil || profile.TelegramID == nil {
			continue
		}

		_, err = hc.Bot.SendMessage(hc.Ctx, &bot.SendMessageParams{
			ChatID:    *profile.TelegramID,
			Text:      text,
			ParseMode: models.ParseModeHTML,
		})
		if err != nil {
			hc.Handler.Logger.Warn("Failed to notify participant",
				zap.String("profile_id", id.String()),
				zap.Error(err))
		}
	}
}
