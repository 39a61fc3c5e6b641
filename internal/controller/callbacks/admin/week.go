package admin

import (
	"bytes"
	"context"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_bot/internal/schedule"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// SendWeek отправляет картинку недели со смещением offset (в неделях) от текущей.
// Если картинку построить не удалось, отправляет текстовую подпись.
func SendWeek(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, chatID int64, offset int) error {
	now := time.Now().In(h.Location)
	day := now.AddDate(0, 0, 7*offset)
	from, to := schedule.WeekWindow(day)

	sessions, err := h.SessionService.ListBetween(ctx, from, to)
	if err != nil {
		return err
	}

	caption := WeekCaption(from, to, len(sessions))
	kb := WeekKeyboard(offset)

	imageData, err := common.GenerateWeekImage(day, sessions, common.WeekImageOptions{Location: h.Location, Now: now})
	if err != nil {
		h.Logger.Error("Failed to render week image", zap.Error(err))
		_, err = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        caption,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: kb,
		})
		return err
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(imageData)},
		Caption:     caption,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	return err
}

// HandleWeekNavigation показывает соседнюю неделю вместо текущего сообщения
func HandleWeekNavigation(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		offset, err := common.ParseIntFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse week offset")
			return
		}

		if err := SendWeek(hc.Ctx, b, h, hc.ChatID, offset); err != nil {
			common.HandleError(hc, err, "send week")
			return
		}

		if hc.Message != nil {
			b.DeleteMessage(hc.Ctx, &bot.DeleteMessageParams{
				ChatID:    hc.ChatID,
				MessageID: hc.Message.ID,
			})
		}
		hc.Answer("")
	})
}
