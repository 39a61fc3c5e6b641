package admin

import (
	"context"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/formatting"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleNotificationsPage переключает запрос на перенос
func HandleNotificationsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page, err := common.ParseIntFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse notifications page")
			return
		}
		showNotifications(hc, page, "")
	})
}

// HandleApproveNotification переносит занятие на предложенную дату и закрывает запрос
func HandleApproveNotification(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse notification id")
			return
		}

		session, err := h.NotificationService.ApproveReschedule(hc.Ctx, id)
		if err != nil {
			common.HandleError(hc, err, "approve reschedule")
			return
		}

		h.Logger.Info("Reschedule approved",
			zap.String("notification_id", id.String()),
			zap.String("admin_id", hc.Profile.ID.String()))

		notifyParticipants(hc, "🔁 Your session was moved to <b>"+
			formatting.FormatSessionTime(session.Date, session.EndsAt, h.Location)+"</b>", session.StudentID, session.TutorID)

		showNotifications(hc, 0, "✅ Session rescheduled")
	})
}

// HandleResolveNotification закрывает запрос без переноса
func HandleResolveNotification(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse notification id")
			return
		}
		if err := h.NotificationService.Resolve(hc.Ctx, id); err != nil {
			common.HandleError(hc, err, "resolve notification")
			return
		}
		showNotifications(hc, 0, "✔️ Request resolved")
	})
}

// HandleReopenNotification возвращает запрос в активные
func HandleReopenNotification(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse notification id")
			return
		}
		if err := h.NotificationService.Reopen(hc.Ctx, id); err != nil {
			common.HandleError(hc, err, "reopen notification")
			return
		}
		showNotifications(hc, 0, "↩️ Request reopened")
	})
}

func showNotifications(hc *common.HandlerContext, page int, answer string) {
	screen, err := NotificationsScreen(hc.Ctx, hc.Handler, page)
	if err != nil {
		common.HandleError(hc, err, "list notifications")
		return
	}
	if err := hc.EditMessage(screen.Text, screen.Keyboard); err != nil {
		hc.Handler.Logger.Error("Failed to edit notifications message", zap.Error(err))
	}
	hc.Answer(answer)
}
