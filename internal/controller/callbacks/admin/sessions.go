package admin

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleSessionsPage переключает страницу списка занятий
func HandleSessionsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page, err := common.ParseIntFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse sessions page")
			return
		}
		showSessions(hc, page)
	})
}

// HandleEnrollmentsPage переключает страницу списка записей
func HandleEnrollmentsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page, err := common.ParseIntFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse enrollments page")
			return
		}

		screen, err := EnrollmentsScreen(hc.Ctx, h, page)
		if err != nil {
			common.HandleError(hc, err, "list enrollments")
			return
		}
		if err := hc.EditMessage(screen.Text, screen.Keyboard); err != nil {
			h.Logger.Error("Failed to edit enrollments message", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleCompleteSession отмечает занятие проведённым
func HandleCompleteSession(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		sessionID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse session id")
			return
		}

		if err := h.SessionService.SetStatus(hc.Ctx, sessionID, model.SessionStatusComplete); err != nil {
			common.HandleError(hc, err, "complete session")
			return
		}

		h.Logger.Info("Session marked complete",
			zap.String("session_id", sessionID.String()),
			zap.String("admin_id", hc.Profile.ID.String()))

		showSessions(hc, 0)
	})
}

func showSessions(hc *common.HandlerContext, page int) {
	screen, err := SessionsScreen(hc.Ctx, hc.Handler, time.Now(), page)
	if err != nil {
		common.HandleError(hc, err, "list sessions")
		return
	}
	if err := hc.EditMessage(screen.Text, screen.Keyboard); err != nil {
		hc.Handler.Logger.Error("Failed to edit sessions message", zap.Error(err))
	}
	hc.Answer("")
}
