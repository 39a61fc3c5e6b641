package member

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/state"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Callback data для студентов и репетиторов
const (
	RequestReschedule = "reschedule:"
	CancelDialog      = "cancel_dialog"
	MySessions        = "my_sessions"
)

// RescheduleDatePrompt - подсказка для ввода новой даты
const RescheduleDatePrompt = "📅 Enter the new date and time in the format <code>YYYY-MM-DD HH:MM</code>, for example <code>2024-06-10 15:30</code>."

// MySessionsScreen - ближайшие занятия профиля с кнопками запроса переноса
func MySessionsScreen(ctx context.Context, h *callbacktypes.Handler, profile *model.Profile, now time.Time, days int) (string, *models.InlineKeyboardMarkup, error) {
	sessions, err := h.SessionService.ListForProfile(ctx, profile.ID, now)
	if err != nil {
		return "", nil, err
	}

	horizon := now.AddDate(0, 0, days)
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 <b>Your sessions for the next %d days</b>\n\n", days)

	kb := keyboard.NewBuilder()
	n := 0
	for _, s := range sessions {
		if s.Date.After(horizon) {
			break
		}
		n++
		fmt.Fprintf(&sb, "<b>%d.</b> %s\n", n, formatting.FormatSession(s, h.Location))
		if s.Status != model.SessionStatusComplete {
			kb.Row(keyboard.Button(fmt.Sprintf("🔁 Reschedule #%d", n), RequestReschedule+s.ID.String()))
		}
	}
	if n == 0 {
		sb.WriteString("You have no upcoming sessions.")
	}

	return sb.String(), kb.Build(), nil
}

// HandleRequestReschedule начинает диалог запроса переноса занятия
func HandleRequestReschedule(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithProfile(ctx, b, callback, h, func(hc *common.HandlerContext) {
		sessionID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse session id")
			return
		}

		session, err := h.SessionService.GetByID(hc.Ctx, sessionID)
		if err != nil {
			common.HandleError(hc, err, "get session")
			return
		}
		if session == nil {
			hc.AnswerAlert(common.ErrorMessage(service.ErrSessionNotFound))
			return
		}
		if session.StudentID != hc.Profile.ID && session.TutorID != hc.Profile.ID {
			hc.AnswerAlert("❌ You can only reschedule your own sessions")
			return
		}

		hc.SetState(callbacktypes.UserState(state.StateRescheduleDate))
		hc.SetData(state.DataSessionID, sessionID)

		h.Logger.Info("Reschedule dialog started",
			zap.String("session_id", sessionID.String()),
			zap.String("profile_id", hc.Profile.ID.String()))

		text := fmt.Sprintf("🔁 <b>Reschedule request</b>\n\nCurrent time: %s\n\n%s",
			formatting.FormatSessionTime(session.Date, session.EndsAt, h.Location), RescheduleDatePrompt)
		kb := keyboard.NewBuilder().Row(keyboard.CancelButton(CancelDialog)).Build()
		if err := hc.SendMessage(text, kb); err != nil {
			h.Logger.Error("Failed to send reschedule prompt", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleCancelDialog сбрасывает текущий диалог
func HandleCancelDialog(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	h.StateManager.ClearState(hc.TelegramID)

	kb := keyboard.NewBuilder().Row(keyboard.Button("📅 My sessions", MySessions)).Build()
	if err := hc.EditMessage("❌ Cancelled", kb); err != nil {
		h.Logger.Warn("Failed to edit cancelled dialog", zap.Error(err))
	}
	hc.Answer("")
}
