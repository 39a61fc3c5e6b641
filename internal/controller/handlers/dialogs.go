package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/member"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/state"
	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// skipComment - ответ, которым пользователь пропускает комментарий
const skipComment = "-"

// handleLinkEmail привязывает Telegram аккаунт к профилю по email
func (h *Handlers) handleLinkEmail(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	email := strings.TrimSpace(update.Message.Text)

	profile, err := h.profileService.LinkTelegram(ctx, email, telegramID)
	if err != nil {
		h.logger.Info("Failed to link telegram account",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nSend another email or /cancel.")
		return
	}

	h.stateManager.ClearState(telegramID)

	text := fmt.Sprintf("✅ Linked to <b>%s</b> (%s).\n\n%s",
		html.EscapeString(formatting.ProfileName(profile)), strings.ToLower(string(profile.Role)), memberHelp)
	if profile.IsAdmin() {
		text += adminHelp
	}
	h.sendMessage(ctx, b, chatID, text, nil)
}

// handleRescheduleDate принимает новую дату занятия и спрашивает комментарий
func (h *Handlers) handleRescheduleDate(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	input := strings.TrimSpace(update.Message.Text)

	suggested, err := time.ParseInLocation(RescheduleInputLayout, input, h.location)
	if err != nil {
		h.sendMessage(ctx, b, chatID, "❌ Invalid date format.\n\n"+member.RescheduleDatePrompt, nil)
		return
	}
	if !suggested.After(h.now()) {
		h.sendMessage(ctx, b, chatID, common.ErrorMessage(service.ErrDateInPast)+"\n\n"+member.RescheduleDatePrompt, nil)
		return
	}

	h.stateManager.SetData(telegramID, state.DataSuggestedDate, suggested)
	h.stateManager.SetState(telegramID, state.StateRescheduleComment)

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"🕐 New time: <b>%s</b>\n\n💬 Add a short comment for the administrator (up to %d characters), or send <code>%s</code> to skip.",
		formatting.FormatDateTime(suggested), RescheduleCommentMaxLength, skipComment), nil)
}

// handleRescheduleComment создаёт запрос на перенос
func (h *Handlers) handleRescheduleComment(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	comment := strings.TrimSpace(update.Message.Text)
	if comment == skipComment {
		comment = ""
	}
	if utf8.RuneCountInString(comment) > RescheduleCommentMaxLength {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf("❌ The comment is too long (max %d characters). Try again.", RescheduleCommentMaxLength), nil)
		return
	}

	sessionID, okSession := h.stateManager.GetData(telegramID, state.DataSessionID)
	suggested, okDate := h.stateManager.GetData(telegramID, state.DataSuggestedDate)
	id, okID := sessionID.(uuid.UUID)
	date, okTime := suggested.(time.Time)
	if !okSession || !okDate || !okID || !okTime {
		h.logger.Error("Missing reschedule dialog data", zap.Int64("telegram_id", telegramID))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ The dialog has expired. Open /mysessions and try again.")
		return
	}

	profile, _, ok := h.requireProfile(ctx, b, update)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	notification, err := h.notificationService.RequestReschedule(ctx, id, profile.ID, date, comment)
	h.stateManager.ClearState(telegramID)
	if err != nil {
		h.logger.Warn("Failed to create reschedule request",
			zap.String("session_id", id.String()),
			zap.String("profile_id", profile.ID.String()),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.logger.Info("Reschedule requested",
		zap.String("notification_id", notification.ID.String()),
		zap.String("session_id", id.String()))

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"✅ Request sent.\n\nFrom: %s\nTo: <b>%s</b>\n\nAn administrator will review it soon.",
		formatting.FormatDateTime(notification.PreviousDate.In(h.location)),
		formatting.FormatDateTime(notification.SuggestedDate.In(h.location))), nil)
}
