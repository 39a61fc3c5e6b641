package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const memberHelp = "/mysessions - Your upcoming sessions\n" +
	"/cancel - Cancel the current dialog\n" +
	"/help - Show this help"

const adminHelp = "\n\nFor administrators:\n" +
	"/week - Week image of all sessions\n" +
	"/generate [YYYY-MM-DD] - Generate sessions for the week\n" +
	"/sessions - Sessions this week\n" +
	"/enrollments - All enrollments\n" +
	"/meetings - Meeting rooms\n" +
	"/notifications - Reschedule requests"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	profile, err := h.profileService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get profile on start", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Something went wrong. Please try again later.")
		return
	}

	if profile != nil && profile.IsActive() {
		h.stateManager.ClearState(telegramID)
		text := fmt.Sprintf("👋 Welcome back, %s!\n\n%s", html.EscapeString(profile.FirstName), memberHelp)
		if profile.IsAdmin() {
			text += adminHelp
		}
		h.sendMessage(ctx, b, chatID, text, nil)
		return
	}

	h.stateManager.SetState(telegramID, state.StateLinkEmail)
	h.sendMessage(ctx, b, chatID,
		"👋 Welcome to the tutoring center bot!\n\n"+
			"To see your sessions, link your Telegram account to your profile.\n"+
			"📧 Please send the email address you registered with.", nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	text := "📚 <b>Commands</b>\n\n/start - Link your account\n" + memberHelp

	profile, err := h.profileService.GetByTelegramID(ctx, update.Message.From.ID)
	if err == nil && profile != nil && profile.IsAdmin() {
		text += adminHelp
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, text, nil)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Nothing to cancel.", nil)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Cancelled.\n\nUse /help to see available commands.", nil)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются другими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("Text message received",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateNone:
		return
	case state.StateLinkEmail:
		h.handleLinkEmail(ctx, b, update)
	case state.StateRescheduleDate:
		h.handleRescheduleDate(ctx, b, update)
	case state.StateRescheduleComment:
		h.handleRescheduleComment(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}
