package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleWeek обрабатывает команду /week - картинка текущей недели
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, chatID, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, longCommandTimeout)
	defer cancel()

	if err := admin.SendWeek(ctx, b, h.screens, chatID, 0); err != nil {
		h.logger.Error("Failed to send week image", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
	}
}

// HandleGenerate обрабатывает команду /generate [YYYY-MM-DD]
func (h *Handlers) HandleGenerate(ctx context.Context, b *bot.Bot, update *models.Update) {
	profile, chatID, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	day, err := parseGenerateArg(update.Message.Text, h.now().In(h.location), h.location)
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Usage: /generate [YYYY-MM-DD]")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, longCommandTimeout)
	defer cancel()

	h.logger.Info("Manual session generation requested",
		zap.String("admin_id", profile.ID.String()),
		zap.Time("day", day))

	result, err := h.sessionService.GenerateWeek(ctx, day)
	if err != nil && (result == nil || errors.Is(err, service.ErrGenerationRunning)) {
		h.logger.Warn("Manual session generation failed", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	text := formatting.FormatGenerationStats(result.From, result.To, result.Stats)
	if err != nil {
		// Часть занятий могла быть создана до ошибки
		h.logger.Error("Session generation stopped early", zap.Error(err))
		text += "\n\n⚠️ Generation stopped early: " + html.EscapeString(err.Error())
	}
	h.sendMessage(ctx, b, chatID, text, nil)
}

// parseGenerateArg разбирает необязательную дату после команды
func parseGenerateArg(text string, now time.Time, loc *time.Location) (time.Time, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return now, nil
	}
	if len(fields) > 2 {
		return time.Time{}, fmt.Errorf("unexpected arguments: %q", text)
	}
	return time.ParseInLocation(GenerateArgLayout, fields[1], loc)
}

// HandleSessions обрабатывает команду /sessions
func (h *Handlers) HandleSessions(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, chatID, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	screen, err := admin.SessionsScreen(ctx, h.screens, h.now(), 0)
	h.sendScreen(ctx, b, chatID, screen, err, "list sessions")
}

// HandleEnrollments обрабатывает команду /enrollments
func (h *Handlers) HandleEnrollments(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, chatID, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	screen, err := admin.EnrollmentsScreen(ctx, h.screens, 0)
	h.sendScreen(ctx, b, chatID, screen, err, "list enrollments")
}

// HandleNotifications обрабатывает команду /notifications
func (h *Handlers) HandleNotifications(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, chatID, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	screen, err := admin.NotificationsScreen(ctx, h.screens, 0)
	h.sendScreen(ctx, b, chatID, screen, err, "list notifications")
}

// HandleMeetings обрабатывает команду /meetings
func (h *Handlers) HandleMeetings(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, chatID, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	meetings, err := h.meetingService.List(ctx)
	if err != nil {
		h.logger.Error("Failed to list meetings", zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🎥 <b>Meetings</b> (%d)\n\n", len(meetings))
	if len(meetings) == 0 {
		sb.WriteString("No meetings yet.")
	}
	for _, m := range meetings {
		sb.WriteString(formatting.FormatMeeting(m))
		sb.WriteString("\n")
	}
	h.sendMessage(ctx, b, chatID, sb.String(), nil)
}

func (h *Handlers) sendScreen(ctx context.Context, b *bot.Bot, chatID int64, screen *admin.Screen, err error, operation string) {
	if err != nil {
		h.logger.Error("Admin command failed", zap.String("operation", operation), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}
	h.sendMessage(ctx, b, chatID, screen.Text, screen.Keyboard)
}
