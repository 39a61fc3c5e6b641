package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/member"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================

// Admin callbacks
const (
	SessionsPage        = admin.SessionsPage        // sessions_page:2
	EnrollmentsPage     = admin.EnrollmentsPage     // enrollments_page:2
	NotificationsPage   = admin.NotificationsPage   // notifications_page:2
	ApproveNotification = admin.ApproveNotification // approve_ntf:<uuid>
	ResolveNotification = admin.ResolveNotification // resolve_ntf:<uuid>
	ReopenNotification  = admin.ReopenNotification  // reopen_ntf:<uuid>
	CompleteSession     = admin.CompleteSession     // complete_session:<uuid>
	WeekNav             = admin.WeekNav             // week:-1 (смещение в неделях)
)

// Member callbacks
const (
	RequestReschedule = member.RequestReschedule // reschedule:<uuid>
	CancelDialog      = member.CancelDialog
	MySessions        = member.MySessions
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	case data == keyboard.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Admin =====
	case strings.HasPrefix(data, SessionsPage):
		admin.HandleSessionsPage(ctx, b, callback, h)
	case strings.HasPrefix(data, EnrollmentsPage):
		admin.HandleEnrollmentsPage(ctx, b, callback, h)
	case strings.HasPrefix(data, NotificationsPage):
		admin.HandleNotificationsPage(ctx, b, callback, h)
	case strings.HasPrefix(data, ApproveNotification):
		admin.HandleApproveNotification(ctx, b, callback, h)
	case strings.HasPrefix(data, ResolveNotification):
		admin.HandleResolveNotification(ctx, b, callback, h)
	case strings.HasPrefix(data, ReopenNotification):
		admin.HandleReopenNotification(ctx, b, callback, h)
	case strings.HasPrefix(data, CompleteSession):
		admin.HandleCompleteSession(ctx, b, callback, h)
	case strings.HasPrefix(data, WeekNav):
		admin.HandleWeekNavigation(ctx, b, callback, h)

	// ===== Student / Tutor =====
	case strings.HasPrefix(data, RequestReschedule):
		member.HandleRequestReschedule(ctx, b, callback, h)
	case data == CancelDialog:
		member.HandleCancelDialog(ctx, b, callback, h)
	case data == MySessions:
		if h.HandleMySessions != nil {
			common.AnswerCallback(ctx, b, callback.ID, "")
			h.HandleMySessions(ctx, b, &models.Update{CallbackQuery: callback})
		}

	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Unknown command")
	}
}
