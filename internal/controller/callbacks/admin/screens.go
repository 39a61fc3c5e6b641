package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/schedule"
	"github.com/go-telegram/bot/models"
)

// Callback data для экранов администратора
const (
	SessionsPage        = "sessions_page:"
	EnrollmentsPage     = "enrollments_page:"
	NotificationsPage   = "notifications_page:"
	ApproveNotification = "approve_ntf:"
	ResolveNotification = "resolve_ntf:"
	ReopenNotification  = "reopen_ntf:"
	CompleteSession     = "complete_session:"
	WeekNav             = "week:"
)

const (
	sessionsPageSize    = 8
	enrollmentsPageSize = 5
)

// Screen - текст и клавиатура одного экрана
type Screen struct {
	Text     string
	Keyboard *models.InlineKeyboardMarkup
}

// SessionsScreen - занятия текущей недели, постранично
func SessionsScreen(ctx context.Context, h *callbacktypes.Handler, now time.Time, page int) (*Screen, error) {
	from, to := schedule.WeekWindow(now.In(h.Location))
	sessions, err := h.SessionService.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	start, end, current, totalPages := keyboard.Page(len(sessions), page, sessionsPageSize)

	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 <b>Sessions %s</b>\n", formatting.FormatWeekRange(from, to))
	fmt.Fprintf(&sb, "Total: %s\n\n", formatting.Plural(len(sessions), "session"))
	if len(sessions) == 0 {
		sb.WriteString("No sessions this week. Use /generate to create them from enrollments.")
	}

	kb := keyboard.NewBuilder()
	for i, s := range sessions[start:end] {
		n := start + i + 1
		fmt.Fprintf(&sb, "<b>%d.</b> %s\n", n, formatting.FormatSession(s, h.Location))
		if s.Status != model.SessionStatusComplete {
			kb.Row(keyboard.Button(fmt.Sprintf("✅ Mark #%d complete", n), CompleteSession+s.ID.String()))
		}
	}
	kb.AddPagination(SessionsPage, current, totalPages)

	return &Screen{Text: sb.String(), Keyboard: kb.Build()}, nil
}

// EnrollmentsScreen - все записи на обучение, постранично
func EnrollmentsScreen(ctx context.Context, h *callbacktypes.Handler, page int) (*Screen, error) {
	enrollments, err := h.EnrollmentService.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	start, end, current, totalPages := keyboard.Page(len(enrollments), page, enrollmentsPageSize)

	var sb strings.Builder
	fmt.Fprintf(&sb, "📚 <b>Enrollments</b> (%d)\n\n", len(enrollments))
	if len(enrollments) == 0 {
		sb.WriteString("No enrollments yet.")
	}
	for _, e := range enrollments[start:end] {
		sb.WriteString(formatting.FormatEnrollment(e))
		sb.WriteString("\n")
	}

	kb := keyboard.NewBuilder().AddPagination(EnrollmentsPage, current, totalPages)
	return &Screen{Text: sb.String(), Keyboard: kb.Build()}, nil
}

// NotificationsScreen - запросы на перенос, по одному на страницу (сначала активные)
func NotificationsScreen(ctx context.Context, h *callbacktypes.Handler, page int) (*Screen, error) {
	notifications, err := h.NotificationService.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	notifications = activeFirst(notifications)

	if len(notifications) == 0 {
		return &Screen{Text: "📭 No reschedule requests."}, nil
	}

	_, _, current, totalPages := keyboard.Page(len(notifications), page, 1)
	n := notifications[current]

	student, err := h.ProfileService.GetByID(ctx, n.StudentID)
	if err != nil {
		return nil, err
	}
	tutor, err := h.ProfileService.GetByID(ctx, n.TutorID)
	if err != nil {
		return nil, err
	}

	kb := keyboard.NewBuilder()
	if n.IsActive() {
		kb.Row(
			keyboard.Button("✅ Approve", ApproveNotification+n.ID.String()),
			keyboard.Button("✔️ Resolve", ResolveNotification+n.ID.String()),
		)
	} else {
		kb.Row(keyboard.Button("↩️ Reopen", ReopenNotification+n.ID.String()))
	}
	kb.AddPagination(NotificationsPage, current, totalPages)

	return &Screen{
		Text:     formatting.FormatNotification(n, student, tutor, h.Location),
		Keyboard: kb.Build(),
	}, nil
}

// activeFirst сохраняет порядок внутри групп активных и обработанных запросов
func activeFirst(list []*model.Notification) []*model.Notification {
	out := make([]*model.Notification, 0, len(list))
	for _, n := range list {
		if n.IsActive() {
			out = append(out, n)
		}
	}
	for _, n := range list {
		if !n.IsActive() {
			out = append(out, n)
		}
	}
	return out
}

// WeekCaption - подпись к картинке недели
func WeekCaption(from, to time.Time, count int) string {
	return fmt.Sprintf("🗓 <b>%s</b>\n%s", formatting.FormatWeekRange(from, to), formatting.Plural(count, "session"))
}

// WeekKeyboard - навигация по неделям
func WeekKeyboard(offset int) *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().Row(keyboard.WeekPagination(WeekNav, offset)...).Build()
}
