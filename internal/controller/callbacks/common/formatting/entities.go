package formatting

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/schedule"
)

// ProfileName возвращает имя профиля или заглушку, если профиль не загружен
func ProfileName(p *model.Profile) string {
	if p == nil {
		return "(unknown)"
	}
	if name := strings.TrimSpace(p.FullName()); name != "" {
		return name
	}
	return p.Email
}

// FormatSession форматирует занятие в одну-две строки (HTML)
func FormatSession(s *model.Session, loc *time.Location) string {
	display := GetSessionStatusDisplay(s.Status)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <b>%s</b>\n", display.Emoji, html.EscapeString(FormatSessionTime(s.Date, s.EndsAt, loc)))
	fmt.Fprintf(&sb, "   %s ↔ %s",
		html.EscapeString(ProfileName(s.Student)),
		html.EscapeString(ProfileName(s.Tutor)))
	if s.Summary != "" {
		fmt.Fprintf(&sb, "\n   📝 %s", html.EscapeString(s.Summary))
	}
	return sb.String()
}

// FormatNotification форматирует запрос переноса (HTML)
func FormatNotification(n *model.Notification, student, tutor *model.Profile, loc *time.Location) string {
	display := GetNotificationStatusDisplay(n.Status)

	previous, suggested := n.PreviousDate, n.SuggestedDate
	if loc != nil {
		previous, suggested = previous.In(loc), suggested.In(loc)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <b>Reschedule request</b> (%s)\n", display.Emoji, display.Text)
	fmt.Fprintf(&sb, "👥 %s ↔ %s\n",
		html.EscapeString(ProfileName(student)),
		html.EscapeString(ProfileName(tutor)))
	fmt.Fprintf(&sb, "📅 %s → %s", FormatDateTime(previous), FormatDateTime(suggested))
	if n.Summary != "" {
		fmt.Fprintf(&sb, "\n💬 %s", html.EscapeString(n.Summary))
	}
	return sb.String()
}

// FormatAvailability форматирует слоты записи: "Monday 15:00-16:00, Thursday 10:00-11:30"
func FormatAvailability(slots []model.AvailabilitySlot) string {
	if len(slots) == 0 {
		return "no slots"
	}
	parts := make([]string, 0, len(slots))
	for _, raw := range slots {
		slot, err := schedule.ParseSlot(raw)
		if err != nil {
			parts = append(parts, fmt.Sprintf("%s %s-%s ⚠️", raw.Day, raw.StartTime, raw.EndTime))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s-%s", slot.Day, slot.Start, slot.End))
	}
	return strings.Join(parts, ", ")
}

// FormatEnrollment форматирует запись студента к репетитору (HTML)
func FormatEnrollment(e *model.Enrollment) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📘 <b>%s ↔ %s</b>\n",
		html.EscapeString(ProfileName(e.Student)),
		html.EscapeString(ProfileName(e.Tutor)))
	if e.Summary != "" {
		fmt.Fprintf(&sb, "   %s\n", html.EscapeString(e.Summary))
	}

	period := "from " + FormatDate(e.StartDate)
	if e.EndDate != nil {
		period += " to " + FormatDate(*e.EndDate)
	}
	fmt.Fprintf(&sb, "   🗓 %s\n", period)
	fmt.Fprintf(&sb, "   ⏰ %s", html.EscapeString(FormatAvailability(e.Availability)))
	return sb.String()
}

// FormatGenerationStats форматирует итоги генерации
func FormatGenerationStats(from, to time.Time, stats schedule.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ <b>Sessions generated</b> for %s\n\n", FormatWeekRange(from, to))
	fmt.Fprintf(&sb, "➕ Created: %d\n", stats.Created)
	fmt.Fprintf(&sb, "♻️ Already existed: %d\n", stats.Duplicates)
	fmt.Fprintf(&sb, "📚 Enrollments processed: %d", stats.Enrollments)
	if stats.SkippedEnrollments > 0 {
		fmt.Fprintf(&sb, "\n⏭ Skipped (missing student or tutor): %d", stats.SkippedEnrollments)
	}
	if stats.InvalidSlots > 0 {
		fmt.Fprintf(&sb, "\n⚠️ Invalid availability slots: %d", stats.InvalidSlots)
	}
	if stats.Failed > 0 {
		fmt.Fprintf(&sb, "\n❌ Failed to save: %d", stats.Failed)
	}
	return sb.String()
}

// FormatMeeting форматирует ссылку на встречу (HTML)
func FormatMeeting(m *model.Meeting) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎥 <b>%s</b>\n   %s", html.EscapeString(m.Name), html.EscapeString(m.Link))
	if m.MeetingCode != "" {
		fmt.Fprintf(&sb, "\n   Code: <code>%s</code>", html.EscapeString(m.MeetingCode))
	}
	if m.Password != "" {
		fmt.Fprintf(&sb, "\n   Password: <code>%s</code>", html.EscapeString(m.Password))
	}
	return sb.String()
}
