package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/schedule"
	"github.com/stretchr/testify/assert"
)

func TestFormatSessionTime(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}

	start := time.Date(2024, 6, 3, 19, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	assert.Equal(t, "Mon, Jun 3 15:00-16:00", FormatSessionTime(start, end, ny))
	assert.Equal(t, "Mon, Jun 3 19:00-20:00", FormatSessionTime(start, end, nil))
}

func TestFormatWeekRange(t *testing.T) {
	assert.Equal(t, "Jun 3 - Jun 9, 2024",
		FormatWeekRange(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 9, 23, 59, 59, 0, time.UTC)))
	assert.Equal(t, "Dec 30, 2024 - Jan 5, 2025",
		FormatWeekRange(time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 min", FormatDuration(45*time.Minute))
	assert.Equal(t, "2 h", FormatDuration(2*time.Hour))
	assert.Equal(t, "1 h 30 min", FormatDuration(90*time.Minute))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 session", Plural(1, "session"))
	assert.Equal(t, "0 sessions", Plural(0, "session"))
	assert.Equal(t, "3 requests", Plural(3, "request"))
}

func TestStatusDisplays(t *testing.T) {
	assert.Equal(t, "Rescheduled", GetSessionStatusDisplay(model.SessionStatusRescheduled).Text)
	assert.Equal(t, "Unknown", GetSessionStatusDisplay("Cancelled").Text)
	assert.Equal(t, "Pending", GetNotificationStatusDisplay(model.NotificationStatusActive).Text)
}

func TestFormatSessionEscapesHTML(t *testing.T) {
	s := &model.Session{
		Date:    time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC),
		EndsAt:  time.Date(2024, 6, 3, 16, 0, 0, 0, time.UTC),
		Status:  model.SessionStatusActive,
		Summary: "<b>x</b>",
		Student: &model.Profile{FirstName: "Ada", LastName: "Lovelace"},
	}

	text := FormatSession(s, time.UTC)
	assert.Contains(t, text, "Ada Lovelace ↔ (unknown)")
	assert.Contains(t, text, "&lt;b&gt;x&lt;/b&gt;")
	assert.Contains(t, text, "Mon, Jun 3 15:00-16:00")
}

func TestFormatAvailability(t *testing.T) {
	text := FormatAvailability([]model.AvailabilitySlot{
		{Day: "monday", StartTime: "9:00", EndTime: "10:00"},
		{Day: "Funday", StartTime: "9:00", EndTime: "10:00"},
	})
	assert.Equal(t, "Monday 09:00-10:00, Funday 9:00-10:00 ⚠️", text)
	assert.Equal(t, "no slots", FormatAvailability(nil))
}

func TestFormatGenerationStats(t *testing.T) {
	text := FormatGenerationStats(
		time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 9, 23, 59, 59, 0, time.UTC),
		schedule.Stats{Enrollments: 3, Created: 4, Duplicates: 2, InvalidSlots: 1},
	)
	assert.Contains(t, text, "Created: 4")
	assert.Contains(t, text, "Already existed: 2")
	assert.Contains(t, text, "Invalid availability slots: 1")
	assert.NotContains(t, text, "Failed to save")
}

func TestFormatMeeting(t *testing.T) {
	text := FormatMeeting(&model.Meeting{Name: "Room <A>", Link: "https://meet.example.com/a", MeetingCode: "123"})
	assert.Contains(t, text, "Room &lt;A&gt;")
	assert.Contains(t, text, "Code: <code>123</code>")
	assert.NotContains(t, text, "Password")
}
