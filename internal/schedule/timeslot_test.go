package schedule

import (
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "15:00", want: TimeOfDay{Hour: 15, Minute: 0}},
		{in: "09:30", want: TimeOfDay{Hour: 9, Minute: 30}},
		{in: "9:30", want: TimeOfDay{Hour: 9, Minute: 30}},
		{in: "00:00", want: TimeOfDay{}},
		{in: "23:59", want: TimeOfDay{Hour: 23, Minute: 59}},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "12:5", wantErr: true},
		{in: "123:00", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "+1:00", wantErr: true},
		{in: "15:00-18:00", wantErr: true},
		{in: "1500", wantErr: true},
		{in: "", wantErr: true},
		{in: "3:00 PM", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDayOfWeek(t *testing.T) {
	for _, name := range []string{"Monday", "monday", "MONDAY", "mOnDaY"} {
		day, err := ParseDayOfWeek(name)
		require.NoError(t, err, name)
		assert.Equal(t, time.Monday, day.Weekday())
	}

	for _, name := range []string{"", "Mon", "Monday ", "Funday"} {
		_, err := ParseDayOfWeek(name)
		assert.ErrorIs(t, err, ErrUnknownDay, name)
	}
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		name    string
		raw     model.AvailabilitySlot
		wantErr error
	}{
		{name: "valid", raw: model.AvailabilitySlot{Day: "Monday", StartTime: "15:00", EndTime: "16:00"}},
		{name: "empty start", raw: model.AvailabilitySlot{Day: "Monday", EndTime: "16:00"}, wantErr: ErrEmptyStartTime},
		{name: "packed range", raw: model.AvailabilitySlot{Day: "Monday", StartTime: "15:00-18:00", EndTime: ""}, wantErr: ErrPackedRange},
		{name: "bad end", raw: model.AvailabilitySlot{Day: "Monday", StartTime: "15:00", EndTime: "6:00 PM"}, wantErr: ErrInvalidTime},
		{name: "empty end", raw: model.AvailabilitySlot{Day: "Monday", StartTime: "15:00"}, wantErr: ErrInvalidTime},
		{name: "unknown day", raw: model.AvailabilitySlot{Day: "Someday", StartTime: "15:00", EndTime: "16:00"}, wantErr: ErrUnknownDay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := ParseSlot(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, time.Monday, slot.Day.Weekday())
			assert.Equal(t, TimeOfDay{Hour: 15}, slot.Start)
			assert.Equal(t, TimeOfDay{Hour: 16}, slot.End)
		})
	}
}

func TestSlotOn(t *testing.T) {
	slot, err := ParseSlot(model.AvailabilitySlot{Day: "Monday", StartTime: "15:00", EndTime: "16:30"})
	require.NoError(t, err)

	day := time.Date(2024, 6, 3, 7, 45, 12, 0, time.UTC)
	require.True(t, slot.Matches(day))
	assert.False(t, slot.Matches(day.AddDate(0, 0, 1)))

	start, end := slot.On(day)
	assert.Equal(t, time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 3, 16, 30, 0, 0, time.UTC), end)
}

func TestParseSlotKeepsNonPositiveRanges(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
	}{
		{name: "ends at midnight", start: "23:00", end: "00:00"},
		{name: "end before start", start: "16:00", end: "15:00"},
		{name: "zero length", start: "15:00", end: "15:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := ParseSlot(model.AvailabilitySlot{Day: "Monday", StartTime: tt.start, EndTime: tt.end})
			require.NoError(t, err)
			assert.ErrorIs(t, slot.CheckRange(), ErrEmptyRange)
		})
	}

	slot, err := ParseSlot(model.AvailabilitySlot{Day: "Monday", StartTime: "15:00", EndTime: "16:00"})
	require.NoError(t, err)
	assert.NoError(t, slot.CheckRange())
}
