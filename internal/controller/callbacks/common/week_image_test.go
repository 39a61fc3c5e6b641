package common

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWeekImage(t *testing.T) {
	start := time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC)
	sessions := []*model.Session{
		{Date: start, EndsAt: start.Add(time.Hour), Status: model.SessionStatusActive,
			Student: &model.Profile{FirstName: "Ada"}, Tutor: &model.Profile{FirstName: "Alan", LastName: "Turing"}},
		{Date: start.AddDate(0, 0, 3), EndsAt: start.AddDate(0, 0, 3).Add(90 * time.Minute), Status: model.SessionStatusRescheduled},
	}

	data, err := GenerateWeekImage(start, sessions, WeekImageOptions{
		Location: time.UTC,
		Now:      time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())
}

func TestGenerateWeekImageEmptyWeek(t *testing.T) {
	data, err := GenerateWeekImage(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), nil, WeekImageOptions{Location: time.UTC})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestCalculateHourRange(t *testing.T) {
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	sessions := []*model.Session{
		{Date: day.Add(9 * time.Hour), EndsAt: day.Add(10 * time.Hour)},
		{Date: day.Add(17 * time.Hour), EndsAt: day.Add(18*time.Hour + 30*time.Minute)},
	}

	hours := calculateHourRange(sessions, time.UTC)
	assert.Equal(t, 8, hours.start)
	assert.Equal(t, 20, hours.end)
	assert.Equal(t, 12, hours.total)

	empty := calculateHourRange(nil, time.UTC)
	assert.Equal(t, defaultMinHour-hourPaddingTop, empty.start)
	assert.Equal(t, defaultMaxHour+hourPaddingBot, empty.end)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
