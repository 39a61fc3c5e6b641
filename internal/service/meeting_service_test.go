package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMeetingService(t *testing.T) {
	svc := NewMeetingService(newMemMeetings(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, MeetingInput{Name: "Room", Link: "not a link"})
	assert.ErrorContains(t, err, "link must be a valid URL")

	meeting, err := svc.Create(ctx, MeetingInput{Name: " Room A ", Link: "https://meet.example.com/abc", MeetingCode: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "Room A", meeting.Name)

	got, err := svc.GetByID(ctx, meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.MeetingCode)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, meeting.ID))
	assert.ErrorIs(t, svc.Delete(ctx, meeting.ID), ErrMeetingNotFound)
}
