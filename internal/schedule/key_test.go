package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKey(t *testing.T) {
	student := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	tutor := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	base := time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC)
	key := BuildKey(student, tutor, base)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111-22222222-2222-2222-2222-222222222222-2024-06-03-15:00", key)

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// тот же момент в другой локации и с секундами
	assert.Equal(t, key, BuildKey(student, tutor, base.In(ny)))
	assert.Equal(t, key, BuildKey(student, tutor, base.Add(42*time.Second+500*time.Millisecond)))

	assert.NotEqual(t, key, BuildKey(student, tutor, base.Add(time.Minute)))
	assert.NotEqual(t, key, BuildKey(tutor, student, base))
}

func TestMinuteStart(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	exact := time.Date(2024, 6, 3, 15, 0, 0, 0, ny)
	assert.True(t, exact.Equal(MinuteStart(exact)))
	assert.True(t, exact.Equal(MinuteStart(exact.Add(59*time.Second+999*time.Millisecond))))
	assert.Equal(t, ny, MinuteStart(exact).Location())

	// обрезанное время даёт тот же ключ, что и исходное
	student, tutor := uuid.New(), uuid.New()
	raw := exact.Add(17 * time.Second)
	assert.Equal(t, BuildKey(student, tutor, raw), BuildKey(student, tutor, MinuteStart(raw)))
}

type refsLister struct {
	refs []model.SessionRef
	err  error
}

func (l refsLister) ListSessionRefs(context.Context) ([]model.SessionRef, error) {
	return l.refs, l.err
}

func TestLoadExistingKeys(t *testing.T) {
	student, tutor := uuid.New(), uuid.New()
	date := time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC)

	keys, err := LoadExistingKeys(context.Background(), refsLister{refs: []model.SessionRef{
		{StudentID: student, TutorID: tutor, Date: date},
		{StudentID: student, TutorID: tutor, Date: date.Add(30 * time.Second)},
		{StudentID: student, TutorID: tutor},
	}})
	require.NoError(t, err)
	assert.Len(t, keys, 1)
	assert.True(t, keys.Has(BuildKey(student, tutor, date)))

	_, err = LoadExistingKeys(context.Background(), refsLister{err: errors.New("connection refused")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
