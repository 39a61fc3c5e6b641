package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/lock"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sessionFixture struct {
	svc         *SessionService
	sessions    *memSessions
	enrollments *EnrollmentService
	student     *model.Profile
	tutor       *model.Profile
	locker      *lock.Local
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	student := newTestProfile(model.ProfileRoleStudent, "student@example.com")
	tutor := newTestProfile(model.ProfileRoleTutor, "tutor@example.com")
	profiles := NewProfileService(newMemProfiles(student, tutor), zap.NewNop())
	enrollments := NewEnrollmentService(newMemEnrollments(), profiles, newMemMeetings(), zap.NewNop())
	sessions := newMemSessions()
	locker := lock.NewLocal()

	_, err := enrollments.Create(context.Background(), EnrollmentInput{
		StudentID: student.ID,
		TutorID:   tutor.ID,
		Summary:   "Algebra",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Availability: []model.AvailabilitySlot{
			{Day: "Monday", StartTime: "15:00", EndTime: "16:00"},
			{Day: "Thursday", StartTime: "10:00", EndTime: "11:30"},
		},
	})
	require.NoError(t, err)

	return &sessionFixture{
		svc:         NewSessionService(sessions, enrollments, profiles, locker, time.UTC, zap.NewNop()),
		sessions:    sessions,
		enrollments: enrollments,
		student:     student,
		tutor:       tutor,
		locker:      locker,
	}
}

func TestGenerateWeek(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	// среда внутри недели 2024-06-03 - 2024-06-09
	result, err := f.svc.GenerateWeek(ctx, time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), result.From)
	assert.Equal(t, time.Date(2024, 6, 9, 23, 59, 59, 0, time.UTC), result.To)
	require.Len(t, result.Sessions, 2)
	assert.Equal(t, 2, result.Stats.Created)

	monday := result.Sessions[0]
	assert.Equal(t, time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC), monday.Date.UTC())
	assert.Equal(t, time.Date(2024, 6, 3, 16, 0, 0, 0, time.UTC), monday.EndsAt.UTC())
	assert.Equal(t, model.SessionStatusActive, monday.Status)

	// повторный прогон ничего не создаёт
	again, err := f.svc.GenerateWeek(ctx, time.Date(2024, 6, 9, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, again.Sessions)
	assert.Equal(t, 2, again.Stats.Duplicates)
	assert.Equal(t, 2, f.sessions.count())
}

func TestGenerateSessionsRejectsConcurrentRun(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	unlock, err := f.locker.TryLock(ctx, generationLockKey)
	require.NoError(t, err)

	_, err = f.svc.GenerateWeek(ctx, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrGenerationRunning)
	assert.Zero(t, f.sessions.count())

	require.NoError(t, unlock(ctx))

	_, err = f.svc.GenerateWeek(ctx, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, f.sessions.count())
}

func TestGenerateSessionsParallelNoDuplicates(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.svc.GenerateSessions(ctx, from, to)
		}()
	}
	wg.Wait()

	// в июне 2024 с 3-го числа: 4 понедельника и 4 четверга
	_, err := f.svc.GenerateSessions(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, 8, f.sessions.count())
}

func TestListForProfileHydrates(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.GenerateWeek(ctx, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	sessions, err := f.svc.ListForProfile(ctx, f.tutor.ID, time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, time.Thursday, sessions[0].Date.Weekday())
	require.NotNil(t, sessions[0].Student)
	assert.Equal(t, f.student.ID, sessions[0].Student.ID)
	assert.Equal(t, f.tutor.ID, sessions[0].Tutor.ID)
}

func TestReschedule(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	result, err := f.svc.GenerateWeek(ctx, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	monday, thursday := result.Sessions[0], result.Sessions[1]

	moved, err := f.svc.Reschedule(ctx, monday.ID, time.Date(2024, 6, 4, 17, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusRescheduled, moved.Status)
	assert.Equal(t, time.Date(2024, 6, 4, 18, 0, 0, 0, time.UTC), moved.EndsAt.UTC())

	stored, err := f.svc.GetByID(ctx, monday.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 4, 17, 0, 0, 0, time.UTC), stored.Date.UTC())

	// перенос на время другого занятия той же пары запрещён
	_, err = f.svc.Reschedule(ctx, monday.ID, thursday.Date)
	assert.ErrorIs(t, err, ErrSessionConflict)

	_, err = f.svc.Reschedule(ctx, uuid.New(), thursday.Date)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// старое время освободилось, повторная генерация снова его занимает
	again, err := f.svc.GenerateWeek(ctx, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, again.Sessions, 1)
}

func TestRescheduleStoresMinuteAlignedDate(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	result, err := f.svc.GenerateWeek(ctx, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	monday, thursday := result.Sessions[0], result.Sessions[1]

	// хранилище сравнивает даты точно, секунды не должны обходить уникальность
	_, err = f.svc.Reschedule(ctx, monday.ID, thursday.Date.Add(30*time.Second))
	assert.ErrorIs(t, err, ErrSessionConflict)

	moved, err := f.svc.Reschedule(ctx, monday.ID, time.Date(2024, 6, 4, 17, 0, 45, 500, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 4, 17, 0, 0, 0, time.UTC), moved.Date.UTC())
	assert.Equal(t, time.Date(2024, 6, 4, 18, 0, 0, 0, time.UTC), moved.EndsAt.UTC())

	stored, err := f.svc.GetByID(ctx, monday.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 4, 17, 0, 0, 0, time.UTC), stored.Date.UTC())
}

func TestSessionStatusSummaryDelete(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	result, err := f.svc.GenerateWeek(ctx, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	id := result.Sessions[0].ID

	require.NoError(t, f.svc.SetStatus(ctx, id, model.SessionStatusComplete))
	assert.Error(t, f.svc.SetStatus(ctx, id, "Cancelled"))
	require.NoError(t, f.svc.UpdateSummary(ctx, id, "Quadratic equations"))

	got, err := f.svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusComplete, got.Status)
	assert.Equal(t, "Quadratic equations", got.Summary)

	require.NoError(t, f.svc.Delete(ctx, id))
	assert.ErrorIs(t, f.svc.Delete(ctx, id), ErrSessionNotFound)
	assert.ErrorIs(t, f.svc.UpdateSummary(ctx, id, "x"), ErrSessionNotFound)
}
