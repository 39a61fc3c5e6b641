package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeGenerator struct {
	mu    sync.Mutex
	days  []time.Time
	errAt map[int]error
}

func (g *fakeGenerator) GenerateWeek(_ context.Context, day time.Time) (*service.GenerationResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	idx := len(g.days)
	g.days = append(g.days, day)
	if err := g.errAt[idx]; err != nil {
		return nil, err
	}
	return &service.GenerationResult{Sessions: []*model.Session{{}}}, nil
}

func (g *fakeGenerator) calls() []time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]time.Time(nil), g.days...)
}

func TestSchedulerGeneratesCurrentAndUpcomingWeeks(t *testing.T) {
	gen := &fakeGenerator{errAt: map[int]error{1: errors.New("db down")}}
	core, logs := observer.New(zapcore.InfoLevel)

	s := NewScheduler(gen, time.Hour, 2, zap.New(core))
	now := time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.generate(context.Background())

	calls := gen.calls()
	require.Len(t, calls, 3)
	assert.Equal(t, now, calls[0])
	assert.Equal(t, now.AddDate(0, 0, 7), calls[1])
	assert.Equal(t, now.AddDate(0, 0, 14), calls[2])

	// ошибка одной недели не останавливает остальные
	assert.Equal(t, 1, logs.FilterMessage("Failed to generate sessions").Len())
	done := logs.FilterMessage("Automatic session generation completed").All()
	require.Len(t, done, 1)
	assert.Equal(t, int64(2), done[0].ContextMap()["created"])
}

func TestSchedulerSkipsWhenAnotherRunHoldsLock(t *testing.T) {
	gen := &fakeGenerator{errAt: map[int]error{0: service.ErrGenerationRunning}}
	core, logs := observer.New(zapcore.InfoLevel)

	s := NewScheduler(gen, time.Hour, 0, zap.New(core))
	s.generate(context.Background())

	assert.Equal(t, 1, logs.FilterMessage("Session generation already running, skipping").Len())
	assert.Zero(t, logs.FilterMessage("Failed to generate sessions").Len())
}

func TestSchedulerStartStop(t *testing.T) {
	gen := &fakeGenerator{}
	s := NewScheduler(gen, 10*time.Millisecond, 0, zap.NewNop())

	s.Start(context.Background())
	require.Eventually(t, func() bool { return len(gen.calls()) >= 2 }, time.Second, 5*time.Millisecond)

	s.Stop()
	stopped := len(gen.calls())
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, len(gen.calls()))

	// повторный Stop безопасен
	s.Stop()
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	gen := &fakeGenerator{}
	s := NewScheduler(gen, time.Hour, 0, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	require.Eventually(t, func() bool { return len(gen.calls()) == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}
