package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"go.uber.org/zap"
)

// WeekGenerator создаёт занятия за неделю, содержащую day
type WeekGenerator interface {
	GenerateWeek(ctx context.Context, day time.Time) (*service.GenerationResult, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	generator  WeekGenerator
	interval   time.Duration
	weeksAhead int
	logger     *zap.Logger
	now        func() time.Time

	stopChan chan struct{}
	stopOnce sync.Once
	started  bool
	done     chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(generator WeekGenerator, interval time.Duration, weeksAhead int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		generator:  generator,
		interval:   interval,
		weeksAhead: weeksAhead,
		logger:     logger,
		now:        time.Now,
		stopChan:   make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Duration("interval", s.interval),
		zap.Int("weeks_ahead", s.weeksAhead))

	s.started = true
	go s.runGenerationTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт завершения текущего прогона
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	if s.started {
		<-s.done
	}
}

func (s *Scheduler) runGenerationTask(ctx context.Context) {
	defer close(s.done)

	// Первый запуск сразу при старте
	s.generate(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.generate(ctx)
		case <-s.stopChan:
			s.logger.Info("Session generation task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Session generation task cancelled")
			return
		}
	}
}

// generate создаёт занятия на текущую неделю и weeksAhead следующих.
// Ошибки только логируются.
func (s *Scheduler) generate(ctx context.Context) {
	s.logger.Info("Starting automatic session generation")

	today := s.now()
	total := 0
	for week := 0; week <= s.weeksAhead; week++ {
		if ctx.Err() != nil {
			return
		}

		result, err := s.generator.GenerateWeek(ctx, today.AddDate(0, 0, 7*week))
		if errors.Is(err, service.ErrGenerationRunning) {
			s.logger.Info("Session generation already running, skipping", zap.Int("week", week))
			continue
		}
		if err != nil {
			s.logger.Error("Failed to generate sessions", zap.Int("week", week), zap.Error(err))
			continue
		}
		total += len(result.Sessions)
	}

	s.logger.Info("Automatic session generation completed", zap.Int("created", total))
}
