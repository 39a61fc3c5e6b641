package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/tutoring_bot/internal/app"
	"github.com/Freeeeeet/tutoring_bot/internal/config"
	"github.com/Freeeeeet/tutoring_bot/internal/controller"
	"github.com/Freeeeeet/tutoring_bot/internal/lock"
	"github.com/Freeeeeet/tutoring_bot/internal/repository"
	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting tutoring bot",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", cfg.Location.String()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := app.OpenPool(ctx, cfg.GetDBDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	// Репозитории
	profileRepo := repository.NewProfileRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool, logger)
	sessionRepo := repository.NewSessionRepository(pool)
	meetingRepo := repository.NewMeetingRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	// Блокировка генерации: Redis, если настроен, иначе в памяти процесса
	var locker lock.Locker
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		locker = lock.NewRedis(rdb, cfg.RedisLockTTL, "tutoring")
		logger.Info("Generation lock: redis", zap.String("addr", cfg.RedisAddr))
	} else {
		locker = lock.NewLocal()
		logger.Info("Generation lock: in-process")
	}

	// Сервисы
	profileService := service.NewProfileService(profileRepo, logger)
	meetingService := service.NewMeetingService(meetingRepo, logger)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, profileService, meetingRepo, logger)
	sessionService := service.NewSessionService(sessionRepo, enrollmentService, profileService, locker, cfg.Location, logger)
	notificationService := service.NewNotificationService(notificationRepo, sessionService, logger)

	if err := profileService.EnsureAdmins(ctx, cfg.AdminTelegramIDs); err != nil {
		return err
	}

	scheduler := app.NewScheduler(sessionService, cfg.GenerationInterval, cfg.GenerationWeeksAhead, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	b, err := bot.New(cfg.TelegramToken, bot.WithErrorsHandler(func(err error) {
		logger.Error("Telegram bot error", zap.Error(err))
	}))
	if err != nil {
		return err
	}

	botController := controller.NewBotController(b, controller.Services{
		Profiles:      profileService,
		Enrollments:   enrollmentService,
		Sessions:      sessionService,
		Meetings:      meetingService,
		Notifications: notificationService,
	}, cfg.Location, logger)

	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично для работы
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	return botController.Start(ctx)
}
