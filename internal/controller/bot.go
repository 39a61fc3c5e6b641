package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/handlers"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/state"
	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Брошенные диалоги удаляются из памяти через stateIdleTTL
const (
	stateIdleTTL         = 30 * time.Minute
	stateCleanupInterval = 5 * time.Minute
)

// Services - сервисы, которые использует бот
type Services struct {
	Profiles      *service.ProfileService
	Enrollments   *service.EnrollmentService
	Sessions      *service.SessionService
	Meetings      *service.MeetingService
	Notifications *service.NotificationService
}

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	stateManager    *state.Manager
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	services Services,
	location *time.Location,
	logger *zap.Logger,
) *BotController {
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		handlers.Services{
			Profiles:      services.Profiles,
			Enrollments:   services.Enrollments,
			Sessions:      services.Sessions,
			Meetings:      services.Meetings,
			Notifications: services.Notifications,
		},
		stateManager,
		location,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		callbacks.Services{
			Profiles:      services.Profiles,
			Enrollments:   services.Enrollments,
			Sessions:      services.Sessions,
			Notifications: services.Notifications,
		},
		state.NewAdapter(stateManager),
		location,
		logger,
		cmdHandlers.HandleMySessions,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		stateManager:    stateManager,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mysessions", bot.MatchTypeExact, c.handlers.HandleMySessions)

	// Команды администратора
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypeExact, c.handlers.HandleWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/generate", bot.MatchTypePrefix, c.handlers.HandleGenerate)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/sessions", bot.MatchTypeExact, c.handlers.HandleSessions)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/enrollments", bot.MatchTypeExact, c.handlers.HandleEnrollments)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/meetings", bot.MatchTypeExact, c.handlers.HandleMeetings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/notifications", bot.MatchTypeExact, c.handlers.HandleNotifications)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Link your account"},
		{Command: "mysessions", Description: "📅 My upcoming sessions"},
		{Command: "help", Description: "❓ Help"},
		{Command: "cancel", Description: "❌ Cancel the current dialog"},
		{Command: "week", Description: "🗓 Week overview (admin)"},
		{Command: "generate", Description: "⚙️ Generate sessions (admin)"},
		{Command: "sessions", Description: "📋 Sessions this week (admin)"},
		{Command: "enrollments", Description: "📚 Enrollments (admin)"},
		{Command: "meetings", Description: "🎥 Meetings (admin)"},
		{Command: "notifications", Description: "🔔 Reschedule requests (admin)"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	go c.cleanupStates(ctx)
	c.bot.Start(ctx)
	return nil
}

func (c *BotController) cleanupStates(ctx context.Context) {
	ticker := time.NewTicker(stateCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.stateManager.Cleanup(stateIdleTTL); n > 0 {
				c.logger.Debug("Dropped idle dialogs", zap.Int("count", n))
			}
		}
	}
}
