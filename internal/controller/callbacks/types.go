package callbacks

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// Services - сервисы, нужные обработчикам callback
type Services struct {
	Profiles      *service.ProfileService
	Enrollments   *service.EnrollmentService
	Sessions      *service.SessionService
	Notifications *service.NotificationService
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	services Services,
	stateManager callbacktypes.StateManager,
	location *time.Location,
	logger *zap.Logger,
	handleMySessions func(ctx context.Context, b *bot.Bot, update *models.Update),
) *Handler {
	inner := &callbacktypes.Handler{
		ProfileService:      services.Profiles,
		EnrollmentService:   services.Enrollments,
		SessionService:      services.Sessions,
		NotificationService: services.Notifications,
		StateManager:        stateManager,
		Location:            location,
		Logger:              logger,
		HandleMySessions:    handleMySessions,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery
	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
