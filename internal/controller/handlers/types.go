package handlers

import (
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/state"
	"github.com/Freeeeeet/tutoring_bot/internal/service"
	"go.uber.org/zap"
)

// Services - сервисы, нужные обработчикам команд
type Services struct {
	Profiles      *service.ProfileService
	Enrollments   *service.EnrollmentService
	Sessions      *service.SessionService
	Meetings      *service.MeetingService
	Notifications *service.NotificationService
}

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	profileService      *service.ProfileService
	enrollmentService   *service.EnrollmentService
	sessionService      *service.SessionService
	meetingService      *service.MeetingService
	notificationService *service.NotificationService
	stateManager        *state.Manager
	location            *time.Location
	logger              *zap.Logger

	// Зависимости для экранов, общих с callback handlers
	screens *callbacktypes.Handler
	now     func() time.Time
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	services Services,
	stateManager *state.Manager,
	location *time.Location,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		profileService:      services.Profiles,
		enrollmentService:   services.Enrollments,
		sessionService:      services.Sessions,
		meetingService:      services.Meetings,
		notificationService: services.Notifications,
		stateManager:        stateManager,
		location:            location,
		logger:              logger,
		screens: &callbacktypes.Handler{
			ProfileService:      services.Profiles,
			EnrollmentService:   services.Enrollments,
			SessionService:      services.Sessions,
			NotificationService: services.Notifications,
			StateManager:        state.NewAdapter(stateManager),
			Location:            location,
			Logger:              logger,
		},
		now: time.Now,
	}
}
