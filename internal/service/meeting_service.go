package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MeetingInput - данные новой встречи
type MeetingInput struct {
	Name        string `json:"name" validate:"notblank,max=200"`
	Link        string `json:"link" validate:"required,url"`
	MeetingCode string `json:"meetingCode" validate:"max=100"`
	Password    string `json:"password" validate:"max=100"`
}

type MeetingService struct {
	meetings MeetingStore
	logger   *zap.Logger
}

func NewMeetingService(meetings MeetingStore, logger *zap.Logger) *MeetingService {
	return &MeetingService{
		meetings: meetings,
		logger:   logger,
	}
}

func (s *MeetingService) Create(ctx context.Context, in MeetingInput) (*model.Meeting, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	meeting := &model.Meeting{
		Name:        strings.TrimSpace(in.Name),
		Link:        strings.TrimSpace(in.Link),
		MeetingCode: in.MeetingCode,
		Password:    in.Password,
	}
	if err := s.meetings.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("create meeting: %w", err)
	}

	s.logger.Info("Meeting created",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("name", meeting.Name))

	return meeting, nil
}

func (s *MeetingService) GetByID(ctx context.Context, id uuid.UUID) (*model.Meeting, error) {
	return s.meetings.GetByID(ctx, id)
}

func (s *MeetingService) List(ctx context.Context) ([]*model.Meeting, error) {
	return s.meetings.List(ctx)
}

func (s *MeetingService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.meetings.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMeetingNotFound
	}
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}

	s.logger.Info("Meeting deleted", zap.String("meeting_id", id.String()))
	return nil
}
