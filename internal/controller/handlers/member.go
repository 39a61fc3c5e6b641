package handlers

import (
	"context"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/member"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleMySessions обрабатывает команду /mysessions (и кнопку возврата к занятиям)
func (h *Handlers) HandleMySessions(ctx context.Context, b *bot.Bot, update *models.Update) {
	profile, chatID, ok := h.requireProfile(ctx, b, update)
	if !ok {
		return
	}

	text, kb, err := member.MySessionsScreen(ctx, h.screens, profile, h.now().In(h.location), UpcomingSessionsDays)
	if err != nil {
		h.logger.Error("Failed to list sessions for profile",
			zap.String("profile_id", profile.ID.String()),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, chatID, text, kb)
}
