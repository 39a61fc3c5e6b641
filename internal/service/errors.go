package service

import "errors"

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrEmailTaken           = errors.New("a user with this email already exists")
	ErrProfileInactive      = errors.New("profile is not active")
	ErrTelegramAlreadyBound = errors.New("profile is already linked to another Telegram account")
	ErrEnrollmentNotFound   = errors.New("enrollment not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrMeetingNotFound      = errors.New("meeting not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrSessionConflict      = errors.New("a session for this student and tutor already exists at that time")
	ErrNotParticipant       = errors.New("only the session's student or tutor can request a reschedule")
	ErrDateInPast           = errors.New("suggested date must be in the future")
	ErrAlreadyResolved      = errors.New("notification is already resolved")
	ErrGenerationRunning    = errors.New("session generation is already running")
)
