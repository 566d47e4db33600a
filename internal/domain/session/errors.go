package session

import "errors"

var (
	ErrSessionNotFound        = errors.New("training session not found")
	ErrInvalidSessionDate     = errors.New("session date must be YYYY-MM-DD")
	ErrInvalidSessionTime     = errors.New("session time must be HH:MM")
	ErrInvalidStatus          = errors.New("status must be PLANNED, COMPLETED or CANCELLED")
	ErrTooManyAttendees       = errors.New("attendees exceed max_attendees")
	ErrSessionAlreadyCanceled = errors.New("session is already cancelled")
	ErrUnknownProgram         = errors.New("session references an unknown program")
)
