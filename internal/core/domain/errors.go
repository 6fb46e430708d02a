package domain

import "errors"

// Sentinel errors returned by services and repositories. The HTTP layer maps
// each of these to a deterministic status code in one place.
var (
	ErrUnauthenticated  = errors.New("authentication required")
	ErrForbidden        = errors.New("access forbidden")
	ErrBadStatsKey      = errors.New("invalid stats api key")
	ErrUserNotFound     = errors.New("user not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidCategory  = errors.New("invalid feedback category")
	ErrInvalidStatus    = errors.New("invalid feedback status")
	ErrEmptyMessage     = errors.New("message cannot be empty")
	ErrEmptyUpdate      = errors.New("nothing to update")
)
