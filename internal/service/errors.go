package service

import (
	"errors"

	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/repository/cache"
)

var (
	// ErrNotFound covers unknown events and spots as well as wrong tokens.
	// Callers cannot tell which one it was.
	ErrNotFound = errors.New("not found")

	ErrEventNotStarted    = domain.ErrEventNotStarted
	ErrEventEnded         = domain.ErrEventEnded
	ErrSessionBlocked     = errors.New("session is blocked")
	ErrInvalidSessionKey  = errors.New("invalid session key")
	ErrRequirementsNotMet = errors.New("missing required stamps")
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique achievement code")
	ErrTotalizeDenied     = errors.New("wrong totalize token or password")
	ErrInvalidEvent       = errors.New("invalid event")
	ErrDraftNotFound      = cache.ErrDraftNotFound
)
