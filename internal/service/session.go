package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vietanh2810/qmikke-api/internal/domain"
)

const maxSessionKeyLength = 64

type SessionRepository interface {
	Upsert(ctx context.Context, s domain.Session) (domain.Session, error)
}

// SessionRegistry resolves a participant's session key to a durable session row.
type SessionRegistry struct {
	repo SessionRepository
}

func NewSessionRegistry(repo SessionRepository) *SessionRegistry {
	return &SessionRegistry{
		repo: repo,
	}
}

// GetOrCreate returns the session for (eventID, visitor.SessionKey), creating it on first sight.
// Each call refreshes last-seen time and user agent; the blocked flag is never changed here.
func (r *SessionRegistry) GetOrCreate(ctx context.Context, eventID uint, visitor domain.Visitor, now time.Time) (domain.Session, error) {
	if visitor.SessionKey == "" || len(visitor.SessionKey) > maxSessionKeyLength {
		return domain.Session{}, ErrInvalidSessionKey
	}

	session, err := r.repo.Upsert(ctx, domain.Session{
		EventID:     eventID,
		SessionKey:  visitor.SessionKey,
		FirstSeenAt: now,
		LastSeenAt:  now,
		UserAgent:   truncate(visitor.UserAgent, 512),
		IPHash:      visitor.IPHash,
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.repo.Upsert -> %w", err)
	}

	return session, nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}

	return s[:n]
}
