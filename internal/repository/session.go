package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/repository/dao"
)

var ErrSessionNotFound = dao.ErrSessionNotFound

type SessionDAO interface {
	Upsert(ctx context.Context, s dao.ParticipantSession) (dao.ParticipantSession, error)
	FindByID(ctx context.Context, id uint) (dao.ParticipantSession, error)
}

type SessionRepository struct {
	dao SessionDAO
}

func NewSessionRepository(dao SessionDAO) *SessionRepository {
	return &SessionRepository{
		dao: dao,
	}
}

func (r *SessionRepository) Upsert(ctx context.Context, s domain.Session) (domain.Session, error) {
	saved, err := r.dao.Upsert(ctx, dao.ParticipantSession{
		EventID:     s.EventID,
		SessionKey:  s.SessionKey,
		FirstSeenAt: s.FirstSeenAt,
		LastSeenAt:  s.LastSeenAt,
		UserAgent:   s.UserAgent,
		IPHash:      s.IPHash,
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return r.daoToDomain(saved), nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id uint) (domain.Session, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SessionRepository) daoToDomain(s dao.ParticipantSession) domain.Session {
	return domain.Session{
		ID:          s.ID,
		EventID:     s.EventID,
		SessionKey:  s.SessionKey,
		FirstSeenAt: s.FirstSeenAt,
		LastSeenAt:  s.LastSeenAt,
		UserAgent:   s.UserAgent,
		IPHash:      s.IPHash,
		IsBlocked:   s.IsBlocked,
	}
}
