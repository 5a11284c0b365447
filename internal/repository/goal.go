package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/repository/dao"
)

var ErrGoalNotFound = dao.ErrGoalNotFound

type GoalDAO interface {
	FindBySession(ctx context.Context, eventID, sessionID uint) (dao.Goal, error)
	FindByCode(ctx context.Context, eventID uint, code string) (dao.Goal, error)
	InsertIfAbsent(ctx context.Context, goal dao.Goal) (bool, error)
	MarkGoaled(ctx context.Context, eventID, sessionID uint, at time.Time) (bool, error)
}

type GoalRepository struct {
	dao GoalDAO
}

func NewGoalRepository(dao GoalDAO) *GoalRepository {
	return &GoalRepository{
		dao: dao,
	}
}

func (r *GoalRepository) FindBySession(ctx context.Context, eventID, sessionID uint) (domain.Goal, error) {
	found, err := r.dao.FindBySession(ctx, eventID, sessionID)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("r.dao.FindBySession -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *GoalRepository) FindByCode(ctx context.Context, eventID uint, code string) (domain.Goal, error) {
	found, err := r.dao.FindByCode(ctx, eventID, code)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("r.dao.FindByCode -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *GoalRepository) CreateIfAbsent(ctx context.Context, goal domain.Goal) (bool, error) {
	inserted, err := r.dao.InsertIfAbsent(ctx, dao.Goal{
		EventID:         goal.EventID,
		SessionID:       goal.SessionID,
		AchievementCode: goal.AchievementCode,
		GoaledAt:        goal.GoaledAt,
	})
	if err != nil {
		return false, fmt.Errorf("r.dao.InsertIfAbsent -> %w", err)
	}

	return inserted, nil
}

func (r *GoalRepository) MarkGoaled(ctx context.Context, eventID, sessionID uint, at time.Time) (bool, error) {
	changed, err := r.dao.MarkGoaled(ctx, eventID, sessionID, at)
	if err != nil {
		return false, fmt.Errorf("r.dao.MarkGoaled -> %w", err)
	}

	return changed, nil
}

func (r *GoalRepository) daoToDomain(g dao.Goal) domain.Goal {
	return domain.Goal{
		ID:              g.ID,
		EventID:         g.EventID,
		SessionID:       g.SessionID,
		AchievementCode: g.AchievementCode,
		GoaledAt:        g.GoaledAt,
		CreatedAt:       g.CreatedAt,
	}
}
