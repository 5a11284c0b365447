package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/qmikke-api/internal/repository/dao"
)

type TotalizeDAO interface {
	CountStampsBySpot(ctx context.Context, eventID uint) ([]dao.SpotCount, error)
	FindStampTimes(ctx context.Context, eventID uint) ([]dao.SpotStampTime, error)
	CountGoals(ctx context.Context, eventID uint) (int64, error)
	FindGoalTimes(ctx context.Context, eventID uint) ([]time.Time, error)
}

type TotalizeRepository struct {
	dao TotalizeDAO
}

func NewTotalizeRepository(dao TotalizeDAO) *TotalizeRepository {
	return &TotalizeRepository{
		dao: dao,
	}
}

func (r *TotalizeRepository) CountStampsBySpot(ctx context.Context, eventID uint) (map[uint]int64, error) {
	counts, err := r.dao.CountStampsBySpot(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountStampsBySpot -> %w", err)
	}

	out := make(map[uint]int64, len(counts))
	for _, c := range counts {
		out[c.SpotID] = c.Count
	}

	return out, nil
}

func (r *TotalizeRepository) FindStampTimesBySpot(ctx context.Context, eventID uint) (map[uint][]time.Time, error) {
	times, err := r.dao.FindStampTimes(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindStampTimes -> %w", err)
	}

	out := make(map[uint][]time.Time)
	for _, t := range times {
		out[t.SpotID] = append(out[t.SpotID], t.StampedAt)
	}

	return out, nil
}

func (r *TotalizeRepository) CountGoals(ctx context.Context, eventID uint) (int64, error) {
	count, err := r.dao.CountGoals(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountGoals -> %w", err)
	}

	return count, nil
}

func (r *TotalizeRepository) FindGoalTimes(ctx context.Context, eventID uint) ([]time.Time, error) {
	times, err := r.dao.FindGoalTimes(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindGoalTimes -> %w", err)
	}

	return times, nil
}
