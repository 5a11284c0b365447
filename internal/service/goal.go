package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/metrics"
	"github.com/vietanh2810/qmikke-api/internal/pkg/cryptoutil"
	"github.com/vietanh2810/qmikke-api/internal/repository"
)

type GoalRepository interface {
	FindBySession(ctx context.Context, eventID, sessionID uint) (domain.Goal, error)
	CreateIfAbsent(ctx context.Context, goal domain.Goal) (bool, error)
	MarkGoaled(ctx context.Context, eventID, sessionID uint, at time.Time) (bool, error)
}

// GoalEngine owns the per-session goal row. A session gets one achievement code for life,
// and a goaled session never returns to pending.
type GoalEngine struct {
	repo     GoalRepository
	attempts int
	newCode  func() (string, error)
}

func NewGoalEngine(repo GoalRepository, attempts int) *GoalEngine {
	if attempts < 1 {
		attempts = 1
	}

	return &GoalEngine{
		repo:     repo,
		attempts: attempts,
		newCode:  cryptoutil.NewAchievementCode,
	}
}

// Find returns the goal of the session, or repository.ErrGoalNotFound.
func (e *GoalEngine) Find(ctx context.Context, eventID, sessionID uint) (domain.Goal, error) {
	goal, err := e.repo.FindBySession(ctx, eventID, sessionID)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("e.repo.FindBySession -> %w", err)
	}

	return goal, nil
}

func (e *GoalEngine) IsGoaled(ctx context.Context, eventID, sessionID uint) (bool, error) {
	goal, err := e.repo.FindBySession(ctx, eventID, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("e.repo.FindBySession -> %w", err)
	}

	return goal.IsGoaled(), nil
}

// EnsureAchievementCode returns the session's code, creating a pending goal row if needed.
// It does not look at requirements.
func (e *GoalEngine) EnsureAchievementCode(ctx context.Context, eventID, sessionID uint) (string, error) {
	goal, _, err := e.ensure(ctx, eventID, sessionID, nil)
	if err != nil {
		return "", err
	}

	return goal.AchievementCode, nil
}

// EnsureGoaled finalizes the session at goalTime unless it already is. The boolean reports
// whether this call performed the transition. An existing code is always kept.
func (e *GoalEngine) EnsureGoaled(ctx context.Context, eventID, sessionID uint, goalTime time.Time) (domain.Goal, bool, error) {
	goal, inserted, err := e.ensure(ctx, eventID, sessionID, &goalTime)
	if err != nil {
		return domain.Goal{}, false, err
	}
	if inserted {
		metrics.ObserveGoal()
		return goal, true, nil
	}
	if goal.IsGoaled() {
		return goal, false, nil
	}

	changed, err := e.repo.MarkGoaled(ctx, eventID, sessionID, goalTime)
	if err != nil {
		return domain.Goal{}, false, fmt.Errorf("e.repo.MarkGoaled -> %w", err)
	}

	goal, err = e.repo.FindBySession(ctx, eventID, sessionID)
	if err != nil {
		return domain.Goal{}, false, fmt.Errorf("e.repo.FindBySession -> %w", err)
	}
	if changed {
		metrics.ObserveGoal()
	}

	return goal, changed, nil
}

// ensure returns the session's goal row, inserting one with a fresh code if absent.
// A skipped insert is either a concurrent insert for the same session, found on the next read,
// or a code already used in the event, which is resampled.
func (e *GoalEngine) ensure(ctx context.Context, eventID, sessionID uint, goaledAt *time.Time) (domain.Goal, bool, error) {
	for i := 0; i < e.attempts; i++ {
		goal, err := e.repo.FindBySession(ctx, eventID, sessionID)
		if err == nil {
			return goal, false, nil
		}
		if !errors.Is(err, repository.ErrGoalNotFound) {
			return domain.Goal{}, false, fmt.Errorf("e.repo.FindBySession -> %w", err)
		}

		code, err := e.newCode()
		if err != nil {
			return domain.Goal{}, false, fmt.Errorf("e.newCode -> %w", err)
		}

		inserted, err := e.repo.CreateIfAbsent(ctx, domain.Goal{
			EventID:         eventID,
			SessionID:       sessionID,
			AchievementCode: code,
			GoaledAt:        goaledAt,
		})
		if err != nil {
			return domain.Goal{}, false, fmt.Errorf("e.repo.CreateIfAbsent -> %w", err)
		}
		if !inserted {
			continue
		}

		goal, err = e.repo.FindBySession(ctx, eventID, sessionID)
		if err != nil {
			return domain.Goal{}, false, fmt.Errorf("e.repo.FindBySession -> %w", err)
		}

		return goal, true, nil
	}

	// A concurrent insert may have landed on the last attempt.
	goal, err := e.repo.FindBySession(ctx, eventID, sessionID)
	if err == nil {
		return goal, false, nil
	}
	if !errors.Is(err, repository.ErrGoalNotFound) {
		return domain.Goal{}, false, fmt.Errorf("e.repo.FindBySession -> %w", err)
	}

	return domain.Goal{}, false, ErrCodeSpaceExhausted
}
