package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Goal struct {
	ID uint `gorm:"primaryKey"`

	EventID         uint       `gorm:"not null;uniqueIndex:ux_goals_event_session,priority:1;uniqueIndex:ux_goals_event_code,priority:1"`
	SessionID       uint       `gorm:"not null;uniqueIndex:ux_goals_event_session,priority:2"`
	AchievementCode string     `gorm:"size:8;not null;uniqueIndex:ux_goals_event_code,priority:2"`
	GoaledAt        *time.Time `gorm:"index"`

	CreatedAt time.Time `gorm:"not null"`
}

type GoalDAO struct {
	db *gorm.DB
}

func NewGoalDAO(db *gorm.DB) *GoalDAO {
	return &GoalDAO{
		db: db,
	}
}

func (d *GoalDAO) FindBySession(ctx context.Context, eventID, sessionID uint) (Goal, error) {
	var goal Goal

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND session_id = ?", eventID, sessionID).
		First(&goal)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Goal{}, ErrGoalNotFound
		}

		return Goal{}, result.Error
	}

	return goal, nil
}

func (d *GoalDAO) FindByCode(ctx context.Context, eventID uint, code string) (Goal, error) {
	var goal Goal

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND achievement_code = ?", eventID, code).
		First(&goal)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Goal{}, ErrGoalNotFound
		}

		return Goal{}, result.Error
	}

	return goal, nil
}

// InsertIfAbsent reports false when a row for the session, or a row with the same code
// in the event, already exists.
func (d *GoalDAO) InsertIfAbsent(ctx context.Context, goal Goal) (bool, error) {
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&goal)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// MarkGoaled sets goaled_at only if it is still null. It reports whether this call set it.
func (d *GoalDAO) MarkGoaled(ctx context.Context, eventID, sessionID uint, at time.Time) (bool, error) {
	result := d.db.WithContext(ctx).
		Model(&Goal{}).
		Where("event_id = ? AND session_id = ? AND goaled_at IS NULL", eventID, sessionID).
		Update("goaled_at", at)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}
