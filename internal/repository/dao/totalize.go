package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type SpotCount struct {
	SpotID uint
	Count  int64
}

type SpotStampTime struct {
	SpotID    uint
	StampedAt time.Time
}

type TotalizeDAO struct {
	db *gorm.DB
}

func NewTotalizeDAO(db *gorm.DB) *TotalizeDAO {
	return &TotalizeDAO{
		db: db,
	}
}

func (d *TotalizeDAO) CountStampsBySpot(ctx context.Context, eventID uint) ([]SpotCount, error) {
	var counts []SpotCount

	result := d.db.WithContext(ctx).
		Model(&Stamp{}).
		Select("spot_id, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Group("spot_id").
		Order("spot_id").
		Scan(&counts)
	if result.Error != nil {
		return nil, result.Error
	}

	return counts, nil
}

func (d *TotalizeDAO) FindStampTimes(ctx context.Context, eventID uint) ([]SpotStampTime, error) {
	var times []SpotStampTime

	result := d.db.WithContext(ctx).
		Model(&Stamp{}).
		Select("spot_id, stamped_at").
		Where("event_id = ?", eventID).
		Order("stamped_at").
		Scan(&times)
	if result.Error != nil {
		return nil, result.Error
	}

	return times, nil
}

func (d *TotalizeDAO) CountGoals(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Goal{}).
		Where("event_id = ? AND goaled_at IS NOT NULL", eventID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *TotalizeDAO) FindGoalTimes(ctx context.Context, eventID uint) ([]time.Time, error) {
	var goals []Goal

	result := d.db.WithContext(ctx).
		Select("goaled_at").
		Where("event_id = ? AND goaled_at IS NOT NULL", eventID).
		Order("goaled_at").
		Find(&goals)
	if result.Error != nil {
		return nil, result.Error
	}

	times := make([]time.Time, 0, len(goals))
	for _, g := range goals {
		times = append(times, *g.GoaledAt)
	}

	return times, nil
}
