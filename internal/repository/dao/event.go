package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title              string `gorm:"not null"`
	Status             int    `gorm:"not null;index"` // 0 draft, 1 active, 2 closed
	StartsAt           *time.Time
	EndsAt             *time.Time
	RequiredStampCount *int

	GoalTokenHash        string `gorm:"size:64;not null"`
	TotalizeTokenHash    string `gorm:"size:64;not null"`
	TotalizePasswordHash string `gorm:"size:64;not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Spot struct {
	ID uint `gorm:"primaryKey"`

	EventID     uint   `gorm:"not null;index:ix_spots_event_sort,priority:1"`
	Name        string `gorm:"not null"`
	Description string
	SortOrder   int    `gorm:"not null;index:ix_spots_event_sort,priority:2"`
	IsActive    bool   `gorm:"not null"`
	QRTokenHash string `gorm:"size:64;not null;uniqueIndex:ux_spots_qr_token_hash"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Reward struct {
	ID uint `gorm:"primaryKey"`

	EventID            uint   `gorm:"not null;index"`
	Title              string `gorm:"not null"`
	Description        string
	Kind               int `gorm:"not null"` // 1 required spots, 2 both, 3 stamp count
	RequiredStampCount *int
	IsActive           bool `gorm:"not null"`

	RequiredSpots []RewardRequiredSpot `gorm:"foreignKey:RewardID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// RewardRequiredSpot links a reward to one of the spots a participant must hold.
type RewardRequiredSpot struct {
	RewardID uint `gorm:"primaryKey;autoIncrement:false"`
	SpotID   uint `gorm:"primaryKey;autoIncrement:false;index"`
}

// EventGraph is an event with everything created alongside it.
// Required is parallel to Spots.
type EventGraph struct {
	Event    Event
	Spots    []Spot
	Required []bool
	Reward   Reward
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) InsertGraph(ctx context.Context, g EventGraph) (EventGraph, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&g.Event).Error; err != nil {
			return err
		}

		for i := range g.Spots {
			g.Spots[i].EventID = g.Event.ID
			g.Spots[i].SortOrder = i
		}
		if len(g.Spots) > 0 {
			if err := tx.Create(&g.Spots).Error; err != nil {
				if isUniqueViolation(err) {
					return ErrSpotTokenExists
				}
				return err
			}
		}

		g.Reward.EventID = g.Event.ID
		g.Reward.RequiredSpots = nil
		if err := tx.Create(&g.Reward).Error; err != nil {
			return err
		}

		var links []RewardRequiredSpot
		for i, required := range g.Required {
			if required && i < len(g.Spots) {
				links = append(links, RewardRequiredSpot{RewardID: g.Reward.ID, SpotID: g.Spots[i].ID})
			}
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		g.Reward.RequiredSpots = links

		return nil
	})
	if err != nil {
		return EventGraph{}, err
	}

	return g, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// FindOpen returns active events whose window contains at.
func (d *EventDAO) FindOpen(ctx context.Context, at time.Time) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).
		Where("status = ?", 1).
		Where("starts_at IS NULL OR starts_at <= ?", at).
		Where("ends_at IS NULL OR ends_at >= ?", at).
		Order("id").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindActiveSpots(ctx context.Context, eventID uint) ([]Spot, error) {
	var spots []Spot

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND is_active = ?", eventID, true).
		Order("sort_order, id").
		Find(&spots)
	if result.Error != nil {
		return nil, result.Error
	}

	return spots, nil
}

func (d *EventDAO) FindActiveSpot(ctx context.Context, eventID, spotID uint) (Spot, error) {
	var spot Spot

	result := d.db.WithContext(ctx).
		Where("id = ? AND event_id = ? AND is_active = ?", spotID, eventID, true).
		First(&spot)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Spot{}, ErrSpotNotFound
		}

		return Spot{}, result.Error
	}

	return spot, nil
}

// FindRequiredSpotIDs returns the distinct spots linked to active rewards that gate on spots.
func (d *EventDAO) FindRequiredSpotIDs(ctx context.Context, eventID uint) ([]uint, error) {
	var ids []uint

	result := d.db.WithContext(ctx).
		Model(&RewardRequiredSpot{}).
		Distinct("reward_required_spots.spot_id").
		Joins("JOIN rewards ON rewards.id = reward_required_spots.reward_id").
		Where("rewards.event_id = ? AND rewards.is_active = ? AND rewards.kind IN ?", eventID, true, []int{1, 2}).
		Order("reward_required_spots.spot_id").
		Pluck("reward_required_spots.spot_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

func (d *EventDAO) FindRewards(ctx context.Context, eventID uint) ([]Reward, error) {
	var rewards []Reward

	result := d.db.WithContext(ctx).
		Preload("RequiredSpots").
		Where("event_id = ?", eventID).
		Order("id").
		Find(&rewards)
	if result.Error != nil {
		return nil, result.Error
	}

	return rewards, nil
}
