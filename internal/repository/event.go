package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/repository/dao"
)

var (
	ErrEventNotFound   = dao.ErrEventNotFound
	ErrSpotNotFound    = dao.ErrSpotNotFound
	ErrSpotTokenExists = dao.ErrSpotTokenExists
)

const requiredSpotsRewardTitle = "Required spots completed"

type EventDAO interface {
	InsertGraph(ctx context.Context, g dao.EventGraph) (dao.EventGraph, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindOpen(ctx context.Context, at time.Time) ([]dao.Event, error)
	FindActiveSpots(ctx context.Context, eventID uint) ([]dao.Spot, error)
	FindActiveSpot(ctx context.Context, eventID, spotID uint) (dao.Spot, error)
	FindRequiredSpotIDs(ctx context.Context, eventID uint) ([]uint, error)
	FindRewards(ctx context.Context, eventID uint) ([]dao.Reward, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

// Create stores the event, its spots and one reward requiring the spots flagged in ev.Spots.
// Spot hashes in secrets are parallel to ev.Spots.
func (r *EventRepository) Create(ctx context.Context, ev domain.NewEvent, secrets domain.EventSecrets) (domain.Event, []domain.Spot, []uint, error) {
	if len(secrets.SpotTokenHashes) != len(ev.Spots) {
		return domain.Event{}, nil, nil, fmt.Errorf("got %d spot hashes for %d spots", len(secrets.SpotTokenHashes), len(ev.Spots))
	}

	spots := make([]dao.Spot, 0, len(ev.Spots))
	required := make([]bool, 0, len(ev.Spots))
	for i, s := range ev.Spots {
		spots = append(spots, dao.Spot{
			Name:        s.Name,
			Description: s.Description,
			IsActive:    true,
			QRTokenHash: secrets.SpotTokenHashes[i],
		})
		required = append(required, s.IsRequired)
	}

	created, err := r.dao.InsertGraph(ctx, dao.EventGraph{
		Event: dao.Event{
			Title:                ev.Title,
			Status:               int(domain.EventStatusActive),
			StartsAt:             ev.StartsAt,
			EndsAt:               ev.EndsAt,
			GoalTokenHash:        secrets.GoalTokenHash,
			TotalizeTokenHash:    secrets.TotalizeTokenHash,
			TotalizePasswordHash: secrets.TotalizePasswordHash,
		},
		Spots:    spots,
		Required: required,
		Reward: dao.Reward{
			Title:    requiredSpotsRewardTitle,
			Kind:     int(domain.RewardKindRequiredSpots),
			IsActive: true,
		},
	})
	if err != nil {
		return domain.Event{}, nil, nil, fmt.Errorf("r.dao.InsertGraph -> %w", err)
	}

	requiredIDs := make([]uint, 0, len(created.Reward.RequiredSpots))
	for _, link := range created.Reward.RequiredSpots {
		requiredIDs = append(requiredIDs, link.SpotID)
	}

	return r.eventDaoToDomain(created.Event), r.spotsDaoToDomain(created.Spots), requiredIDs, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.eventDaoToDomain(found), nil
}

// FindSecrets returns the stored hashes of the event-level secrets.
func (r *EventRepository) FindSecrets(ctx context.Context, id uint) (domain.EventSecrets, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.EventSecrets{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return domain.EventSecrets{
		GoalTokenHash:        found.GoalTokenHash,
		TotalizeTokenHash:    found.TotalizeTokenHash,
		TotalizePasswordHash: found.TotalizePasswordHash,
	}, nil
}

func (r *EventRepository) FindOpen(ctx context.Context, at time.Time) ([]domain.Event, error) {
	found, err := r.dao.FindOpen(ctx, at)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindOpen -> %w", err)
	}

	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		events = append(events, r.eventDaoToDomain(e))
	}

	return events, nil
}

func (r *EventRepository) FindActiveSpots(ctx context.Context, eventID uint) ([]domain.Spot, error) {
	found, err := r.dao.FindActiveSpots(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveSpots -> %w", err)
	}

	return r.spotsDaoToDomain(found), nil
}

func (r *EventRepository) FindActiveSpot(ctx context.Context, eventID, spotID uint) (domain.Spot, error) {
	found, err := r.dao.FindActiveSpot(ctx, eventID, spotID)
	if err != nil {
		return domain.Spot{}, fmt.Errorf("r.dao.FindActiveSpot -> %w", err)
	}

	return r.spotDaoToDomain(found), nil
}

// FindSpotTokenHash returns the stored hash of an active spot of the event.
func (r *EventRepository) FindSpotTokenHash(ctx context.Context, eventID, spotID uint) (string, error) {
	found, err := r.dao.FindActiveSpot(ctx, eventID, spotID)
	if err != nil {
		return "", fmt.Errorf("r.dao.FindActiveSpot -> %w", err)
	}

	return found.QRTokenHash, nil
}

func (r *EventRepository) FindRequiredSpotIDs(ctx context.Context, eventID uint) (domain.SpotSet, error) {
	ids, err := r.dao.FindRequiredSpotIDs(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRequiredSpotIDs -> %w", err)
	}

	return domain.NewSpotSet(ids...), nil
}

func (r *EventRepository) FindRewards(ctx context.Context, eventID uint) ([]domain.Reward, error) {
	found, err := r.dao.FindRewards(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRewards -> %w", err)
	}

	rewards := make([]domain.Reward, 0, len(found))
	for _, rw := range found {
		ids := make([]uint, 0, len(rw.RequiredSpots))
		for _, link := range rw.RequiredSpots {
			ids = append(ids, link.SpotID)
		}
		rewards = append(rewards, domain.Reward{
			ID:                 rw.ID,
			EventID:            rw.EventID,
			Title:              rw.Title,
			Description:        rw.Description,
			Kind:               domain.RewardKind(rw.Kind),
			RequiredStampCount: rw.RequiredStampCount,
			IsActive:           rw.IsActive,
			RequiredSpotIDs:    ids,
		})
	}

	return rewards, nil
}

func (r *EventRepository) eventDaoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:                 e.ID,
		Title:              e.Title,
		Status:             domain.EventStatus(e.Status),
		StartsAt:           e.StartsAt,
		EndsAt:             e.EndsAt,
		RequiredStampCount: e.RequiredStampCount,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func (r *EventRepository) spotDaoToDomain(s dao.Spot) domain.Spot {
	return domain.Spot{
		ID:          s.ID,
		EventID:     s.EventID,
		Name:        s.Name,
		Description: s.Description,
		SortOrder:   s.SortOrder,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
	}
}

func (r *EventRepository) spotsDaoToDomain(spots []dao.Spot) []domain.Spot {
	out := make([]domain.Spot, 0, len(spots))
	for _, s := range spots {
		out = append(out, r.spotDaoToDomain(s))
	}

	return out
}
