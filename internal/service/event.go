package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/pkg/cryptoutil"
	"github.com/vietanh2810/qmikke-api/internal/repository"
)

type EventRepository interface {
	Create(ctx context.Context, ev domain.NewEvent, secrets domain.EventSecrets) (domain.Event, []domain.Spot, []uint, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindActiveSpots(ctx context.Context, eventID uint) ([]domain.Spot, error)
	FindActiveSpot(ctx context.Context, eventID, spotID uint) (domain.Spot, error)
	FindRequiredSpotIDs(ctx context.Context, eventID uint) (domain.SpotSet, error)
	FindRewards(ctx context.Context, eventID uint) ([]domain.Reward, error)
}

// EventService is the read side of events and spots, plus event creation.
type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

// CreateEvent generates every secret of the event, stores their hashes, and returns the raw
// values. This is the only time they are available.
func (s *EventService) CreateEvent(ctx context.Context, ev domain.NewEvent) (domain.CreatedEvent, error) {
	if err := validateNewEvent(ev); err != nil {
		return domain.CreatedEvent{}, err
	}

	goalToken, err := cryptoutil.NewToken()
	if err != nil {
		return domain.CreatedEvent{}, err
	}
	totalizeToken, err := cryptoutil.NewToken()
	if err != nil {
		return domain.CreatedEvent{}, err
	}
	password, err := cryptoutil.NewPassword()
	if err != nil {
		return domain.CreatedEvent{}, err
	}

	spotTokens := make([]string, 0, len(ev.Spots))
	spotHashes := make([]string, 0, len(ev.Spots))
	for range ev.Spots {
		token, err := cryptoutil.NewToken()
		if err != nil {
			return domain.CreatedEvent{}, err
		}
		spotTokens = append(spotTokens, token)
		spotHashes = append(spotHashes, cryptoutil.Sha256Hex(token))
	}

	event, spots, requiredIDs, err := s.repo.Create(ctx, ev, domain.EventSecrets{
		GoalTokenHash:        cryptoutil.Sha256Hex(goalToken),
		TotalizeTokenHash:    cryptoutil.Sha256Hex(totalizeToken),
		TotalizePasswordHash: cryptoutil.Sha256Hex(password),
		SpotTokenHashes:      spotHashes,
	})
	if err != nil {
		return domain.CreatedEvent{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	created := domain.CreatedEvent{
		Event:            event,
		GoalToken:        goalToken,
		TotalizeToken:    totalizeToken,
		TotalizePassword: password,
		RequiredSpotIDs:  requiredIDs,
	}
	for i, spot := range spots {
		created.Spots = append(created.Spots, domain.CreatedSpot{
			Spot:       spot,
			Token:      spotTokens[i],
			IsRequired: ev.Spots[i].IsRequired,
		})
	}

	return created, nil
}

func validateNewEvent(ev domain.NewEvent) error {
	if strings.TrimSpace(ev.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidEvent)
	}
	if len(ev.Spots) == 0 {
		return fmt.Errorf("%w: at least one spot is required", ErrInvalidEvent)
	}
	for i, spot := range ev.Spots {
		if strings.TrimSpace(spot.Name) == "" {
			return fmt.Errorf("%w: spot %d has no name", ErrInvalidEvent, i+1)
		}
	}
	if ev.StartsAt != nil && ev.EndsAt != nil && ev.EndsAt.Before(*ev.StartsAt) {
		return fmt.Errorf("%w: window ends before it starts", ErrInvalidEvent)
	}

	return nil
}

// GetEvent maps a missing event to ErrNotFound.
func (s *EventService) GetEvent(ctx context.Context, eventID uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrNotFound
		}
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) GetActiveSpots(ctx context.Context, eventID uint) ([]domain.Spot, error) {
	spots, err := s.repo.FindActiveSpots(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindActiveSpots -> %w", err)
	}

	return spots, nil
}

func (s *EventService) GetActiveSpot(ctx context.Context, eventID, spotID uint) (domain.Spot, error) {
	spot, err := s.repo.FindActiveSpot(ctx, eventID, spotID)
	if err != nil {
		if errors.Is(err, repository.ErrSpotNotFound) {
			return domain.Spot{}, ErrNotFound
		}
		return domain.Spot{}, fmt.Errorf("s.repo.FindActiveSpot -> %w", err)
	}

	return spot, nil
}

// GetRequiredSpotIDs is empty when the event has no active spot-gating reward.
func (s *EventService) GetRequiredSpotIDs(ctx context.Context, eventID uint) (domain.SpotSet, error) {
	required, err := s.repo.FindRequiredSpotIDs(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRequiredSpotIDs -> %w", err)
	}

	return required, nil
}

func (s *EventService) GetRewards(ctx context.Context, eventID uint) ([]domain.Reward, error) {
	rewards, err := s.repo.FindRewards(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRewards -> %w", err)
	}

	return rewards, nil
}
