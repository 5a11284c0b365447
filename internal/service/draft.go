package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vietanh2810/qmikke-api/internal/domain"
)

type DraftStore interface {
	Save(ctx context.Context, draft domain.EventDraft, ttl time.Duration) error
	Get(ctx context.Context, id string) (domain.EventDraft, error)
	Take(ctx context.Context, id string) (domain.EventDraft, error)
	Delete(ctx context.Context, id string) error
}

// DraftService keeps unpublished events in a shared TTL store, so any API instance can
// resume or publish a draft.
type DraftService struct {
	store  DraftStore
	events *EventService
	ttl    time.Duration
	now    func() time.Time
}

func NewDraftService(store DraftStore, events *EventService, ttl time.Duration) *DraftService {
	return &DraftService{
		store:  store,
		events: events,
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Save stores the draft, assigning an id on first save, and restarts its TTL.
func (s *DraftService) Save(ctx context.Context, draft domain.EventDraft) (domain.EventDraft, error) {
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	draft.SavedAt = s.now()

	if err := s.store.Save(ctx, draft, s.ttl); err != nil {
		return domain.EventDraft{}, fmt.Errorf("s.store.Save -> %w", err)
	}

	return draft, nil
}

func (s *DraftService) Get(ctx context.Context, id string) (domain.EventDraft, error) {
	draft, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.EventDraft{}, fmt.Errorf("s.store.Get -> %w", err)
	}

	return draft, nil
}

func (s *DraftService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.store.Delete -> %w", err)
	}

	return nil
}

// Publish turns the draft into a live event. The draft is consumed; if creation fails it is
// put back so the organizer can retry.
func (s *DraftService) Publish(ctx context.Context, id string) (domain.CreatedEvent, error) {
	draft, err := s.store.Take(ctx, id)
	if err != nil {
		return domain.CreatedEvent{}, fmt.Errorf("s.store.Take -> %w", err)
	}

	created, err := s.events.CreateEvent(ctx, draft.ToNewEvent())
	if err != nil {
		if restoreErr := s.store.Save(ctx, draft, s.ttl); restoreErr != nil {
			zap.L().Error("failed to restore draft after publish error", zap.String("draft_id", id), zap.Error(restoreErr))
		}
		return domain.CreatedEvent{}, fmt.Errorf("s.events.CreateEvent -> %w", err)
	}

	return created, nil
}
