package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vietanh2810/qmikke-api/internal/domain"
)

var ErrDraftNotFound = errors.New("draft not found")

const draftKeyPrefix = "rally:draft:"

// DraftCache keeps event drafts in Redis until they expire or are published.
type DraftCache struct {
	rdb *redis.Client
}

func NewDraftCache(rdb *redis.Client) *DraftCache {
	return &DraftCache{
		rdb: rdb,
	}
}

func draftKey(id string) string {
	return draftKeyPrefix + id
}

func (c *DraftCache) Save(ctx context.Context, draft domain.EventDraft, ttl time.Duration) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	if err = c.rdb.Set(ctx, draftKey(draft.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("c.rdb.Set -> %w", err)
	}

	return nil
}

func (c *DraftCache) Get(ctx context.Context, id string) (domain.EventDraft, error) {
	payload, err := c.rdb.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.EventDraft{}, ErrDraftNotFound
		}

		return domain.EventDraft{}, fmt.Errorf("c.rdb.Get -> %w", err)
	}

	var draft domain.EventDraft
	if err = json.Unmarshal(payload, &draft); err != nil {
		return domain.EventDraft{}, fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return draft, nil
}

// Take reads and deletes the draft atomically, so a draft is published at most once.
func (c *DraftCache) Take(ctx context.Context, id string) (domain.EventDraft, error) {
	payload, err := c.rdb.GetDel(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.EventDraft{}, ErrDraftNotFound
		}

		return domain.EventDraft{}, fmt.Errorf("c.rdb.GetDel -> %w", err)
	}

	var draft domain.EventDraft
	if err = json.Unmarshal(payload, &draft); err != nil {
		return domain.EventDraft{}, fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return draft, nil
}

func (c *DraftCache) Delete(ctx context.Context, id string) error {
	if err := c.rdb.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("c.rdb.Del -> %w", err)
	}

	return nil
}
