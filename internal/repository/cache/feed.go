package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vietanh2810/qmikke-api/internal/domain"
)

const feedChannelPrefix = "rally:feed:"

func feedChannel(eventID uint) string {
	return fmt.Sprintf("%s%d", feedChannelPrefix, eventID)
}

// FeedBus fans stamp and goal notifications out to every API instance.
type FeedBus struct {
	rdb *redis.Client
}

func NewFeedBus(rdb *redis.Client) *FeedBus {
	return &FeedBus{
		rdb: rdb,
	}
}

func (b *FeedBus) Publish(ctx context.Context, ev domain.FeedEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	if err = b.rdb.Publish(ctx, feedChannel(ev.EventID), payload).Err(); err != nil {
		return fmt.Errorf("b.rdb.Publish -> %w", err)
	}

	return nil
}

// Subscribe streams notifications of one event until ctx is done. The subscription
// is confirmed before Subscribe returns.
func (b *FeedBus) Subscribe(ctx context.Context, eventID uint) (<-chan domain.FeedEvent, error) {
	sub := b.rdb.Subscribe(ctx, feedChannel(eventID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("sub.Receive -> %w", err)
	}

	out := make(chan domain.FeedEvent, 16)
	go func() {
		defer close(out)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var ev domain.FeedEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					zap.L().Warn("dropping malformed feed message", zap.Error(err))
					continue
				}

				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
