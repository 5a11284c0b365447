package service

import (
	"context"

	"github.com/vietanh2810/qmikke-api/internal/domain"
)

type FeedPublisher interface {
	Publish(ctx context.Context, ev domain.FeedEvent) error
}

// NopFeed drops every notification. Used when Redis is not configured.
type NopFeed struct{}

func (NopFeed) Publish(context.Context, domain.FeedEvent) error {
	return nil
}
