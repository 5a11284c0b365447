package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/repository/cache"
)

func newDraftService(t *testing.T, s *testStack) (*DraftService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	svc := NewDraftService(cache.NewDraftCache(rdb), s.events, 30*time.Minute)
	svc.now = func() time.Time { return testNow }

	return svc, mr
}

func TestDraftService_SaveAndPublish(t *testing.T) {
	s := newTestStack(t, nil)
	drafts, mr := newDraftService(t, s)
	ctx := context.Background()

	saved, err := drafts.Save(ctx, domain.EventDraft{
		EventTitle: "Night market",
		Spots: []domain.DraftSpot{
			{SpotName: "Noodles", IsRequired: true},
			{SpotName: "Lanterns"},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.True(t, saved.SavedAt.Equal(testNow))
	assert.Equal(t, 30*time.Minute, mr.TTL("rally:draft:"+saved.ID))

	got, err := drafts.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Night market", got.EventTitle)

	created, err := drafts.Publish(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Night market", created.Event.Title)
	require.Len(t, created.Spots, 2)
	assert.True(t, created.Spots[0].IsRequired)

	_, err = drafts.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	_, err = drafts.Publish(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestDraftService_PublishInvalidKeepsDraft(t *testing.T) {
	s := newTestStack(t, nil)
	drafts, _ := newDraftService(t, s)
	ctx := context.Background()

	saved, err := drafts.Save(ctx, domain.EventDraft{EventTitle: "No spots yet"})
	require.NoError(t, err)

	_, err = drafts.Publish(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = drafts.Get(ctx, saved.ID)
	assert.NoError(t, err)
}

func TestDraftService_Delete(t *testing.T) {
	s := newTestStack(t, nil)
	drafts, _ := newDraftService(t, s)
	ctx := context.Background()

	saved, err := drafts.Save(ctx, domain.EventDraft{ID: "fixed", EventTitle: "x"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", saved.ID)

	require.NoError(t, drafts.Delete(ctx, "fixed"))
	_, err = drafts.Get(ctx, "fixed")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
