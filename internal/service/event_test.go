package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/qmikke-api/internal/domain"
)

func TestEventService_CreateEvent(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()
	start := testNow
	end := testNow.Add(6 * time.Hour)

	created, err := s.events.CreateEvent(ctx, domain.NewEvent{
		Title:    "Castle town rally",
		StartsAt: &start,
		EndsAt:   &end,
		Spots: []domain.NewSpot{
			{Name: "Gate", IsRequired: true},
			{Name: "Tower"},
			{Name: "Garden", IsRequired: true},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.EventStatusActive, created.Event.Status)
	assert.Len(t, created.GoalToken, 48)
	assert.Len(t, created.TotalizePassword, 10)
	require.Len(t, created.Spots, 3)
	assert.ElementsMatch(t, []uint{created.Spots[0].Spot.ID, created.Spots[2].Spot.ID}, created.RequiredSpotIDs)

	eventID := created.Event.ID
	for _, spot := range created.Spots {
		ok, err := s.verifier.Verify(ctx, domain.TokenSpot, eventID, spot.Token, spot.Spot.ID)
		require.NoError(t, err)
		assert.True(t, ok, spot.Spot.Name)
	}
	for kind, secret := range map[domain.TokenKind]string{
		domain.TokenGoal:             created.GoalToken,
		domain.TokenTotalize:         created.TotalizeToken,
		domain.TokenTotalizePassword: created.TotalizePassword,
	} {
		ok, err := s.verifier.Verify(ctx, kind, eventID, secret, 0)
		require.NoError(t, err)
		assert.True(t, ok, kind.String())
	}

	required, err := s.events.GetRequiredSpotIDs(ctx, eventID)
	require.NoError(t, err)
	assert.Len(t, required, 2)

	rewards, err := s.events.GetRewards(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	assert.Equal(t, domain.RewardKindRequiredSpots, rewards[0].Kind)

	spots, err := s.events.GetActiveSpots(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, spots, 3)
	assert.Equal(t, "Gate", spots[0].Name)
	assert.Equal(t, "Garden", spots[2].Name)
}

func TestEventService_CreateEvent_Invalid(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()
	start := testNow
	before := testNow.Add(-time.Hour)

	tests := map[string]domain.NewEvent{
		"no title":        {Spots: []domain.NewSpot{{Name: "a"}}},
		"no spots":        {Title: "t"},
		"unnamed spot":    {Title: "t", Spots: []domain.NewSpot{{Name: " "}}},
		"inverted window": {Title: "t", StartsAt: &start, EndsAt: &before, Spots: []domain.NewSpot{{Name: "a"}}},
	}
	for name, ev := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := s.events.CreateEvent(ctx, ev)
			assert.ErrorIs(t, err, ErrInvalidEvent)
		})
	}
}

func TestEventService_NotFound(t *testing.T) {
	s := newTestStack(t, nil, false)
	ctx := context.Background()

	_, err := s.events.GetEvent(ctx, s.eventID()+1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.events.GetActiveSpot(ctx, s.eventID(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
