package dao_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/qmikke-api/internal/pkg/cryptoutil"
	"github.com/vietanh2810/qmikke-api/internal/repository/dao"
	"github.com/vietanh2810/qmikke-api/internal/testhelpers"
)

func TestTotalizeDAO(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	seed := testhelpers.SeedEvent(t, db, nil, true, true)
	sessions := dao.NewSessionDAO(db)
	stamps := dao.NewStampDAO(db)
	goals := dao.NewGoalDAO(db)
	totals := dao.NewTotalizeDAO(db)
	ctx := context.Background()
	at := time.Date(2026, 10, 1, 10, 15, 0, 0, time.UTC)

	for i, key := range []string{"a", "b", "c"} {
		s := newSession(t, sessions, seed.EventID(), key)
		_, _, err := stamps.TryStamp(ctx, dao.StampAttempt{
			EventID: seed.EventID(), SpotID: seed.SpotID(0), SessionID: s.ID,
			ScannedAt: at.Add(time.Duration(i) * time.Hour),
			TokenHash: cryptoutil.Sha256Hex(seed.SpotTokens[0]),
		})
		require.NoError(t, err)

		if key == "a" {
			_, _, err = stamps.TryStamp(ctx, dao.StampAttempt{
				EventID: seed.EventID(), SpotID: seed.SpotID(1), SessionID: s.ID,
				ScannedAt: at, TokenHash: cryptoutil.Sha256Hex(seed.SpotTokens[1]),
			})
			require.NoError(t, err)

			goaledAt := at.Add(time.Minute)
			_, err = goals.InsertIfAbsent(ctx, dao.Goal{EventID: seed.EventID(), SessionID: s.ID, AchievementCode: "00000001", GoaledAt: &goaledAt})
			require.NoError(t, err)
		}
		if key == "b" {
			_, err = goals.InsertIfAbsent(ctx, dao.Goal{EventID: seed.EventID(), SessionID: s.ID, AchievementCode: "00000002"})
			require.NoError(t, err)
		}
	}

	counts, err := totals.CountStampsBySpot(ctx, seed.EventID())
	require.NoError(t, err)
	assert.Equal(t, []dao.SpotCount{
		{SpotID: seed.SpotID(0), Count: 3},
		{SpotID: seed.SpotID(1), Count: 1},
	}, counts)

	times, err := totals.FindStampTimes(ctx, seed.EventID())
	require.NoError(t, err)
	assert.Len(t, times, 4)

	goalCount, err := totals.CountGoals(ctx, seed.EventID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), goalCount)

	goalTimes, err := totals.FindGoalTimes(ctx, seed.EventID())
	require.NoError(t, err)
	require.Len(t, goalTimes, 1)
	assert.True(t, goalTimes[0].Equal(at.Add(time.Minute)))
}
