package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/qmikke-api/internal/domain"
)

func TestTotalizeService_Authorize(t *testing.T) {
	s := newTestStack(t, nil)
	ctx := context.Background()

	event, err := s.totalize.Authorize(ctx, s.eventID(), "totalize", "password")
	require.NoError(t, err)
	assert.Equal(t, s.eventID(), event.ID)

	_, err = s.totalize.Authorize(ctx, s.eventID(), "totalize", "wrong")
	assert.ErrorIs(t, err, ErrTotalizeDenied)

	_, err = s.totalize.Authorize(ctx, s.eventID(), "goal", "password")
	assert.ErrorIs(t, err, ErrTotalizeDenied)

	_, err = s.totalize.Authorize(ctx, s.eventID()+1, "totalize", "password")
	assert.ErrorIs(t, err, ErrTotalizeDenied)
}

func TestTotalizeService_SummaryAndLookup(t *testing.T) {
	s := newTestStack(t, nil, true, false)
	ctx := context.Background()

	for _, v := range []string{"a", "b"} {
		_, err := s.stamp(ctx, 0, v)
		require.NoError(t, err)
	}
	s.rally.now = func() time.Time { return testNow.Add(time.Hour) }
	_, err := s.stamp(ctx, 1, "a")
	require.NoError(t, err)

	final, err := s.rally.Finalize(ctx, s.eventID(), "goal", domain.Visitor{SessionKey: "a"})
	require.NoError(t, err)

	pending := s.session(t, "c")
	pendingCode, err := s.goals.EnsureAchievementCode(ctx, s.eventID(), pending.ID)
	require.NoError(t, err)

	summary, err := s.totalize.Summary(ctx, s.eventID())
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.TotalStamps)
	assert.Equal(t, int64(1), summary.TotalGoals)
	require.Len(t, summary.SpotTotals, 2)
	assert.Equal(t, int64(2), summary.SpotTotals[0].Stamps)
	assert.Equal(t, int64(1), summary.SpotTotals[1].Stamps)
	require.Len(t, summary.SpotHourly, 2)
	assertHours(t, summary.SpotHourly[0].Hours, domain.HourlyCount{Hour: testNow, Count: 2})
	assertHours(t, summary.SpotHourly[1].Hours, domain.HourlyCount{Hour: testNow.Add(time.Hour), Count: 1})
	assertHours(t, summary.HourlyGoals, domain.HourlyCount{Hour: testNow.Add(time.Hour), Count: 1})

	dashed := final.Code[:4] + "-" + final.Code[4:]
	lookup, err := s.totalize.LookupCode(ctx, s.eventID(), " "+dashed+" ")
	require.NoError(t, err)
	assert.Equal(t, domain.CodeGoaled, lookup.Status)
	assert.Equal(t, final.Code, lookup.Code)
	require.NotNil(t, lookup.GoaledAt)

	lookup, err = s.totalize.LookupCode(ctx, s.eventID(), pendingCode)
	require.NoError(t, err)
	assert.Equal(t, domain.CodeNotGoaled, lookup.Status)

	lookup, err = s.totalize.LookupCode(ctx, s.eventID()+1, final.Code)
	require.NoError(t, err)
	assert.Equal(t, domain.CodeNotFound, lookup.Status)

	counts, err := s.totalize.OpenEventGoals(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{s.eventID(): 1}, counts)
}

func assertHours(t *testing.T, got []domain.HourlyCount, want ...domain.HourlyCount) {
	t.Helper()

	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Hour.Equal(got[i].Hour), "hour %d: %s", i, got[i].Hour)
		assert.Equal(t, want[i].Count, got[i].Count)
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "12345678", NormalizeCode("1234-5678"))
	assert.Equal(t, "12345678", NormalizeCode(" 1234 5678\n"))
	assert.Equal(t, "", NormalizeCode("--"))
}
