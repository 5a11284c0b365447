package dao_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/qmikke-api/internal/pkg/cryptoutil"
	"github.com/vietanh2810/qmikke-api/internal/repository/dao"
	"github.com/vietanh2810/qmikke-api/internal/testhelpers"
)

func newSession(t *testing.T, d *dao.SessionDAO, eventID uint, key string) dao.ParticipantSession {
	t.Helper()

	now := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
	s, err := d.Upsert(context.Background(), dao.ParticipantSession{
		EventID:     eventID,
		SessionKey:  key,
		FirstSeenAt: now,
		LastSeenAt:  now,
	})
	require.NoError(t, err)

	return s
}

func TestStampDAO_TryStamp(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	seed := testhelpers.SeedEvent(t, db, nil, true, false)
	session := newSession(t, dao.NewSessionDAO(db), seed.EventID(), "visitor-1")
	stamps := dao.NewStampDAO(db)
	ctx := context.Background()
	at := time.Date(2026, 10, 1, 11, 0, 0, 0, time.UTC)

	attempt := dao.StampAttempt{
		EventID:   seed.EventID(),
		SpotID:    seed.SpotID(0),
		SessionID: session.ID,
		ScannedAt: at,
		TokenHash: cryptoutil.Sha256Hex(seed.SpotTokens[0]),
	}

	stamped, result, err := stamps.TryStamp(ctx, attempt)
	require.NoError(t, err)
	assert.True(t, stamped)
	assert.Equal(t, dao.ScanSuccess, result)

	stamped, result, err = stamps.TryStamp(ctx, attempt)
	require.NoError(t, err)
	assert.False(t, stamped)
	assert.Equal(t, dao.ScanDuplicate, result)

	wrongToken := attempt
	wrongToken.SpotID = seed.SpotID(1)
	stamped, result, err = stamps.TryStamp(ctx, wrongToken)
	require.NoError(t, err)
	assert.False(t, stamped)
	assert.Equal(t, dao.ScanInvalidToken, result)

	ids, err := stamps.FindSpotIDsBySession(ctx, seed.EventID(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{seed.SpotID(0)}, ids)

	logs, err := stamps.FindScanLogs(ctx, seed.EventID(), session.ID)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, dao.ScanSuccess, logs[0].Result)
	assert.Equal(t, dao.ScanDuplicate, logs[1].Result)
	assert.Equal(t, dao.ScanInvalidToken, logs[2].Result)
	assert.Equal(t, attempt.TokenHash, logs[0].RawTokenHash)
}

func TestStampDAO_TryStamp_AlreadyGoaled(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	seed := testhelpers.SeedEvent(t, db, nil, false)
	session := newSession(t, dao.NewSessionDAO(db), seed.EventID(), "visitor-1")
	ctx := context.Background()
	at := time.Date(2026, 10, 1, 11, 0, 0, 0, time.UTC)

	goals := dao.NewGoalDAO(db)
	inserted, err := goals.InsertIfAbsent(ctx, dao.Goal{
		EventID:         seed.EventID(),
		SessionID:       session.ID,
		AchievementCode: "00000042",
		GoaledAt:        &at,
	})
	require.NoError(t, err)
	require.True(t, inserted)

	stamps := dao.NewStampDAO(db)
	stamped, result, err := stamps.TryStamp(ctx, dao.StampAttempt{
		EventID:   seed.EventID(),
		SpotID:    seed.SpotID(0),
		SessionID: session.ID,
		ScannedAt: at,
		TokenHash: cryptoutil.Sha256Hex(seed.SpotTokens[0]),
	})
	require.NoError(t, err)
	assert.False(t, stamped)
	assert.Equal(t, dao.ScanAlreadyGoaled, result)

	ids, err := stamps.FindSpotIDsBySession(ctx, seed.EventID(), session.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	logs, err := stamps.FindScanLogs(ctx, seed.EventID(), session.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, dao.ScanAlreadyGoaled, logs[0].Result)
}

// The sqlite test database has a single connection, so each TryStamp transaction runs alone.
// Overlapping transactions are covered by TestPostgres_ConcurrentFirstScan.
func TestStampDAO_TryStamp_SerializedParallelCalls(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	seed := testhelpers.SeedEvent(t, db, nil, true)
	session := newSession(t, dao.NewSessionDAO(db), seed.EventID(), "visitor-1")
	stamps := dao.NewStampDAO(db)
	at := time.Date(2026, 10, 1, 11, 0, 0, 0, time.UTC)

	const n = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dupes     int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stamped, result, err := stamps.TryStamp(context.Background(), dao.StampAttempt{
				EventID:   seed.EventID(),
				SpotID:    seed.SpotID(0),
				SessionID: session.ID,
				ScannedAt: at,
				TokenHash: cryptoutil.Sha256Hex(seed.SpotTokens[0]),
			})
			assert.NoError(t, err)

			mu.Lock()
			defer mu.Unlock()
			if stamped {
				successes++
				assert.Equal(t, dao.ScanSuccess, result)
			} else {
				dupes++
				assert.Equal(t, dao.ScanDuplicate, result)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, dupes)

	logs, err := stamps.FindScanLogs(context.Background(), seed.EventID(), session.ID)
	require.NoError(t, err)
	assert.Len(t, logs, n)
}

func TestStampDAO_InsertScanLog(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	stamps := dao.NewStampDAO(db)
	ctx := context.Background()

	require.NoError(t, stamps.InsertScanLog(ctx, dao.StampScanLog{
		EventID:   1,
		SpotID:    2,
		SessionID: 3,
		ScannedAt: time.Now().UTC(),
		Result:    4,
	}))

	logs, err := stamps.FindScanLogs(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 4, logs[0].Result)
}
