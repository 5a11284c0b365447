//go:build integration

package dao_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vietanh2810/qmikke-api/internal/db"
	"github.com/vietanh2810/qmikke-api/internal/pkg/cryptoutil"
	"github.com/vietanh2810/qmikke-api/internal/repository/dao"
	"github.com/vietanh2810/qmikke-api/internal/testhelpers"
)

var pgDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct pool: %s", err)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("could not connect to docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=rally",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=rally",
			"listen_addresses='*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start resource: %s", err)
	}
	_ = resource.Expire(120)

	dsn := fmt.Sprintf("postgres://rally:secret@%s/rally?sslmode=disable", resource.GetHostPort("5432/tcp"))
	pool.MaxWait = 120 * time.Second
	if err = pool.Retry(func() error {
		var openErr error
		pgDB, openErr = db.OpenPostgresWithURL(dsn)
		return openErr
	}); err != nil {
		log.Fatalf("could not connect to postgres: %s", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("could not purge resource: %s", err)
	}

	os.Exit(code)
}

func TestPostgres_ConcurrentFirstScan(t *testing.T) {
	seed := testhelpers.SeedEvent(t, pgDB, nil, true)
	session := newSession(t, dao.NewSessionDAO(pgDB), seed.EventID(), "racer")
	stamps := dao.NewStampDAO(pgDB)

	const n = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stamped, _, err := stamps.TryStamp(context.Background(), dao.StampAttempt{
				EventID:   seed.EventID(),
				SpotID:    seed.SpotID(0),
				SessionID: session.ID,
				ScannedAt: time.Now().UTC(),
				TokenHash: cryptoutil.Sha256Hex(seed.SpotTokens[0]),
			})
			assert.NoError(t, err)

			mu.Lock()
			defer mu.Unlock()
			if stamped {
				granted++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, granted)

	logs, err := stamps.FindScanLogs(context.Background(), seed.EventID(), session.ID)
	require.NoError(t, err)
	assert.Len(t, logs, n)
}

func TestPostgres_ConcurrentSessionUpsert(t *testing.T) {
	seed := testhelpers.SeedEvent(t, pgDB, nil, true)
	sessions := dao.NewSessionDAO(pgDB)

	const n = 20
	ids := make(chan uint, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			now := time.Now().UTC()
			s, err := sessions.Upsert(context.Background(), dao.ParticipantSession{
				EventID:     seed.EventID(),
				SessionKey:  "same-key",
				FirstSeenAt: now,
				LastSeenAt:  now,
			})
			assert.NoError(t, err)
			ids <- s.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[uint]struct{}{}
	for id := range ids {
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 1)
}

func TestPostgres_ConcurrentFinalize(t *testing.T) {
	seed := testhelpers.SeedEvent(t, pgDB, nil, true)
	session := newSession(t, dao.NewSessionDAO(pgDB), seed.EventID(), "finisher")
	goals := dao.NewGoalDAO(pgDB)
	ctx := context.Background()

	const n = 10
	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		transitions int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := goals.InsertIfAbsent(ctx, dao.Goal{
				EventID:         seed.EventID(),
				SessionID:       session.ID,
				AchievementCode: fmt.Sprintf("%08d", i),
				CreatedAt:       time.Now().UTC(),
			})
			assert.NoError(t, err)

			changed, err := goals.MarkGoaled(ctx, seed.EventID(), session.ID, time.Now().UTC())
			assert.NoError(t, err)

			mu.Lock()
			defer mu.Unlock()
			if changed {
				transitions++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, transitions)

	goal, err := goals.FindBySession(ctx, seed.EventID(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, goal.GoaledAt)
}
