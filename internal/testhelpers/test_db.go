package testhelpers

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vietanh2810/qmikke-api/internal/pkg/cryptoutil"
	"github.com/vietanh2810/qmikke-api/internal/repository/dao"
)

var (
	openSQLite = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
	}
	migrateSchema = dao.InitTables

	seedSeq atomic.Int64
)

// SetupTestDB creates an isolated in-memory SQLite database for tests.
// It uses a single connection, so parallel callers are serialized and never race inside
// the database. Row-level races are tested against Postgres behind the integration tag.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	db, err := openSQLite(dsn)
	if err != nil {
		panic(fmt.Sprintf("failed to open test database: %v", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(fmt.Sprintf("failed to get sql.DB: %v", err))
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := migrateSchema(db); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return db
}

// SeededEvent is an event inserted with known raw secrets.
type SeededEvent struct {
	Graph            dao.EventGraph
	GoalToken        string
	TotalizeToken    string
	TotalizePassword string
	SpotTokens       []string
}

func (s SeededEvent) EventID() uint {
	return s.Graph.Event.ID
}

func (s SeededEvent) SpotID(i int) uint {
	return s.Graph.Spots[i].ID
}

// SeedEvent inserts an active event with one spot per entry of required.
// Spot tokens are unique per call. The goal token is "goal", the totalize secrets "totalize"/"password".
func SeedEvent(t *testing.T, db *gorm.DB, window *[2]time.Time, required ...bool) SeededEvent {
	t.Helper()

	seed := SeededEvent{
		GoalToken:        "goal",
		TotalizeToken:    "totalize",
		TotalizePassword: "password",
	}

	event := dao.Event{
		Title:                "Autumn Rally",
		Status:               1,
		GoalTokenHash:        cryptoutil.Sha256Hex(seed.GoalToken),
		TotalizeTokenHash:    cryptoutil.Sha256Hex(seed.TotalizeToken),
		TotalizePasswordHash: cryptoutil.Sha256Hex(seed.TotalizePassword),
	}
	if window != nil {
		event.StartsAt = &window[0]
		event.EndsAt = &window[1]
	}

	seq := seedSeq.Add(1)
	spots := make([]dao.Spot, 0, len(required))
	for i := range required {
		token := fmt.Sprintf("spot-%d-%d", seq, i)
		seed.SpotTokens = append(seed.SpotTokens, token)
		spots = append(spots, dao.Spot{
			Name:        fmt.Sprintf("Spot %d", i+1),
			IsActive:    true,
			QRTokenHash: cryptoutil.Sha256Hex(token),
		})
	}

	graph, err := dao.NewEventDAO(db).InsertGraph(context.Background(), dao.EventGraph{
		Event:    event,
		Spots:    spots,
		Required: required,
		Reward: dao.Reward{
			Title:    "Required spots completed",
			Kind:     1,
			IsActive: true,
		},
	})
	if err != nil {
		panic(fmt.Sprintf("failed to seed event: %v", err))
	}
	seed.Graph = graph

	return seed
}
