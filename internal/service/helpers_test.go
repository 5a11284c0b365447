package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/repository"
	"github.com/vietanh2810/qmikke-api/internal/repository/dao"
	"github.com/vietanh2810/qmikke-api/internal/testhelpers"
)

var testNow = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

type recordingFeed struct {
	mu     sync.Mutex
	events []domain.FeedEvent
}

func (f *recordingFeed) Publish(_ context.Context, ev domain.FeedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func (f *recordingFeed) Events() []domain.FeedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.FeedEvent(nil), f.events...)
}

type testStack struct {
	db        *gorm.DB
	seed      testhelpers.SeededEvent
	eventRepo *repository.EventRepository
	events    *EventService
	verifier  *TokenVerifier
	sessions  *SessionRegistry
	ledger    *StampLedger
	goals     *GoalEngine
	rally     *RallyService
	totalize  *TotalizeService
	feed      *recordingFeed
}

// newTestStack wires every service over a fresh database holding one event with a spot per
// entry of required.
func newTestStack(t *testing.T, window *[2]time.Time, required ...bool) *testStack {
	t.Helper()

	db := testhelpers.SetupTestDB(t)
	seed := testhelpers.SeedEvent(t, db, window, required...)

	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	goalRepo := repository.NewGoalRepository(dao.NewGoalDAO(db))

	s := &testStack{
		db:        db,
		seed:      seed,
		eventRepo: eventRepo,
		events:    NewEventService(eventRepo),
		verifier:  NewTokenVerifier(eventRepo),
		sessions:  NewSessionRegistry(repository.NewSessionRepository(dao.NewSessionDAO(db))),
		ledger:    NewStampLedger(repository.NewStampRepository(dao.NewStampDAO(db))),
		goals:     NewGoalEngine(goalRepo, 5),
		feed:      &recordingFeed{},
	}
	s.rally = NewRallyService(s.events, s.verifier, s.sessions, s.ledger, s.goals, s.feed)
	s.rally.now = func() time.Time { return testNow }
	s.totalize = NewTotalizeService(s.events, s.verifier, repository.NewTotalizeRepository(dao.NewTotalizeDAO(db)), goalRepo, eventRepo)
	s.totalize.now = func() time.Time { return testNow }

	return s
}

func (s *testStack) eventID() uint {
	return s.seed.EventID()
}

func (s *testStack) stamp(ctx context.Context, spot int, visitor string) (StampOutcome, error) {
	return s.rally.Stamp(ctx, StampInput{
		EventID: s.eventID(),
		SpotID:  s.seed.SpotID(spot),
		Token:   s.seed.SpotTokens[spot],
		Visitor: domain.Visitor{SessionKey: visitor, UserAgent: "test-agent"},
	})
}

func (s *testStack) session(t *testing.T, visitor string) domain.Session {
	t.Helper()

	session, err := s.sessions.GetOrCreate(context.Background(), s.eventID(), domain.Visitor{SessionKey: visitor}, testNow)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	return session
}

func (s *testStack) block(t *testing.T, visitor string) {
	t.Helper()

	session := s.session(t, visitor)
	if err := s.db.Model(&dao.ParticipantSession{}).Where("id = ?", session.ID).Update("is_blocked", true).Error; err != nil {
		t.Fatalf("block session: %v", err)
	}
}
