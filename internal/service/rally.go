package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/repository"
)

type StampInput struct {
	EventID uint
	SpotID  uint
	Token   string
	Visitor domain.Visitor
}

type StampOutcome struct {
	Stamped bool
	Result  domain.ScanResult
}

type SpotProgress struct {
	Spot     domain.Spot `json:"spot"`
	Required bool        `json:"required"`
	Stamped  bool        `json:"stamped"`
}

type ScanPage struct {
	Event domain.Event   `json:"event"`
	Spot  domain.Spot    `json:"spot"`
	Spots []SpotProgress `json:"spots"`
}

type GoalPage struct {
	Event   domain.Event    `json:"event"`
	Spots   []SpotProgress  `json:"spots"`
	Rewards []domain.Reward `json:"rewards"`
}

type Progress struct {
	Event    domain.Event   `json:"event"`
	Spots    []SpotProgress `json:"spots"`
	Missing  []uint         `json:"missing_spot_ids"`
	Complete bool           `json:"complete"`
	Goaled   bool           `json:"goaled"`
}

type GoalStatus struct {
	Goaled   bool       `json:"goaled"`
	Code     string     `json:"code,omitempty"`
	GoaledAt *time.Time `json:"goaled_at,omitempty"`
}

type FinalizeOutcome struct {
	Code          string    `json:"code"`
	GoaledAt      time.Time `json:"goaled_at"`
	AlreadyGoaled bool      `json:"already_goaled"`
}

// RallyService runs the participant flows: scanning spots, reading progress, and finishing
// at the goal. It applies the event window and the blocked flag, and re-evaluates the
// completeness check on every finalize attempt.
type RallyService struct {
	events   *EventService
	verifier *TokenVerifier
	sessions *SessionRegistry
	ledger   *StampLedger
	goals    *GoalEngine
	feed     FeedPublisher
	now      func() time.Time
}

func NewRallyService(events *EventService, verifier *TokenVerifier, sessions *SessionRegistry, ledger *StampLedger, goals *GoalEngine, feed FeedPublisher) *RallyService {
	if feed == nil {
		feed = NopFeed{}
	}

	return &RallyService{
		events:   events,
		verifier: verifier,
		sessions: sessions,
		ledger:   ledger,
		goals:    goals,
		feed:     feed,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *RallyService) openEvent(ctx context.Context, eventID uint, now time.Time) (domain.Event, error) {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return domain.Event{}, err
	}
	if event.Status != domain.EventStatusActive {
		return domain.Event{}, ErrNotFound
	}
	if err = event.CheckWindow(now); err != nil {
		return domain.Event{}, err
	}

	return event, nil
}

func (s *RallyService) verify(ctx context.Context, kind domain.TokenKind, eventID uint, token string, spotID uint) error {
	ok, err := s.verifier.Verify(ctx, kind, eventID, token, spotID)
	if err != nil {
		return fmt.Errorf("s.verifier.Verify -> %w", err)
	}
	if !ok {
		return ErrNotFound
	}

	return nil
}

// spotMap lists the active spots of the event with required flags and, when held is
// non-nil, stamped flags.
func (s *RallyService) spotMap(ctx context.Context, eventID uint, held domain.SpotSet) ([]SpotProgress, domain.SpotSet, error) {
	spots, err := s.events.GetActiveSpots(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	required, err := s.events.GetRequiredSpotIDs(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	out := make([]SpotProgress, 0, len(spots))
	for _, spot := range spots {
		out = append(out, SpotProgress{
			Spot:     spot,
			Required: required.Has(spot.ID),
			Stamped:  held.Has(spot.ID),
		})
	}

	return out, required, nil
}

// ScanPage backs the page a participant lands on after scanning a spot poster.
func (s *RallyService) ScanPage(ctx context.Context, eventID, spotID uint, token string) (ScanPage, error) {
	if err := s.verify(ctx, domain.TokenSpot, eventID, token, spotID); err != nil {
		return ScanPage{}, err
	}

	event, err := s.openEvent(ctx, eventID, s.now())
	if err != nil {
		return ScanPage{}, err
	}

	spot, err := s.events.GetActiveSpot(ctx, eventID, spotID)
	if err != nil {
		return ScanPage{}, err
	}

	spots, _, err := s.spotMap(ctx, eventID, nil)
	if err != nil {
		return ScanPage{}, err
	}

	return ScanPage{Event: event, Spot: spot, Spots: spots}, nil
}

func (s *RallyService) Stamp(ctx context.Context, in StampInput) (StampOutcome, error) {
	now := s.now()

	if err := s.verify(ctx, domain.TokenSpot, in.EventID, in.Token, in.SpotID); err != nil {
		return StampOutcome{}, err
	}
	if _, err := s.openEvent(ctx, in.EventID, now); err != nil {
		return StampOutcome{}, err
	}

	session, err := s.sessions.GetOrCreate(ctx, in.EventID, in.Visitor, now)
	if err != nil {
		return StampOutcome{}, err
	}

	attempt := domain.ScanAttempt{
		EventID:        in.EventID,
		SpotID:         in.SpotID,
		SessionID:      session.ID,
		ScannedAt:      now,
		PresentedToken: in.Token,
	}

	if session.IsBlocked {
		if err = s.ledger.Record(ctx, attempt, domain.ScanBlocked); err != nil {
			return StampOutcome{}, err
		}
		return StampOutcome{Result: domain.ScanBlocked}, ErrSessionBlocked
	}

	stamped, result, err := s.ledger.TryStamp(ctx, attempt)
	if err != nil {
		return StampOutcome{}, err
	}
	if result == domain.ScanInvalidToken {
		return StampOutcome{Result: result}, ErrNotFound
	}
	if stamped {
		s.publish(ctx, domain.FeedEvent{Kind: domain.FeedStamped, EventID: in.EventID, SpotID: in.SpotID, At: now})
	}

	return StampOutcome{Stamped: stamped, Result: result}, nil
}

// Achievement returns the session's achievement code once every required spot is held.
func (s *RallyService) Achievement(ctx context.Context, eventID uint, visitor domain.Visitor) (string, error) {
	now := s.now()

	if _, err := s.openEvent(ctx, eventID, now); err != nil {
		return "", err
	}

	session, err := s.sessions.GetOrCreate(ctx, eventID, visitor, now)
	if err != nil {
		return "", err
	}
	if session.IsBlocked {
		return "", ErrSessionBlocked
	}

	if err = s.checkComplete(ctx, eventID, session.ID); err != nil {
		return "", err
	}

	return s.goals.EnsureAchievementCode(ctx, eventID, session.ID)
}

func (s *RallyService) StampGoalStatus(ctx context.Context, eventID uint, visitor domain.Visitor) (bool, error) {
	if _, err := s.events.GetEvent(ctx, eventID); err != nil {
		return false, err
	}

	session, err := s.sessions.GetOrCreate(ctx, eventID, visitor, s.now())
	if err != nil {
		return false, err
	}

	return s.goals.IsGoaled(ctx, eventID, session.ID)
}

// Progress is the server's view of a participant's card.
func (s *RallyService) Progress(ctx context.Context, eventID uint, visitor domain.Visitor) (Progress, error) {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return Progress{}, err
	}

	session, err := s.sessions.GetOrCreate(ctx, eventID, visitor, s.now())
	if err != nil {
		return Progress{}, err
	}

	held, err := s.ledger.StampedSpotIDs(ctx, eventID, session.ID)
	if err != nil {
		return Progress{}, err
	}

	spots, required, err := s.spotMap(ctx, eventID, held)
	if err != nil {
		return Progress{}, err
	}

	goaled, err := s.goals.IsGoaled(ctx, eventID, session.ID)
	if err != nil {
		return Progress{}, err
	}

	missing := held.Missing(required)
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })

	return Progress{
		Event:    event,
		Spots:    spots,
		Missing:  missing,
		Complete: len(missing) == 0,
		Goaled:   goaled,
	}, nil
}

// GoalPage backs the page a participant lands on after scanning the goal poster.
func (s *RallyService) GoalPage(ctx context.Context, eventID uint, goalToken string) (GoalPage, error) {
	if err := s.verify(ctx, domain.TokenGoal, eventID, goalToken, 0); err != nil {
		return GoalPage{}, err
	}

	event, err := s.openEvent(ctx, eventID, s.now())
	if err != nil {
		return GoalPage{}, err
	}

	spots, _, err := s.spotMap(ctx, eventID, nil)
	if err != nil {
		return GoalPage{}, err
	}

	rewards, err := s.events.GetRewards(ctx, eventID)
	if err != nil {
		return GoalPage{}, fmt.Errorf("s.events.GetRewards -> %w", err)
	}

	return GoalPage{Event: event, Spots: spots, Rewards: rewards}, nil
}

func (s *RallyService) GoalStatus(ctx context.Context, eventID uint, goalToken string, visitor domain.Visitor) (GoalStatus, error) {
	if err := s.verify(ctx, domain.TokenGoal, eventID, goalToken, 0); err != nil {
		return GoalStatus{}, err
	}

	session, err := s.sessions.GetOrCreate(ctx, eventID, visitor, s.now())
	if err != nil {
		return GoalStatus{}, err
	}

	goal, err := s.goals.Find(ctx, eventID, session.ID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return GoalStatus{}, nil
		}
		return GoalStatus{}, err
	}
	if !goal.IsGoaled() {
		return GoalStatus{}, nil
	}

	return GoalStatus{Goaled: true, Code: goal.AchievementCode, GoaledAt: goal.GoaledAt}, nil
}

// Finalize marks the session goaled if it holds every required spot. Calling it again
// returns the same code and goal time.
func (s *RallyService) Finalize(ctx context.Context, eventID uint, goalToken string, visitor domain.Visitor) (FinalizeOutcome, error) {
	now := s.now()

	if err := s.verify(ctx, domain.TokenGoal, eventID, goalToken, 0); err != nil {
		return FinalizeOutcome{}, err
	}
	if _, err := s.openEvent(ctx, eventID, now); err != nil {
		return FinalizeOutcome{}, err
	}

	session, err := s.sessions.GetOrCreate(ctx, eventID, visitor, now)
	if err != nil {
		return FinalizeOutcome{}, err
	}
	if session.IsBlocked {
		return FinalizeOutcome{}, ErrSessionBlocked
	}

	existing, err := s.goals.Find(ctx, eventID, session.ID)
	switch {
	case err == nil && existing.IsGoaled():
		return FinalizeOutcome{Code: existing.AchievementCode, GoaledAt: *existing.GoaledAt, AlreadyGoaled: true}, nil
	case err != nil && !errors.Is(err, repository.ErrGoalNotFound):
		return FinalizeOutcome{}, err
	}

	if err = s.checkComplete(ctx, eventID, session.ID); err != nil {
		return FinalizeOutcome{}, err
	}

	goal, transitioned, err := s.goals.EnsureGoaled(ctx, eventID, session.ID, now)
	if err != nil {
		return FinalizeOutcome{}, err
	}
	if transitioned {
		s.publish(ctx, domain.FeedEvent{Kind: domain.FeedGoaled, EventID: eventID, At: *goal.GoaledAt})
	}

	return FinalizeOutcome{
		Code:          goal.AchievementCode,
		GoaledAt:      *goal.GoaledAt,
		AlreadyGoaled: !transitioned,
	}, nil
}

// checkComplete reads the required set and the held set fresh from the store.
func (s *RallyService) checkComplete(ctx context.Context, eventID, sessionID uint) error {
	required, err := s.events.GetRequiredSpotIDs(ctx, eventID)
	if err != nil {
		return err
	}
	held, err := s.ledger.StampedSpotIDs(ctx, eventID, sessionID)
	if err != nil {
		return err
	}
	if !held.ContainsAll(required) {
		return ErrRequirementsNotMet
	}

	return nil
}

func (s *RallyService) publish(ctx context.Context, ev domain.FeedEvent) {
	if err := s.feed.Publish(ctx, ev); err != nil {
		zap.L().Warn("failed to publish feed event",
			zap.String("kind", string(ev.Kind)),
			zap.Uint("event_id", ev.EventID),
			zap.Error(err))
	}
}
