package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/vietanh2810/qmikke-api/internal/domain"
	"github.com/vietanh2810/qmikke-api/internal/repository"
)

type TotalizeRepository interface {
	CountStampsBySpot(ctx context.Context, eventID uint) (map[uint]int64, error)
	FindStampTimesBySpot(ctx context.Context, eventID uint) (map[uint][]time.Time, error)
	CountGoals(ctx context.Context, eventID uint) (int64, error)
	FindGoalTimes(ctx context.Context, eventID uint) ([]time.Time, error)
}

type GoalCodeRepository interface {
	FindByCode(ctx context.Context, eventID uint, code string) (domain.Goal, error)
}

type OpenEventRepository interface {
	FindOpen(ctx context.Context, at time.Time) ([]domain.Event, error)
}

// TotalizeService serves the organizer's tally of an event.
type TotalizeService struct {
	events   *EventService
	verifier *TokenVerifier
	repo     TotalizeRepository
	goals    GoalCodeRepository
	open     OpenEventRepository
	now      func() time.Time
}

func NewTotalizeService(events *EventService, verifier *TokenVerifier, repo TotalizeRepository, goals GoalCodeRepository, open OpenEventRepository) *TotalizeService {
	return &TotalizeService{
		events:   events,
		verifier: verifier,
		repo:     repo,
		goals:    goals,
		open:     open,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Authorize requires both the totalize token and the password of the event.
func (s *TotalizeService) Authorize(ctx context.Context, eventID uint, token, password string) (domain.Event, error) {
	tokenOK, err := s.verifier.Verify(ctx, domain.TokenTotalize, eventID, token, 0)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.verifier.Verify -> %w", err)
	}
	passwordOK, err := s.verifier.Verify(ctx, domain.TokenTotalizePassword, eventID, password, 0)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.verifier.Verify -> %w", err)
	}
	if !tokenOK || !passwordOK {
		return domain.Event{}, ErrTotalizeDenied
	}

	return s.events.GetEvent(ctx, eventID)
}

func (s *TotalizeService) Summary(ctx context.Context, eventID uint) (domain.Summary, error) {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return domain.Summary{}, err
	}

	spots, err := s.events.GetActiveSpots(ctx, eventID)
	if err != nil {
		return domain.Summary{}, err
	}

	counts, err := s.repo.CountStampsBySpot(ctx, eventID)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("s.repo.CountStampsBySpot -> %w", err)
	}

	stampTimes, err := s.repo.FindStampTimesBySpot(ctx, eventID)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("s.repo.FindStampTimesBySpot -> %w", err)
	}

	goals, err := s.repo.CountGoals(ctx, eventID)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("s.repo.CountGoals -> %w", err)
	}

	goalTimes, err := s.repo.FindGoalTimes(ctx, eventID)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("s.repo.FindGoalTimes -> %w", err)
	}

	summary := domain.Summary{
		EventID:     event.ID,
		EventTitle:  event.Title,
		TotalGoals:  goals,
		HourlyGoals: bucketHourly(goalTimes),
		GeneratedAt: s.now(),
	}
	for _, spot := range spots {
		summary.TotalStamps += counts[spot.ID]
		summary.SpotTotals = append(summary.SpotTotals, domain.SpotTotal{
			SpotID:   spot.ID,
			SpotName: spot.Name,
			Stamps:   counts[spot.ID],
		})
		summary.SpotHourly = append(summary.SpotHourly, domain.SpotHourly{
			SpotID: spot.ID,
			Hours:  bucketHourly(stampTimes[spot.ID]),
		})
	}

	return summary, nil
}

// NormalizeCode drops dashes and whitespace, as codes are often read out in 4-4 groups.
func NormalizeCode(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

func (s *TotalizeService) LookupCode(ctx context.Context, eventID uint, raw string) (domain.CodeLookup, error) {
	code := NormalizeCode(raw)
	lookup := domain.CodeLookup{Code: code, Status: domain.CodeNotFound}
	if code == "" {
		return lookup, nil
	}

	goal, err := s.goals.FindByCode(ctx, eventID, code)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return lookup, nil
		}
		return domain.CodeLookup{}, fmt.Errorf("s.goals.FindByCode -> %w", err)
	}

	if !goal.IsGoaled() {
		lookup.Status = domain.CodeNotGoaled
		return lookup, nil
	}

	lookup.Status = domain.CodeGoaled
	lookup.GoaledAt = goal.GoaledAt

	return lookup, nil
}

// OpenEventGoals counts goaled sessions of every event open at the given time.
func (s *TotalizeService) OpenEventGoals(ctx context.Context, at time.Time) (map[uint]int64, error) {
	events, err := s.open.FindOpen(ctx, at)
	if err != nil {
		return nil, fmt.Errorf("s.open.FindOpen -> %w", err)
	}

	counts := make(map[uint]int64, len(events))
	for _, e := range events {
		n, err := s.repo.CountGoals(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.CountGoals -> %w", err)
		}
		counts[e.ID] = n
	}

	return counts, nil
}

func bucketHourly(times []time.Time) []domain.HourlyCount {
	buckets := make(map[time.Time]int64)
	for _, t := range times {
		buckets[t.UTC().Truncate(time.Hour)]++
	}

	out := make([]domain.HourlyCount, 0, len(buckets))
	for hour, n := range buckets {
		out = append(out, domain.HourlyCount{Hour: hour, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour.Before(out[j].Hour) })

	return out
}
