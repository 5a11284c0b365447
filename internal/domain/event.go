package domain

import (
	"errors"
	"time"
)

var (
	ErrEventNotStarted = errors.New("event has not started yet")
	ErrEventEnded      = errors.New("event has already ended")
)

type EventStatus int

const (
	EventStatusDraft  EventStatus = 0
	EventStatusActive EventStatus = 1
	EventStatusClosed EventStatus = 2
)

type Event struct {
	ID                 uint        `json:"id"`
	Title              string      `json:"title"`
	Status             EventStatus `json:"status"`
	StartsAt           *time.Time  `json:"starts_at,omitempty"`
	EndsAt             *time.Time  `json:"ends_at,omitempty"`
	RequiredStampCount *int        `json:"required_stamp_count,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// CheckWindow reports whether now lies inside the event validity window.
// A nil bound is open on that side.
func (e Event) CheckWindow(now time.Time) error {
	if e.StartsAt != nil && now.Before(*e.StartsAt) {
		return ErrEventNotStarted
	}
	if e.EndsAt != nil && now.After(*e.EndsAt) {
		return ErrEventEnded
	}

	return nil
}

type Spot struct {
	ID          uint      `json:"id"`
	EventID     uint      `json:"event_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type RewardKind int

const (
	RewardKindRequiredSpots RewardKind = 1
	RewardKindBoth          RewardKind = 2
	RewardKindStampCount    RewardKind = 3
)

// GatesOnSpots reports whether rewards of this kind contribute to the required spot set.
func (k RewardKind) GatesOnSpots() bool {
	return k == RewardKindRequiredSpots || k == RewardKindBoth
}

type Reward struct {
	ID                 uint       `json:"id"`
	EventID            uint       `json:"event_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Kind               RewardKind `json:"kind"`
	RequiredStampCount *int       `json:"required_stamp_count,omitempty"`
	IsActive           bool       `json:"is_active"`
	RequiredSpotIDs    []uint     `json:"required_spot_ids"`
}

// SpotSet is a set of spot ids.
type SpotSet map[uint]struct{}

func NewSpotSet(ids ...uint) SpotSet {
	set := make(SpotSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set
}

func (s SpotSet) Has(id uint) bool {
	_, ok := s[id]
	return ok
}

// ContainsAll reports whether every id of other is in s. An empty other is always contained.
func (s SpotSet) ContainsAll(other SpotSet) bool {
	for id := range other {
		if !s.Has(id) {
			return false
		}
	}

	return true
}

// Missing returns the ids of other that are not in s.
func (s SpotSet) Missing(other SpotSet) []uint {
	var missing []uint
	for id := range other {
		if !s.Has(id) {
			missing = append(missing, id)
		}
	}

	return missing
}

// NewEvent is the input to event creation. Secrets are generated by the service.
type NewEvent struct {
	Title    string
	StartsAt *time.Time
	EndsAt   *time.Time
	Spots    []NewSpot
}

type NewSpot struct {
	Name        string
	Description string
	IsRequired  bool
}

// CreatedEvent carries the raw secrets of a freshly created event. They are never stored
// and cannot be recovered afterwards.
type CreatedEvent struct {
	Event            Event         `json:"event"`
	GoalToken        string        `json:"goal_token"`
	TotalizeToken    string        `json:"totalize_token"`
	TotalizePassword string        `json:"totalize_password"`
	Spots            []CreatedSpot `json:"spots"`
	RequiredSpotIDs  []uint        `json:"required_spot_ids"`
}

type CreatedSpot struct {
	Spot       Spot   `json:"spot"`
	Token      string `json:"token"`
	IsRequired bool   `json:"is_required"`
}

// EventSecrets holds the hashes written alongside a new event.
type EventSecrets struct {
	GoalTokenHash        string
	TotalizeTokenHash    string
	TotalizePasswordHash string
	SpotTokenHashes      []string
}
