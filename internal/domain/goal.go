package domain

import "time"

type GoalState int

const (
	GoalPending GoalState = iota
	GoalGoaled
)

func (s GoalState) String() string {
	if s == GoalGoaled {
		return "goaled"
	}

	return "pending"
}

// Goal is a session's achievement record. A Pending goal has a code and no GoaledAt;
// a Goaled goal always has both, and never returns to Pending.
type Goal struct {
	ID              uint       `json:"id"`
	EventID         uint       `json:"event_id"`
	SessionID       uint       `json:"session_id"`
	AchievementCode string     `json:"achievement_code"`
	GoaledAt        *time.Time `json:"goaled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (g Goal) State() GoalState {
	if g.GoaledAt != nil {
		return GoalGoaled
	}

	return GoalPending
}

func (g Goal) IsGoaled() bool {
	return g.State() == GoalGoaled
}
