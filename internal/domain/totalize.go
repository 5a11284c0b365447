package domain

import "time"

type SpotTotal struct {
	SpotID   uint   `json:"spot_id"`
	SpotName string `json:"spot_name"`
	Stamps   int64  `json:"stamps"`
}

type HourlyCount struct {
	Hour  time.Time `json:"hour"`
	Count int64     `json:"count"`
}

type SpotHourly struct {
	SpotID uint          `json:"spot_id"`
	Hours  []HourlyCount `json:"hours"`
}

type Summary struct {
	EventID     uint          `json:"event_id"`
	EventTitle  string        `json:"event_title"`
	TotalStamps int64         `json:"total_stamps"`
	SpotTotals  []SpotTotal   `json:"spot_totals"`
	SpotHourly  []SpotHourly  `json:"spot_hourly"`
	TotalGoals  int64         `json:"total_goals"`
	HourlyGoals []HourlyCount `json:"hourly_goals"`
	GeneratedAt time.Time     `json:"generated_at"`
}

type CodeLookupStatus string

const (
	CodeNotFound  CodeLookupStatus = "not_found"
	CodeNotGoaled CodeLookupStatus = "not_goaled"
	CodeGoaled    CodeLookupStatus = "goaled"
)

type CodeLookup struct {
	Code     string           `json:"code"`
	Status   CodeLookupStatus `json:"status"`
	GoaledAt *time.Time       `json:"goaled_at,omitempty"`
}

// FeedKind distinguishes live feed notifications.
type FeedKind string

const (
	FeedStamped FeedKind = "stamped"
	FeedGoaled  FeedKind = "goaled"
)

// FeedEvent is a notification only. Consumers must re-read state from the store.
type FeedEvent struct {
	Kind    FeedKind  `json:"kind"`
	EventID uint      `json:"event_id"`
	SpotID  uint      `json:"spot_id,omitempty"`
	At      time.Time `json:"at"`
}
