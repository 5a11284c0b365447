package domain

import "time"

type Session struct {
	ID          uint      `json:"id"`
	EventID     uint      `json:"event_id"`
	SessionKey  string    `json:"session_key"`
	FirstSeenAt time.Time `json:"first_seen_at"`
	LastSeenAt  time.Time `json:"last_seen_at"`
	UserAgent   string    `json:"user_agent,omitempty"`
	IPHash      string    `json:"-"`
	IsBlocked   bool      `json:"is_blocked"`
}

// Visitor identifies the participant behind a request.
type Visitor struct {
	SessionKey string
	UserAgent  string
	IPHash     string
}
