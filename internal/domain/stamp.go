package domain

import "time"

// ScanResult classifies a scan attempt. Participants only ever see ScanSuccess,
// ScanDuplicate and ScanAlreadyGoaled; the others exist for the audit log.
type ScanResult int

const (
	ScanSuccess       ScanResult = 0
	ScanDuplicate     ScanResult = 1
	ScanInvalidToken  ScanResult = 2
	ScanBlocked       ScanResult = 4
	ScanAlreadyGoaled ScanResult = 5
)

func (r ScanResult) String() string {
	switch r {
	case ScanSuccess:
		return "success"
	case ScanDuplicate:
		return "duplicate"
	case ScanInvalidToken:
		return "invalid_token"
	case ScanBlocked:
		return "blocked"
	case ScanAlreadyGoaled:
		return "already_goaled"
	default:
		return "unknown"
	}
}

type Stamp struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	SpotID    uint      `json:"spot_id"`
	SessionID uint      `json:"session_id"`
	StampedAt time.Time `json:"stamped_at"`
}

type ScanLog struct {
	ID           uint       `json:"id"`
	EventID      uint       `json:"event_id"`
	SpotID       uint       `json:"spot_id"`
	SessionID    uint       `json:"session_id"`
	ScannedAt    time.Time  `json:"scanned_at"`
	Result       ScanResult `json:"result"`
	RawTokenHash string     `json:"raw_token_hash"`
}

// ScanAttempt is one presented spot token, already resolved to a session.
type ScanAttempt struct {
	EventID        uint
	SpotID         uint
	SessionID      uint
	ScannedAt      time.Time
	PresentedToken string
}
