package response

import "time"

// Outcome is the body of participant actions. Expected business refusals such as a duplicate
// stamp or missing requirements are reported with Success false and a message, not as errors.
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// StampResponse carries the ledger classification (0, 1 or 5) only when the ledger decided the scan.
type StampResponse struct {
	Outcome
	Stamped bool `json:"stamped"`
	Result  *int `json:"result,omitempty"`
}

type AchievementResponse struct {
	Outcome
	Code string `json:"code,omitempty"`
}

type StampGoalStatusResponse struct {
	Goaled bool `json:"goaled"`
}

type FinalizeResponse struct {
	Outcome
	Code          string     `json:"code,omitempty"`
	GoaledAt      *time.Time `json:"goaled_at,omitempty"`
	AlreadyGoaled bool       `json:"already_goaled"`
}

type TotalizeAuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type HealthcheckResponse struct {
	Status string `json:"status"`
}
