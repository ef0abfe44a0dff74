package models

// Boop statuses
const (
	BoopStatusSuccess        = "success"
	BoopStatusCooldownActive = "cooldownActive"
	BoopStatusFailed         = "failed"
)

// RewardGrant is the elixir (if any) the initiator won for booping.
type RewardGrant struct {
	ElixirID    int    `json:"elixirId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// BoopResult is what one resolved boop returns to the API layer.
type BoopResult struct {
	Status               string       `json:"status"`
	Timestamp            string       `json:"timestamp,omitempty"`
	InitiatorValue       int64        `json:"initiatorValue"`
	TargetValue          int64        `json:"targetValue"`
	InitiatorElixirsUsed []string     `json:"initiatorElixirsUsed,omitempty"`
	TargetElixirsUsed    []string     `json:"targetElixirsUsed,omitempty"`
	Reward               *RewardGrant `json:"reward,omitempty"`
}

// BoopHistoryView is the "since you last checked" payload: every boop that
// landed on the caller since the marker, with the elixirs that fired in them.
type BoopHistoryView struct {
	Since      string              `json:"since"`
	Activities []ActivityRecord    `json:"activities"`
	Elixirs    []ElixirUsageRecord `json:"elixirsUsed"`
}
