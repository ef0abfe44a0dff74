package models

// ActivityRecord is the immutable result of one resolved boop. PairID is
// "initiatorId#targetId"; the latest record for that exact ordered pair is
// what the cooldown gate keys on.
type ActivityRecord struct {
	PairID         string `dynamodbav:"pairId" json:"-"`
	Timestamp      string `dynamodbav:"timestamp" json:"timestamp"`
	InitiatorID    string `dynamodbav:"initiatorId" json:"initiatorId"`
	TargetID       string `dynamodbav:"targetId" json:"targetId"`
	InitiatorValue int64  `dynamodbav:"initiatorValue" json:"initiatorValue"`
	TargetValue    int64  `dynamodbav:"targetValue" json:"targetValue"`
}

// UsageSide marks which party's inventory an elixir fired from.
const (
	SideInitiator = "initiator"
	SideTarget    = "target"
)

// ElixirUsageRecord is one fired elixir within a boop. Keyed by the boop's
// target so the "since you last checked" view is a single query.
type ElixirUsageRecord struct {
	TargetID    string `dynamodbav:"targetId" json:"targetId"`
	SortKey     string `dynamodbav:"sortKey" json:"-"` // timestamp#usageId
	UsageID     string `dynamodbav:"usageId" json:"usageId"`
	Timestamp   string `dynamodbav:"timestamp" json:"timestamp"`
	InitiatorID string `dynamodbav:"initiatorId" json:"initiatorId"`
	ElixirID    int    `dynamodbav:"elixirId" json:"elixirId"`
	Side        string `dynamodbav:"side" json:"side"`
}

// BoopCooldown mirrors the timestamp of the latest activity per ordered pair.
// It exists so the gate can be enforced with one conditional write.
type BoopCooldown struct {
	PairID     string `dynamodbav:"pairId"`
	LastBoopAt string `dynamodbav:"lastBoopAt"`
}

const (
	ActivitiesTable  = "Activities"
	ElixirUsageTable = "ElixirUsage"
	CooldownsTable   = "BoopCooldowns"
)

// ActivityTargetIndex is the GSI on Activities keyed by targetId/timestamp,
// used by the "since you last checked" view.
const ActivityTargetIndex = "targetId-index"
