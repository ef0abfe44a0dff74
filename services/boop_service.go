package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/cglawson/Senior-Project-API/models"

	"github.com/google/uuid"
)

// CooldownWindow is the minimum time between two boops sharing the same
// ordered (initiator, target) pair. The reverse direction is independent.
const CooldownWindow = 10 * time.Minute

var (
	ErrSelfBoop       = errors.New("users cannot boop themselves")
	ErrCooldownActive = errors.New("boop cooldown active for this pair")
)

// ConsumedElixir is one inventory decrement the commit must apply. Quantity
// is the quantity read during the pipeline; the store uses it as an
// optimistic lock so a concurrent consume cancels the whole transaction.
type ConsumedElixir struct {
	UserID   string
	ElixirID int
	Quantity int
}

// BoopCommit is everything a resolved boop persists: the activity record,
// both score updates, the usage history and the inventory decrements, plus
// the cooldown precondition. The store applies it atomically or not at all.
type BoopCommit struct {
	Activity       models.ActivityRecord
	CooldownCutoff time.Time
	Usage          []models.ElixirUsageRecord
	Consumed       []ConsumedElixir
}

// BoopStore is the persistence the engine needs. The production
// implementation is DynamoBoopStore; tests run against an in-memory fake.
type BoopStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// ActiveElixirs lists the user's inventory entries flagged active.
	ActiveElixirs(ctx context.Context, userID string) ([]models.InventoryEntry, error)

	// LastBoopAt returns the timestamp of the latest boop for the exact
	// ordered pair, or ok=false when the pair has never booped.
	LastBoopAt(ctx context.Context, pairID string) (time.Time, bool, error)

	// CommitBoop applies the whole commit atomically. It must fail with
	// ErrCooldownActive when another boop for the pair landed after
	// commit.CooldownCutoff.
	CommitBoop(ctx context.Context, commit BoopCommit) error

	// GrantElixir adds quantity of an elixir to the user's inventory,
	// creating the entry if needed.
	GrantElixir(ctx context.Context, userID string, elixirID, quantity int) error
}

// BoopService resolves boops between two users.
type BoopService struct {
	Store    BoopStore
	Rewards  *RewardService
	rand     *rand.Rand
	cooldown time.Duration
	now      func() time.Time
}

func NewBoopService(store BoopStore, rewards *RewardService, rng *rand.Rand) *BoopService {
	return &BoopService{
		Store:    store,
		Rewards:  rewards,
		rand:     rng,
		cooldown: CooldownWindow,
		now:      time.Now,
	}
}

// PairID is the ordered-pair key the cooldown gate and activity log use.
func PairID(initiatorID, targetID string) string {
	return initiatorID + "#" + targetID
}

// IsEligible reports whether initiator may boop target right now. Lookup
// errors fail closed: a pair is never eligible on a broken read.
func (bs *BoopService) IsEligible(ctx context.Context, initiatorID, targetID string) (bool, error) {
	if initiatorID == targetID {
		return false, nil
	}

	last, ok, err := bs.Store.LastBoopAt(ctx, PairID(initiatorID, targetID))
	if err != nil {
		return false, fmt.Errorf("cooldown lookup failed: %w", err)
	}
	if !ok {
		return true, nil
	}
	return bs.now().Sub(last) >= bs.cooldown, nil
}

// ResolveBoop runs one full boop: gate check, both effect pipelines, the
// atomic commit, and the reward draw. The returned result always carries a
// status; rejections also return a sentinel error.
func (bs *BoopService) ResolveBoop(ctx context.Context, initiatorID, targetID string) (*models.BoopResult, error) {
	if initiatorID == targetID {
		return &models.BoopResult{Status: models.BoopStatusFailed}, ErrSelfBoop
	}

	eligible, err := bs.IsEligible(ctx, initiatorID, targetID)
	if err != nil {
		return &models.BoopResult{Status: models.BoopStatusFailed}, err
	}
	if !eligible {
		return &models.BoopResult{Status: models.BoopStatusCooldownActive}, ErrCooldownActive
	}

	initiator, err := bs.Store.GetUser(ctx, initiatorID)
	if err != nil {
		return &models.BoopResult{Status: models.BoopStatusFailed}, fmt.Errorf("failed to load initiator: %w", err)
	}
	target, err := bs.Store.GetUser(ctx, targetID)
	if err != nil {
		return &models.BoopResult{Status: models.BoopStatusFailed}, fmt.Errorf("failed to load target: %w", err)
	}

	now := bs.now().UTC()
	timestamp := now.Format(time.RFC3339)

	// Scores are read once at resolution start; percent effects see the
	// ledgers as they were when the boop began.
	ctxScores := struct{ sent, received float64 }{
		sent:     float64(initiator.SentScore),
		received: float64(target.ReceivedScore),
	}

	initiatorValue, targetValue := 1.0, 1.0
	var initiatorUsed, targetUsed []string
	var usage []models.ElixirUsageRecord
	var consumed []ConsumedElixir

	runPipeline := func(ownerID, side string, entries []models.InventoryEntry) {
		// Ascending elixir id is a behavioral contract: amplify and
		// percent-boost read the current running value, so order
		// changes outcomes.
		sort.Slice(entries, func(i, j int) bool { return entries[i].ElixirID < entries[j].ElixirID })

		for _, entry := range entries {
			def, known := LookupElixir(entry.ElixirID)
			if !known {
				// Anti-cheat: an id the catalog has never issued wipes
				// everything accumulated so far and is still consumed.
				log.Printf("⚠️ Unknown elixir id %d active for user %s; resetting boop values", entry.ElixirID, ownerID)
				initiatorValue, targetValue = 1, 1
				consumed = append(consumed, ConsumedElixir{UserID: ownerID, ElixirID: entry.ElixirID, Quantity: entry.Quantity})
				continue
			}

			delta := effectHandlers[def.Effect](def.Tier, EffectContext{
				InitiatorValue:      initiatorValue,
				TargetValue:         targetValue,
				InitiatorSentScore:  ctxScores.sent,
				TargetReceivedScore: ctxScores.received,
				Rand:                bs.rand,
			})

			if conditionalEffects[def.Effect] {
				own := delta.Initiator
				if side == models.SideTarget {
					own = delta.Target
				}
				if own <= 0 {
					continue
				}
			}

			initiatorValue += delta.Initiator
			targetValue += delta.Target

			consumed = append(consumed, ConsumedElixir{UserID: ownerID, ElixirID: entry.ElixirID, Quantity: entry.Quantity})
			usage = append(usage, models.ElixirUsageRecord{
				TargetID:    targetID,
				SortKey:     timestamp + "#" + uuid.NewString(),
				UsageID:     uuid.NewString(),
				Timestamp:   timestamp,
				InitiatorID: initiatorID,
				ElixirID:    def.ID,
				Side:        side,
			})
			if side == models.SideInitiator {
				initiatorUsed = append(initiatorUsed, def.Name)
			} else {
				targetUsed = append(targetUsed, def.Name)
			}
		}
	}

	initiatorElixirs, err := bs.Store.ActiveElixirs(ctx, initiatorID)
	if err != nil {
		return &models.BoopResult{Status: models.BoopStatusFailed}, fmt.Errorf("failed to load initiator inventory: %w", err)
	}
	runPipeline(initiatorID, models.SideInitiator, initiatorElixirs)

	targetElixirs, err := bs.Store.ActiveElixirs(ctx, targetID)
	if err != nil {
		return &models.BoopResult{Status: models.BoopStatusFailed}, fmt.Errorf("failed to load target inventory: %w", err)
	}
	runPipeline(targetID, models.SideTarget, targetElixirs)

	// Rounding happens here and nowhere earlier.
	finalInitiator := int64(math.Round(initiatorValue))
	finalTarget := int64(math.Round(targetValue))

	commit := BoopCommit{
		Activity: models.ActivityRecord{
			PairID:         PairID(initiatorID, targetID),
			Timestamp:      timestamp,
			InitiatorID:    initiatorID,
			TargetID:       targetID,
			InitiatorValue: finalInitiator,
			TargetValue:    finalTarget,
		},
		CooldownCutoff: now.Add(-bs.cooldown),
		Usage:          usage,
		Consumed:       consumed,
	}

	if err := bs.Store.CommitBoop(ctx, commit); err != nil {
		if errors.Is(err, ErrCooldownActive) {
			// Another boop for this pair won the race.
			return &models.BoopResult{Status: models.BoopStatusCooldownActive}, ErrCooldownActive
		}
		return &models.BoopResult{Status: models.BoopStatusFailed}, fmt.Errorf("boop commit failed: %w", err)
	}

	result := &models.BoopResult{
		Status:               models.BoopStatusSuccess,
		Timestamp:            timestamp,
		InitiatorValue:       finalInitiator,
		TargetValue:          finalTarget,
		InitiatorElixirsUsed: initiatorUsed,
		TargetElixirsUsed:    targetUsed,
	}

	if reward := bs.Rewards.Draw(); reward != nil {
		if err := bs.Store.GrantElixir(ctx, initiatorID, reward.ElixirID, reward.Quantity); err != nil {
			// The boop itself is committed; a lost reward is logged, not fatal.
			log.Printf("Failed to grant boop reward to %s: %v", initiatorID, err)
		} else {
			result.Reward = reward
		}
	}

	return result, nil
}
