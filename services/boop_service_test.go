package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/cglawson/Senior-Project-API/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBoopStore is an in-memory BoopStore. CommitBoop re-checks the cooldown
// under the lock, mirroring the conditional write the production store does.
type fakeBoopStore struct {
	mu         sync.Mutex
	users      map[string]*models.User
	inventory  map[string][]models.InventoryEntry
	lastBoop   map[string]time.Time
	activities []models.ActivityRecord
	usage      []models.ElixirUsageRecord
	granted    map[string]map[int]int
	commitErr  error
	grantErr   error
}

func newFakeBoopStore() *fakeBoopStore {
	return &fakeBoopStore{
		users:     map[string]*models.User{},
		inventory: map[string][]models.InventoryEntry{},
		lastBoop:  map[string]time.Time{},
		granted:   map[string]map[int]int{},
	}
}

func (f *fakeBoopStore) addUser(userID string, sent, received int64) {
	f.users[userID] = &models.User{UserID: userID, SentScore: sent, ReceivedScore: received}
}

func (f *fakeBoopStore) addElixir(userID string, elixirID, quantity int) {
	f.inventory[userID] = append(f.inventory[userID], models.InventoryEntry{
		UserID:   userID,
		ElixirID: elixirID,
		Quantity: quantity,
		Active:   true,
	})
}

func (f *fakeBoopStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, ErrItemNotFound)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeBoopStore) ActiveElixirs(ctx context.Context, userID string) ([]models.InventoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var active []models.InventoryEntry
	for _, entry := range f.inventory[userID] {
		if entry.Active {
			active = append(active, entry)
		}
	}
	return active, nil
}

func (f *fakeBoopStore) LastBoopAt(ctx context.Context, pairID string) (time.Time, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	last, ok := f.lastBoop[pairID]
	return last, ok, nil
}

func (f *fakeBoopStore) CommitBoop(ctx context.Context, commit BoopCommit) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.commitErr != nil {
		return f.commitErr
	}

	pairID := commit.Activity.PairID
	if last, ok := f.lastBoop[pairID]; ok && last.After(commit.CooldownCutoff) {
		return ErrCooldownActive
	}

	stamped, err := time.Parse(time.RFC3339, commit.Activity.Timestamp)
	if err != nil {
		return err
	}
	f.lastBoop[pairID] = stamped
	f.activities = append(f.activities, commit.Activity)
	f.usage = append(f.usage, commit.Usage...)

	f.users[commit.Activity.InitiatorID].SentScore += commit.Activity.InitiatorValue
	f.users[commit.Activity.TargetID].ReceivedScore += commit.Activity.TargetValue

	for _, c := range commit.Consumed {
		entries := f.inventory[c.UserID]
		for i := range entries {
			if entries[i].ElixirID != c.ElixirID {
				continue
			}
			if entries[i].Quantity <= 1 {
				f.inventory[c.UserID] = append(entries[:i], entries[i+1:]...)
			} else {
				entries[i].Quantity--
			}
			break
		}
	}
	return nil
}

func (f *fakeBoopStore) GrantElixir(ctx context.Context, userID string, elixirID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.grantErr != nil {
		return f.grantErr
	}
	if f.granted[userID] == nil {
		f.granted[userID] = map[int]int{}
	}
	f.granted[userID][elixirID] += quantity
	return nil
}

// neverSource makes every Intn return 0, so the reward roll always lands on
// nothing. Tests that care about rewards use alwaysTier2Source instead.
type neverSource struct{}

func (neverSource) Int63() int64 { return 0 }
func (neverSource) Seed(int64)   {}

// alwaysTier2Source yields 50000 from Int31, landing every reward roll in the
// tier-2 band with quantity 1.
type alwaysTier2Source struct{}

func (alwaysTier2Source) Int63() int64 { return 50000 << 32 }
func (alwaysTier2Source) Seed(int64)   {}

func newTestBoopService(store BoopStore) *BoopService {
	rewards := &RewardService{Rand: rand.New(neverSource{})}
	return NewBoopService(store, rewards, rand.New(rand.NewSource(1)))
}

func TestResolveBoopFirstBoopSucceeds(t *testing.T) {
	store := newFakeBoopStore()
	store.addUser("alice", 0, 0)
	store.addUser("bob", 0, 0)
	bs := newTestBoopService(store)

	result, err := bs.ResolveBoop(context.Background(), "alice", "bob")
	require.NoError(t, err)

	assert.Equal(t, models.BoopStatusSuccess, result.Status)
	assert.Equal(t, int64(1), result.InitiatorValue)
	assert.Equal(t, int64(1), result.TargetValue)
	assert.Empty(t, result.InitiatorElixirsUsed)
	assert.Empty(t, result.TargetElixirsUsed)

	require.Len(t, store.activities, 1)
	assert.Equal(t, "alice#bob", store.activities[0].PairID)
	assert.Empty(t, store.usage)
	assert.Equal(t, int64(1), store.users["alice"].SentScore)
	assert.Equal(t, int64(1), store.users["bob"].ReceivedScore)
}

func TestResolveBoopRepeatWithinWindowRejected(t *testing.T) {
	store := newFakeBoopStore()
	store.addUser("alice", 0, 0)
	store.addUser("bob", 0, 0)
	bs := newTestBoopService(store)

	_, err := bs.ResolveBoop(context.Background(), "alice", "bob")
	require.NoError(t, err)

	result, err := bs.ResolveBoop(context.Background(), "alice", "bob")
	assert.ErrorIs(t, err, ErrCooldownActive)
	assert.Equal(t, models.BoopStatusCooldownActive, result.Status)

	// Nothing moved on the rejected attempt.
	assert.Len(t, store.activities, 1)
	assert.Equal(t, int64(1), store.users["alice"].SentScore)
	assert.Equal(t, int64(1), store.users["bob"].ReceivedScore)
}

func TestResolveBoopReverseDirectionIndependent(t *testing.T) {
	store := newFakeBoopStore()
	store.addUser("alice", 0, 0)
	store.addUser("bob", 0, 0)
	bs := newTestBoopService(store)

	_, err := bs.ResolveBoop(context.Background(), "alice", "bob")
	require.NoError(t, err)

	result, err := bs.ResolveBoop(context.Background(), "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, models.BoopStatusSuccess, result.Status)
	assert.Len(t, store.activities, 2)
}

func TestResolveBoopAllowedAfterWindowElapses(t *testing.T) {
	store := newFakeBoopStore()
	store.addUser("alice", 0, 0)
	store.addUser("bob", 0, 0)
	bs := newTestBoopService(store)

	base := time.Now().UTC()
	bs.now = func() time.Time { return base }
	_, err := bs.ResolveBoop(context.Background(), "alice", "bob")
	require.NoError(t, err)

	bs.now = func() time.Time { return base.Add(CooldownWindow - time.Second) }
	_, err = bs.ResolveBoop(context.Background(), "alice", "bob")
	assert.ErrorIs(t, err, ErrCooldownActive)

	bs.now = func() time.Time { return base.Add(CooldownWindow + time.Second) }
	result, err := bs.ResolveBoop(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, models.BoopStatusSuccess, result.Status)
}

func TestResolveBoopSelfBoopRejected(t *testing.T) {
	store := newFakeBoopStore()
	store.addUser("alice", 0, 0)
	bs := newTestBoopService(store)

	result, err := bs.ResolveBoop(context.Background(), "alice", "alice")
	assert.ErrorIs(t, err, ErrSelfBoop)
	assert.Equal(t, models.BoopStatusFailed, result.Status)
	assert.Empty(t, store.activities)
}

func TestResolveBoopAppliesPoison(t *testing.T) {
	store := newFakeBoopStore()
	store.addUser("alice", 0, 0)
	store.addUser("bob", 0, 0)
	store.addElixir("alice", 3, 1) // Glove Cleaner: -5 to both sides
	bs := newTestBoopService(store)

	result, err := bs.ResolveBoop(context.Background(), "alice", "bob")
	require.NoError(t, err)

	assert.Equal(t, int64(-4), result.InitiatorValue)
	assert.Equal(t, int64(-4), result.TargetValue)
	assert.Equal(t, []string{"Glove Cleaner"}, result.InitiatorElixirsUsed)

	// Single-quantity entry is gone after the boop.
	assert.Empty(t, store.inventory["alice"])

	require.Len(t, store.usage, 1)
	assert.Equal(t, 3, store.usage[0].ElixirID)
	assert.Equal(t, models.SideInitiator, store.usage[0].Side)
	assert.Equal(t, "bob", store.usage[0].TargetID)
}

func TestResolveBoopShieldBlocksIncomingDamage(t *testing.T) {
	store := newFakeBoopStore()
	store.addUser("alice", 0, 0)
	store.addUser("bob", 0, 0)
	store.addElixir("alice", 3, 1)  // Glove Cleaner: -5 both sides
	store.addElixir("bob", 23, 1)   // Iron Mitigation Shield: blocks 50%
	bs := newTestBoopService(store)

	result, err := bs.ResolveBoop(context.Background(), "alice", "bob")
	require.NoError(t, err)

	assert.Equal(t, int64(-4), result.InitiatorValue)
	assert.Equal(t, int64(-2), result.TargetValue)
	assert.Equal(t, []string{"Iron Mitigation Shield"}, result.TargetElixirsUsed)
	assert.Empty(t, store.inventory["bob"])

	require.Len(t, store.usage, 2)
	assert.Equal(t, models.SideTarget, store.usage[1].Side)
}

func TestResolveBoopIdleShieldNotConsumed(t *testing.T) {
	store := newFakeBoopStore()
	store.addUser("alice", 0, 0)
	store.addUser("bob", 0, 0)
	store.addElixir("bob", 23, 1) // shield with no incoming damage
	bs := newTestBoopService(store)

	result, err := bs.ResolveBoop(context.Background(), "alice", "bob")
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.TargetValue)
	assert.Empty(t, result.TargetElixirsUsed)
	assert.Len(t, store.inventory["bob"], 1, "idle shield must not be consumed")
	assert.Empty(t, store.usage)
}

func TestResolveBoopUnknownElixirResetsValues(t *testing.T) {
	store := newFakeBoopStore()
	store.addUser("alice", 0, 0)
	store.addUser("bob", 0, 0)
	store.addElixir("alice", 3, 1)   // applies first (ascending id order)
	store.addElixir("alice", 999, 2) // not in the catalog
	bs := newTestBoopService(store)

	result, err := bs.ResolveBoop(context.Background(), "alice", "bob")
	require.NoError(t, err)

	// The unknown id wiped the poison's work back to the baseline.
	assert.Equal(t, int64(1), result.InitiatorValue)
	assert.Equal(t, int64(1), result.TargetValue)
	assert.Equal(t, []string{"Glove Cleaner"}, result.InitiatorElixirsUsed)

	// Both entries were consumed, but only the known one left a usage record.
	require.Len(t, store.inventory["alice"], 1)
	assert.Equal(t, 999, store.inventory["alice"][0].ElixirID)
	assert.Equal(t, 1, store.inventory["alice"][0].Quantity)
	require.Len(t, store.usage, 1)
	assert.Equal(t, 3, store.usage[0].ElixirID)
}

func TestResolveBoopCommitFailure(t *testing.T) {
	store := newFakeBoopStore()
	store.addUser("alice", 0, 0)
	store.addUser("bob", 0, 0)
	store.commitErr = errors.New("dynamo is down")
	bs := newTestBoopService(store)

	result, err := bs.ResolveBoop(context.Background(), "alice", "bob")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCooldownActive)
	assert.Equal(t, models.BoopStatusFailed, result.Status)
	assert.Empty(t, store.granted, "no reward on a failed commit")
}

func TestResolveBoopRewardGranted(t *testing.T) {
	store := newFakeBoopStore()
	store.addUser("alice", 0, 0)
	store.addUser("bob", 0, 0)
	bs := newTestBoopService(store)
	bs.Rewards = &RewardService{Rand: rand.New(alwaysTier2Source{})}

	result, err := bs.ResolveBoop(context.Background(), "alice", "bob")
	require.NoError(t, err)

	require.NotNil(t, result.Reward)
	def, ok := LookupElixir(result.Reward.ElixirID)
	require.True(t, ok)
	assert.Equal(t, 2, def.Tier)
	assert.Equal(t, result.Reward.Quantity, store.granted["alice"][result.Reward.ElixirID])
}

func TestResolveBoopRewardGrantFailureNotFatal(t *testing.T) {
	store := newFakeBoopStore()
	store.addUser("alice", 0, 0)
	store.addUser("bob", 0, 0)
	store.grantErr = errors.New("grant write failed")
	bs := newTestBoopService(store)
	bs.Rewards = &RewardService{Rand: rand.New(alwaysTier2Source{})}

	result, err := bs.ResolveBoop(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, models.BoopStatusSuccess, result.Status)
	assert.Nil(t, result.Reward, "a reward that failed to persist is not reported")
	assert.Len(t, store.activities, 1)
}

func TestResolveBoopConcurrentSamePairSingleWinner(t *testing.T) {
	store := newFakeBoopStore()
	store.addUser("alice", 0, 0)
	store.addUser("bob", 0, 0)
	bs := newTestBoopService(store)

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = bs.ResolveBoop(context.Background(), "alice", "bob")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrCooldownActive)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Len(t, store.activities, 1)
	assert.Equal(t, int64(1), store.users["alice"].SentScore)
	assert.Equal(t, int64(1), store.users["bob"].ReceivedScore)
}

func TestResolveBoopConcurrentDisjointPairsSharedRand(t *testing.T) {
	store := newFakeBoopStore()
	store.addUser("alice", 0, 0)
	store.addUser("bob", 0, 0)
	store.addUser("carol", 0, 0)
	store.addUser("dave", 0, 0)
	// Birch Blood draws from the generator inside the pipeline, so both
	// resolutions hit the shared rand at the same time as the reward rolls.
	store.addElixir("alice", 1, 1)
	store.addElixir("carol", 1, 1)

	shared := NewLockedRand(1)
	bs := NewBoopService(store, &RewardService{Rand: shared}, shared)

	pairs := [][2]string{{"alice", "bob"}, {"carol", "dave"}}
	var wg sync.WaitGroup
	errs := make([]error, len(pairs))
	for i, pair := range pairs {
		wg.Add(1)
		go func(i int, initiator, target string) {
			defer wg.Done()
			_, errs[i] = bs.ResolveBoop(context.Background(), initiator, target)
		}(i, pair[0], pair[1])
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "pair %d", i)
	}
	assert.Len(t, store.activities, 2)
}

func TestIsEligible(t *testing.T) {
	store := newFakeBoopStore()
	store.addUser("alice", 0, 0)
	store.addUser("bob", 0, 0)
	bs := newTestBoopService(store)

	ok, err := bs.IsEligible(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.True(t, ok, "never-booped pair is eligible")

	ok, err = bs.IsEligible(context.Background(), "alice", "alice")
	require.NoError(t, err)
	assert.False(t, ok, "self pair is never eligible")

	_, err = bs.ResolveBoop(context.Background(), "alice", "bob")
	require.NoError(t, err)

	ok, err = bs.IsEligible(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = bs.IsEligible(context.Background(), "bob", "alice")
	require.NoError(t, err)
	assert.True(t, ok, "reverse direction has its own cooldown")
}
