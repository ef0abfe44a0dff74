package services

import (
	"math/rand"

	"github.com/cglawson/Senior-Project-API/models"
)

// Reward roll thresholds over [0, 100000]. Roughly: 25% nothing, 25% tier 1,
// 19% tier 2, 16% tier 3, 9% tier 4, 6% tier 5.
var rewardThresholds = []struct {
	below int
	tier  int
}{
	{25000, 0}, // nothing
	{50000, 1},
	{69000, 2},
	{85000, 3},
	{94000, 4},
	{100001, 5},
}

// RewardService draws the elixir reward a successful boop grants.
type RewardService struct {
	Rand *rand.Rand
}

// Draw rolls for a reward. A nil result means the roll landed on nothing.
func (rs *RewardService) Draw() *models.RewardGrant {
	roll := rs.Rand.Intn(100001)

	tier := 0
	for _, t := range rewardThresholds {
		if roll < t.below {
			tier = t.tier
			break
		}
	}
	if tier == 0 {
		return nil
	}

	pool := ElixirsOfTier(tier)
	if len(pool) == 0 {
		return nil
	}
	id := pool[rs.Rand.Intn(len(pool))]
	def, _ := LookupElixir(id)

	return &models.RewardGrant{
		ElixirID:    def.ID,
		Name:        def.Name,
		Description: def.Description,
		Quantity:    1 + rs.Rand.Intn(2),
	}
}
