package services

import (
	"sort"

	"github.com/cglawson/Senior-Project-API/models"
)

// elixirCatalog is the static elixir table. Ids are stable and ascending; the
// boop pipeline processes active elixirs in this id order, so the order here
// is a behavioral contract, not cosmetics.
var elixirCatalog = []models.ElixirDefinition{
	// Poisons
	{ID: 1, Name: "Birch Blood", Description: "Chips a little off both sides of a boop.", Family: models.FamilyPoison, Effect: models.EffectFlatRandom, Tier: 1},
	{ID: 2, Name: "Deluxe Birch Blood", Description: "Chips a bit more off both sides of a boop.", Family: models.FamilyPoison, Effect: models.EffectFlatRandom, Tier: 2},
	{ID: 3, Name: "Glove Cleaner", Description: "A steady -5 to both sides.", Family: models.FamilyPoison, Effect: models.EffectFlatConstant, Tier: 1},
	{ID: 4, Name: "Deluxe Glove Cleaner", Description: "A steady -10 to both sides.", Family: models.FamilyPoison, Effect: models.EffectFlatConstant, Tier: 3},
	{ID: 5, Name: "Premium Glove Cleaner", Description: "A steady -15 to both sides.", Family: models.FamilyPoison, Effect: models.EffectFlatConstant, Tier: 4},
	{ID: 6, Name: "Altotoxin", Description: "Drains 1% of the target's received score from both sides.", Family: models.FamilyPoison, Effect: models.EffectPercentOfTarget, Tier: 1},
	{ID: 7, Name: "Deluxe Altotoxin", Description: "Drains 2% of the target's received score from both sides.", Family: models.FamilyPoison, Effect: models.EffectPercentOfTarget, Tier: 4},
	{ID: 8, Name: "Premium Altotoxin", Description: "Drains 10% of the target's received score from both sides.", Family: models.FamilyPoison, Effect: models.EffectPercentOfTarget, Tier: 5},
	{ID: 9, Name: "Rumpelstiltskin's Decoction", Description: "Heavy damage to the target at a smaller cost to you.", Family: models.FamilyPoison, Effect: models.EffectAsymmetric, Tier: 1},
	{ID: 10, Name: "Deluxe Rumpelstiltskin's Decoction", Description: "Refined decoction: better damage-to-cost ratio.", Family: models.FamilyPoison, Effect: models.EffectAsymmetric, Tier: 5},
	{ID: 11, Name: "Vampire Venom", Description: "Transfers 5% of the target's received score to you.", Family: models.FamilyPoison, Effect: models.EffectDrain, Tier: 1},
	{ID: 12, Name: "Deluxe Vampire Venom", Description: "Transfers 10% of the target's received score to you.", Family: models.FamilyPoison, Effect: models.EffectDrain, Tier: 5},
	// Boosters
	{ID: 13, Name: "Eagle Eye", Description: "Squares the running value of a boop, keeping its sign.", Family: models.FamilyBooster, Effect: models.EffectAmplify, Tier: 3},
	{ID: 14, Name: "Lite Corn Syrup", Description: "A small sweetener for both sides.", Family: models.FamilyBooster, Effect: models.EffectFlatBonus, Tier: 1},
	{ID: 15, Name: "Corn Syrup", Description: "A sweetener for both sides.", Family: models.FamilyBooster, Effect: models.EffectFlatBonus, Tier: 2},
	{ID: 16, Name: "High Fructose Corn Syrup", Description: "A generous sweetener for both sides.", Family: models.FamilyBooster, Effect: models.EffectFlatBonus, Tier: 3},
	{ID: 17, Name: "Super Electrolyte Punch", Description: "Boosts your running value by 5%.", Family: models.FamilyBooster, Effect: models.EffectPercentBoost, Tier: 1},
	{ID: 18, Name: "Deluxe Mega Electrolyte Punch", Description: "Boosts your running value by 25%.", Family: models.FamilyBooster, Effect: models.EffectPercentBoost, Tier: 4},
	{ID: 19, Name: "Premium Mondo Electrolyte Punch", Description: "Boosts your running value by 50%.", Family: models.FamilyBooster, Effect: models.EffectPercentBoost, Tier: 5},
	{ID: 20, Name: "Discontinued Cereal Sludge", Description: "Quarters the running value, then adds ten. Nobody knows why.", Family: models.FamilyBooster, Effect: models.EffectQuarterPlusTen, Tier: 1},
	// Shields
	{ID: 21, Name: "Wood Mitigation Shield", Description: "Blocks 10% of incoming damage.", Family: models.FamilyShield, Effect: models.EffectMitigation, Tier: 1},
	{ID: 22, Name: "Bronze Mitigation Shield", Description: "Blocks 25% of incoming damage.", Family: models.FamilyShield, Effect: models.EffectMitigation, Tier: 2},
	{ID: 23, Name: "Iron Mitigation Shield", Description: "Blocks 50% of incoming damage.", Family: models.FamilyShield, Effect: models.EffectMitigation, Tier: 3},
	{ID: 24, Name: "Rearden Steel Mitigation Shield", Description: "Blocks 75% of incoming damage.", Family: models.FamilyShield, Effect: models.EffectMitigation, Tier: 4},
	{ID: 25, Name: "Diamond Mitigation Shield", Description: "Blocks 95% of incoming damage.", Family: models.FamilyShield, Effect: models.EffectMitigation, Tier: 5},
	{ID: 26, Name: "Wood Negation Shield", Description: "Absorbs up to 2 points of incoming damage.", Family: models.FamilyShield, Effect: models.EffectNegation, Tier: 1},
	{ID: 27, Name: "Bronze Negation Shield", Description: "Absorbs up to 5 points of incoming damage.", Family: models.FamilyShield, Effect: models.EffectNegation, Tier: 2},
	{ID: 28, Name: "Iron Negation Shield", Description: "Absorbs up to 10 points of incoming damage.", Family: models.FamilyShield, Effect: models.EffectNegation, Tier: 3},
	{ID: 29, Name: "Rearden Steel Negation Shield", Description: "Absorbs up to 20 points of incoming damage.", Family: models.FamilyShield, Effect: models.EffectNegation, Tier: 4},
	{ID: 30, Name: "Diamond Negation Shield", Description: "Absorbs up to 30 points of incoming damage.", Family: models.FamilyShield, Effect: models.EffectNegation, Tier: 5},
	{ID: 31, Name: "Wood Reflection Shield", Description: "Reflects 5% of incoming damage back at the sender.", Family: models.FamilyShield, Effect: models.EffectReflection, Tier: 1},
	{ID: 32, Name: "Bronze Reflection Shield", Description: "Reflects 10% of incoming damage back at the sender.", Family: models.FamilyShield, Effect: models.EffectReflection, Tier: 2},
	{ID: 33, Name: "Iron Reflection Shield", Description: "Reflects 25% of incoming damage back at the sender.", Family: models.FamilyShield, Effect: models.EffectReflection, Tier: 3},
	{ID: 34, Name: "Rearden Steel Reflection Shield", Description: "Reflects 50% of incoming damage back at the sender.", Family: models.FamilyShield, Effect: models.EffectReflection, Tier: 4},
	{ID: 35, Name: "Diamond Reflection Shield", Description: "Reflects 95% of incoming damage back at the sender.", Family: models.FamilyShield, Effect: models.EffectReflection, Tier: 5},
	{ID: 36, Name: "Rearden Steel Inversion Shield", Description: "Converts incoming damage into 1.5x positive points.", Family: models.FamilyShield, Effect: models.EffectInversion, Tier: 4},
	{ID: 37, Name: "Diamond Inversion Shield", Description: "Converts incoming damage into 2x positive points.", Family: models.FamilyShield, Effect: models.EffectInversion, Tier: 5},
	// Antivenom
	{ID: 38, Name: "Antivenom", Description: "Completely counteracts incoming damage.", Family: models.FamilyAntivenom, Effect: models.EffectAntivenom, Tier: 1},
}

var (
	elixirsByID   map[int]models.ElixirDefinition
	elixirsByTier map[int][]int
)

func init() {
	elixirsByID = make(map[int]models.ElixirDefinition, len(elixirCatalog))
	elixirsByTier = make(map[int][]int)
	for _, def := range elixirCatalog {
		elixirsByID[def.ID] = def
		elixirsByTier[def.Tier] = append(elixirsByTier[def.Tier], def.ID)
	}
	for tier := range elixirsByTier {
		sort.Ints(elixirsByTier[tier])
	}
}

// LookupElixir returns the catalog definition for id. ok is false for ids the
// catalog does not know, which the boop engine treats as an anti-cheat signal.
func LookupElixir(id int) (models.ElixirDefinition, bool) {
	def, ok := elixirsByID[id]
	return def, ok
}

// ElixirsOfTier returns the ids of every catalog elixir of the given tier,
// ascending. Used by the reward draw.
func ElixirsOfTier(tier int) []int {
	return elixirsByTier[tier]
}

// ElixirCatalog returns the full catalog, ascending by id.
func ElixirCatalog() []models.ElixirDefinition {
	out := make([]models.ElixirDefinition, len(elixirCatalog))
	copy(out, elixirCatalog)
	return out
}
