package models

// ElixirFamily groups elixirs by what they do to a boop.
type ElixirFamily string

const (
	FamilyPoison    ElixirFamily = "poison"
	FamilyBooster   ElixirFamily = "booster"
	FamilyShield    ElixirFamily = "shield"
	FamilyAntivenom ElixirFamily = "antivenom"
)

// EffectKind is the dispatch tag for the effect handler an elixir runs.
// Several elixirs of different tiers share one kind.
type EffectKind string

const (
	EffectFlatRandom      EffectKind = "poison.flatRandom"
	EffectFlatConstant    EffectKind = "poison.flatConstant"
	EffectPercentOfTarget EffectKind = "poison.percentOfTarget"
	EffectAsymmetric      EffectKind = "poison.asymmetric"
	EffectDrain           EffectKind = "poison.drain"
	EffectAmplify         EffectKind = "booster.amplify"
	EffectFlatBonus       EffectKind = "booster.flatBonus"
	EffectPercentBoost    EffectKind = "booster.percentBoost"
	EffectQuarterPlusTen  EffectKind = "booster.quarterPlusTen"
	EffectMitigation      EffectKind = "shield.mitigation"
	EffectNegation        EffectKind = "shield.negation"
	EffectReflection      EffectKind = "shield.reflection"
	EffectInversion       EffectKind = "shield.inversion"
	EffectAntivenom       EffectKind = "antivenom.full"
)

// ElixirDefinition is one row of the static elixir catalog.
type ElixirDefinition struct {
	ID          int          `json:"elixirId"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Family      ElixirFamily `json:"family"`
	Effect      EffectKind   `json:"-"`
	Tier        int          `json:"tier"`
}
