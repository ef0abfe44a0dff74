package services

import (
	"math/rand"
	"testing"

	"github.com/cglawson/Senior-Project-API/models"

	"github.com/stretchr/testify/assert"
)

func effectCtx(initiator, target float64) EffectContext {
	return EffectContext{
		InitiatorValue: initiator,
		TargetValue:    target,
		Rand:           rand.New(rand.NewSource(1)),
	}
}

func TestPoisonFlatRandomStaysInRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		d := poisonFlatRandom(1, effectCtx(1, 1))
		assert.Equal(t, d.Initiator, d.Target)
		assert.GreaterOrEqual(t, d.Target, -3.0)
		assert.LessOrEqual(t, d.Target, -2.0)

		d = poisonFlatRandom(2, effectCtx(1, 1))
		assert.GreaterOrEqual(t, d.Target, -6.0)
		assert.LessOrEqual(t, d.Target, -4.0)
	}
}

func TestPoisonFlatConstantByTier(t *testing.T) {
	tests := []struct {
		tier int
		want float64
	}{
		{1, -5},
		{3, -10},
		{4, -15},
	}
	for _, tc := range tests {
		d := poisonFlatConstant(tc.tier, effectCtx(1, 1))
		assert.Equal(t, tc.want, d.Initiator, "tier %d", tc.tier)
		assert.Equal(t, tc.want, d.Target, "tier %d", tc.tier)
	}
}

func TestPoisonPercentOfTargetScalesWithReceivedScore(t *testing.T) {
	ctx := effectCtx(1, 1)
	ctx.TargetReceivedScore = 1000

	d := poisonPercentOfTarget(1, ctx)
	assert.Equal(t, -10.0, d.Target)

	d = poisonPercentOfTarget(4, ctx)
	assert.Equal(t, -20.0, d.Target)

	d = poisonPercentOfTarget(5, ctx)
	assert.Equal(t, -100.0, d.Target)
}

func TestPoisonAsymmetricTradesSentForReceived(t *testing.T) {
	ctx := effectCtx(1, 1)
	ctx.InitiatorSentScore = 100
	ctx.TargetReceivedScore = 200

	d := poisonAsymmetric(1, ctx)
	assert.InDelta(t, -7.0, d.Initiator, 1e-9)
	assert.InDelta(t, -26.0, d.Target, 1e-9)

	d = poisonAsymmetric(5, ctx)
	assert.InDelta(t, -3.0, d.Initiator, 1e-9)
	assert.InDelta(t, -14.0, d.Target, 1e-9)
}

func TestPoisonDrainMovesPointsToInitiator(t *testing.T) {
	ctx := effectCtx(1, 1)
	ctx.TargetReceivedScore = 100

	d := poisonDrain(1, ctx)
	assert.Equal(t, 5.0, d.Initiator)
	assert.Equal(t, -5.0, d.Target)

	d = poisonDrain(5, ctx)
	assert.Equal(t, 10.0, d.Initiator)
	assert.Equal(t, -10.0, d.Target)
}

func TestBoosterAmplifySquaresPreservingSign(t *testing.T) {
	d := boosterAmplify(3, effectCtx(3, -4))
	assert.Equal(t, 6.0, d.Initiator)  // 3 -> 9
	assert.Equal(t, -12.0, d.Target)   // -4 -> -16
}

func TestBoosterQuarterPlusTen(t *testing.T) {
	d := boosterQuarterPlusTen(1, effectCtx(8, -20))
	assert.InDelta(t, 4.0, d.Initiator, 1e-9) // 8 -> 12
	assert.InDelta(t, 25.0, d.Target, 1e-9)   // -20 -> 5
}

func TestBoosterPercentBoostByTier(t *testing.T) {
	d := boosterPercentBoost(1, effectCtx(100, 40))
	assert.InDelta(t, 5.0, d.Initiator, 1e-9)
	assert.InDelta(t, 2.0, d.Target, 1e-9)

	d = boosterPercentBoost(4, effectCtx(100, 40))
	assert.InDelta(t, 25.0, d.Initiator, 1e-9)

	d = boosterPercentBoost(5, effectCtx(100, 40))
	assert.InDelta(t, 50.0, d.Initiator, 1e-9)
}

func TestShieldMitigationOnlyFiresOnDamage(t *testing.T) {
	// No incoming damage: the shield sits idle.
	d := shieldMitigation(3, effectCtx(1, 1))
	assert.Equal(t, EffectDelta{}, d)

	// Incoming damage: refund a tier-scaled share, initiator untouched.
	d = shieldMitigation(3, effectCtx(-10, -10))
	assert.Equal(t, 0.0, d.Initiator)
	assert.InDelta(t, 5.0, d.Target, 1e-9)

	d = shieldMitigation(5, effectCtx(-10, -10))
	assert.InDelta(t, 9.5, d.Target, 1e-9)
}

func TestShieldNegationStopsAtZeroOrBudget(t *testing.T) {
	// Budget exceeds damage: climbs back to at most zero (or +1 overshoot
	// against a fractional value).
	d := shieldNegation(3, effectCtx(1, -4))
	assert.Equal(t, 4.0, d.Target)

	d = shieldNegation(3, effectCtx(1, -4.5))
	assert.Equal(t, 5.0, d.Target)

	// Damage exceeds budget: the whole budget is spent.
	d = shieldNegation(1, effectCtx(1, -50))
	assert.Equal(t, 2.0, d.Target)

	d = shieldNegation(1, effectCtx(1, 3))
	assert.Equal(t, EffectDelta{}, d)
}

func TestShieldReflectionSplitsDamage(t *testing.T) {
	d := shieldReflection(4, effectCtx(1, -20))
	assert.InDelta(t, -10.0, d.Initiator, 1e-9)
	assert.InDelta(t, 10.0, d.Target, 1e-9)

	d = shieldReflection(4, effectCtx(1, 5))
	assert.Equal(t, EffectDelta{}, d)
}

func TestShieldInversionDoublesDamageIntoGain(t *testing.T) {
	d := shieldInversion(4, effectCtx(1, -10))
	assert.InDelta(t, 15.0, d.Target, 1e-9)

	d = shieldInversion(5, effectCtx(1, -10))
	assert.InDelta(t, 20.0, d.Target, 1e-9)
}

func TestAntivenomCancelsIncomingDamage(t *testing.T) {
	d := antivenom(1, effectCtx(1, -7.5))
	assert.Equal(t, 7.5, d.Target)
	assert.Equal(t, 0.0, d.Initiator)

	d = antivenom(1, effectCtx(1, 2))
	assert.Equal(t, EffectDelta{}, d)
}

func TestEveryEffectKindHasHandler(t *testing.T) {
	kinds := []models.EffectKind{
		models.EffectFlatRandom, models.EffectFlatConstant,
		models.EffectPercentOfTarget, models.EffectAsymmetric,
		models.EffectDrain, models.EffectAmplify, models.EffectFlatBonus,
		models.EffectPercentBoost, models.EffectQuarterPlusTen,
		models.EffectMitigation, models.EffectNegation,
		models.EffectReflection, models.EffectInversion,
		models.EffectAntivenom,
	}
	for _, kind := range kinds {
		_, ok := effectHandlers[kind]
		assert.True(t, ok, "no handler for %q", kind)
	}
}
