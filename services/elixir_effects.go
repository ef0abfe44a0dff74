package services

import (
	"math"
	"math/rand"

	"github.com/cglawson/Senior-Project-API/models"
)

// EffectContext carries the running state an effect handler may read. Running
// values stay fractional through the whole pipeline; rounding happens only at
// the persistence boundary.
type EffectContext struct {
	InitiatorValue      float64
	TargetValue         float64
	InitiatorSentScore  float64
	TargetReceivedScore float64
	Rand                *rand.Rand
}

// EffectDelta is the change an effect applies to each side's running value.
type EffectDelta struct {
	Initiator float64
	Target    float64
}

// EffectFunc computes an effect's deltas. Handlers never touch storage.
type EffectFunc func(tier int, ctx EffectContext) EffectDelta

// effectHandlers dispatches by effect kind; there is deliberately no switch
// over raw elixir ids anywhere.
var effectHandlers = map[models.EffectKind]EffectFunc{
	models.EffectFlatRandom:      poisonFlatRandom,
	models.EffectFlatConstant:    poisonFlatConstant,
	models.EffectPercentOfTarget: poisonPercentOfTarget,
	models.EffectAsymmetric:      poisonAsymmetric,
	models.EffectDrain:           poisonDrain,
	models.EffectAmplify:         boosterAmplify,
	models.EffectFlatBonus:       boosterFlatBonus,
	models.EffectPercentBoost:    boosterPercentBoost,
	models.EffectQuarterPlusTen:  boosterQuarterPlusTen,
	models.EffectMitigation:      shieldMitigation,
	models.EffectNegation:        shieldNegation,
	models.EffectReflection:      shieldReflection,
	models.EffectInversion:       shieldInversion,
	models.EffectAntivenom:       antivenom,
}

// conditionalEffects only count as used (and are only consumed) when they
// produce a non-zero change favorable to the side that owns them. Everything
// else is consumed unconditionally once encountered.
var conditionalEffects = map[models.EffectKind]bool{
	models.EffectPercentBoost: true,
	models.EffectMitigation:   true,
	models.EffectNegation:     true,
	models.EffectReflection:   true,
	models.EffectInversion:    true,
	models.EffectAntivenom:    true,
}

// randBetween draws a uniform integer in [lo, hi].
func randBetween(r *rand.Rand, lo, hi int) float64 {
	return float64(lo + r.Intn(hi-lo+1))
}

// poisonFlatRandom chips a small random amount off both sides.
func poisonFlatRandom(tier int, ctx EffectContext) EffectDelta {
	var val float64
	switch tier {
	case 2:
		val = randBetween(ctx.Rand, 4, 6)
	default:
		val = randBetween(ctx.Rand, 2, 3)
	}
	return EffectDelta{Initiator: -val, Target: -val}
}

// poisonFlatConstant does fixed damage to both sides.
func poisonFlatConstant(tier int, ctx EffectContext) EffectDelta {
	var val float64
	switch tier {
	case 4:
		val = -15
	case 3:
		val = -10
	default:
		val = -5
	}
	return EffectDelta{Initiator: val, Target: val}
}

// poisonPercentOfTarget damages both sides by a share of the target's
// received score, so high-score targets hit harder in both directions.
func poisonPercentOfTarget(tier int, ctx EffectContext) EffectDelta {
	var val float64
	switch tier {
	case 5:
		val = ctx.TargetReceivedScore * .1
	case 4:
		val = ctx.TargetReceivedScore * .02
	default:
		val = ctx.TargetReceivedScore * .01
	}
	return EffectDelta{Initiator: -val, Target: -val}
}

// poisonAsymmetric trades a small cost against the initiator's sent score for
// a bigger hit on the target's received score.
func poisonAsymmetric(tier int, ctx EffectContext) EffectDelta {
	switch tier {
	case 5:
		return EffectDelta{
			Initiator: -(ctx.InitiatorSentScore * .03),
			Target:    -(ctx.TargetReceivedScore * .07),
		}
	default:
		return EffectDelta{
			Initiator: -(ctx.InitiatorSentScore * .07),
			Target:    -(ctx.TargetReceivedScore * .13),
		}
	}
}

// poisonDrain transfers points from the target to the initiator.
func poisonDrain(tier int, ctx EffectContext) EffectDelta {
	var val float64
	switch tier {
	case 5:
		val = ctx.TargetReceivedScore * .1
	default:
		val = ctx.TargetReceivedScore * .05
	}
	return EffectDelta{Initiator: val, Target: -val}
}

// boosterAmplify squares each running value, preserving its sign.
func boosterAmplify(tier int, ctx EffectContext) EffectDelta {
	square := func(v float64) float64 {
		if v < 0 {
			return -(v * v)
		}
		return v * v
	}
	return EffectDelta{
		Initiator: square(ctx.InitiatorValue) - ctx.InitiatorValue,
		Target:    square(ctx.TargetValue) - ctx.TargetValue,
	}
}

// boosterFlatBonus adds a small random sweetener to both sides.
func boosterFlatBonus(tier int, ctx EffectContext) EffectDelta {
	var val float64
	switch tier {
	case 3:
		val = randBetween(ctx.Rand, 4, 8)
	case 2:
		val = randBetween(ctx.Rand, 2, 4)
	default:
		val = randBetween(ctx.Rand, 1, 2)
	}
	return EffectDelta{Initiator: val, Target: val}
}

// boosterPercentBoost grows each side's running value by a percentage of
// itself. Conditional: it only fires while it actually helps its owner.
func boosterPercentBoost(tier int, ctx EffectContext) EffectDelta {
	var pct float64
	switch tier {
	case 5:
		pct = .5
	case 4:
		pct = .25
	default:
		pct = .05
	}
	return EffectDelta{
		Initiator: ctx.InitiatorValue * pct,
		Target:    ctx.TargetValue * pct,
	}
}

// boosterQuarterPlusTen replaces each running value with value*0.25 + 10.
func boosterQuarterPlusTen(tier int, ctx EffectContext) EffectDelta {
	return EffectDelta{
		Initiator: (ctx.InitiatorValue*.25 + 10) - ctx.InitiatorValue,
		Target:    (ctx.TargetValue*.25 + 10) - ctx.TargetValue,
	}
}

// shieldMitigation refunds a percentage of incoming damage. The initiator's
// side is untouched: the poison still costs its sender.
func shieldMitigation(tier int, ctx EffectContext) EffectDelta {
	if ctx.TargetValue >= 0 {
		return EffectDelta{}
	}
	var pct float64
	switch tier {
	case 5:
		pct = .95
	case 4:
		pct = .75
	case 3:
		pct = .50
	case 2:
		pct = .25
	default:
		pct = .10
	}
	return EffectDelta{Target: math.Abs(ctx.TargetValue * pct)}
}

// shieldNegation absorbs incoming damage one point at a time until the value
// reaches zero or the shield's budget runs out. Against a fractional value it
// can overshoot to at most +1.
func shieldNegation(tier int, ctx EffectContext) EffectDelta {
	if ctx.TargetValue >= 0 {
		return EffectDelta{}
	}
	var shieldPts int
	switch tier {
	case 5:
		shieldPts = 30
	case 4:
		shieldPts = 20
	case 3:
		shieldPts = 10
	case 2:
		shieldPts = 5
	default:
		shieldPts = 2
	}

	count := 0
	for ctx.TargetValue+float64(count) < 0 && count < shieldPts {
		count++
	}
	return EffectDelta{Target: float64(count)}
}

// shieldReflection sends a share of the damage back at the initiator while
// crediting the same amount to the target.
func shieldReflection(tier int, ctx EffectContext) EffectDelta {
	if ctx.TargetValue >= 0 {
		return EffectDelta{}
	}
	var pct float64
	switch tier {
	case 5:
		pct = .95
	case 4:
		pct = .50
	case 3:
		pct = .25
	case 2:
		pct = .10
	default:
		pct = .05
	}
	return EffectDelta{
		Initiator: ctx.TargetValue * pct,
		Target:    math.Abs(ctx.TargetValue * pct),
	}
}

// shieldInversion converts incoming damage into a positive gain.
func shieldInversion(tier int, ctx EffectContext) EffectDelta {
	if ctx.TargetValue >= 0 {
		return EffectDelta{}
	}
	switch tier {
	case 5:
		return EffectDelta{Target: math.Abs(ctx.TargetValue * 2)}
	default:
		return EffectDelta{Target: math.Abs(ctx.TargetValue * 1.5)}
	}
}

// antivenom fully counteracts incoming damage.
func antivenom(tier int, ctx EffectContext) EffectDelta {
	if ctx.TargetValue >= 0 {
		return EffectDelta{}
	}
	return EffectDelta{Target: math.Abs(ctx.TargetValue)}
}
