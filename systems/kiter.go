package systems

import (
	"math"

	"github.com/automoto/horde/components"
	"github.com/automoto/horde/config"
	"github.com/automoto/horde/shared/gamemath"
)

type kiterBehavior struct{}

func (kiterBehavior) Archetype() config.ArchetypeID {
	return config.ArchetypeKiter
}

// Step keeps the kiter inside its [near, far] band. The attack cooldown runs
// in every state but a shot is only fired while holding.
func (kiterBehavior) Step(ctx *StepContext, agent *Agent) Decision {
	data := components.Kiter.Get(agent.Entry)
	cfg := data.Config

	data.AttackCooldown = math.Max(data.AttackCooldown-ctx.Delta, 0)

	toPlayer := gamemath.Normalize(gamemath.Sub(ctx.Player, agent.Position))
	d := ctx.Aim.Distance

	switch {
	case d < cfg.NearDistance:
		away := gamemath.Scale(toPlayer, -1)
		if away == (gamemath.Vec{}) {
			away = gamemath.FallbackDirection(uint64(agent.ID))
		}
		return Decision{
			State:  config.StateRetreating,
			Move:   moveAlong(ctx, agent, away),
			Facing: away,
		}

	case d <= cfg.FarDistance:
		dec := Decision{State: config.StateHolding, Facing: toPlayer}
		if data.AttackCooldown <= 0 {
			data.AttackCooldown = cfg.AttackCooldown
			dec.Ranged = &RangedAttack{
				Source: agent.ID,
				From:   agent.Position,
				Target: ctx.Player,
				Damage: cfg.AttackDamage,
			}
		}
		return dec

	default:
		move, facing := chaseMove(ctx, agent)
		return Decision{State: config.StateApproaching, Move: move, Facing: facing}
	}
}
