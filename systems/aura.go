package systems

import (
	"github.com/automoto/horde/components"
	"github.com/automoto/horde/config"
)

type auraBehavior struct{}

func (auraBehavior) Archetype() config.ArchetypeID {
	return config.ArchetypeAura
}

// Step chases like a plain enemy and burns the player while in range. Aura
// damage stacks with contact damage.
func (auraBehavior) Step(ctx *StepContext, agent *Agent) Decision {
	cfg := components.Aura.Get(agent.Entry).Config

	move, facing := chaseMove(ctx, agent)
	dec := Decision{State: config.StateChasing, Move: move, Facing: facing}
	if ctx.Aim.Distance <= cfg.Radius {
		dec.AuraDamage = cfg.DamagePerSecond * ctx.Delta
	}
	return dec
}
