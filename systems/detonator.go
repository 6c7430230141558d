package systems

import (
	"github.com/automoto/horde/components"
	"github.com/automoto/horde/config"
)

type detonatorBehavior struct{}

func (detonatorBehavior) Archetype() config.ArchetypeID {
	return config.ArchetypeDetonator
}

// Step runs Pursuing -> Priming -> Detonating. The fuse is lit once and the
// explosion fires once; there is no way back to Pursuing.
func (detonatorBehavior) Step(ctx *StepContext, agent *Agent) Decision {
	data := components.Detonator.Get(agent.Entry)
	cfg := data.Config

	if data.HasDetonated {
		return Decision{State: config.StateDetonating, Remove: true}
	}

	switch agent.State.CurrentState {
	case config.StatePriming:
		data.Fuse -= ctx.Delta
		if data.Fuse > 0 {
			return Decision{State: config.StatePriming}
		}
		data.Fuse = 0
		data.HasDetonated = true
		return Decision{
			State: config.StateDetonating,
			Explosion: &Explosion{
				Source:   agent.ID,
				Position: agent.Position,
				Radius:   cfg.ExplosionRadius,
				Damage:   cfg.ExplosionDamage,
			},
			Remove: true,
		}

	case config.StateDetonating:
		// Only reachable if the guard was cleared from outside
		data.HasDetonated = true
		return Decision{State: config.StateDetonating, Remove: true}
	}

	if ctx.Aim.Distance < cfg.TriggerRadius {
		data.Fuse = cfg.FuseSeconds
		return Decision{State: config.StatePriming}
	}

	move, facing := chaseMove(ctx, agent)
	return Decision{State: config.StatePursuing, Move: move, Facing: facing}
}
