package systems

import (
	"math"

	"github.com/automoto/horde/components"
	"github.com/automoto/horde/config"
	"github.com/automoto/horde/shared/gamemath"
)

type summonerBehavior struct{}

func (summonerBehavior) Archetype() config.ArchetypeID {
	return config.ArchetypeSummoner
}

// Step chases the player, ramps speed up over time and asks for reinforcements
// every Interval seconds.
func (summonerBehavior) Step(ctx *StepContext, agent *Agent) Decision {
	data := components.Summoner.Get(agent.Entry)
	cfg := data.Config

	if data.SpeedRamp != nil {
		speed, _ := data.SpeedRamp.Update(float32(ctx.Delta))
		agent.Enemy.Speed = math.Min(float64(speed), cfg.MaxSpeed)
	}

	move, facing := chaseMove(ctx, agent)
	dec := Decision{State: config.StateChasing, Move: move, Facing: facing}

	data.SummonCooldown -= ctx.Delta
	if data.SummonCooldown > 0 {
		return dec
	}
	data.SummonCooldown = cfg.Interval
	data.Summons++

	count := cfg.MinCount
	if cfg.MaxCount > cfg.MinCount {
		count += ctx.Rand.Intn(cfg.MaxCount - cfg.MinCount + 1)
	}
	if count == 0 {
		return dec
	}

	positions := make([]gamemath.Vec, count)
	for i := range positions {
		angle := ctx.Rand.Float64() * 2 * math.Pi
		dist := cfg.MinOffset + ctx.Rand.Float64()*(cfg.MaxOffset-cfg.MinOffset)
		positions[i] = gamemath.Add(agent.Position, gamemath.Scale(gamemath.V(math.Cos(angle), math.Sin(angle)), dist))
	}
	dec.Spawn = &SpawnRequest{
		Source:    agent.ID,
		TypeName:  cfg.SpawnType,
		Origin:    agent.Position,
		Positions: positions,
	}
	return dec
}
