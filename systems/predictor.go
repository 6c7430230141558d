package systems

import (
	"math"

	"github.com/automoto/horde/config"
	"github.com/automoto/horde/shared/gamemath"
)

// Aim is where one enemy should head this frame.
type Aim struct {
	Target    gamemath.Vec // Lead point, or the player when not leading
	Direction gamemath.Vec // Unit steering direction, zero when on top of the player
	Distance  float64      // Distance from the enemy to the player
	Leading   bool
}

// TargetPredictor estimates player velocity from consecutive frames and turns
// it into a per-enemy lead point and steering direction.
type TargetPredictor struct {
	cfg config.PredictorConfig

	player   gamemath.Vec
	previous gamemath.Vec
	velocity gamemath.Vec
	observed bool
}

func NewTargetPredictor(cfg config.PredictorConfig) *TargetPredictor {
	return &TargetPredictor{cfg: cfg}
}

// Observe records the player position for this frame and updates the
// velocity estimate. The first observation, or a non-positive delta, yields
// zero velocity.
func (p *TargetPredictor) Observe(player gamemath.Vec, delta float64) {
	if p.observed && delta > 0 {
		p.previous = p.player
		p.velocity = gamemath.Scale(gamemath.Sub(player, p.previous), 1/delta)
	} else {
		p.previous = player
		p.velocity = gamemath.Vec{}
	}
	p.player = player
	p.observed = true
}

// Reset forgets the previous frame, e.g. after the player teleports.
func (p *TargetPredictor) Reset() {
	p.observed = false
	p.velocity = gamemath.Vec{}
}

func (p *TargetPredictor) Velocity() gamemath.Vec {
	return p.velocity
}

func (p *TargetPredictor) Player() gamemath.Vec {
	return p.player
}

// Aim computes the steering target for an enemy at pos. jitterFactor in
// [-1, 1] scales the random turn applied at range; leadFactor scales how far
// ahead of the player the enemy aims.
func (p *TargetPredictor) Aim(pos gamemath.Vec, jitterFactor, leadFactor float64) Aim {
	toPlayer := gamemath.Sub(p.player, pos)
	d := gamemath.Length(toPlayer)
	aim := Aim{Target: p.player, Distance: d}

	// Close range enemies go straight for the player
	if d <= p.cfg.CloseRange {
		aim.Direction = gamemath.Normalize(toPlayer)
		return aim
	}

	if gamemath.Length(p.velocity) > p.cfg.MinLeadSpeed {
		leadTime := math.Min(d*p.cfg.LeadTimePerUnit, p.cfg.MaxLeadTime)
		aim.Target = gamemath.Add(p.player, gamemath.Scale(p.velocity, leadTime*leadFactor))
		aim.Leading = true
	}

	toward := gamemath.Normalize(gamemath.Sub(aim.Target, pos))
	if toward == (gamemath.Vec{}) {
		aim.Direction = gamemath.Normalize(toPlayer)
		return aim
	}

	direct := p.directPathFactor(d)
	jitter := jitterFactor * math.Min(p.cfg.JitterMaxTurns, d*p.cfg.JitterPerUnit) * math.Pi
	blended := gamemath.Add(
		gamemath.Scale(toward, direct),
		gamemath.Scale(gamemath.Rotate(toward, jitter), 1-direct),
	)
	aim.Direction = gamemath.Normalize(blended)
	return aim
}

// directPathFactor rises from DirectMinFactor at DirectFarDistance to
// DirectMaxFactor at zero distance.
func (p *TargetPredictor) directPathFactor(d float64) float64 {
	if p.cfg.DirectFarDistance <= 0 {
		return p.cfg.DirectMaxFactor
	}
	closeness := 1 - math.Min(d, p.cfg.DirectFarDistance)/p.cfg.DirectFarDistance
	return p.cfg.DirectMinFactor + (p.cfg.DirectMaxFactor-p.cfg.DirectMinFactor)*closeness
}
