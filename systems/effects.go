package systems

import (
	"github.com/automoto/horde/shared/gamemath"
	"github.com/yohamta/donburi"
)

// Player is the slice of player state the simulation reads and damages. The
// host owns it and moves it between frames.
type Player struct {
	Position  gamemath.Vec
	Health    float64
	MaxHealth float64
}

// Damage lowers health, clamped to [0, MaxHealth], and returns the amount
// actually dealt.
func (p *Player) Damage(amount float64) float64 {
	if amount <= 0 || p.Health <= 0 {
		return 0
	}
	if amount > p.Health {
		amount = p.Health
	}
	p.Health -= amount
	if p.MaxHealth > 0 && p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
	return amount
}

// Dead reports whether the player has no health left.
func (p *Player) Dead() bool {
	return p.Health <= 0
}

// DamageKind tells the sources of player damage apart.
type DamageKind int

const (
	DamageContact DamageKind = iota
	DamageAura
	DamageExplosion
	DamageRanged // Applied by the host when a projectile lands
)

func (k DamageKind) String() string {
	switch k {
	case DamageContact:
		return "contact"
	case DamageAura:
		return "aura"
	case DamageExplosion:
		return "explosion"
	case DamageRanged:
		return "ranged"
	}
	return "unknown"
}

// Explosion asks the presentation layer for explosion VFX/SFX.
type Explosion struct {
	Source   donburi.Entity
	Position gamemath.Vec
	Radius   float64
	Damage   float64
}

// SpawnRequest asks the spawner for new enemies at the given positions.
type SpawnRequest struct {
	Source    donburi.Entity
	TypeName  string
	Origin    gamemath.Vec
	Positions []gamemath.Vec
}

// RangedAttack is a shot fired by a kiter; projectile flight belongs to the host.
type RangedAttack struct {
	Source donburi.Entity
	From   gamemath.Vec
	Target gamemath.Vec
	Damage float64
}

// PlayerDamage records damage the core applied to the player.
type PlayerDamage struct {
	Source donburi.Entity
	Kind   DamageKind
	Amount float64
}

// Hooks lets the host observe or override parts of the frame. Every field is
// optional.
type Hooks struct {
	CheckCollision func(a, b gamemath.Vec, threshold float64) bool
	PushAway       func(pos, from gamemath.Vec, minDist float64) gamemath.Vec

	DamagePlayer func(amount float64, kind DamageKind)
	SummonEnemy  func(position gamemath.Vec, count int)
	Explode      func(position gamemath.Vec, radius, damage float64)
	RangedAttack func(from, target gamemath.Vec, damage float64)
}

func (h Hooks) checkCollision(a, b gamemath.Vec, threshold float64) bool {
	if h.CheckCollision != nil {
		return h.CheckCollision(a, b, threshold)
	}
	return gamemath.CheckCollision(a, b, threshold)
}

func (h Hooks) pushAway(pos, from gamemath.Vec, minDist float64) gamemath.Vec {
	if h.PushAway != nil {
		return h.PushAway(pos, from, minDist)
	}
	return gamemath.PushAway(pos, from, minDist)
}

// FrameResult collects everything one Update produced. The simulation reuses
// it, so it is only valid until the next Update.
type FrameResult struct {
	Frame uint64
	Delta float64

	Explosions    []Explosion
	Spawns        []SpawnRequest
	RangedAttacks []RangedAttack
	PlayerDamage  []PlayerDamage

	PlayerHealth        float64
	PlayerHealthChanged bool

	Updated int              // Enemies stepped this frame
	Skipped int              // Enemies left alone for lack of a usable position
	Removed []donburi.Entity // Removed during compaction
	Failed  []donburi.Entity // Removed because their update panicked
}

// TotalPlayerDamage sums the damage dealt to the player this frame.
func (r *FrameResult) TotalPlayerDamage() float64 {
	total := 0.0
	for _, d := range r.PlayerDamage {
		total += d.Amount
	}
	return total
}

func (r *FrameResult) reset(frame uint64, delta float64) {
	r.Frame = frame
	r.Delta = delta
	r.Explosions = r.Explosions[:0]
	r.Spawns = r.Spawns[:0]
	r.RangedAttacks = r.RangedAttacks[:0]
	r.PlayerDamage = r.PlayerDamage[:0]
	r.PlayerHealthChanged = false
	r.Updated = 0
	r.Skipped = 0
	r.Removed = r.Removed[:0]
	r.Failed = r.Failed[:0]
}
