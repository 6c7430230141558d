package factory

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/automoto/horde/archetypes"
	"github.com/automoto/horde/components"
	cfg "github.com/automoto/horde/config"
	"github.com/automoto/horde/shared/gamemath"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// ErrInvalidEnemyType is returned when a type config would break the
// simulation invariants (speed > 0, mass > 0, matching specialisation).
var ErrInvalidEnemyType = errors.New("invalid enemy type")

// CreateEnemy spawns an enemy of the given type at pos. The type config is
// copied, so later edits to the caller's config do not leak into live enemies.
// rng draws the per-enemy steering jitter; defaultLead is used when the type
// does not set its own lead factor.
func CreateEnemy(world donburi.World, enemyType cfg.EnemyTypeConfig, pos gamemath.Vec, rng *rand.Rand, defaultLead float64) (*donburi.Entry, error) {
	if err := enemyType.Validate(); err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidEnemyType, enemyType.Name, err)
	}
	if !gamemath.Finite(pos) {
		return nil, fmt.Errorf("%w %q: spawn position is not finite", ErrInvalidEnemyType, enemyType.Name)
	}

	typeConfig := enemyType.Clone()
	enemy := archetypes.SpawnEnemy(world, enemyType.Archetype, enemyType.Boss)

	leadFactor := enemyType.LeadFactor
	if leadFactor == 0 {
		leadFactor = defaultLead
	}

	components.Enemy.SetValue(enemy, components.EnemyData{
		TypeName:                enemyType.Name,
		TypeConfig:              &typeConfig,
		Archetype:               enemyType.Archetype,
		Speed:                   enemyType.Speed,
		Mass:                    enemyType.Mass,
		LeadFactor:              leadFactor,
		JitterFactor:            rng.Float64()*2 - 1,
		ContactDamageMultiplier: enemyType.ContactDamageMultiplier,
	})
	components.Position.SetValue(enemy, components.PositionData{Vec2: pos})
	components.Health.SetValue(enemy, components.HealthData{
		Current: enemyType.Health,
		Max:     enemyType.Health,
	})
	components.State.SetValue(enemy, components.StateData{
		CurrentState:  enemyType.Archetype.InitialState(),
		PreviousState: cfg.StateNone,
	})

	switch enemyType.Archetype {
	case cfg.ArchetypeKiter:
		components.Kiter.SetValue(enemy, components.KiterData{
			Config: typeConfig.Kiter,
		})
	case cfg.ArchetypeDetonator:
		components.Detonator.SetValue(enemy, components.DetonatorData{
			Config: typeConfig.Detonator,
		})
	case cfg.ArchetypeSummoner:
		summoner := components.SummonerData{
			Config:         typeConfig.Summoner,
			SummonCooldown: typeConfig.Summoner.Interval,
		}
		// The ramp tweens speed from the spawn value up to the cap
		if s := typeConfig.Summoner; s.MaxSpeed > enemyType.Speed && s.RampSeconds > 0 {
			summoner.SpeedRamp = gween.New(float32(enemyType.Speed), float32(s.MaxSpeed), float32(s.RampSeconds), ease.Linear)
		}
		components.Summoner.SetValue(enemy, summoner)
	case cfg.ArchetypeAura:
		components.Aura.SetValue(enemy, components.AuraData{
			Config: typeConfig.Aura,
		})
	}

	return enemy, nil
}
