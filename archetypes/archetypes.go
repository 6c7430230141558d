package archetypes

import (
	"github.com/automoto/horde/components"
	"github.com/automoto/horde/config"
	"github.com/automoto/horde/tags"
	"github.com/yohamta/donburi"
)

var (
	Enemy = newArchetype(
		tags.Enemy,
		components.Enemy,
		components.Position,
		components.Health,
		components.State,
	)
)

// specializations lists the extra components each archetype carries on top
// of the base chaser.
var specializations = map[config.ArchetypeID][]donburi.IComponentType{
	config.ArchetypeKiter:     {components.Kiter},
	config.ArchetypeDetonator: {components.Detonator},
	config.ArchetypeSummoner:  {components.Summoner},
	config.ArchetypeAura:      {components.Aura},
}

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(world donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return world.Entry(world.Create(all...))
}

// SpawnEnemy creates an enemy entity carrying the specialisation component for
// the given archetype, plus the boss tag when requested.
func SpawnEnemy(world donburi.World, archetype config.ArchetypeID, boss bool) *donburi.Entry {
	extra := specializations[archetype]
	if boss {
		extra = append(append([]donburi.IComponentType(nil), extra...), tags.Boss)
	}
	return Enemy.Spawn(world, extra...)
}
