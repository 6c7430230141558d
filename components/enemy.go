package components

import (
	"github.com/automoto/horde/config"
	"github.com/yohamta/donburi"
)

type EnemyData struct {
	TypeName   string                  // "Walker", "Spitter", "Broodmother" etc...
	TypeConfig *config.EnemyTypeConfig // Cached reference to type configuration
	Archetype  config.ArchetypeID

	// Movement
	Speed        float64 // Units per normalised 60 Hz frame
	Heading      float64 // Radians, atan2(dir.x, dir.z)
	Mass         float64 // Collision weighting only
	LeadFactor   float64 // How far ahead of the player this enemy aims
	JitterFactor float64 // Fixed per enemy in [-1, 1], scales the steering jitter

	// Combat
	ContactDamageMultiplier float64

	MarkedForRemoval bool
}

var Enemy = donburi.NewComponentType[EnemyData]()
