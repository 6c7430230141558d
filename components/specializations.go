package components

import (
	"github.com/automoto/horde/config"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// KiterData keeps a ranged enemy at a distance and fires on a cooldown.
type KiterData struct {
	Config         *config.KiterConfig
	AttackCooldown float64 // Seconds until the next shot
}

// DetonatorData arms a fuse near the player and explodes once.
type DetonatorData struct {
	Config       *config.DetonatorConfig
	Fuse         float64 // Seconds left while priming
	HasDetonated bool    // One-shot guard for the explosion
}

// SummonerData periodically requests reinforcements and speeds up over time.
type SummonerData struct {
	Config         *config.SummonerConfig
	SummonCooldown float64      // Seconds until the next summon
	SpeedRamp      *gween.Tween // nil when the type has no ramp
	Summons        int          // Total summon events so far
}

// AuraData hurts the player while it stays within Radius.
type AuraData struct {
	Config *config.AuraConfig
}

var Kiter = donburi.NewComponentType[KiterData]()
var Detonator = donburi.NewComponentType[DetonatorData]()
var Summoner = donburi.NewComponentType[SummonerData]()
var Aura = donburi.NewComponentType[AuraData]()
