package config

// CollisionConfig holds every distance and rate the collision resolver uses.
type CollisionConfig struct {
	CollisionDistance      float64 `yaml:"collision_distance"`       // Enemies are clamped to this distance from the player
	DamageDistance         float64 `yaml:"damage_distance"`          // Contact damage applies within this distance
	DamagePerSecond        float64 `yaml:"damage_per_second"`        // Base contact damage rate
	EnemyCollisionDistance float64 `yaml:"enemy_collision_distance"` // Minimum spacing between two enemies

	MassDominanceRatio float64 `yaml:"mass_dominance_ratio"` // massA > massB * ratio lets A shove B
	DominantBlend      float64 `yaml:"dominant_blend"`       // Share of the intended position a dominant enemy keeps
	PushShare          float64 `yaml:"push_share"`           // Fraction of the dominant enemy's movement passed on to B
	ObstacleEpsilon    float64 `yaml:"obstacle_epsilon"`     // Extra clearance when leaving an obstacle

	// LegacyObstacleOrdering applies the obstacle push to the committed position
	// after the player and enemy phases, without a final player clamp.
	LegacyObstacleOrdering bool `yaml:"legacy_obstacle_ordering"`
}

// SpatialConfig configures the per-frame enemy grid.
type SpatialConfig struct {
	CellSize        float64 `yaml:"cell_size"`
	StaleCellFrames int     `yaml:"stale_cell_frames"` // Rebuilds a cell may stay empty before it is dropped

	ObstacleCellSize int     `yaml:"obstacle_cell_size"` // resolv cell size for the static obstacle space
	ObstacleMargin   float64 `yaml:"obstacle_margin"`    // Padding around the obstacle bounds
	ProbeSize        float64 `yaml:"probe_size"`         // Side of the probe used for obstacle broad-phase
}

// PredictorConfig configures player lead prediction and crowd jitter.
type PredictorConfig struct {
	MinLeadSpeed    float64 `yaml:"min_lead_speed"`    // Player speed at or below which leading is skipped
	CloseRange      float64 `yaml:"close_range"`       // Enemies at or inside this range aim straight at the player
	LeadTimePerUnit float64 `yaml:"lead_time_per_unit"` // leadTime = min(d * LeadTimePerUnit, MaxLeadTime)
	MaxLeadTime     float64 `yaml:"max_lead_time"`
	LeadFactor      float64 `yaml:"lead_factor"` // Default lead factor for types that do not set one

	DirectFarDistance float64 `yaml:"direct_far_distance"` // Distance where the direct path factor bottoms out
	DirectMinFactor   float64 `yaml:"direct_min_factor"`
	DirectMaxFactor   float64 `yaml:"direct_max_factor"`

	JitterMaxTurns float64 `yaml:"jitter_max_turns"` // Jitter bound in multiples of pi
	JitterPerUnit  float64 `yaml:"jitter_per_unit"`
}

// KiterConfig holds ranged-enemy parameters.
type KiterConfig struct {
	NearDistance   float64 `yaml:"near_distance"`
	FarDistance    float64 `yaml:"far_distance"`
	AttackCooldown float64 `yaml:"attack_cooldown"` // seconds
	AttackDamage   float64 `yaml:"attack_damage"`
}

// DetonatorConfig holds explosive-enemy parameters.
type DetonatorConfig struct {
	TriggerRadius   float64 `yaml:"trigger_radius"`
	FuseSeconds     float64 `yaml:"fuse_seconds"`
	ExplosionRadius float64 `yaml:"explosion_radius"`
	ExplosionDamage float64 `yaml:"explosion_damage"`
}

// SummonerConfig holds summoning boss parameters.
type SummonerConfig struct {
	Interval    float64 `yaml:"interval"` // seconds between summons
	MinCount    int     `yaml:"min_count"`
	MaxCount    int     `yaml:"max_count"`
	SpawnType   string  `yaml:"spawn_type"`
	MinOffset   float64 `yaml:"min_offset"`
	MaxOffset   float64 `yaml:"max_offset"`
	MaxSpeed    float64 `yaml:"max_speed"`    // Speed ramp cap, 0 disables the ramp
	RampSeconds float64 `yaml:"ramp_seconds"` // Time to reach MaxSpeed
}

// AuraConfig holds damage-aura parameters.
type AuraConfig struct {
	Radius          float64 `yaml:"radius"`
	DamagePerSecond float64 `yaml:"damage_per_second"`
}

// EnemyTypeConfig contains configuration for a specific enemy type
type EnemyTypeConfig struct {
	Name      string      `yaml:"name"`
	Archetype ArchetypeID `yaml:"archetype"`
	Boss      bool        `yaml:"boss"`

	Health float64 `yaml:"health"`
	Speed  float64 `yaml:"speed"` // units per normalised 60 Hz frame
	Mass   float64 `yaml:"mass"`

	ContactDamageMultiplier float64 `yaml:"contact_damage_multiplier"`
	LeadFactor              float64 `yaml:"lead_factor"` // 0 uses Predictor.LeadFactor

	Kiter     *KiterConfig     `yaml:"kiter,omitempty"`
	Detonator *DetonatorConfig `yaml:"detonator,omitempty"`
	Summoner  *SummonerConfig  `yaml:"summoner,omitempty"`
	Aura      *AuraConfig      `yaml:"aura,omitempty"`
}

// EnemyConfig contains enemy system configuration
type EnemyConfig struct {
	Types       map[string]EnemyTypeConfig `yaml:"types"`
	DefaultType string                     `yaml:"default_type"`
}

// WaveConfig drives the reference wave director.
type WaveConfig struct {
	FirstWaveDelay float64        `yaml:"first_wave_delay"` // seconds
	Interval       float64        `yaml:"interval"`         // seconds between waves
	BaseCount      int            `yaml:"base_count"`
	GrowthPerWave  int            `yaml:"growth_per_wave"`
	MaxAlive       int            `yaml:"max_alive"`
	SpawnRadius    float64        `yaml:"spawn_radius"`
	SpawnJitter    float64        `yaml:"spawn_jitter"`
	BossEvery      int            `yaml:"boss_every"` // every Nth wave adds a boss, 0 disables
	Weights        map[string]int `yaml:"weights"`
	Bosses         []string       `yaml:"bosses"`
}

// SimulationConfig groups everything the enemy simulation needs.
type SimulationConfig struct {
	ReferenceFPS float64 `yaml:"reference_fps"` // speed is expressed per frame at this rate
	MaxDelta     float64 `yaml:"max_delta"`     // longest step a single frame may take

	Collision CollisionConfig `yaml:"collision"`
	Spatial   SpatialConfig   `yaml:"spatial"`
	Predictor PredictorConfig `yaml:"predictor"`
	Enemy     EnemyConfig     `yaml:"enemy"`
	Waves     WaveConfig      `yaml:"waves"`
}

// Global configuration instances
var ReferenceFPS float64
var MaxDelta float64
var Collision CollisionConfig
var Spatial SpatialConfig
var Predictor PredictorConfig
var Enemy EnemyConfig
var Waves WaveConfig

func init() {
	ReferenceFPS = 60
	MaxDelta = 0.25

	Collision = CollisionConfig{
		CollisionDistance:      1.0,
		DamageDistance:         1.2,
		DamagePerSecond:        10.0,
		EnemyCollisionDistance: 0.8,

		MassDominanceRatio: 1.3,
		DominantBlend:      0.8,
		PushShare:          0.5,
		ObstacleEpsilon:    0.01,
	}

	Spatial = SpatialConfig{
		CellSize:        5.0,
		StaleCellFrames: 120, // ~2s at 60fps

		ObstacleCellSize: 4,
		ObstacleMargin:   4.0,
		ProbeSize:        0.5,
	}

	Predictor = PredictorConfig{
		MinLeadSpeed:    0.1,
		CloseRange:      5.0,
		LeadTimePerUnit: 0.1,
		MaxLeadTime:     2.0,
		LeadFactor:      0.8,

		DirectFarDistance: 15.0,
		DirectMinFactor:   0.5,
		DirectMaxFactor:   0.9,

		JitterMaxTurns: 0.3,
		JitterPerUnit:  0.01,
	}

	// Enemy Config
	walker := EnemyTypeConfig{
		Name:                    "Walker",
		Archetype:               ArchetypeChaser,
		Health:                  30,
		Speed:                   0.05,
		Mass:                    1.0,
		ContactDamageMultiplier: 1.0,
	}

	runner := EnemyTypeConfig{
		Name:                    "Runner",
		Archetype:               ArchetypeChaser,
		Health:                  15,
		Speed:                   0.09,
		Mass:                    0.8,
		ContactDamageMultiplier: 0.75,
		LeadFactor:              1.0, // Fast enough to cut the player off
	}

	brute := EnemyTypeConfig{
		Name:                    "Brute",
		Archetype:               ArchetypeChaser,
		Health:                  120,
		Speed:                   0.035,
		Mass:                    2.5,
		ContactDamageMultiplier: 1.5,
	}

	spitter := EnemyTypeConfig{
		Name:                    "Spitter",
		Archetype:               ArchetypeKiter,
		Health:                  25,
		Speed:                   0.045,
		Mass:                    0.9,
		ContactDamageMultiplier: 0.5,
		Kiter: &KiterConfig{
			NearDistance:   8.0,
			FarDistance:    15.0,
			AttackCooldown: 2.0,
			AttackDamage:   8.0,
		},
	}

	bomber := EnemyTypeConfig{
		Name:                    "Bomber",
		Archetype:               ArchetypeDetonator,
		Health:                  20,
		Speed:                   0.07,
		Mass:                    1.0,
		ContactDamageMultiplier: 0, // Hurts only by exploding
		Detonator: &DetonatorConfig{
			TriggerRadius:   3.0,
			FuseSeconds:     1.5,
			ExplosionRadius: 4.0,
			ExplosionDamage: 35.0,
		},
	}

	broodmother := EnemyTypeConfig{
		Name:                    "Broodmother",
		Archetype:               ArchetypeSummoner,
		Boss:                    true,
		Health:                  600,
		Speed:                   0.03,
		Mass:                    4.0,
		ContactDamageMultiplier: 1.5,
		Summoner: &SummonerConfig{
			Interval:    6.0,
			MinCount:    2,
			MaxCount:    3,
			SpawnType:   "Runner",
			MinOffset:   1.5,
			MaxOffset:   3.0,
			MaxSpeed:    0.06,
			RampSeconds: 60.0,
		},
	}

	abomination := EnemyTypeConfig{
		Name:                    "Abomination",
		Archetype:               ArchetypeAura,
		Boss:                    true,
		Health:                  1000,
		Speed:                   0.04,
		Mass:                    5.0,
		ContactDamageMultiplier: 2.0, // Highest tier boss
		Aura: &AuraConfig{
			Radius:          6.0,
			DamagePerSecond: 4.0,
		},
	}

	Enemy = EnemyConfig{
		Types: map[string]EnemyTypeConfig{
			"Walker":      walker,
			"Runner":      runner,
			"Brute":       brute,
			"Spitter":     spitter,
			"Bomber":      bomber,
			"Broodmother": broodmother,
			"Abomination": abomination,
		},
		DefaultType: "Walker",
	}

	Waves = WaveConfig{
		FirstWaveDelay: 2.0,
		Interval:       20.0,
		BaseCount:      6,
		GrowthPerWave:  3,
		MaxAlive:       250,
		SpawnRadius:    30.0,
		SpawnJitter:    4.0,
		BossEvery:      5,
		Weights: map[string]int{
			"Walker":  10,
			"Runner":  4,
			"Brute":   2,
			"Spitter": 3,
			"Bomber":  2,
		},
		Bosses: []string{"Broodmother", "Abomination"},
	}
}
