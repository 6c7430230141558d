package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Default returns a deep copy of the global configuration so callers can
// tweak it without touching the package defaults.
func Default() SimulationConfig {
	return SimulationConfig{
		ReferenceFPS: ReferenceFPS,
		MaxDelta:     MaxDelta,
		Collision:    Collision,
		Spatial:      Spatial,
		Predictor:    Predictor,
		Enemy:        Enemy.clone(),
		Waves:        Waves.clone(),
	}
}

// Load overlays YAML from r on top of the defaults and validates the result.
// Enemy types present in the document replace the default type of the same name.
func Load(r io.Reader) (SimulationConfig, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return SimulationConfig{}, fmt.Errorf("decode config: %w", err)
	}

	// Fill in names omitted from the YAML so lookups and logs stay consistent
	for name, t := range cfg.Enemy.Types {
		if t.Name == "" {
			t.Name = name
			cfg.Enemy.Types[name] = t
		}
	}

	if err := cfg.Validate(); err != nil {
		return SimulationConfig{}, err
	}
	return cfg, nil
}

// LoadFile is Load for a path on disk.
func LoadFile(path string) (SimulationConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return SimulationConfig{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Load(f)
	if err != nil {
		return SimulationConfig{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the invariants the simulation relies on.
func (c SimulationConfig) Validate() error {
	if c.ReferenceFPS <= 0 {
		return fmt.Errorf("%w: reference_fps must be > 0", ErrInvalidConfig)
	}
	if c.MaxDelta <= 0 {
		return fmt.Errorf("%w: max_delta must be > 0", ErrInvalidConfig)
	}
	if c.Collision.CollisionDistance <= 0 || c.Collision.EnemyCollisionDistance <= 0 {
		return fmt.Errorf("%w: collision distances must be > 0", ErrInvalidConfig)
	}
	if c.Collision.DominantBlend < 0 || c.Collision.DominantBlend > 1 {
		return fmt.Errorf("%w: dominant_blend must be within [0,1]", ErrInvalidConfig)
	}
	if c.Spatial.CellSize <= 0 {
		return fmt.Errorf("%w: spatial cell_size must be > 0", ErrInvalidConfig)
	}
	if c.Spatial.ObstacleCellSize <= 0 {
		return fmt.Errorf("%w: obstacle_cell_size must be > 0", ErrInvalidConfig)
	}
	if len(c.Enemy.Types) == 0 {
		return fmt.Errorf("%w: no enemy types", ErrInvalidConfig)
	}
	if _, ok := c.Enemy.Types[c.Enemy.DefaultType]; !ok {
		return fmt.Errorf("%w: default enemy type %q is not defined", ErrInvalidConfig, c.Enemy.DefaultType)
	}
	for name, t := range c.Enemy.Types {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("enemy type %q: %w", name, err)
		}
	}
	for name := range c.Waves.Weights {
		if _, ok := c.Enemy.Types[name]; !ok {
			return fmt.Errorf("%w: wave weight for unknown enemy type %q", ErrInvalidConfig, name)
		}
	}
	for _, name := range c.Waves.Bosses {
		if _, ok := c.Enemy.Types[name]; !ok {
			return fmt.Errorf("%w: unknown boss type %q", ErrInvalidConfig, name)
		}
	}
	return nil
}

// Validate checks a single enemy type.
func (t EnemyTypeConfig) Validate() error {
	if !t.Archetype.Valid() {
		return fmt.Errorf("%w: unknown archetype %q", ErrInvalidConfig, t.Archetype)
	}
	if t.Speed <= 0 {
		return fmt.Errorf("%w: speed must be > 0", ErrInvalidConfig)
	}
	if t.Mass <= 0 {
		return fmt.Errorf("%w: mass must be > 0", ErrInvalidConfig)
	}
	if t.Health <= 0 {
		return fmt.Errorf("%w: health must be > 0", ErrInvalidConfig)
	}

	switch t.Archetype {
	case ArchetypeKiter:
		if t.Kiter == nil {
			return fmt.Errorf("%w: kiter archetype needs a kiter block", ErrInvalidConfig)
		}
		if t.Kiter.NearDistance > t.Kiter.FarDistance {
			return fmt.Errorf("%w: kiter near_distance exceeds far_distance", ErrInvalidConfig)
		}
	case ArchetypeDetonator:
		if t.Detonator == nil {
			return fmt.Errorf("%w: detonator archetype needs a detonator block", ErrInvalidConfig)
		}
	case ArchetypeSummoner:
		if t.Summoner == nil {
			return fmt.Errorf("%w: summoner archetype needs a summoner block", ErrInvalidConfig)
		}
		if t.Summoner.MinCount < 0 || t.Summoner.MaxCount < t.Summoner.MinCount {
			return fmt.Errorf("%w: summoner count range [%d,%d] is invalid", ErrInvalidConfig, t.Summoner.MinCount, t.Summoner.MaxCount)
		}
		if t.Summoner.Interval <= 0 {
			return fmt.Errorf("%w: summoner interval must be > 0", ErrInvalidConfig)
		}
	case ArchetypeAura:
		if t.Aura == nil {
			return fmt.Errorf("%w: aura archetype needs an aura block", ErrInvalidConfig)
		}
	}
	return nil
}

func (e EnemyConfig) clone() EnemyConfig {
	out := EnemyConfig{
		Types:       make(map[string]EnemyTypeConfig, len(e.Types)),
		DefaultType: e.DefaultType,
	}
	for name, t := range e.Types {
		out.Types[name] = t.Clone()
	}
	return out
}

// Clone returns a copy that shares no pointers with t.
func (t EnemyTypeConfig) Clone() EnemyTypeConfig {
	if t.Kiter != nil {
		k := *t.Kiter
		t.Kiter = &k
	}
	if t.Detonator != nil {
		d := *t.Detonator
		t.Detonator = &d
	}
	if t.Summoner != nil {
		s := *t.Summoner
		t.Summoner = &s
	}
	if t.Aura != nil {
		a := *t.Aura
		t.Aura = &a
	}
	return t
}

func (w WaveConfig) clone() WaveConfig {
	weights := make(map[string]int, len(w.Weights))
	for k, v := range w.Weights {
		weights[k] = v
	}
	w.Weights = weights
	w.Bosses = append([]string(nil), w.Bosses...)
	return w
}
