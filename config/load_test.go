package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 60.0, cfg.ReferenceFPS)
	assert.Equal(t, "Walker", cfg.Enemy.DefaultType)
	assert.Len(t, cfg.Enemy.Types, 7)
}

func TestDefaultIsDeepCopy(t *testing.T) {
	cfg := Default()
	spitter := cfg.Enemy.Types["Spitter"]
	spitter.Kiter.NearDistance = 1
	cfg.Waves.Weights["Walker"] = 99
	delete(cfg.Enemy.Types, "Walker")

	assert.Equal(t, 8.0, Enemy.Types["Spitter"].Kiter.NearDistance)
	assert.Equal(t, 10, Waves.Weights["Walker"])
	assert.Contains(t, Enemy.Types, "Walker")
}

func TestLoadOverlaysDefaults(t *testing.T) {
	doc := `
collision:
  collision_distance: 1.5
enemy:
  types:
    Crawler:
      archetype: chaser
      health: 5
      speed: 0.02
      mass: 0.5
waves:
  weights:
    Crawler: 1
`
	cfg, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 1.5, cfg.Collision.CollisionDistance)
	assert.Equal(t, Collision.DamageDistance, cfg.Collision.DamageDistance)

	crawler, ok := cfg.Enemy.Types["Crawler"]
	require.True(t, ok)
	assert.Equal(t, "Crawler", crawler.Name)
	assert.Equal(t, ArchetypeChaser, crawler.Archetype)
	assert.Contains(t, cfg.Enemy.Types, "Walker")
	assert.Equal(t, 1, cfg.Waves.Weights["Crawler"])
}

func TestLoadEmpty(t *testing.T) {
	cfg, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default().Collision, cfg.Collision)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "collision:\n  nope: 1\n"},
		{"zero speed", "enemy:\n  types:\n    Walker:\n      archetype: chaser\n      health: 1\n      speed: 0\n      mass: 1\n"},
		{"zero mass", "enemy:\n  types:\n    Walker:\n      archetype: chaser\n      health: 1\n      speed: 1\n      mass: 0\n"},
		{"kiter without block", "enemy:\n  types:\n    Odd:\n      archetype: kiter\n      health: 1\n      speed: 1\n      mass: 1\n"},
		{"unknown archetype", "enemy:\n  types:\n    Odd:\n      archetype: flier\n      health: 1\n      speed: 1\n      mass: 1\n"},
		{"unknown default", "enemy:\n  default_type: Ghost\n"},
		{"bad summoner counts", "enemy:\n  types:\n    Broodmother:\n      archetype: summoner\n      health: 1\n      speed: 1\n      mass: 1\n      summoner:\n        interval: 1\n        min_count: 3\n        max_count: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestValidateWrapsSentinel(t *testing.T) {
	cfg := Default()
	cfg.MaxDelta = 0
	err := cfg.Validate()
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	walker := cfg.Enemy.Types["Walker"]
	walker.Speed = -1
	assert.ErrorIs(t, walker.Validate(), ErrInvalidConfig)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestInitialState(t *testing.T) {
	assert.Equal(t, StateChasing, ArchetypeChaser.InitialState())
	assert.Equal(t, StateApproaching, ArchetypeKiter.InitialState())
	assert.Equal(t, StatePursuing, ArchetypeDetonator.InitialState())
	assert.Equal(t, StateChasing, ArchetypeSummoner.InitialState())
	assert.Equal(t, StateChasing, ArchetypeAura.InitialState())
	assert.Equal(t, "priming", StatePriming.String())
}
