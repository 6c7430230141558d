package waves

import (
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/automoto/horde/config"
	"github.com/automoto/horde/shared/gamemath"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

type fakeSpawner struct {
	alive     int
	types     []string
	positions []gamemath.Vec
	fail      bool
}

func (f *fakeSpawner) Spawn(typeName string, pos gamemath.Vec) (donburi.Entity, error) {
	if f.fail {
		return donburi.Null, errors.New("boom")
	}
	f.alive++
	f.types = append(f.types, typeName)
	f.positions = append(f.positions, pos)
	return donburi.Null, nil
}

func (f *fakeSpawner) Count() int {
	return f.alive
}

func newDirector(cfg config.WaveConfig, opts ...Option) *Director {
	opts = append(opts, WithLogger(log.New(io.Discard)))
	return NewDirector(cfg, rand.New(rand.NewSource(3)), opts...)
}

func TestDirectorFirstWave(t *testing.T) {
	cfg := config.Default().Waves
	d := newDirector(cfg)
	s := &fakeSpawner{}

	n, err := d.Update(s, gamemath.V(0, 0), cfg.FirstWaveDelay/2)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, d.Wave())

	n, err = d.Update(s, gamemath.V(0, 0), cfg.FirstWaveDelay/2)
	require.NoError(t, err)
	assert.Equal(t, cfg.BaseCount, n)
	assert.Equal(t, 1, d.Wave())

	for _, name := range s.types {
		assert.Contains(t, cfg.Weights, name)
	}
	for _, p := range s.positions {
		r := gamemath.Length(p)
		assert.GreaterOrEqual(t, r, cfg.SpawnRadius-cfg.SpawnJitter-1e-9)
		assert.LessOrEqual(t, r, cfg.SpawnRadius+cfg.SpawnJitter+1e-9)
	}
}

func TestDirectorEscalatesAndAddsBosses(t *testing.T) {
	cfg := config.Default().Waves
	cfg.FirstWaveDelay = 1
	cfg.Interval = 1
	d := newDirector(cfg)
	s := &fakeSpawner{}

	for wave := 1; wave <= cfg.BossEvery; wave++ {
		before := len(s.types)
		n, err := d.Update(s, gamemath.V(0, 0), 1)
		require.NoError(t, err)

		want := d.Size(wave)
		if wave == cfg.BossEvery {
			want++
			assert.Equal(t, cfg.Bosses[0], s.types[before])
		}
		assert.Equal(t, want, n, "wave %d", wave)
	}

	boss, ok := d.BossFor(cfg.BossEvery * 2)
	assert.True(t, ok)
	assert.Equal(t, cfg.Bosses[1], boss)
	_, ok = d.BossFor(cfg.BossEvery + 1)
	assert.False(t, ok)
}

func TestDirectorRespectsMaxAlive(t *testing.T) {
	cfg := config.Default().Waves
	cfg.FirstWaveDelay = 0
	cfg.MaxAlive = 4
	d := newDirector(cfg)
	s := &fakeSpawner{alive: 1}

	n, err := d.Update(s, gamemath.V(0, 0), 0.1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 4, s.Count())
}

func TestDirectorSpawnPoints(t *testing.T) {
	cfg := config.Default().Waves
	cfg.FirstWaveDelay = 0
	points := []gamemath.Vec{gamemath.V(5, 5), gamemath.V(-5, 5)}
	d := newDirector(cfg, WithSpawnPoints(points))
	s := &fakeSpawner{}

	_, err := d.Update(s, gamemath.V(100, 100), 0.1)
	require.NoError(t, err)
	for _, p := range s.positions {
		assert.Contains(t, points, p)
	}
}

func TestDirectorSpawnError(t *testing.T) {
	cfg := config.Default().Waves
	cfg.FirstWaveDelay = 0
	d := newDirector(cfg)

	_, err := d.Update(&fakeSpawner{fail: true}, gamemath.V(0, 0), 0.1)
	assert.Error(t, err)
}

func TestDirectorSize(t *testing.T) {
	cfg := config.Default().Waves
	d := newDirector(cfg)
	assert.Zero(t, d.Size(0))
	assert.Equal(t, cfg.BaseCount, d.Size(1))
	assert.Equal(t, cfg.BaseCount+2*cfg.GrowthPerWave, d.Size(3))
	assert.Zero(t, d.Elapsed())
}
