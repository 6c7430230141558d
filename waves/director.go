// Package waves decides when, where and what enemies enter the arena.
package waves

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"

	"github.com/automoto/horde/config"
	"github.com/automoto/horde/shared/gamemath"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
)

// Spawner is the part of the simulation the director drives.
type Spawner interface {
	Spawn(typeName string, pos gamemath.Vec) (donburi.Entity, error)
	Count() int
}

// Director releases escalating waves on a timer. Each wave spawns on a ring
// around the player, or at the arena's spawn points when it has any.
type Director struct {
	cfg    config.WaveConfig
	rng    *rand.Rand
	logger *log.Logger

	elapsed  float64
	nextWave float64
	wave     int

	names       []string // Weighted types in a stable order
	totalWeight int
	points      []gamemath.Vec
}

type Option func(*Director)

// WithSpawnPoints spawns waves at fixed points instead of the ring.
func WithSpawnPoints(points []gamemath.Vec) Option {
	return func(d *Director) {
		d.points = append([]gamemath.Vec(nil), points...)
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(d *Director) {
		d.logger = logger
	}
}

func NewDirector(cfg config.WaveConfig, rng *rand.Rand, opts ...Option) *Director {
	d := &Director{
		cfg:      cfg,
		rng:      rng,
		nextWave: cfg.FirstWaveDelay,
	}
	for name, w := range cfg.Weights {
		if w > 0 {
			d.names = append(d.names, name)
			d.totalWeight += w
		}
	}
	sort.Strings(d.names)

	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "waves"})
	}
	return d
}

// Wave returns the number of waves released so far.
func (d *Director) Wave() int {
	return d.wave
}

// Elapsed returns the seconds the director has been running.
func (d *Director) Elapsed() float64 {
	return d.elapsed
}

// Size returns how many regular enemies wave n spawns.
func (d *Director) Size(n int) int {
	if n < 1 {
		return 0
	}
	return d.cfg.BaseCount + d.cfg.GrowthPerWave*(n-1)
}

// BossFor returns the boss joining wave n, if any. Bosses rotate in order.
func (d *Director) BossFor(n int) (string, bool) {
	if d.cfg.BossEvery <= 0 || len(d.cfg.Bosses) == 0 || n < 1 || n%d.cfg.BossEvery != 0 {
		return "", false
	}
	return d.cfg.Bosses[(n/d.cfg.BossEvery-1)%len(d.cfg.Bosses)], true
}

// Update advances the wave timer by delta seconds and releases a wave when it
// is due. It returns the number of enemies spawned.
func (d *Director) Update(spawner Spawner, player gamemath.Vec, delta float64) (int, error) {
	if delta > 0 {
		d.elapsed += delta
	}
	if d.elapsed < d.nextWave {
		return 0, nil
	}
	d.wave++
	d.nextWave += d.cfg.Interval

	room := d.cfg.MaxAlive - spawner.Count()
	if d.cfg.MaxAlive <= 0 {
		room = math.MaxInt
	}

	types := make([]string, 0, d.Size(d.wave)+1)
	if boss, ok := d.BossFor(d.wave); ok {
		types = append(types, boss)
	}
	for i := 0; i < d.Size(d.wave); i++ {
		if name := d.pick(); name != "" {
			types = append(types, name)
		}
	}
	if len(types) > room {
		d.logger.Warn("wave capped", "wave", d.wave, "wanted", len(types), "room", room)
		types = types[:max(room, 0)]
	}

	spawned := 0
	for _, name := range types {
		if _, err := spawner.Spawn(name, d.position(player)); err != nil {
			return spawned, fmt.Errorf("wave %d: %w", d.wave, err)
		}
		spawned++
	}
	d.logger.Info("wave released", "wave", d.wave, "spawned", spawned)
	return spawned, nil
}

// pick draws a type by weight.
func (d *Director) pick() string {
	if d.totalWeight == 0 {
		return ""
	}
	roll := d.rng.Intn(d.totalWeight)
	for _, name := range d.names {
		roll -= d.cfg.Weights[name]
		if roll < 0 {
			return name
		}
	}
	return d.names[len(d.names)-1]
}

func (d *Director) position(player gamemath.Vec) gamemath.Vec {
	if len(d.points) > 0 {
		return d.points[d.rng.Intn(len(d.points))]
	}
	angle := d.rng.Float64() * 2 * math.Pi
	radius := d.cfg.SpawnRadius + (d.rng.Float64()*2-1)*d.cfg.SpawnJitter
	return gamemath.Add(player, gamemath.Scale(gamemath.V(math.Cos(angle), math.Sin(angle)), radius))
}
