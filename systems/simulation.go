package systems

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/automoto/horde/components"
	"github.com/automoto/horde/config"
	"github.com/automoto/horde/shared/gamemath"
	"github.com/automoto/horde/systems/factory"
	"github.com/automoto/horde/tags"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
)

// ErrUnknownEnemyType is returned by Spawn for a type name missing from the config.
var ErrUnknownEnemyType = errors.New("unknown enemy type")

// Phase is where the simulation is within a frame.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseBuilding
	PhaseIterating
	PhaseCompacting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseBuilding:
		return "building"
	case PhaseIterating:
		return "iterating"
	case PhaseCompacting:
		return "compacting"
	}
	return "unknown"
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithSeed fixes the RNG used for iteration order, jitter and summons.
func WithSeed(seed int64) Option {
	return func(s *Simulation) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Simulation) {
		s.logger = logger
	}
}

func WithHooks(hooks Hooks) Option {
	return func(s *Simulation) {
		s.hooks = hooks
	}
}

// EnemyView is a read-only snapshot of one enemy.
type EnemyView struct {
	ID        donburi.Entity
	TypeName  string
	Archetype config.ArchetypeID
	Boss      bool

	Position gamemath.Vec
	Heading  float64
	Speed    float64
	Mass     float64

	Health    float64
	MaxHealth float64
	State     config.StateID

	MarkedForRemoval bool
}

// Simulation owns the enemy world and advances it one frame per Update. It is
// not safe for concurrent use.
type Simulation struct {
	cfg    config.SimulationConfig
	world  donburi.World
	hooks  Hooks
	rng    *rand.Rand
	logger *log.Logger

	grid      *SpatialIndex
	predictor *TargetPredictor
	obstacles *ObstacleField
	resolver  *CollisionResolver

	phase  Phase
	frame  uint64
	order  []*donburi.Entry
	failed map[donburi.Entity]struct{}
	result FrameResult
}

// NewSimulation validates cfg and builds an empty simulation over the given
// static obstacles.
func NewSimulation(cfg config.SimulationConfig, obstacles []Obstacle, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new simulation: %w", err)
	}

	s := &Simulation{
		cfg:    cfg,
		world:  donburi.NewWorld(),
		rng:    rand.New(rand.NewSource(1)),
		failed: make(map[donburi.Entity]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "horde"})
	}

	s.grid = NewSpatialIndex(cfg.Spatial)
	s.predictor = NewTargetPredictor(cfg.Predictor)
	s.obstacles = NewObstacleField(obstacles, cfg.Spatial)
	s.resolver = NewCollisionResolver(cfg.Collision, s.grid, s.obstacles, s.hooks)

	return s, nil
}

// Spawn creates an enemy of the named type at pos.
func (s *Simulation) Spawn(typeName string, pos gamemath.Vec) (donburi.Entity, error) {
	enemyType, ok := s.cfg.Enemy.Types[typeName]
	if !ok {
		return donburi.Null, fmt.Errorf("spawn: %w %q", ErrUnknownEnemyType, typeName)
	}
	entry, err := factory.CreateEnemy(s.world, enemyType, pos, s.rng, s.cfg.Predictor.LeadFactor)
	if err != nil {
		return donburi.Null, fmt.Errorf("spawn: %w", err)
	}
	return entry.Entity(), nil
}

// DamageEnemy lowers an enemy's health, clamped at zero. Dead enemies are
// removed at the end of the next frame.
func (s *Simulation) DamageEnemy(id donburi.Entity, amount float64) bool {
	if !s.world.Valid(id) {
		return false
	}
	entry := s.world.Entry(id)
	if !entry.HasComponent(components.Health) {
		return false
	}
	components.Health.Get(entry).Damage(amount)
	return true
}

// MarkForRemoval flags an enemy for removal at the end of the next frame.
func (s *Simulation) MarkForRemoval(id donburi.Entity) bool {
	if !s.world.Valid(id) {
		return false
	}
	entry := s.world.Entry(id)
	if !entry.HasComponent(components.Enemy) {
		return false
	}
	components.Enemy.Get(entry).MarkedForRemoval = true
	return true
}

// Enemy returns a snapshot of one enemy.
func (s *Simulation) Enemy(id donburi.Entity) (EnemyView, bool) {
	if !s.world.Valid(id) {
		return EnemyView{}, false
	}
	entry := s.world.Entry(id)
	if !entry.HasComponent(tags.Enemy) {
		return EnemyView{}, false
	}
	return view(entry), true
}

// Each calls fn with a snapshot of every enemy.
func (s *Simulation) Each(fn func(EnemyView)) {
	tags.Enemy.Each(s.world, func(e *donburi.Entry) {
		fn(view(e))
	})
}

// Count returns the number of enemies in the world, including ones waiting
// for compaction.
func (s *Simulation) Count() int {
	n := 0
	tags.Enemy.Each(s.world, func(*donburi.Entry) {
		n++
	})
	return n
}

func (s *Simulation) Frame() uint64 {
	return s.frame
}

func (s *Simulation) Phase() Phase {
	return s.phase
}

func (s *Simulation) World() donburi.World {
	return s.world
}

func (s *Simulation) Config() config.SimulationConfig {
	return s.cfg
}

// Update advances every enemy by delta seconds against the player and returns
// what happened. The result is reused by the next call.
func (s *Simulation) Update(player *Player, delta float64) *FrameResult {
	delta = s.clampDelta(delta)
	s.frame++
	s.result.reset(s.frame, delta)
	startHealth := player.Health

	s.phase = PhaseBuilding
	s.collect()
	s.grid.Rebuild(s.order)

	s.phase = PhaseIterating
	if gamemath.Finite(player.Position) {
		s.predictor.Observe(player.Position, delta)
		s.rng.Shuffle(len(s.order), func(i, j int) {
			s.order[i], s.order[j] = s.order[j], s.order[i]
		})
		for _, e := range s.order {
			s.step(e, player, delta)
		}
	} else {
		s.logger.Warn("player position is not finite, enemies hold", "frame", s.frame)
		s.result.Skipped = len(s.order)
	}

	s.phase = PhaseCompacting
	s.compact()

	s.result.PlayerHealth = player.Health
	s.result.PlayerHealthChanged = player.Health != startHealth
	s.phase = PhaseIdle
	return &s.result
}

func (s *Simulation) clampDelta(delta float64) float64 {
	if math.IsNaN(delta) || delta < 0 {
		return 0
	}
	return math.Min(delta, s.cfg.MaxDelta)
}

func (s *Simulation) collect() {
	s.order = s.order[:0]
	tags.Enemy.Each(s.world, func(e *donburi.Entry) {
		s.order = append(s.order, e)
	})
}

// step updates one enemy. A panic here only costs this enemy: it is logged and
// the enemy is dropped at compaction.
func (s *Simulation) step(entry *donburi.Entry, player *Player, delta float64) {
	if !entry.Valid() {
		return
	}
	id := entry.Entity()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("enemy update failed", "enemy", id, "frame", s.frame, "panic", r)
			s.failed[id] = struct{}{}
		}
	}()

	if !entry.HasComponent(components.Position) || !entry.HasComponent(components.Enemy) {
		s.result.Skipped++
		return
	}
	pos := components.Position.Get(entry)
	if !gamemath.Finite(pos.Vec2) {
		s.result.Skipped++
		return
	}
	enemy := components.Enemy.Get(entry)
	health := components.Health.Get(entry)
	if enemy.MarkedForRemoval || health.Dead() {
		return
	}

	agent := &Agent{
		Entry:    entry,
		ID:       id,
		Position: pos.Vec2,
		Enemy:    enemy,
		State:    components.State.Get(entry),
		Health:   health,
	}
	ctx := &StepContext{
		Frame:        s.frame,
		Delta:        delta,
		ReferenceFPS: s.cfg.ReferenceFPS,
		Player:       player.Position,
		Aim:          s.predictor.Aim(pos.Vec2, enemy.JitterFactor, enemy.LeadFactor),
		Collision:    s.cfg.Collision,
		Rand:         s.rng,
	}

	dec := behaviorFor(entry).Step(ctx, agent)
	agent.State.Transition(dec.State, delta)
	if dec.Facing != (gamemath.Vec{}) {
		enemy.Heading = gamemath.Heading(dec.Facing)
	}

	res := s.resolver.Resolve(s.world, agent, gamemath.Add(pos.Vec2, dec.Move), player.Position, delta)
	pos.Vec2 = res.Position

	if dec.Remove {
		enemy.MarkedForRemoval = true
		health.Current = 0
	}
	s.result.Updated++

	// Hooks may spawn enemies, so no component pointers are used past here
	if res.ContactDamage > 0 {
		s.damagePlayer(player, id, DamageContact, res.ContactDamage)
	}
	if dec.AuraDamage > 0 {
		s.damagePlayer(player, id, DamageAura, dec.AuraDamage)
	}
	if dec.Ranged != nil {
		s.result.RangedAttacks = append(s.result.RangedAttacks, *dec.Ranged)
		if s.hooks.RangedAttack != nil {
			s.hooks.RangedAttack(dec.Ranged.From, dec.Ranged.Target, dec.Ranged.Damage)
		}
	}
	if dec.Explosion != nil {
		s.explode(player, *dec.Explosion)
	}
	if dec.Spawn != nil {
		s.result.Spawns = append(s.result.Spawns, *dec.Spawn)
		if s.hooks.SummonEnemy != nil {
			s.hooks.SummonEnemy(dec.Spawn.Origin, len(dec.Spawn.Positions))
		}
	}
}

func (s *Simulation) explode(player *Player, ex Explosion) {
	s.result.Explosions = append(s.result.Explosions, ex)
	if s.hooks.Explode != nil {
		s.hooks.Explode(ex.Position, ex.Radius, ex.Damage)
	}
	if gamemath.Distance(ex.Position, player.Position) <= ex.Radius {
		s.damagePlayer(player, ex.Source, DamageExplosion, ex.Damage)
	}
}

func (s *Simulation) damagePlayer(player *Player, source donburi.Entity, kind DamageKind, amount float64) {
	dealt := player.Damage(amount)
	if dealt <= 0 {
		return
	}
	s.result.PlayerDamage = append(s.result.PlayerDamage, PlayerDamage{
		Source: source,
		Kind:   kind,
		Amount: dealt,
	})
	if s.hooks.DamagePlayer != nil {
		s.hooks.DamagePlayer(dealt, kind)
	}
}

// compact removes dead, flagged and failed enemies. Nothing is removed while
// iterating.
func (s *Simulation) compact() {
	s.collect()
	for _, e := range s.order {
		id := e.Entity()
		if _, failed := s.failed[id]; failed {
			s.result.Failed = append(s.result.Failed, id)
		} else if !removable(e) {
			continue
		}
		s.result.Removed = append(s.result.Removed, id)
		s.world.Remove(id)
	}
	clear(s.failed)
}

func removable(e *donburi.Entry) bool {
	if e.HasComponent(components.Enemy) && components.Enemy.Get(e).MarkedForRemoval {
		return true
	}
	return e.HasComponent(components.Health) && components.Health.Get(e).Dead()
}

func view(e *donburi.Entry) EnemyView {
	v := EnemyView{
		ID:   e.Entity(),
		Boss: e.HasComponent(tags.Boss),
	}
	if e.HasComponent(components.Enemy) {
		enemy := components.Enemy.Get(e)
		v.TypeName = enemy.TypeName
		v.Archetype = enemy.Archetype
		v.Heading = enemy.Heading
		v.Speed = enemy.Speed
		v.Mass = enemy.Mass
		v.MarkedForRemoval = enemy.MarkedForRemoval
	}
	if e.HasComponent(components.Position) {
		v.Position = components.Position.Get(e).Vec2
	}
	if e.HasComponent(components.Health) {
		h := components.Health.Get(e)
		v.Health = h.Current
		v.MaxHealth = h.Max
	}
	if e.HasComponent(components.State) {
		v.State = components.State.Get(e).CurrentState
	}
	return v
}
