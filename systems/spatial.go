package systems

import (
	"math"

	"github.com/automoto/horde/components"
	"github.com/automoto/horde/config"
	"github.com/automoto/horde/shared/gamemath"
	"github.com/yohamta/donburi"
)

// CellKey addresses one cell of the spatial grid.
type CellKey struct {
	X, Z int
}

type gridCell struct {
	ids   []donburi.Entity
	stamp uint64 // Rebuild generation the ids belong to
}

// SpatialIndex buckets enemy positions into a uniform grid so neighbour
// queries only look at the 3x3 cells around a point. The grid is unbounded
// and reused between frames: cells are truncated in place on rebuild rather
// than reallocated.
type SpatialIndex struct {
	cellSize   float64
	staleAfter uint64

	cells  map[CellKey]*gridCell
	cellOf map[donburi.Entity]CellKey
	stamp  uint64
	count  int
}

func NewSpatialIndex(cfg config.SpatialConfig) *SpatialIndex {
	stale := cfg.StaleCellFrames
	if stale < 1 {
		stale = 1
	}
	return &SpatialIndex{
		cellSize:   cfg.CellSize,
		staleAfter: uint64(stale),
		cells:      make(map[CellKey]*gridCell),
		cellOf:     make(map[donburi.Entity]CellKey),
	}
}

// KeyFor returns the cell containing pos.
func (s *SpatialIndex) KeyFor(pos gamemath.Vec) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X / s.cellSize)),
		Z: int(math.Floor(pos.Y / s.cellSize)),
	}
}

// Rebuild clears the grid and inserts every live enemy among entries.
// Entries without a usable position are left out.
func (s *SpatialIndex) Rebuild(entries []*donburi.Entry) {
	s.stamp++
	s.count = 0
	clear(s.cellOf)

	for _, e := range entries {
		if !indexable(e) {
			continue
		}
		s.Insert(e.Entity(), components.Position.Get(e).Vec2)
	}

	// Drop cells nobody has visited for a while so a wandering crowd cannot
	// grow the map without bound
	if s.stamp%s.staleAfter == 0 {
		for key, c := range s.cells {
			if s.stamp-c.stamp >= s.staleAfter {
				delete(s.cells, key)
			}
		}
	}
}

// Insert adds id at pos for the current rebuild.
func (s *SpatialIndex) Insert(id donburi.Entity, pos gamemath.Vec) {
	key := s.KeyFor(pos)
	c, ok := s.cells[key]
	if !ok {
		c = &gridCell{ids: make([]donburi.Entity, 0, 8)}
		s.cells[key] = c
	}
	if c.stamp != s.stamp {
		c.ids = c.ids[:0]
		c.stamp = s.stamp
	}
	c.ids = append(c.ids, id)
	s.cellOf[id] = key
	s.count++
}

// Query appends the ids in the 3x3 neighbourhood around pos to buf and
// returns the extended slice.
func (s *SpatialIndex) Query(pos gamemath.Vec, buf []donburi.Entity) []donburi.Entity {
	center := s.KeyFor(pos)
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			c, ok := s.cells[CellKey{X: center.X + dx, Z: center.Z + dz}]
			if !ok || c.stamp != s.stamp {
				continue
			}
			buf = append(buf, c.ids...)
		}
	}
	return buf
}

// CellOf returns the cell id was filed under in the last rebuild.
func (s *SpatialIndex) CellOf(id donburi.Entity) (CellKey, bool) {
	key, ok := s.cellOf[id]
	return key, ok
}

// Len returns the number of ids inserted since the last rebuild.
func (s *SpatialIndex) Len() int {
	return s.count
}

// indexable reports whether an entry is a live enemy with a usable position.
func indexable(e *donburi.Entry) bool {
	if !e.Valid() || !e.HasComponent(components.Position) || !e.HasComponent(components.Enemy) {
		return false
	}
	if !gamemath.Finite(components.Position.Get(e).Vec2) {
		return false
	}
	if components.Enemy.Get(e).MarkedForRemoval {
		return false
	}
	return !e.HasComponent(components.Health) || !components.Health.Get(e).Dead()
}
