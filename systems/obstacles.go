package systems

import (
	"math"

	"github.com/automoto/horde/config"
	"github.com/automoto/horde/shared/gamemath"
	"github.com/automoto/horde/tags"
	"github.com/solarlune/resolv"
)

// Obstacle is a static circle enemies cannot enter.
type Obstacle struct {
	Position gamemath.Vec
	Radius   float64
}

// ObstacleField indexes static obstacles in a resolv space. resolv cells start
// at zero, so the space is laid over the obstacles' bounding box and world
// points are shifted by origin. Anything outside that box is too far from every
// obstacle to touch one.
type ObstacleField struct {
	space  *resolv.Space
	probe  *resolv.Object
	origin gamemath.Vec
	width  float64
	height float64

	obstacles []Obstacle
	found     []*Obstacle
}

// NewObstacleField builds the space once; obstacles never move afterwards.
func NewObstacleField(obstacles []Obstacle, cfg config.SpatialConfig) *ObstacleField {
	f := &ObstacleField{obstacles: append([]Obstacle(nil), obstacles...)}
	if len(f.obstacles) == 0 {
		return f
	}

	minX, minZ := math.Inf(1), math.Inf(1)
	maxX, maxZ := math.Inf(-1), math.Inf(-1)
	for _, o := range f.obstacles {
		minX = math.Min(minX, o.Position.X-o.Radius)
		minZ = math.Min(minZ, o.Position.Y-o.Radius)
		maxX = math.Max(maxX, o.Position.X+o.Radius)
		maxZ = math.Max(maxZ, o.Position.Y+o.Radius)
	}
	margin := cfg.ObstacleMargin + cfg.ProbeSize
	f.origin = gamemath.V(minX-margin, minZ-margin)
	f.width = maxX - minX + 2*margin
	f.height = maxZ - minZ + 2*margin

	cell := cfg.ObstacleCellSize
	f.space = resolv.NewSpace(int(math.Ceil(f.width))+cell, int(math.Ceil(f.height))+cell, cell, cell)

	for i := range f.obstacles {
		o := &f.obstacles[i]
		obj := resolv.NewObject(
			o.Position.X-o.Radius-f.origin.X,
			o.Position.Y-o.Radius-f.origin.Y,
			o.Radius*2, o.Radius*2,
			tags.ResolvObstacle,
		)
		obj.Data = o
		f.space.Add(obj)
	}

	size := math.Max(cfg.ProbeSize, 0.01)
	f.probe = resolv.NewObject(0, 0, size, size, tags.ResolvProbe)
	f.space.Add(f.probe)

	return f
}

// Len returns the number of obstacles in the field.
func (f *ObstacleField) Len() int {
	return len(f.obstacles)
}

// Near returns the obstacles whose cells overlap a small box around pos. The
// slice is reused by the next call.
func (f *ObstacleField) Near(pos gamemath.Vec) []*Obstacle {
	f.found = f.found[:0]
	if f.space == nil || !gamemath.Finite(pos) {
		return f.found
	}

	local := gamemath.Sub(pos, f.origin)
	if local.X < 0 || local.Y < 0 || local.X > f.width || local.Y > f.height {
		return f.found
	}

	f.probe.X = local.X - f.probe.W/2
	f.probe.Y = local.Y - f.probe.H/2
	f.probe.Update()

	check := f.probe.Check(0, 0, tags.ResolvObstacle)
	if check == nil {
		return f.found
	}
	for _, obj := range check.ObjectsByTags(tags.ResolvObstacle) {
		if o, ok := obj.Data.(*Obstacle); ok {
			f.found = append(f.found, o)
		}
	}
	return f.found
}

// PushOut moves pos out of every nearby obstacle it sits inside, by
// (radius - distance + epsilon) along the separating vector.
func (f *ObstacleField) PushOut(pos gamemath.Vec, epsilon float64) (gamemath.Vec, bool) {
	pushed := false
	for _, o := range f.Near(pos) {
		offset := gamemath.Sub(pos, o.Position)
		dist := gamemath.Length(offset)
		if dist >= o.Radius {
			continue
		}
		dir := gamemath.Normalize(offset)
		if dir == (gamemath.Vec{}) {
			dir = gamemath.V(1, 0)
		}
		pos = gamemath.Add(pos, gamemath.Scale(dir, o.Radius-dist+epsilon))
		pushed = true
	}
	return pos, pushed
}
