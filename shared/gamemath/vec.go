// Package gamemath holds the small pieces of planar math shared by the
// simulation systems. Vectors live on the ground plane: X is world x and Y is
// world z.
package gamemath

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

// Vec is shorthand for donburi's 2D vector.
type Vec = dmath.Vec2

// goldenAngle spreads fallback directions so stacked entities fan out.
const goldenAngle = 2.399963229728653

// V builds a vector.
func V(x, z float64) Vec {
	return Vec{X: x, Y: z}
}

func Add(a, b Vec) Vec {
	return Vec{X: a.X + b.X, Y: a.Y + b.Y}
}

func Sub(a, b Vec) Vec {
	return Vec{X: a.X - b.X, Y: a.Y - b.Y}
}

func Scale(v Vec, s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Lerp returns a + (b-a)*t.
func Lerp(a, b Vec, t float64) Vec {
	return Vec{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

func Length(v Vec) float64 {
	return math.Hypot(v.X, v.Y)
}

func Distance(a, b Vec) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func Normalize(v Vec) Vec {
	l := Length(v)
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// Rotate turns v by angle radians on the ground plane.
func Rotate(v Vec, angle float64) Vec {
	sin, cos := math.Sincos(angle)
	return Vec{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Heading returns the yaw of a movement direction, atan2(x, z).
func Heading(dir Vec) float64 {
	return math.Atan2(dir.X, dir.Y)
}

// Finite reports whether both components are real numbers.
func Finite(v Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// FallbackDirection returns a deterministic unit vector for a seed, used when
// two points coincide and no separating vector exists.
func FallbackDirection(seed uint64) Vec {
	sin, cos := math.Sincos(float64(seed%1024) * goldenAngle)
	return Vec{X: cos, Y: sin}
}

// CheckCollision reports whether a and b are closer than threshold.
func CheckCollision(a, b Vec, threshold float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx+dy*dy < threshold*threshold
}

// PushAway returns pos moved directly away from `from` so it sits exactly
// minDist from it. Coincident points are separated along the X axis.
func PushAway(pos, from Vec, minDist float64) Vec {
	dir := Normalize(Sub(pos, from))
	if dir == (Vec{}) {
		dir = Vec{X: 1}
	}
	return Add(from, Scale(dir, minDist))
}

// ClampFloat constrains a value to the range [min, max]
func ClampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
