// Package leveldata parses arena layouts from Tiled TMX files. It is pure
// data: positions are already converted to world units and nothing here knows
// about the simulation's entity world.
package leveldata

// Arena holds everything the simulation needs from a TMX level file.
type Arena struct {
	Name        string
	Width       float64 // World units
	Height      float64
	Obstacles   []Obstacle
	EnemySpawns []EnemySpawn
	PlayerStart *Point // nil when the map has no PlayerStart object
}

// Point is a position on the ground plane. Z grows down the map, as TMX y does.
type Point struct {
	X, Z float64
}

// Obstacle is a static circle. Rectangles and ellipses are folded into the
// circle that covers them.
type Obstacle struct {
	Point
	Radius float64
}

// EnemySpawn places Count enemies of Type when the arena loads.
type EnemySpawn struct {
	Point
	Type  string
	Count int
}
