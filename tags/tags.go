package tags

import "github.com/yohamta/donburi"

var (
	Enemy = donburi.NewTag().SetName("Enemy")
	Boss  = donburi.NewTag().SetName("Boss")
)

// Resolv tags for the obstacle space
const (
	ResolvObstacle = "obstacle"
	ResolvProbe    = "probe"
)
