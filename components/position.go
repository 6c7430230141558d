package components

import (
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// PositionData is a point on the ground plane. Y holds world z.
type PositionData struct {
	dmath.Vec2
}

var Position = donburi.NewComponentType[PositionData]()
