package systems

import (
	"testing"

	"github.com/automoto/horde/config"
	"github.com/automoto/horde/shared/gamemath"
	"github.com/stretchr/testify/assert"
)

func TestObstacleFieldNear(t *testing.T) {
	f := NewObstacleField([]Obstacle{
		{Position: gamemath.V(10, 10), Radius: 2},
		{Position: gamemath.V(-20, 5), Radius: 1},
	}, config.Default().Spatial)

	assert.Equal(t, 2, f.Len())

	near := f.Near(gamemath.V(10.5, 10))
	if assert.Len(t, near, 1) {
		assert.Equal(t, gamemath.V(10, 10), near[0].Position)
	}
	assert.Empty(t, f.Near(gamemath.V(100, 100)))
	assert.Empty(t, f.Near(gamemath.V(-5, 8)))
}

func TestObstacleFieldPushOut(t *testing.T) {
	f := NewObstacleField([]Obstacle{{Position: gamemath.V(10, 10), Radius: 2}}, config.Default().Spatial)

	pos, pushed := f.PushOut(gamemath.V(10.5, 10), 0.01)
	assert.True(t, pushed)
	assert.InDelta(t, 2.01, gamemath.Distance(pos, gamemath.V(10, 10)), 1e-9)
	assert.InDelta(t, 10, pos.Y, 1e-9)

	pos, pushed = f.PushOut(gamemath.V(10, 10), 0.01)
	assert.True(t, pushed)
	assert.InDelta(t, 2.01, gamemath.Distance(pos, gamemath.V(10, 10)), 1e-9)

	outside := gamemath.V(13, 10)
	pos, pushed = f.PushOut(outside, 0.01)
	assert.False(t, pushed)
	assert.Equal(t, outside, pos)
}

func TestObstacleFieldEmpty(t *testing.T) {
	f := NewObstacleField(nil, config.Default().Spatial)
	pos, pushed := f.PushOut(gamemath.V(1, 1), 0.01)
	assert.False(t, pushed)
	assert.Equal(t, gamemath.V(1, 1), pos)
	assert.Empty(t, f.Near(gamemath.V(1, 1)))
}
