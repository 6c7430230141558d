package leveldata

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadArena(t *testing.T) {
	arena, err := LoadArena(os.DirFS("testdata"), "arenas/pit.tmx")
	require.NoError(t, err)

	assert.Equal(t, "pit", arena.Name)
	assert.InDelta(t, 40.0, arena.Width, 1e-9)
	assert.InDelta(t, 40.0, arena.Height, 1e-9)

	require.Len(t, arena.Obstacles, 3)
	assert.Equal(t, Obstacle{Point: Point{X: 10, Z: 10}, Radius: 1}, arena.Obstacles[0])
	assert.Equal(t, Obstacle{Point: Point{X: 30, Z: 15}, Radius: 2}, arena.Obstacles[1])
	assert.Equal(t, Obstacle{Point: Point{X: 20, Z: 30}, Radius: 1.5}, arena.Obstacles[2])

	require.Len(t, arena.EnemySpawns, 3)
	assert.Equal(t, EnemySpawn{Point: Point{X: 2, Z: 4}, Type: "Walker", Count: 3}, arena.EnemySpawns[0])
	assert.Equal(t, EnemySpawn{Point: Point{X: 20, Z: 37.5}, Type: "Spitter", Count: 1}, arena.EnemySpawns[1])
	assert.Equal(t, EnemySpawn{Point: Point{X: 35, Z: 5}, Type: "Brute", Count: 1}, arena.EnemySpawns[2])

	require.NotNil(t, arena.PlayerStart)
	assert.Equal(t, Point{X: 20, Z: 20}, *arena.PlayerStart)
}

func TestLoadArenaUnitsPerPixel(t *testing.T) {
	arena, err := LoadArena(os.DirFS("testdata"), "arenas/ring.tmx", WithUnitsPerPixel(0.25))
	require.NoError(t, err)

	assert.InDelta(t, 160.0, arena.Width, 1e-9)
	assert.InDelta(t, 80.0, arena.Height, 1e-9)
	require.Len(t, arena.Obstacles, 1)
	assert.InDelta(t, 30.0, arena.Obstacles[0].X, 1e-9)
	assert.InDelta(t, 30.0, arena.Obstacles[0].Z, 1e-9)
	assert.InDelta(t, 5.0, arena.Obstacles[0].Radius, 1e-9)
	assert.Empty(t, arena.EnemySpawns)
	assert.Nil(t, arena.PlayerStart)
}

func TestLoadArenaMissingFile(t *testing.T) {
	_, err := LoadArena(os.DirFS("testdata"), "arenas/nope.tmx")
	assert.Error(t, err)
}

func TestLoadAllArenas(t *testing.T) {
	arenas, names, err := LoadAllArenas(os.DirFS("testdata"), "arenas")
	require.NoError(t, err)

	assert.Equal(t, []string{"pit", "ring"}, names)
	assert.Len(t, arenas, 2)
	assert.Len(t, arenas["pit"].Obstacles, 3)

	_, _, err = LoadAllArenas(os.DirFS("testdata"), "empty")
	assert.Error(t, err)
}
