package leveldata

import (
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Object group names read from the TMX file
const (
	GroupObstacles   = "Obstacles"
	GroupEnemySpawns = "EnemySpawns"
	GroupPlayerStart = "PlayerStart"
)

type loadOptions struct {
	unitsPerPixel float64
}

// Option tweaks how a TMX file is converted.
type Option func(*loadOptions)

// WithUnitsPerPixel overrides the pixel to world unit conversion. By default
// one tile is one world unit.
func WithUnitsPerPixel(scale float64) Option {
	return func(o *loadOptions) {
		o.unitsPerPixel = scale
	}
}

// LoadArena parses a TMX file into an Arena. It takes an fs.FS so callers can
// pass embed.FS or os.DirFS.
func LoadArena(fsys fs.FS, tmxPath string, opts ...Option) (*Arena, error) {
	var lo loadOptions
	for _, opt := range opts {
		opt(&lo)
	}

	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	scale := lo.unitsPerPixel
	if scale <= 0 {
		if levelMap.TileWidth <= 0 {
			return nil, fmt.Errorf("load TMX %s: map has no tile width", tmxPath)
		}
		scale = 1 / float64(levelMap.TileWidth)
	}

	arena := &Arena{
		Name:   strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width:  float64(levelMap.Width*levelMap.TileWidth) * scale,
		Height: float64(levelMap.Height*levelMap.TileHeight) * scale,
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case GroupObstacles:
			for _, o := range og.Objects {
				radius := o.Properties.GetFloat("radius")
				if radius <= 0 {
					radius = math.Max(o.Width, o.Height) / 2
				}
				if radius <= 0 {
					return nil, fmt.Errorf("load TMX %s: obstacle %d has no size", tmxPath, o.ID)
				}
				arena.Obstacles = append(arena.Obstacles, Obstacle{
					Point:  Point{X: (o.X + o.Width/2) * scale, Z: (o.Y + o.Height/2) * scale},
					Radius: radius * scale,
				})
			}
		case GroupEnemySpawns:
			for _, o := range og.Objects {
				enemyType := o.Class
				if enemyType == "" {
					enemyType = o.Type //nolint:staticcheck // TMX uses type= attribute
				}
				if enemyType == "" {
					enemyType = o.Properties.GetString("enemyType")
				}
				count := o.Properties.GetInt("count")
				if count <= 0 {
					count = 1
				}
				arena.EnemySpawns = append(arena.EnemySpawns, EnemySpawn{
					Point: Point{X: o.X * scale, Z: o.Y * scale},
					Type:  enemyType,
					Count: count,
				})
			}
		case GroupPlayerStart:
			if len(og.Objects) > 0 {
				o := og.Objects[0]
				arena.PlayerStart = &Point{X: o.X * scale, Z: o.Y * scale}
			}
		}
	}

	// Stable order for deterministic spawning
	sort.SliceStable(arena.EnemySpawns, func(i, j int) bool {
		a, b := arena.EnemySpawns[i], arena.EnemySpawns[j]
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Z < b.Z
	})

	return arena, nil
}

// LoadAllArenas discovers all .tmx files in dir within fsys, loads each, and
// returns a map keyed by stem name plus a sorted list of names.
func LoadAllArenas(fsys fs.FS, dir string, opts ...Option) (map[string]*Arena, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	arenas := make(map[string]*Arena, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		arena, err := LoadArena(fsys, path, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		arenas[arena.Name] = arena
		names = append(names, arena.Name)
	}

	sort.Strings(names)
	return arenas, names, nil
}
