package level

import (
	"math"

	"github.com/Garsondee/Pellet-Maze/internal/geom"
)

// DefaultTileSize is the world-space edge length of one tile.
const DefaultTileSize = 2.0

// TileKind identifies what occupies a tile. Values match the level file tokens.
type TileKind uint8

const (
	TileOpen  TileKind = iota // walkable floor
	TileWall                  // solid, never entered
	TileSpawn                 // walkable; player start tile
	tileKindCount             // sentinel
)

func (k TileKind) String() string {
	switch k {
	case TileOpen:
		return "open"
	case TileWall:
		return "wall"
	case TileSpawn:
		return "spawn"
	default:
		return "unknown"
	}
}

// Axis names a horizontal world axis.
type Axis int

const (
	AxisX Axis = iota
	AxisZ
)

func (a Axis) String() string {
	if a == AxisZ {
		return "z"
	}
	return "x"
}

// Grid is the immutable occupancy matrix of a level. It is built once and shared
// by pointer between the player, every agent and the collectible field.
type Grid struct {
	width    int
	height   int
	tiles    []TileKind // row-major: index = z*width + x
	tileSize float64

	wrapX, wrapZ bool

	spawnX, spawnZ int
	hasSpawn       bool

	reserved map[int]bool
}

// Option configures a Grid at construction time.
type Option func(*buildOptions)

type buildOptions struct {
	tileSize     float64
	wrapX, wrapZ bool
	reservedSet  bool
	reserved     []int
}

func defaultBuildOptions() buildOptions {
	// X-only wrap matches the single horizontal tunnel of the classic layout.
	return buildOptions{tileSize: DefaultTileSize, wrapX: true}
}

// WithTileSize overrides the world-space size of one tile. Non-positive values are ignored.
func WithTileSize(size float64) Option {
	return func(o *buildOptions) {
		if size > 0 {
			o.tileSize = size
		}
	}
}

// WithWrap sets which axes wrap at the grid edges.
func WithWrap(x, z bool) Option {
	return func(o *buildOptions) {
		o.wrapX = x
		o.wrapZ = z
	}
}

// WithReservedRows replaces the default reserved rows (the spawn marker's row).
// Reserved rows get no agent spawns and no collectibles. Passing no rows reserves nothing.
func WithReservedRows(rows ...int) Option {
	return func(o *buildOptions) {
		o.reservedSet = true
		o.reserved = append([]int(nil), rows...)
	}
}

// Width returns the number of tiles along X.
func (g *Grid) Width() int { return g.width }

// Height returns the number of tiles along Z.
func (g *Grid) Height() int { return g.height }

// TileSize returns the world-space edge length of one tile.
func (g *Grid) TileSize() float64 { return g.tileSize }

// InBounds reports whether (x, z) is a tile of the grid.
func (g *Grid) InBounds(x, z int) bool {
	return x >= 0 && x < g.width && z >= 0 && z < g.height
}

// TileAt returns the tile at (x, z). Out-of-range queries report TileWall.
func (g *Grid) TileAt(x, z int) TileKind {
	if !g.InBounds(x, z) {
		return TileWall
	}
	return g.tiles[z*g.width+x]
}

// IsWall reports whether (x, z) is solid. Out-of-range tiles are solid.
func (g *Grid) IsWall(x, z int) bool {
	return g.TileAt(x, z) == TileWall
}

// TileOf maps a world coordinate on either horizontal axis to a tile index.
func (g *Grid) TileOf(world float64) int {
	return int(math.Floor(world / g.tileSize))
}

// TileCenter returns the world-space centre of tile (x, z) at height y.
func (g *Grid) TileCenter(x, z int, y float64) geom.Vec3 {
	half := g.tileSize / 2
	return geom.V3(float64(x)*g.tileSize+half, y, float64(z)*g.tileSize+half)
}

// Extent returns the world-space size of the grid along X and Z.
func (g *Grid) Extent() (x, z float64) {
	return float64(g.width) * g.tileSize, float64(g.height) * g.tileSize
}

// AxisExtent returns the world-space size of the grid along one axis.
func (g *Grid) AxisExtent(a Axis) float64 {
	x, z := g.Extent()
	if a == AxisZ {
		return z
	}
	return x
}

// Wraps reports whether entities leaving the grid on axis a reappear on the opposite edge.
func (g *Grid) Wraps(a Axis) bool {
	if a == AxisZ {
		return g.wrapZ
	}
	return g.wrapX
}

// Spawn returns the spawn marker tile, if the level has one.
func (g *Grid) Spawn() (x, z int, ok bool) {
	return g.spawnX, g.spawnZ, g.hasSpawn
}

// IsReservedRow reports whether row z is excluded from agent spawns and collectibles.
func (g *Grid) IsReservedRow(z int) bool {
	return g.reserved[z]
}

// ReservedRows returns the reserved rows in ascending order.
func (g *Grid) ReservedRows() []int {
	var out []int
	for z := 0; z < g.height; z++ {
		if g.reserved[z] {
			out = append(out, z)
		}
	}
	return out
}

// Tile is a grid coordinate.
type Tile struct {
	X, Z int
}

// OpenTiles returns every TileOpen tile in row-major order. Spawn markers are not included.
func (g *Grid) OpenTiles() []Tile {
	var out []Tile
	for z := 0; z < g.height; z++ {
		for x := 0; x < g.width; x++ {
			if g.tiles[z*g.width+x] == TileOpen {
				out = append(out, Tile{X: x, Z: z})
			}
		}
	}
	return out
}

// StartTile returns the spawn marker tile, or the first walkable tile when the level has none.
func (g *Grid) StartTile() Tile {
	if g.hasSpawn {
		return Tile{X: g.spawnX, Z: g.spawnZ}
	}
	for i, k := range g.tiles {
		if k != TileWall {
			return Tile{X: i % g.width, Z: i / g.width}
		}
	}
	// Unreachable: construction rejects grids without an open tile.
	return Tile{}
}
