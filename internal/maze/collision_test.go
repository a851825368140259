package maze

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Garsondee/Pellet-Maze/internal/geom"
	"github.com/Garsondee/Pellet-Maze/internal/level"
)

func TestWouldCollide_OpenCorridor(t *testing.T) {
	g := mustGrid(t, nil,
		"#####",
		"#...#",
		"#####",
	)
	east := geom.V3(1, 0, 0)
	assert.False(t, WouldCollide(g, geom.V3(3, 1, 3), east, 0.05), "same tile after projection")
	assert.False(t, WouldCollide(g, geom.V3(3.8, 1, 3), east, 0.05), "next tile is open")
	assert.False(t, WouldCollide(g, geom.V3(7, 1, 3), east, 0.05))
	assert.True(t, WouldCollide(g, geom.V3(7.8, 1, 3), east, 0.05), "lookahead reaches the wall")
}

func TestWouldCollide_LookaheadStopsShortOfWall(t *testing.T) {
	g := mustGrid(t, nil,
		"###",
		"#.#",
		"###",
	)
	north := geom.V3(0, 0, -1)
	// Tile (1,1) spans z in [2,4). 2.2 - 0.05 - 0.3 = 1.85 falls in the wall row.
	assert.True(t, WouldCollide(g, geom.V3(3, 1, 2.2), north, 0.05))
	assert.False(t, WouldCollide(g, geom.V3(3, 1, 2.5), north, 0.05))
}

func TestWouldCollide_OutOfBoundsFollowsWrapAxes(t *testing.T) {
	rows := []string{
		"#.#",
		"...",
		"...",
	}
	west := geom.V3(-1, 0, 0)
	south := geom.V3(0, 0, 1)
	edgeX := geom.V3(0.2, 1, 3)
	edgeZ := geom.V3(3, 1, 5.8)

	g := mustGrid(t, nil, rows...)
	assert.False(t, WouldCollide(g, edgeX, west, 0.05), "X wraps by default")
	assert.True(t, WouldCollide(g, edgeZ, south, 0.05), "Z does not wrap by default")

	g = mustGrid(t, []level.Option{level.WithWrap(false, true)}, rows...)
	assert.True(t, WouldCollide(g, edgeX, west, 0.05))
	assert.False(t, WouldCollide(g, edgeZ, south, 0.05))
}

func TestWouldCollide_LongStepCannotTunnel(t *testing.T) {
	g := mustGrid(t, nil,
		"#####",
		"#...#",
		"#####",
	)
	west := geom.V3(-1, 0, 0)
	east := geom.V3(1, 0, 0)
	// 2.5 - 2.7 leaves the grid, but the edge column of this row is a wall.
	assert.True(t, WouldCollide(g, geom.V3(2.5, 1, 3), west, 2.4))
	assert.False(t, WouldCollide(g, geom.V3(3, 1, 3), east, 3.0), "lands in the last open tile")

	g = mustGrid(t, nil,
		"#######",
		"#.#...#",
		"#######",
	)
	// 3 + 4.3 lands in open tile 3; tile 2 in between is a wall.
	assert.True(t, WouldCollide(g, geom.V3(3, 1, 3), east, 4.0))
}

func TestWouldCollide_WrapLandingMustBeOpen(t *testing.T) {
	g := mustGrid(t, nil,
		"#####",
		"....#",
		"#####",
	)
	west := geom.V3(-1, 0, 0)
	// Tile 0 is open but the wrapped tile on the far edge is a wall.
	assert.True(t, WouldCollide(g, geom.V3(0.2, 1, 3), west, 0.05))

	g = mustGrid(t, nil,
		"#####",
		".....",
		"#####",
	)
	assert.False(t, WouldCollide(g, geom.V3(0.2, 1, 3), west, 0.05))
}

func TestWouldCollide_DiagonalCorner(t *testing.T) {
	g := mustGrid(t, nil,
		"...",
		".#.",
		"...",
	)
	diag := geom.V3(1, 0, 1).Normalize()
	pos := geom.V3(1.9, 1, 1.9)
	// Both side tiles are open; only the corner tile is a wall.
	assert.False(t, g.IsWall(0, 1))
	assert.False(t, g.IsWall(1, 0))
	assert.True(t, WouldCollide(g, pos, diag, 0.2))
}

func TestWouldCollide_ZeroDirection(t *testing.T) {
	g := mustGrid(t, nil, boxRows...)
	assert.False(t, WouldCollide(g, geom.V3(5, 1, 5), geom.Vec3{}, 1))
}

func TestInWall(t *testing.T) {
	g := mustGrid(t, nil, boxRows...)
	assert.True(t, InWall(g, geom.V3(1, 0, 1)))
	assert.False(t, InWall(g, geom.V3(5, 0, 5)))
	assert.False(t, InWall(g, geom.V3(-0.5, 0, 5)), "off the wrapping X edge is transit")
	assert.True(t, InWall(g, geom.V3(5, 0, -0.5)), "off the non-wrapping Z edge")
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 0, floorDiv(1.99, 2))
	assert.Equal(t, 1, floorDiv(2, 2))
	assert.Equal(t, -1, floorDiv(-0.01, 2))
	assert.Equal(t, 3, floorDiv(math.Nextafter(8, 0), 2))
}
