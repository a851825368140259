package maze

import (
	"math"

	"github.com/Garsondee/Pellet-Maze/internal/geom"
	"github.com/Garsondee/Pellet-Maze/internal/level"
)

// LookaheadOffset is added to the step length when projecting a move, so an entity
// stops short of a wall even when its per-frame step is large relative to a tile.
const LookaheadOffset = 0.3

// WouldCollide reports whether moving from pos along dir by speed would enter a wall tile.
//
// Each axis is swept tile by tile from the current tile to the projected one, so a
// step longer than a tile cannot pass through a wall. On a wrapping axis the swept
// index wraps to the opposite edge and the tile found there must be open; on a
// non-wrapping axis leaving the grid is blocked.
func WouldCollide(grid *level.Grid, pos, dir geom.Vec3, speed float64) bool {
	reach := speed + LookaheadOffset
	curX := grid.TileOf(pos.X)
	curZ := grid.TileOf(pos.Z)
	projX := grid.TileOf(pos.X + dir.X*reach)
	projZ := grid.TileOf(pos.Z + dir.Z*reach)

	if sweepBlocked(curX, projX, func(x int) bool { return wallAt(grid, x, curZ) }) {
		return true
	}
	if sweepBlocked(curZ, projZ, func(z int) bool { return wallAt(grid, curX, z) }) {
		return true
	}
	// Both boundaries crossed at once: the corner tile must be clear too.
	return projX != curX && projZ != curZ && wallAt(grid, projX, projZ)
}

// sweepBlocked walks the tile indices after from up to and including to.
func sweepBlocked(from, to int, wall func(int) bool) bool {
	step := 1
	if to < from {
		step = -1
	}
	for i := from; i != to; {
		i += step
		if wall(i) {
			return true
		}
	}
	return false
}

// wallAt is IsWall with tile indices wrapped on wrapping axes.
func wallAt(grid *level.Grid, x, z int) bool {
	if grid.Wraps(level.AxisX) {
		x = mod(x, grid.Width())
	}
	if grid.Wraps(level.AxisZ) {
		z = mod(z, grid.Height())
	}
	return grid.IsWall(x, z)
}

// TileOfPos returns the tile containing a world position.
func TileOfPos(grid *level.Grid, pos geom.Vec3) level.Tile {
	return level.Tile{X: grid.TileOf(pos.X), Z: grid.TileOf(pos.Z)}
}

// InWall reports whether pos lies inside a wall tile. Positions outside the grid on a
// wrapping axis are in transit through the edge and are not walls.
func InWall(grid *level.Grid, pos geom.Vec3) bool {
	t := TileOfPos(grid, pos)
	if !grid.InBounds(t.X, t.Z) {
		outX := t.X < 0 || t.X >= grid.Width()
		outZ := t.Z < 0 || t.Z >= grid.Height()
		return (outX && !grid.Wraps(level.AxisX)) || (outZ && !grid.Wraps(level.AxisZ))
	}
	return grid.IsWall(t.X, t.Z)
}

// planarClose reports whether a and b are strictly closer than radius on the X/Z plane.
func planarClose(a, b geom.Vec3, radius float64) bool {
	return geom.PlanarDistance(a, b) < radius
}

// floorDiv is math.Floor(v/size) as an int.
func floorDiv(v, size float64) int {
	return int(math.Floor(v / size))
}
