package maze

import "github.com/Garsondee/Pellet-Maze/internal/geom"

// Direction is a discrete agent heading. North is -Z, East is +X.
type Direction int

const (
	DirNone Direction = iota
	DirNorth
	DirSouth
	DirEast
	DirWest
)

// cardinals lists the four movement directions in the order legal choices are gathered.
var cardinals = [4]Direction{DirNorth, DirSouth, DirWest, DirEast}

// Step returns the tile offset of one move in direction d.
func (d Direction) Step() (dx, dz int) {
	switch d {
	case DirNorth:
		return 0, -1
	case DirSouth:
		return 0, 1
	case DirEast:
		return 1, 0
	case DirWest:
		return -1, 0
	default:
		return 0, 0
	}
}

// Vector returns the unit world-space vector for d (zero for DirNone).
func (d Direction) Vector() geom.Vec3 {
	dx, dz := d.Step()
	return geom.V3(float64(dx), 0, float64(dz))
}

// Horizontal reports whether d moves along X.
func (d Direction) Horizontal() bool { return d == DirEast || d == DirWest }

// Vertical reports whether d moves along Z.
func (d Direction) Vertical() bool { return d == DirNorth || d == DirSouth }

func (d Direction) String() string {
	switch d {
	case DirNorth:
		return "north"
	case DirSouth:
		return "south"
	case DirEast:
		return "east"
	case DirWest:
		return "west"
	default:
		return "none"
	}
}
