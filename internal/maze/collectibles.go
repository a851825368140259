package maze

import (
	"github.com/Garsondee/Pellet-Maze/internal/geom"
	"github.com/Garsondee/Pellet-Maze/internal/level"
)

const (
	// DefaultCollectRadius is the planar pickup radius around the player.
	DefaultCollectRadius = 0.7
	collectibleHeight    = 0.5
)

// CollectibleField tracks the pellets still on the board. The set only shrinks.
type CollectibleField struct {
	items  []geom.Vec3
	radius float64
	eaten  int
}

// NewCollectibleField places one collectible at the centre of every open tile outside
// the grid's reserved rows, in row-major order.
func NewCollectibleField(grid *level.Grid) *CollectibleField {
	f := &CollectibleField{radius: DefaultCollectRadius}
	for _, t := range grid.OpenTiles() {
		if grid.IsReservedRow(t.Z) {
			continue
		}
		f.items = append(f.items, grid.TileCenter(t.X, t.Z, collectibleHeight))
	}
	return f
}

// SetRadius overrides the pickup radius; non-positive values are ignored.
func (f *CollectibleField) SetRadius(r float64) {
	if r > 0 {
		f.radius = r
	}
}

// Radius returns the pickup radius.
func (f *CollectibleField) Radius() float64 { return f.radius }

// Consume removes every collectible strictly within the pickup radius of pos and
// returns how many were removed.
func (f *CollectibleField) Consume(pos geom.Vec3) int {
	kept := f.items[:0]
	removed := 0
	for _, c := range f.items {
		if planarClose(c, pos, f.radius) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	f.items = kept
	f.eaten += removed
	return removed
}

// IsComplete reports whether every collectible has been consumed.
func (f *CollectibleField) IsComplete() bool { return len(f.items) == 0 }

// Counts returns how many collectibles remain and how many have been eaten.
func (f *CollectibleField) Counts() (remaining, eaten int) { return len(f.items), f.eaten }

// Positions returns a copy of the remaining collectible positions.
func (f *CollectibleField) Positions() []geom.Vec3 {
	out := make([]geom.Vec3, len(f.items))
	copy(out, f.items)
	return out
}
