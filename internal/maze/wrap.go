package maze

import (
	"github.com/Garsondee/Pellet-Maze/internal/geom"
	"github.com/Garsondee/Pellet-Maze/internal/level"
)

// WrapMargins describes where an entity leaves one edge of a wrapping axis and where
// it lands on the other. All values are world units measured from the nearest edge.
type WrapMargins struct {
	Low      float64 // coordinate below Low wraps to the high side
	High     float64 // coordinate above extent-High wraps to the low side
	LandLow  float64 // landing coordinate after wrapping high -> low
	LandHigh float64 // landing inset from extent after wrapping low -> high
}

var (
	// PlayerWrap is the player's tunnel rule.
	PlayerWrap = WrapMargins{Low: 0.6, High: 0.6, LandLow: 1.0, LandHigh: 0.8}
	// AgentWrap is the agents' tunnel rule; they turn around the edge a little earlier.
	AgentWrap = WrapMargins{Low: 1.0, High: 0.8, LandLow: 1.0, LandHigh: 1.0}
)

// applyWrap teleports pos across every wrapping axis whose edge it has passed and
// returns the new position plus the axes that wrapped.
func applyWrap(grid *level.Grid, pos geom.Vec3, m WrapMargins) (geom.Vec3, []level.Axis) {
	var wrapped []level.Axis
	if grid.Wraps(level.AxisX) {
		if v, ok := wrapCoord(pos.X, grid.AxisExtent(level.AxisX), m); ok {
			pos.X = v
			wrapped = append(wrapped, level.AxisX)
		}
	}
	if grid.Wraps(level.AxisZ) {
		if v, ok := wrapCoord(pos.Z, grid.AxisExtent(level.AxisZ), m); ok {
			pos.Z = v
			wrapped = append(wrapped, level.AxisZ)
		}
	}
	return pos, wrapped
}

func wrapCoord(v, extent float64, m WrapMargins) (float64, bool) {
	switch {
	case v < m.Low:
		return extent - m.LandHigh, true
	case v > extent-m.High:
		return m.LandLow, true
	default:
		return v, false
	}
}
