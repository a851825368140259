package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/Garsondee/Pellet-Maze/internal/level"
	"github.com/Garsondee/Pellet-Maze/internal/maze"
)

// reportEvents is how many trailing journal entries the debug report includes.
const reportEvents = 40

// debugReport describes the current round as plain text for bug reports.
func (g *Game) debugReport() string {
	snap := g.session.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "--- Pellet Maze debug report ---\n")
	fmt.Fprintf(&b, "run=%s seed=%d tick=%d digest=%016x\n", g.runID, g.seed, snap.Tick, maze.Digest(snap))
	fmt.Fprintf(&b, "level=%dx%d tile=%.2f wrap_x=%v wrap_z=%v reserved=%v\n",
		g.grid.Width(), g.grid.Height(), g.grid.TileSize(),
		g.grid.Wraps(level.AxisX), g.grid.Wraps(level.AxisZ), g.grid.ReservedRows())
	fmt.Fprintf(&b, "player pos=(%.2f,%.2f) yaw=%.1f pitch=%.1f\n",
		snap.Player.Pos.X, snap.Player.Pos.Z, snap.Player.Yaw, snap.Player.Pitch)
	for i, a := range snap.Agents {
		agent := g.session.Agents()[i]
		t := agent.DecisionTile()
		fmt.Fprintf(&b, "agent %s pos=(%.2f,%.2f) tile=(%d,%d) dir=%s state=%s bias=%d\n",
			a.Label, a.Pos.X, a.Pos.Z, t.X, t.Z, a.Dir, a.State, agent.Bias())
	}
	fmt.Fprintf(&b, "collectibles remaining=%d eaten=%d caught=%v cleared=%v\n\n",
		snap.Remaining, snap.Eaten, snap.Caught, snap.Cleared)

	entries := g.session.Journal().Tail(reportEvents)
	b.WriteString("recent events:\n")
	if len(entries) == 0 {
		b.WriteString("  (none)\n")
	}
	b.WriteString(maze.FormatEntries(entries, "  "))
	return b.String()
}

// copyReport puts the debug report on the system clipboard.
func (g *Game) copyReport() {
	report := g.debugReport()
	if err := clipboard.WriteAll(report); err != nil {
		g.log.Warn("clipboard unavailable", zap.Error(err))
		g.setStatus("clipboard unavailable")
		return
	}
	g.log.Info("debug report copied", zap.String("run", g.runID.String()), zap.Int("bytes", len(report)))
	g.setStatus("debug report copied")
}
