package maze

import (
	"math"
	"math/rand"

	"github.com/Garsondee/Pellet-Maze/internal/geom"
)

// Pilot supplies player input for unattended runs.
type Pilot interface {
	Next(s *Session, dt float64) FrameInput
}

// cardinalYaws are the yaw angles, in degrees, whose front vector points along a
// grid axis: east, south, west, north.
var cardinalYaws = [4]float64{0, 90, 180, 270}

// WanderPilot walks forward and turns to a random open axis heading whenever the way
// ahead is blocked. It also turns at random with probability TurnChance per frame.
type WanderPilot struct {
	rng        *rand.Rand
	TurnChance float64
	aligned    bool
}

// NewWanderPilot creates a wander pilot driven by its own seeded source so it does
// not perturb the session's random sequence.
func NewWanderPilot(seed int64) *WanderPilot {
	return &WanderPilot{
		rng:        rand.New(rand.NewSource(seed)), // #nosec G404 -- autopilot
		TurnChance: 0.01,
	}
}

// Next implements Pilot.
func (w *WanderPilot) Next(s *Session, dt float64) FrameInput {
	p := s.Player()
	turn := s.cfg.Player.TurnSpeed
	if turn == 0 {
		return FrameInput{Keys: KeyForward}
	}
	speed := s.cfg.Player.MoveSpeed * dt

	if !w.aligned {
		w.aligned = true
		return FrameInput{LookDX: yawDelta(p.Yaw(), w.pickHeading(s, speed)) / turn}
	}
	if WouldCollide(s.Grid(), p.Position(), p.Front(), speed) || w.rng.Float64() < w.TurnChance {
		return FrameInput{Keys: KeyForward, LookDX: yawDelta(p.Yaw(), w.pickHeading(s, speed)) / turn}
	}
	return FrameInput{Keys: KeyForward}
}

// pickHeading returns a random axis yaw the player can move along, or the current yaw
// when every heading is blocked.
func (w *WanderPilot) pickHeading(s *Session, speed float64) float64 {
	p := s.Player()
	var open []float64
	for _, yaw := range cardinalYaws {
		rad := yaw * math.Pi / 180
		front := geom.V3(math.Cos(rad), 0, math.Sin(rad))
		if !WouldCollide(s.Grid(), p.Position(), front, speed) {
			open = append(open, yaw)
		}
	}
	if len(open) == 0 {
		return p.Yaw()
	}
	return open[w.rng.Intn(len(open))]
}

// yawDelta returns the signed turn from yaw to target, in degrees.
func yawDelta(yaw, target float64) float64 {
	d := math.Mod(target-yaw, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return d
}

// ScriptStep holds one input for a number of frames.
type ScriptStep struct {
	Frames int
	Input  FrameInput
}

// ScriptPilot replays a fixed input sequence and then idles.
type ScriptPilot struct {
	steps []ScriptStep
	idx   int
	used  int
}

// NewScriptPilot creates a pilot that plays steps in order.
func NewScriptPilot(steps ...ScriptStep) *ScriptPilot {
	return &ScriptPilot{steps: steps}
}

// Next implements Pilot.
func (sp *ScriptPilot) Next(*Session, float64) FrameInput {
	for sp.idx < len(sp.steps) && sp.used >= sp.steps[sp.idx].Frames {
		sp.idx++
		sp.used = 0
	}
	if sp.idx >= len(sp.steps) {
		return FrameInput{}
	}
	sp.used++
	return sp.steps[sp.idx].Input
}

// Done reports whether the script has been played out.
func (sp *ScriptPilot) Done() bool {
	return sp.idx >= len(sp.steps) ||
		(sp.idx == len(sp.steps)-1 && sp.used >= sp.steps[sp.idx].Frames)
}

// IdlePilot never presses anything.
type IdlePilot struct{}

// Next implements Pilot.
func (IdlePilot) Next(*Session, float64) FrameInput { return FrameInput{} }
