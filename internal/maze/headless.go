package maze

import (
	"errors"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/Garsondee/Pellet-Maze/internal/level"
)

// ErrNoLevel is returned by NewHeadless when neither a grid nor level text was given.
var ErrNoLevel = errors.New("maze: headless run needs a level")

// DefaultFrameTime is the fixed step used by unattended runs, in seconds.
const DefaultFrameTime = 1.0 / 60.0

// Headless drives a Session without a window, at a fixed frame time, with input
// from a Pilot. It is used by tests and the batch report.
type Headless struct {
	Session   *Session
	Seed      int64
	FrameTime float64
	Frames    int

	grid      *level.Grid
	levelText string
	levelOpts []level.Option
	cfg       SessionConfig
	rng       *rand.Rand
	log       *zap.Logger
	pilot     Pilot
	hooks     []func(*Headless, FrameResult)
}

// headlessOptionKind controls the pass in which an option is applied.
type headlessOptionKind int

const (
	headlessOptInfra   headlessOptionKind = iota // level, seed, config, logger
	headlessOptSession                           // applied after the session exists
)

// HeadlessOption is a builder function applied to a Headless during construction.
type HeadlessOption struct {
	kind headlessOptionKind
	fn   func(*Headless)
}

// WithGrid runs on an already-loaded grid.
func WithGrid(g *level.Grid) HeadlessOption {
	return HeadlessOption{headlessOptInfra, func(h *Headless) {
		h.grid = g
	}}
}

// WithLevelText parses the level from text when the harness is built.
func WithLevelText(text string, opts ...level.Option) HeadlessOption {
	return HeadlessOption{headlessOptInfra, func(h *Headless) {
		h.levelText = text
		h.levelOpts = opts
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) HeadlessOption {
	return HeadlessOption{headlessOptInfra, func(h *Headless) {
		h.Seed = seed
		h.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- deterministic simulation
	}}
}

// WithSessionConfig replaces the whole session configuration.
func WithSessionConfig(cfg SessionConfig) HeadlessOption {
	return HeadlessOption{headlessOptInfra, func(h *Headless) {
		h.cfg = cfg
	}}
}

// WithAgentCount sets how many agents are spawned.
func WithAgentCount(n int) HeadlessOption {
	return HeadlessOption{headlessOptInfra, func(h *Headless) {
		h.cfg.AgentCount = n
	}}
}

// WithVerbose enables high-frequency journal entries.
func WithVerbose(v bool) HeadlessOption {
	return HeadlessOption{headlessOptInfra, func(h *Headless) {
		h.cfg.Verbose = v
	}}
}

// WithFrameTime sets the fixed per-frame dt in seconds.
func WithFrameTime(dt float64) HeadlessOption {
	return HeadlessOption{headlessOptInfra, func(h *Headless) {
		if dt > 0 {
			h.FrameTime = dt
		}
	}}
}

// WithLogger routes session diagnostics to log.
func WithLogger(log *zap.Logger) HeadlessOption {
	return HeadlessOption{headlessOptInfra, func(h *Headless) {
		h.log = log
	}}
}

// WithPilot sets the input source. The default pilot is idle.
func WithPilot(p Pilot) HeadlessOption {
	return HeadlessOption{headlessOptSession, func(h *Headless) {
		h.pilot = p
	}}
}

// WithFrameHook calls fn after every frame, before RunUntil's predicate.
func WithFrameHook(fn func(*Headless, FrameResult)) HeadlessOption {
	return HeadlessOption{headlessOptSession, func(h *Headless) {
		h.hooks = append(h.hooks, fn)
	}}
}

// NewHeadless constructs a harness from the given options in two ordered passes:
//  1. Infrastructure (level, seed, config, logger), then the grid and session are built
//  2. Session-level options (pilot, frame hooks)
func NewHeadless(opts ...HeadlessOption) (*Headless, error) {
	h := &Headless{
		Seed:      1,
		FrameTime: DefaultFrameTime,
		cfg:       DefaultSessionConfig(),
		rng:       rand.New(rand.NewSource(1)), // #nosec G404 -- deterministic default
		pilot:     IdlePilot{},
	}
	for _, o := range opts {
		if o.kind == headlessOptInfra {
			o.fn(h)
		}
	}
	if h.grid == nil {
		if h.levelText == "" {
			return nil, ErrNoLevel
		}
		g, err := level.Parse(strings.NewReader(h.levelText), h.levelOpts...)
		if err != nil {
			return nil, err
		}
		h.grid = g
	}
	s, err := NewSession(h.grid, h.rng, h.cfg, h.log)
	if err != nil {
		return nil, err
	}
	h.Session = s
	for _, o := range opts {
		if o.kind == headlessOptSession {
			o.fn(h)
		}
	}
	return h, nil
}

// Journal returns the session's event journal.
func (h *Headless) Journal() *Journal { return h.Session.Journal() }

// Step runs a single frame.
func (h *Headless) Step() FrameResult {
	in := h.pilot.Next(h.Session, h.FrameTime)
	res := h.Session.Step(h.FrameTime, in)
	h.Frames++
	for _, fn := range h.hooks {
		fn(h, res)
	}
	return res
}

// RunFrames advances up to n frames, stopping early when the round is over. It
// returns the number of frames run.
func (h *Headless) RunFrames(n int) int {
	ran := 0
	for ran < n && !h.Session.Over() {
		h.Step()
		ran++
	}
	return ran
}

// RunUntil advances up to maxFrames, stopping early if predicate returns true or the
// round ends. Returns the frame count at which the predicate was satisfied, or -1.
func (h *Headless) RunUntil(predicate func(*Headless) bool, maxFrames int) int {
	for i := 0; i < maxFrames; i++ {
		if h.Session.Over() {
			break
		}
		h.Step()
		if predicate(h) {
			return h.Frames
		}
	}
	return -1
}
