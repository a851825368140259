package maze

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/Garsondee/Pellet-Maze/internal/geom"
	"github.com/Garsondee/Pellet-Maze/internal/level"
)

const playerActor = "P"

// DefaultCatchRadius is the planar distance at which an agent catches the player.
const DefaultCatchRadius = 1.65

// SessionConfig gathers the tuning for one round.
type SessionConfig struct {
	Player        PlayerConfig
	Agent         AgentConfig
	AgentCount    int
	CatchRadius   float64
	CollectRadius float64
	Verbose       bool // record high-frequency journal entries
}

// DefaultSessionConfig returns the classic four-agent round.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Player:        DefaultPlayerConfig(),
		Agent:         DefaultAgentConfig(),
		AgentCount:    4,
		CatchRadius:   DefaultCatchRadius,
		CollectRadius: DefaultCollectRadius,
	}
}

// FrameInput is the raw input for one frame.
type FrameInput struct {
	Keys           Keys
	LookDX, LookDY float64
}

// FrameResult summarises one Step.
type FrameResult struct {
	Tick     int
	Blocked  bool // a player move was rejected by a wall
	Wrapped  []level.Axis
	Consumed int
	Caught   bool
	CaughtBy string
	Cleared  bool
	Agents   []AgentReport
}

// Session owns one round: the player, the agents and the collectible field, all
// reading the same immutable grid. Time only advances through Step.
type Session struct {
	grid    *level.Grid
	cfg     SessionConfig
	log     *zap.Logger
	journal *Journal

	player  *Player
	agents  []*Agent
	pellets *CollectibleField

	tick     int
	caught   bool
	caughtBy string
	cleared  bool
}

// NewSession builds a round on grid. rng drives every random choice in the round;
// log may be nil.
func NewSession(grid *level.Grid, rng *rand.Rand, cfg SessionConfig, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		grid:    grid,
		cfg:     cfg,
		log:     log,
		journal: NewJournal(cfg.Verbose),
		player:  NewPlayer(grid, cfg.Player),
		pellets: NewCollectibleField(grid),
	}
	s.pellets.SetRadius(cfg.CollectRadius)
	for i := 0; i < cfg.AgentCount; i++ {
		a, err := NewAgent(i, grid, rng, cfg.Agent)
		if err != nil {
			return nil, fmt.Errorf("spawn agent %d: %w", i, err)
		}
		s.agents = append(s.agents, a)
		log.Debug("agent spawned",
			zap.String("agent", a.Label()),
			zap.Int("bias", a.Bias()),
			zap.Stringer("dir", a.Direction()),
			zap.Float64("x", a.Position().X),
			zap.Float64("z", a.Position().Z),
		)
	}
	remaining, _ := s.pellets.Counts()
	log.Info("session ready",
		zap.Int("width", grid.Width()),
		zap.Int("height", grid.Height()),
		zap.Int("agents", len(s.agents)),
		zap.Int("collectibles", remaining),
	)
	return s, nil
}

func (s *Session) Grid() *level.Grid { return s.grid }
func (s *Session) Player() *Player { return s.player }
func (s *Session) Agents() []*Agent { return s.agents }
func (s *Session) Collectibles() *CollectibleField { return s.pellets }
func (s *Session) Journal() *Journal { return s.journal }
func (s *Session) Tick() int { return s.tick }
func (s *Session) Config() SessionConfig { return s.cfg }

// PlayerCaught reports whether an agent has reached the player.
func (s *Session) PlayerCaught() bool { return s.caught }

// AllCollected reports whether the collectible field is empty.
func (s *Session) AllCollected() bool { return s.cleared }

// Over reports whether the round has ended either way.
func (s *Session) Over() bool { return s.caught || s.cleared }

// Step advances the round by dt seconds. The player moves first; every agent then
// plans against the player's updated position, and both the catch test and
// collectible consumption use that same position. Step is a no-op once Over.
func (s *Session) Step(dt float64, in FrameInput) FrameResult {
	if s.Over() {
		return FrameResult{Tick: s.tick, Caught: s.caught, CaughtBy: s.caughtBy, Cleared: s.cleared}
	}
	s.tick++
	res := FrameResult{Tick: s.tick}

	s.player.ApplyLook(in.LookDX, in.LookDY, s.cfg.Player.TurnSpeed)
	if s.player.ApplyInput(in.Keys, dt) {
		res.Blocked = true
		s.journal.AddVerbose(s.tick, playerActor, CatBlocked, "wall", tileString(TileOfPos(s.grid, s.player.Position())), 0)
	}
	res.Wrapped = s.player.ApplyEdgeWrap()
	for _, ax := range res.Wrapped {
		s.recordWrap(playerActor, ax, s.player.Position())
	}

	target := s.player.Position()
	res.Agents = make([]AgentReport, len(s.agents))
	for i, a := range s.agents {
		rep := a.Update(dt, target)
		res.Agents[i] = rep
		s.recordAgent(a, rep)
	}

	for _, a := range s.agents {
		if a.CheckProximity(target, s.cfg.CatchRadius) {
			s.caught = true
			s.caughtBy = a.Label()
			res.Caught = true
			res.CaughtBy = a.Label()
			d := geom.PlanarDistance(a.Position(), target)
			s.journal.Add(s.tick, a.Label(), CatCaught, "player", tileString(TileOfPos(s.grid, target)), d)
			s.log.Info("player caught", zap.Int("tick", s.tick), zap.String("agent", a.Label()), zap.Float64("distance", d))
			break
		}
	}

	if n := s.pellets.Consume(target); n > 0 {
		res.Consumed = n
		remaining, _ := s.pellets.Counts()
		s.journal.Add(s.tick, playerActor, CatConsume, "pellet", tileString(TileOfPos(s.grid, target)), float64(remaining))
		if s.pellets.IsComplete() {
			s.cleared = true
			res.Cleared = true
			s.journal.Add(s.tick, globalActor, CatCleared, "board", "all collectibles consumed", 0)
			s.log.Info("board cleared", zap.Int("tick", s.tick))
		}
	}
	return res
}

func (s *Session) recordAgent(a *Agent, rep AgentReport) {
	label := a.Label()
	if rep.Unstuck {
		s.journal.Add(s.tick, label, CatUnstuck, "resume", fmt.Sprintf("%s %s", rep.To, tileString(rep.Tile)), 0)
		s.log.Info("agent resumed", zap.String("agent", label), zap.Stringer("dir", rep.To))
	}
	if rep.Stuck {
		s.journal.Add(s.tick, label, CatStuck, "boxed_in", tileString(rep.Tile), 0)
		s.log.Info("agent stuck", zap.String("agent", label), zap.Int("tile_x", rep.Tile.X), zap.Int("tile_z", rep.Tile.Z))
	}
	if rep.Decided && !rep.Stuck && a.State() != AgentStuck {
		key := "random"
		if rep.Pursued {
			key = "pursue"
		}
		if rep.Refused {
			key = "guard_" + key
		}
		s.journal.Add(s.tick, label, CatDecision, key, fmt.Sprintf("%s %s", rep.To, tileString(rep.Tile)), float64(rep.To))
		s.log.Debug("agent decision",
			zap.String("agent", label),
			zap.String("kind", key),
			zap.Stringer("from", rep.From),
			zap.Stringer("to", rep.To),
		)
	}
	for _, ax := range rep.Wrapped {
		s.recordWrap(label, ax, a.Position())
	}
}

func (s *Session) recordWrap(actor string, ax level.Axis, pos geom.Vec3) {
	s.journal.Add(s.tick, actor, CatWrap, ax.String(), fmt.Sprintf("x=%.2f z=%.2f", pos.X, pos.Z), 0)
	s.log.Debug("edge wrap", zap.String("actor", actor), zap.Stringer("axis", ax))
}

func tileString(t level.Tile) string {
	return fmt.Sprintf("(%d,%d)", t.X, t.Z)
}

// PlayerView is the read-only player state in a Snapshot.
type PlayerView struct {
	Pos        geom.Vec3
	Yaw, Pitch float64
}

// AgentView is the read-only agent state in a Snapshot.
type AgentView struct {
	Label string
	Pos   geom.Vec3
	Dir   Direction
	State AgentState
}

// Snapshot is a copy of everything a renderer or report needs. Mutating it does not
// affect the session.
type Snapshot struct {
	Tick         int
	Player       PlayerView
	Agents       []AgentView
	Collectibles []geom.Vec3
	Remaining    int
	Eaten        int
	Caught       bool
	CaughtBy     string
	Cleared      bool
}

// Snapshot returns the current round state.
func (s *Session) Snapshot() Snapshot {
	remaining, eaten := s.pellets.Counts()
	snap := Snapshot{
		Tick: s.tick,
		Player: PlayerView{
			Pos:   s.player.Position(),
			Yaw:   s.player.Yaw(),
			Pitch: s.player.Pitch(),
		},
		Agents:       make([]AgentView, len(s.agents)),
		Collectibles: s.pellets.Positions(),
		Remaining:    remaining,
		Eaten:        eaten,
		Caught:       s.caught,
		CaughtBy:     s.caughtBy,
		Cleared:      s.cleared,
	}
	for i, a := range s.agents {
		snap.Agents[i] = AgentView{Label: a.Label(), Pos: a.Position(), Dir: a.Direction(), State: a.State()}
	}
	return snap
}
