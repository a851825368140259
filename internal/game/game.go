package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/Pellet-Maze/internal/config"
	"github.com/Garsondee/Pellet-Maze/internal/level"
	"github.com/Garsondee/Pellet-Maze/internal/maze"
)

// borderWidth is the pixel gap between the window edge and the maze.
const borderWidth = 16

// statusTicks is how long a transient status line stays on screen.
const statusTicks = 120

// Game is the ebiten front end. It owns no game rules: it turns key and mouse state
// into maze.FrameInput, steps the session once per tick, and draws snapshots.
type Game struct {
	cfg  config.Config
	grid *level.Grid
	log  *zap.Logger

	session *maze.Session
	seed    int64
	runID   uuid.UUID

	feed *EventFeed
	fed  int // journal entries already copied into the feed

	look      maze.LookAccumulator
	mouseLook bool
	prevMX    int
	prevMY    int
	prevKeys  map[ebiten.Key]bool

	paused  bool
	showHUD bool
	status  string
	statusT int

	width  int
	height int
	view   viewport
}

// New builds a game for grid. A zero cfg.Seed picks a time-based seed.
func New(cfg config.Config, grid *level.Grid, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		cfg:      cfg,
		grid:     grid,
		log:      log,
		seed:     seed,
		feed:     NewEventFeed(),
		prevKeys: make(map[ebiten.Key]bool),
		showHUD:  true,
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
	}
	g.view = fitViewport(grid, g.width-logPanelWidth, g.height, borderWidth)
	if err := g.newRound(); err != nil {
		return nil, err
	}
	return g, nil
}

// newRound starts a fresh session with the current seed.
func (g *Game) newRound() error {
	rng := rand.New(rand.NewSource(g.seed)) // #nosec G404 -- gameplay randomness
	s, err := maze.NewSession(g.grid, rng, g.cfg.Session(), g.log)
	if err != nil {
		return fmt.Errorf("start round: %w", err)
	}
	g.session = s
	g.runID = uuid.New()
	g.fed = 0
	g.look.Take()
	g.feed.Add(FeedEntry{Actor: "--", Message: fmt.Sprintf("round %s seed=%d", shortID(g.runID), g.seed)})
	g.log.Info("round started", zap.String("run", g.runID.String()), zap.Int64("seed", g.seed))
	return nil
}

func (g *Game) Update() error {
	// Input is read every tick, paused or not.
	g.handleInput()
	if g.statusT > 0 {
		g.statusT--
	}

	if g.paused || g.session.Over() {
		g.look.Take()
		return nil
	}
	dt := 1.0 / float64(ebiten.TPS())
	res := g.session.Step(dt, g.frameInput())
	g.syncFeed()
	if res.Caught {
		g.setStatus(fmt.Sprintf("caught by %s - R to restart", res.CaughtBy))
	} else if res.Cleared {
		g.setStatus("board cleared - R to restart")
	}
	return nil
}

// restart begins a new round with the next seed.
func (g *Game) restart() {
	g.seed++
	if err := g.newRound(); err != nil {
		g.log.Error("restart failed", zap.Error(err))
		g.setStatus("restart failed: " + err.Error())
		return
	}
	g.paused = false
	g.setStatus(fmt.Sprintf("restarted with seed %d", g.seed))
}

// syncFeed copies journal entries recorded since the last call into the on-screen feed.
func (g *Game) syncFeed() {
	j := g.session.Journal()
	for _, e := range j.After(g.fed) {
		g.feed.AddJournal(e)
	}
	g.fed = j.Len()
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusT = statusTicks
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	snap := g.session.Snapshot()
	g.drawMaze(screen)
	g.drawCollectibles(screen, snap)
	g.drawAgents(screen, snap)
	g.drawPlayer(screen, snap)
	g.feed.Draw(screen, g.width-logPanelWidth, g.height)
	if g.showHUD {
		g.drawHUD(screen, snap)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Session exposes the running session, mainly for tests.
func (g *Game) Session() *maze.Session { return g.session }

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
