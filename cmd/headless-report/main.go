package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Garsondee/Pellet-Maze/internal/config"
	"github.com/Garsondee/Pellet-Maze/internal/level"
	"github.com/Garsondee/Pellet-Maze/internal/logging"
	"github.com/Garsondee/Pellet-Maze/internal/maze"
)

const (
	outcomeCaught  = "caught"
	outcomeCleared = "cleared"
	outcomeTimeout = "timeout"
)

type runStats struct {
	runIndex int
	seed     int64
	frames   int
	outcome  string
	caughtBy string

	firstDecisionTick int
	firstWrapTick     int
	firstStuckTick    int
	endTick           int

	decisions int
	pursuits  int
	randoms   int
	guarded   int
	stuck     int
	unstuck   int
	wraps     int
	consumed  int
	remaining int

	digest uint64
}

type reportOptions struct {
	configPath string
	levelPath  string
	runs       int
	frames     int
	seedBase   int64
	seedStep   int64
	agents     int
	frameMS    float64
	parallel   int
}

func main() {
	var opts reportOptions

	flag.StringVar(&opts.configPath, "config", "configs/maze.yaml", "YAML config file (empty for built-in defaults)")
	flag.StringVar(&opts.levelPath, "level", "", "level file, overrides level.path from the config")
	flag.IntVar(&opts.runs, "runs", 5, "number of headless runs")
	flag.IntVar(&opts.frames, "frames", 3600, "frame cap per run")
	flag.Int64Var(&opts.seedBase, "seed-base", 42, "RNG seed for run 1")
	flag.Int64Var(&opts.seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&opts.agents, "agents", -1, "agent count, overrides agents.count when >= 0")
	flag.Float64Var(&opts.frameMS, "frame-ms", 1000.0/60.0, "simulated frame time in milliseconds")
	flag.IntVar(&opts.parallel, "parallel", 4, "runs executed concurrently")
	flag.Parse()

	if err := opts.validate(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	grid, err := cfg.LoadLevel()
	if err != nil {
		log.Error("load level", zap.String("path", cfg.Level.Path), zap.Error(err))
		os.Exit(1)
	}

	reportID := uuid.New()
	log.Info("report started",
		zap.String("report", reportID.String()),
		zap.Int("runs", opts.runs),
		zap.Int("parallel", opts.parallel),
	)

	fmt.Printf("=== Headless Maze Report ===\n")
	fmt.Printf("report=%s level=%s (%dx%d) agents=%d runs=%d frames=%d frame_ms=%.2f seed_base=%d seed_step=%d\n\n",
		reportID, cfg.Level.Path, grid.Width(), grid.Height(), cfg.Agents.Count,
		opts.runs, opts.frames, opts.frameMS, opts.seedBase, opts.seedStep)

	all, err := runAll(grid, cfg.Session(), opts, log)
	if err != nil {
		log.Error("report failed", zap.String("report", reportID.String()), zap.Error(err))
		os.Exit(1)
	}
	for _, rs := range all {
		printRun(rs)
	}
	printAggregate(all)
}

func (o reportOptions) validate() error {
	var errs []error
	if o.runs <= 0 {
		errs = append(errs, errors.New("-runs must be > 0"))
	}
	if o.frames <= 0 {
		errs = append(errs, errors.New("-frames must be > 0"))
	}
	if o.frameMS <= 0 {
		errs = append(errs, errors.New("-frame-ms must be > 0"))
	}
	if o.parallel <= 0 {
		errs = append(errs, errors.New("-parallel must be > 0"))
	}
	if o.agents > config.MaxAgents {
		errs = append(errs, fmt.Errorf("-agents must be <= %d", config.MaxAgents))
	}
	return errors.Join(errs...)
}

// loadConfig reads the config file, or the defaults when no path is given, and
// applies the flag overrides.
func loadConfig(o reportOptions) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if o.levelPath != "" {
		cfg.Level.Path = o.levelPath
	}
	if o.agents >= 0 {
		cfg.Agents.Count = o.agents
	}
	return cfg, nil
}

func seedFor(o reportOptions, i int) int64 {
	return o.seedBase + int64(i)*o.seedStep
}

// runAll executes every run on its own session. Sessions share only the grid.
func runAll(grid *level.Grid, sc maze.SessionConfig, o reportOptions, log *zap.Logger) ([]runStats, error) {
	all := make([]runStats, o.runs)
	var g errgroup.Group
	g.SetLimit(o.parallel)
	for i := 0; i < o.runs; i++ {
		g.Go(func() error {
			seed := seedFor(o, i)
			rs, err := runOnce(i+1, seed, grid, sc, o, log)
			if err != nil {
				return fmt.Errorf("run %d (seed=%d): %w", i+1, seed, err)
			}
			all[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

func runOnce(runIndex int, seed int64, grid *level.Grid, sc maze.SessionConfig, o reportOptions, log *zap.Logger) (runStats, error) {
	h, err := maze.NewHeadless(
		maze.WithGrid(grid),
		maze.WithSeed(seed),
		maze.WithSessionConfig(sc),
		maze.WithFrameTime(o.frameMS/1000),
		maze.WithPilot(maze.NewWanderPilot(seed)),
		maze.WithLogger(log.With(zap.Int("run", runIndex))),
	)
	if err != nil {
		return runStats{}, err
	}
	h.RunFrames(o.frames)
	rs := collectStats(runIndex, seed, h)
	log.Debug("run finished",
		zap.Int("run", runIndex),
		zap.Int64("seed", seed),
		zap.String("outcome", rs.outcome),
		zap.Int("frames", rs.frames),
	)
	return rs, nil
}

func collectStats(runIndex int, seed int64, h *maze.Headless) runStats {
	snap := h.Session.Snapshot()
	j := h.Journal()

	rs := runStats{
		runIndex:          runIndex,
		seed:              seed,
		frames:            h.Frames,
		outcome:           outcomeOf(snap),
		caughtBy:          snap.CaughtBy,
		firstDecisionTick: firstTick(j, maze.CatDecision, ""),
		firstWrapTick:     firstTick(j, maze.CatWrap, ""),
		firstStuckTick:    firstTick(j, maze.CatStuck, ""),
		endTick:           -1,
		stuck:             j.Count(maze.CatStuck, ""),
		unstuck:           j.Count(maze.CatUnstuck, ""),
		wraps:             j.Count(maze.CatWrap, ""),
		consumed:          snap.Eaten,
		remaining:         snap.Remaining,
		digest:            maze.Digest(snap),
	}
	if snap.Caught || snap.Cleared {
		rs.endTick = snap.Tick
	}
	for key, n := range j.KeyCounts(maze.CatDecision) {
		rs.decisions += n
		if strings.HasPrefix(key, "guard_") {
			rs.guarded += n
		}
		if strings.HasSuffix(key, "pursue") {
			rs.pursuits += n
		} else {
			rs.randoms += n
		}
	}
	return rs
}

// outcomeOf names how a round ended. A frame that both catches the player and
// clears the board counts as caught.
func outcomeOf(snap maze.Snapshot) string {
	switch {
	case snap.Caught:
		return outcomeCaught
	case snap.Cleared:
		return outcomeCleared
	default:
		return outcomeTimeout
	}
}

// firstTick returns the tick of the first matching journal entry, or -1.
func firstTick(j *maze.Journal, category, key string) int {
	if e, ok := j.First(category, key); ok {
		return e.Tick
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	outcome := rs.outcome
	if rs.outcome == outcomeCaught {
		outcome += " by " + rs.caughtBy
	}
	fmt.Printf("outcome: %s frames=%d end_tick=%d digest=%016x\n", outcome, rs.frames, rs.endTick, rs.digest)
	fmt.Printf("phase_markers: first_decision=%d first_wrap=%d first_stuck=%d\n",
		rs.firstDecisionTick, rs.firstWrapTick, rs.firstStuckTick)
	fmt.Printf("agent_events: decisions=%d pursue=%d random=%d guarded=%d stuck=%d unstuck=%d wraps=%d\n",
		rs.decisions, rs.pursuits, rs.randoms, rs.guarded, rs.stuck, rs.unstuck, rs.wraps)
	fmt.Printf("collectibles: consumed=%d remaining=%d\n", rs.consumed, rs.remaining)
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalDecisions := 0
	totalPursuits := 0
	totalGuarded := 0
	totalStuck := 0
	totalWraps := 0
	totalConsumed := 0
	endTicks := make([]int, 0, len(all))
	outcomes := map[string]int{}
	catchers := map[string]int{}

	for _, rs := range all {
		totalDecisions += rs.decisions
		totalPursuits += rs.pursuits
		totalGuarded += rs.guarded
		totalStuck += rs.stuck
		totalWraps += rs.wraps
		totalConsumed += rs.consumed
		outcomes[rs.outcome]++
		if rs.outcome == outcomeCaught {
			catchers[rs.caughtBy]++
		}
		if rs.endTick >= 0 {
			endTicks = append(endTicks, rs.endTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("outcomes: caught=%d cleared=%d timeout=%d\n",
		outcomes[outcomeCaught], outcomes[outcomeCleared], outcomes[outcomeTimeout])
	fmt.Printf("avg_events_per_run: decisions=%.1f guarded=%.1f stuck=%.1f wraps=%.1f consumed=%.1f\n",
		avg(totalDecisions, len(all)), avg(totalGuarded, len(all)), avg(totalStuck, len(all)),
		avg(totalWraps, len(all)), avg(totalConsumed, len(all)))
	fmt.Printf("pursuit_share=%s\n", percent(totalPursuits, totalDecisions))
	fmt.Printf("avg_end_tick=%s\n", avgTickString(endTicks))
	fmt.Printf("catchers: %s\n", formatCounts(catchers))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func percent(part, whole int) string {
	if whole <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(whole)*100)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

// formatCounts renders label counts sorted by label, e.g. "A0=2,A3=1".
func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(counts))
	for k := range counts {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = fmt.Sprintf("%s=%d", l, counts[l])
	}
	return strings.Join(parts, ",")
}
