package main

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Garsondee/Pellet-Maze/internal/maze"
)

func testOptions() reportOptions {
	return reportOptions{
		configPath: "../../configs/maze.yaml",
		runs:       3,
		frames:     600,
		seedBase:   42,
		seedStep:   7,
		agents:     -1,
		frameMS:    1000.0 / 60.0,
		parallel:   2,
	}
}

func TestValidate_RejectsEveryBadFlag(t *testing.T) {
	o := testOptions()
	o.runs = 0
	o.frames = -1
	o.parallel = 0
	o.agents = 99

	err := o.validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, name := range []string{"-runs", "-frames", "-parallel", "-agents"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("expected error to mention %s, got: %v", name, err)
		}
	}
	if err := testOptions().validate(); err != nil {
		t.Fatalf("expected defaults to validate, got: %v", err)
	}
}

func TestSeedFor(t *testing.T) {
	o := testOptions()
	if got := seedFor(o, 0); got != 42 {
		t.Fatalf("expected run 1 seed 42, got %d", got)
	}
	if got := seedFor(o, 2); got != 56 {
		t.Fatalf("expected run 3 seed 56, got %d", got)
	}
}

func TestLoadConfig_AppliesOverrides(t *testing.T) {
	o := testOptions()
	o.agents = 2
	o.levelPath = "other.lvl"

	cfg, err := loadConfig(o)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Agents.Count != 2 {
		t.Fatalf("expected agent override 2, got %d", cfg.Agents.Count)
	}
	if cfg.Level.Path != "other.lvl" {
		t.Fatalf("expected level override, got %s", cfg.Level.Path)
	}

	o.configPath = ""
	o.agents = -1
	o.levelPath = ""
	cfg, err = loadConfig(o)
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Agents.Count != 4 {
		t.Fatalf("expected default agent count 4, got %d", cfg.Agents.Count)
	}
}

func TestOutcomeOf(t *testing.T) {
	if got := outcomeOf(maze.Snapshot{Caught: true, Cleared: true}); got != outcomeCaught {
		t.Fatalf("expected caught to win over cleared, got %s", got)
	}
	if got := outcomeOf(maze.Snapshot{Cleared: true}); got != outcomeCleared {
		t.Fatalf("expected cleared, got %s", got)
	}
	if got := outcomeOf(maze.Snapshot{}); got != outcomeTimeout {
		t.Fatalf("expected timeout, got %s", got)
	}
}

func TestFirstTick(t *testing.T) {
	j := maze.NewJournal(false)
	j.Add(3, "P", maze.CatWrap, "x", "", 0)
	j.Add(5, "A0", maze.CatDecision, "random", "", 0)
	j.Add(9, "A1", maze.CatDecision, "pursue", "", 0)

	if got := firstTick(j, maze.CatDecision, ""); got != 5 {
		t.Fatalf("expected first decision at 5, got %d", got)
	}
	if got := firstTick(j, maze.CatDecision, "pursue"); got != 9 {
		t.Fatalf("expected first pursue at 9, got %d", got)
	}
	if got := firstTick(j, maze.CatStuck, ""); got != -1 {
		t.Fatalf("expected -1 for missing category, got %d", got)
	}
}

func TestCollectStats_CountsPelletsNotEvents(t *testing.T) {
	sc := maze.DefaultSessionConfig()
	sc.AgentCount = 0
	sc.CollectRadius = 3.5
	// The player starts at (5,3); three of the five pellets in row 2 are within reach.
	h, err := maze.NewHeadless(
		maze.WithLevelText("5 3\n1 1 1 1 1\n0 0 2 0 0\n0 0 0 0 0"),
		maze.WithSessionConfig(sc),
	)
	if err != nil {
		t.Fatalf("new headless: %v", err)
	}
	h.Step()

	rs := collectStats(1, 1, h)
	events := h.Journal().Count(maze.CatConsume, "")
	if events != 1 {
		t.Fatalf("expected one consume event, got %d", events)
	}
	if rs.consumed != 3 {
		t.Fatalf("expected 3 pellets from one event, got consumed=%d", rs.consumed)
	}
	if rs.consumed+rs.remaining != 5 {
		t.Fatalf("expected 5 pellets in total, got consumed=%d remaining=%d", rs.consumed, rs.remaining)
	}
}

func TestFormatCounts(t *testing.T) {
	if got := formatCounts(nil); got != "none" {
		t.Fatalf("expected none, got %s", got)
	}
	got := formatCounts(map[string]int{"A3": 1, "A0": 2})
	if got != "A0=2,A3=1" {
		t.Fatalf("expected sorted counts, got %s", got)
	}
}

func TestAvgHelpers(t *testing.T) {
	if avg(10, 0) != 0 {
		t.Fatalf("expected avg over zero runs to be 0")
	}
	if avg(9, 2) != 4.5 {
		t.Fatalf("expected 4.5, got %v", avg(9, 2))
	}
	if avgTickString(nil) != "n/a" {
		t.Fatalf("expected n/a for no ticks")
	}
	if got := avgTickString([]int{10, 20}); got != "15.0" {
		t.Fatalf("expected 15.0, got %s", got)
	}
	if got := percent(1, 4); got != "25.0%" {
		t.Fatalf("expected 25.0%%, got %s", got)
	}
}

func TestRunAll_ParallelMatchesSerial(t *testing.T) {
	o := testOptions()
	cfg, err := loadConfig(o)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	grid, err := cfg.LoadLevel()
	if err != nil {
		t.Fatalf("load level: %v", err)
	}

	parallel, err := runAll(grid, cfg.Session(), o, zap.NewNop())
	if err != nil {
		t.Fatalf("parallel runs: %v", err)
	}
	o.parallel = 1
	serial, err := runAll(grid, cfg.Session(), o, zap.NewNop())
	if err != nil {
		t.Fatalf("serial runs: %v", err)
	}

	if len(parallel) != o.runs || len(serial) != o.runs {
		t.Fatalf("expected %d runs, got %d and %d", o.runs, len(parallel), len(serial))
	}
	for i := range parallel {
		p, s := parallel[i], serial[i]
		if p.runIndex != i+1 || p.seed != seedFor(o, i) {
			t.Fatalf("run %d out of order: index=%d seed=%d", i, p.runIndex, p.seed)
		}
		if p.digest != s.digest || p.frames != s.frames || p.outcome != s.outcome {
			t.Fatalf("run %d diverged: parallel=%+v serial=%+v", i+1, p, s)
		}
		if p.decisions != p.pursuits+p.randoms {
			t.Fatalf("run %d: decisions=%d pursue=%d random=%d", i+1, p.decisions, p.pursuits, p.randoms)
		}
		if p.frames > o.frames {
			t.Fatalf("run %d exceeded frame cap: %d", i+1, p.frames)
		}
	}
}
