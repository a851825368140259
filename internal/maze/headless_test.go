package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Pellet-Maze/internal/level"
)

// invariantChecker asserts the engine's per-frame guarantees from a frame hook.
type invariantChecker struct {
	t             *testing.T
	lastRemaining int
	total         int
	decisions     int
}

func inExtent(v, extent float64) bool { return v >= 0 && v < extent }

func (c *invariantChecker) hook(h *Headless, res FrameResult) {
	t := c.t
	t.Helper()
	s := h.Session
	g := s.Grid()
	ex, ez := g.Extent()

	pp := s.Player().Position()
	require.False(t, InWall(g, pp), "frame %d: player in wall at %+v", res.Tick, pp)
	require.True(t, inExtent(pp.X, ex) && inExtent(pp.Z, ez), "frame %d: player out of bounds %+v", res.Tick, pp)

	for i, a := range s.Agents() {
		ap := a.Position()
		require.False(t, InWall(g, ap), "frame %d: %s in wall at %+v", res.Tick, a.Label(), ap)
		require.True(t, inExtent(ap.X, ex) && inExtent(ap.Z, ez), "frame %d: %s out of bounds %+v", res.Tick, a.Label(), ap)

		rep := res.Agents[i]
		if rep.Decided && !rep.Stuck && a.State() != AgentStuck && len(rep.Wrapped) == 0 {
			c.decisions++
			require.True(t, neighbourWalkable(g, rep.Tile, rep.To),
				"frame %d: %s chose %s from %v", res.Tick, a.Label(), rep.To, rep.Tile)
		}
	}

	remaining, eaten := s.Collectibles().Counts()
	require.LessOrEqual(t, remaining, c.lastRemaining, "frame %d: collectibles grew", res.Tick)
	require.Equal(t, c.total, remaining+eaten, "frame %d: collectibles appeared or vanished", res.Tick)
	c.lastRemaining = remaining
}

func TestHeadless_InvariantsHoldOnClassicLevel(t *testing.T) {
	g := mustClassic(t)
	cfg := DefaultSessionConfig()
	cfg.CatchRadius = 0 // never caught, so the run covers the full frame budget

	for seed := int64(1); seed <= 5; seed++ {
		c := &invariantChecker{t: t, lastRemaining: 1 << 30}
		var h *Headless
		t.Cleanup(func() {
			if t.Failed() && h != nil {
				t.Logf("seed %d, last events:\n%s", seed, FormatEntries(h.Journal().Tail(30), "  "))
			}
		})
		h, err := NewHeadless(
			WithGrid(g),
			WithSeed(seed),
			WithSessionConfig(cfg),
			WithPilot(NewWanderPilot(seed)),
			WithFrameHook(c.hook),
		)
		require.NoError(t, err)
		c.total, _ = h.Session.Collectibles().Counts()

		h.RunFrames(3000)
		_, eaten := h.Session.Collectibles().Counts()
		assert.Positive(t, eaten, "seed %d: the pilot should eat something", seed)
		assert.Positive(t, c.decisions, "seed %d", seed)
		assert.Positive(t, h.Journal().Count(CatDecision, ""), "seed %d", seed)
	}
}

func TestHeadless_InvariantsHoldWithLongFrames(t *testing.T) {
	g := mustClassic(t)
	cfg := DefaultSessionConfig()
	cfg.CatchRadius = 0

	for seed := int64(1); seed <= 3; seed++ {
		c := &invariantChecker{t: t, lastRemaining: 1 << 30}
		h, err := NewHeadless(
			WithGrid(g),
			WithSeed(seed),
			WithSessionConfig(cfg),
			WithFrameTime(0.3), // 1.2 world units per player step
			WithPilot(NewWanderPilot(seed)),
			WithFrameHook(c.hook),
		)
		require.NoError(t, err)
		c.total, _ = h.Session.Collectibles().Counts()
		h.RunFrames(600)
	}
}

func TestHeadless_SameSeedSameDigests(t *testing.T) {
	run := func(seed int64) []uint64 {
		var digests []uint64
		h, err := NewHeadless(
			WithGrid(mustClassic(t)),
			WithSeed(seed),
			WithPilot(NewWanderPilot(seed)),
			WithFrameHook(func(h *Headless, _ FrameResult) {
				digests = append(digests, Digest(h.Session.Snapshot()))
			}),
		)
		require.NoError(t, err)
		h.RunFrames(1500)
		return digests
	}

	a, b := run(42), run(42)
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)

	c := run(43)
	assert.NotEqual(t, a[len(a)-1], c[len(c)-1])
}

func TestDigest_ChangesWithState(t *testing.T) {
	h, err := NewHeadless(WithGrid(mustClassic(t)), WithSeed(3))
	require.NoError(t, err)

	first := Digest(h.Session.Snapshot())
	assert.Equal(t, first, Digest(h.Session.Snapshot()))

	h.Step()
	assert.NotEqual(t, first, Digest(h.Session.Snapshot()))
}

func TestNewHeadless_NeedsLevel(t *testing.T) {
	_, err := NewHeadless(WithSeed(1))
	require.ErrorIs(t, err, ErrNoLevel)
}

func TestNewHeadless_LevelTextErrors(t *testing.T) {
	_, err := NewHeadless(WithLevelText("2 2\n0 0 0"))
	var lfe *level.LevelFormatError
	require.ErrorAs(t, err, &lfe)
}

func TestNewHeadless_FromLevelText(t *testing.T) {
	h, err := NewHeadless(
		WithLevelText(levelText(boxRows...)),
		WithAgentCount(2),
		WithFrameTime(0.02),
		WithVerbose(true),
	)
	require.NoError(t, err)
	assert.Len(t, h.Session.Agents(), 2)
	assert.Equal(t, 0.02, h.FrameTime)
	assert.Equal(t, int64(1), h.Seed)
}

func TestHeadless_RunUntilAndRunFrames(t *testing.T) {
	h, err := NewHeadless(WithLevelText(levelText(boxRows...)), WithAgentCount(0))
	require.NoError(t, err)

	assert.Equal(t, 10, h.RunUntil(func(h *Headless) bool { return h.Frames == 10 }, 100))
	assert.Equal(t, -1, h.RunUntil(func(*Headless) bool { return false }, 5))
	assert.Equal(t, 15, h.Frames)
	assert.Equal(t, 7, h.RunFrames(7))
}

func TestHeadless_RunFramesStopsWhenOver(t *testing.T) {
	cfg := DefaultSessionConfig()
	cfg.AgentCount = 1
	cfg.CatchRadius = 100
	h, err := NewHeadless(WithLevelText(levelText(boxRows...)), WithSessionConfig(cfg))
	require.NoError(t, err)

	assert.Equal(t, 1, h.RunFrames(50))
	assert.True(t, h.Session.PlayerCaught())
}
