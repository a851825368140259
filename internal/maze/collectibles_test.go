package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Pellet-Maze/internal/geom"
)

func TestCollectibleField_PlacedOnOpenTileCentres(t *testing.T) {
	g := mustGrid(t, nil, boxRows...)
	f := NewCollectibleField(g)

	remaining, eaten := f.Counts()
	assert.Equal(t, 9, remaining)
	assert.Zero(t, eaten)
	assert.Contains(t, f.Positions(), geom.V3(5, 0.5, 5))
	assert.Contains(t, f.Positions(), geom.V3(3, 0.5, 3))
}

func TestCollectibleField_SkipsReservedRowsAndSpawn(t *testing.T) {
	g := mustGrid(t, nil, roomWithSpawn...)
	f := NewCollectibleField(g)

	remaining, _ := f.Counts()
	assert.Equal(t, 6, remaining)
	for _, p := range f.Positions() {
		assert.NotEqual(t, 5.0, p.Z, "row 2 holds the spawn marker")
	}
}

func TestCollectibleField_ConsumeIsIdempotent(t *testing.T) {
	g := mustGrid(t, nil, boxRows...)
	f := NewCollectibleField(g)
	player := geom.V3(5.3, 1, 5.3)

	assert.Equal(t, 1, f.Consume(player))
	assert.NotContains(t, f.Positions(), geom.V3(5, 0.5, 5))
	assert.Equal(t, 0, f.Consume(player), "second call removes nothing")

	remaining, eaten := f.Counts()
	assert.Equal(t, 8, remaining)
	assert.Equal(t, 1, eaten)
}

func TestCollectibleField_RadiusIsStrict(t *testing.T) {
	g := mustGrid(t, nil, boxRows...)
	f := NewCollectibleField(g)

	assert.Zero(t, f.Consume(geom.V3(5.7, 1, 5)))
	assert.Equal(t, 1, f.Consume(geom.V3(5.69, 1, 5)))
}

func TestCollectibleField_SetRadius(t *testing.T) {
	g := mustGrid(t, nil, boxRows...)
	f := NewCollectibleField(g)

	f.SetRadius(-1)
	assert.Equal(t, DefaultCollectRadius, f.Radius())

	f.SetRadius(2.5)
	assert.Equal(t, 5, f.Consume(geom.V3(5, 1, 5)), "centre plus four neighbours")
}

func TestCollectibleField_Completion(t *testing.T) {
	g := mustGrid(t, nil,
		"###",
		"#.#",
		"###",
	)
	f := NewCollectibleField(g)
	require.False(t, f.IsComplete())

	f.Consume(geom.V3(3, 1, 3))
	assert.True(t, f.IsComplete())
	assert.Empty(t, f.Positions())
}

func TestCollectibleField_PositionsIsACopy(t *testing.T) {
	g := mustGrid(t, nil, boxRows...)
	f := NewCollectibleField(g)

	ps := f.Positions()
	ps[0] = geom.V3(-1, -1, -1)
	assert.NotContains(t, f.Positions(), geom.V3(-1, -1, -1))
}
