package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanarDistanceIgnoresHeight(t *testing.T) {
	a := V3(1, 10, 1)
	b := V3(4, -3, 5)
	assert.InDelta(t, 5.0, PlanarDistance(a, b), 1e-9)
}

func TestNormalize(t *testing.T) {
	n := V3(3, 0, 4).Normalize()
	assert.InDelta(t, 1.0, n.Length(), 1e-9)
	assert.InDelta(t, 0.6, n.X, 1e-9)
	assert.True(t, Vec3{}.Normalize().IsZero(), "zero vector must stay zero")
}

func TestCrossRightHanded(t *testing.T) {
	// front (+X) × world up (+Y) points along +Z.
	right := V3(1, 0, 0).Cross(V3(0, 1, 0))
	assert.InDelta(t, 0, right.X, 1e-9)
	assert.InDelta(t, 0, right.Y, 1e-9)
	assert.InDelta(t, 1, right.Z, 1e-9)
	assert.False(t, math.IsNaN(right.Length()))
}
