package maze

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Pellet-Maze/internal/level"
)

const classicLevelPath = "../../configs/classic.lvl"

// levelText renders a picture of a level ('#' wall, 'S' spawn, anything else open)
// in the level file format.
func levelText(rows ...string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %d\n", len(rows[0]), len(rows))
	for _, r := range rows {
		for i, c := range r {
			if i > 0 {
				sb.WriteByte(' ')
			}
			switch c {
			case '#':
				sb.WriteByte('1')
			case 'S':
				sb.WriteByte('2')
			default:
				sb.WriteByte('0')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func mustGrid(t *testing.T, opts []level.Option, rows ...string) *level.Grid {
	t.Helper()
	g, err := level.Parse(strings.NewReader(levelText(rows...)), opts...)
	require.NoError(t, err)
	return g
}

func mustClassic(t *testing.T) *level.Grid {
	t.Helper()
	g, err := level.Load(classicLevelPath)
	require.NoError(t, err)
	return g
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- tests
}

// boxRows is a 3x3 open room enclosed by walls.
var boxRows = []string{
	"#####",
	"#...#",
	"#...#",
	"#...#",
	"#####",
}
