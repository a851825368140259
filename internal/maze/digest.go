package maze

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Digest hashes a snapshot. Two runs with the same grid, seed and inputs produce the
// same digest frame for frame.
func Digest(snap Snapshot) uint64 {
	d := xxhash.New()
	var buf [8]byte
	putInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		_, _ = d.Write(buf[:])
	}
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}

	putInt(snap.Tick)
	putFloat(snap.Player.Pos.X)
	putFloat(snap.Player.Pos.Y)
	putFloat(snap.Player.Pos.Z)
	putFloat(snap.Player.Yaw)
	putFloat(snap.Player.Pitch)
	for _, a := range snap.Agents {
		_, _ = d.WriteString(a.Label)
		putFloat(a.Pos.X)
		putFloat(a.Pos.Z)
		putInt(int(a.Dir))
		putInt(int(a.State))
	}
	putInt(snap.Remaining)
	putInt(snap.Eaten)
	for _, c := range snap.Collectibles {
		putFloat(c.X)
		putFloat(c.Z)
	}
	flags := 0
	if snap.Caught {
		flags |= 1
	}
	if snap.Cleared {
		flags |= 2
	}
	putInt(flags)
	return d.Sum64()
}
