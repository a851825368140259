package level

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// LevelFormatError reports a level description that cannot be turned into a grid.
// The game cannot start without one, so callers treat it as fatal.
type LevelFormatError struct {
	Path   string // empty when parsing a stream
	Reason string
	Err    error
}

func (e *LevelFormatError) Error() string {
	msg := "level"
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LevelFormatError) Unwrap() error { return e.Err }

// MaxDimension bounds the width and height a level header may declare.
const MaxDimension = 4096

// ErrShortLevel is wrapped when the tile stream ends before width*height tiles were read.
var ErrShortLevel = errors.New("tile stream shorter than width*height")

// Load opens and parses the level file at path.
func Load(path string, opts ...Option) (*Grid, error) {
	f, err := os.Open(path) // #nosec G304 -- level path comes from local config
	if err != nil {
		return nil, &LevelFormatError{Path: path, Reason: "cannot open level file", Err: err}
	}
	defer f.Close()

	g, err := Parse(f, opts...)
	if err != nil {
		var lfe *LevelFormatError
		if errors.As(err, &lfe) {
			lfe.Path = path
			return nil, lfe
		}
		return nil, &LevelFormatError{Path: path, Reason: "parse failed", Err: err}
	}
	return g, nil
}

// Parse reads a whitespace-separated level description: width, height, then
// width*height tile values in row-major order.
func Parse(r io.Reader, opts ...Option) (*Grid, error) {
	bo := defaultBuildOptions()
	for _, o := range opts {
		o(&bo)
	}

	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	pos := 0
	next := func() (int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, &LevelFormatError{Reason: "read failed", Err: err}
			}
			return 0, io.EOF
		}
		pos++
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return 0, &LevelFormatError{Reason: fmt.Sprintf("token %d is not an integer", pos), Err: err}
		}
		return v, nil
	}

	width, err := next()
	if err != nil {
		return nil, headerErr("width", err)
	}
	height, err := next()
	if err != nil {
		return nil, headerErr("height", err)
	}
	if width <= 0 || height <= 0 {
		return nil, &LevelFormatError{Reason: fmt.Sprintf("invalid dimensions %dx%d", width, height)}
	}
	if width > MaxDimension || height > MaxDimension {
		return nil, &LevelFormatError{Reason: fmt.Sprintf("dimensions %dx%d exceed %d", width, height, MaxDimension)}
	}

	g := &Grid{
		width:    width,
		height:   height,
		tiles:    make([]TileKind, width*height),
		tileSize: bo.tileSize,
		wrapX:    bo.wrapX,
		wrapZ:    bo.wrapZ,
		reserved: make(map[int]bool),
	}

	open := 0
	for i := range g.tiles {
		v, err := next()
		if errors.Is(err, io.EOF) {
			return nil, &LevelFormatError{
				Reason: fmt.Sprintf("got %d of %d tiles", i, width*height),
				Err:    ErrShortLevel,
			}
		}
		if err != nil {
			return nil, err
		}
		if v < 0 || v >= int(tileKindCount) {
			return nil, &LevelFormatError{Reason: fmt.Sprintf("tile (%d,%d) has unknown value %d", i%width, i/width, v)}
		}
		k := TileKind(v)
		switch k {
		case TileSpawn:
			if g.hasSpawn {
				return nil, &LevelFormatError{Reason: fmt.Sprintf("second spawn marker at (%d,%d)", i%width, i/width)}
			}
			g.spawnX, g.spawnZ, g.hasSpawn = i%width, i/width, true
		case TileOpen:
			open++
		}
		g.tiles[i] = k
	}

	if _, err := next(); !errors.Is(err, io.EOF) {
		return nil, &LevelFormatError{Reason: fmt.Sprintf("trailing data after %d tiles", width*height)}
	}
	if open == 0 {
		return nil, &LevelFormatError{Reason: "level has no open tile"}
	}

	if bo.reservedSet {
		for _, z := range bo.reserved {
			g.reserved[z] = true
		}
	} else if g.hasSpawn {
		g.reserved[g.spawnZ] = true
	}
	return g, nil
}

func headerErr(field string, err error) error {
	if errors.Is(err, io.EOF) {
		return &LevelFormatError{Reason: "missing " + field, Err: ErrShortLevel}
	}
	return err
}
