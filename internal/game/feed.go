package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Pellet-Maze/internal/maze"
)

const (
	logPanelWidth = 300
	feedMaxItems  = 60
	feedLineH     = 14
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick     int
	Actor    string // "P", "A0".., or "--"
	Category string
	Message  string
}

// EventFeed is a ring buffer of recent engine events rendered beside the maze.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{entries: make([]FeedEntry, feedMaxItems)}
}

// Add appends an entry, overwriting the oldest when full.
func (f *EventFeed) Add(e FeedEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxItems
	if f.count < feedMaxItems {
		f.count++
	}
}

// AddJournal appends a journal entry.
func (f *EventFeed) AddJournal(e maze.JournalEntry) {
	f.Add(FeedEntry{
		Tick:     e.Tick,
		Actor:    e.Actor,
		Category: e.Category,
		Message:  e.Key + " " + e.Value,
	})
}

// Recent returns entries oldest first.
func (f *EventFeed) Recent() []FeedEntry {
	out := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		out[i] = f.entries[(f.head-f.count+i+feedMaxItems)%feedMaxItems]
	}
	return out
}

// Draw renders the feed panel at panelX, newest entry at the bottom.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), colPanel, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, colPanelEdge, false)
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, colPanelTitle, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 0)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineH
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), feedLineH, colPanelHighlight, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, categoryColor(e.Category), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %-3s %s", e.Tick, e.Actor, e.Message), panelX+12, y)
		y += feedLineH
	}
}

func categoryColor(cat string) color.Color {
	switch cat {
	case maze.CatCaught, maze.CatStuck:
		return colAlert
	case maze.CatCleared, maze.CatConsume:
		return colPellet
	case maze.CatWrap:
		return colWrap
	default:
		return colPanelEdge
	}
}
