package maze

import (
	"fmt"
	"strings"
)

// Journal categories.
const (
	CatDecision = "decision"
	CatStuck    = "stuck"
	CatUnstuck  = "unstuck"
	CatWrap     = "wrap"
	CatConsume  = "consume"
	CatCaught   = "caught"
	CatCleared  = "cleared"
	CatBlocked  = "blocked"
)

// globalActor labels events that do not belong to a single entity.
const globalActor = "--"

// JournalEntry is one recorded engine event.
type JournalEntry struct {
	Tick     int
	Actor    string  // "P" for the player, "A0".."An" for agents, "--" for global events
	Category string  // one of the Cat* constants
	Key      string  // specific event within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] A1   decision  pursue          north (5,3)
func (e JournalEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-4s %-9s %-15s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// Journal is the append-only event record of one session. The session writes it;
// tests, the batch report and the viewer's feed read it.
type Journal struct {
	entries []JournalEntry
	verbose bool
}

// NewJournal creates a Journal. verbose also keeps per-frame noise such as blocked
// player moves.
func NewJournal(verbose bool) *Journal {
	return &Journal{verbose: verbose}
}

func (j *Journal) Add(tick int, actor, category, key, value string, numVal float64) {
	j.entries = append(j.entries, JournalEntry{
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose is Add when the journal is verbose and a no-op otherwise.
func (j *Journal) AddVerbose(tick int, actor, category, key, value string, numVal float64) {
	if j.verbose {
		j.Add(tick, actor, category, key, value, numVal)
	}
}

func (j *Journal) Len() int { return len(j.entries) }

// After returns the entries recorded after the first n, for readers that poll. The
// result shares the journal's storage; callers must not modify it.
func (j *Journal) After(n int) []JournalEntry {
	if n >= len(j.entries) {
		return nil
	}
	return j.entries[max(n, 0):]
}

// Tail returns at most the n most recent entries.
func (j *Journal) Tail(n int) []JournalEntry {
	return j.entries[max(len(j.entries)-n, 0):]
}

// Count returns how many entries match. An empty key matches every key.
func (j *Journal) Count(category, key string) int {
	n := 0
	for _, e := range j.entries {
		if e.matches(category, key) {
			n++
		}
	}
	return n
}

// First returns the earliest matching entry. An empty key matches every key.
func (j *Journal) First(category, key string) (JournalEntry, bool) {
	for _, e := range j.entries {
		if e.matches(category, key) {
			return e, true
		}
	}
	return JournalEntry{}, false
}

// KeyCounts tallies the entries of one category by key.
func (j *Journal) KeyCounts(category string) map[string]int {
	out := map[string]int{}
	for _, e := range j.entries {
		if e.Category == category {
			out[e.Key]++
		}
	}
	return out
}

func (e JournalEntry) matches(category, key string) bool {
	return e.Category == category && (key == "" || e.Key == key)
}

// FormatEntries renders entries one per line, each prefixed by indent.
func FormatEntries(entries []JournalEntry, indent string) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(indent)
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
