// Package leaderboard keeps the top-10 score list and persists it in
// SQLite. The in-memory Board is the source of truth during a session:
// it is loaded once at startup and saved once per game over.
package leaderboard

import (
	"sort"
	"time"
)

// Cap is the maximum number of entries the board retains.
const Cap = 10

// Entry is a single leaderboard record. Immutable once created.
type Entry struct {
	Name  string
	Score int
	When  time.Time
}

// Board is an ordered score list, sorted descending by score and capped
// at Cap entries.
type Board struct {
	entries []Entry
}

// NewBoard creates a board from existing entries, normalizing order and
// length. Used when loading persisted data of unknown shape.
func NewBoard(entries []Entry) Board {
	b := Board{entries: append([]Entry(nil), entries...)}
	b.normalize()
	return b
}

// Add inserts an entry, re-sorts, and truncates to Cap. Entries that
// fall below the Cap-th highest score silently drop off.
func (b *Board) Add(e Entry) {
	b.entries = append(b.entries, e)
	b.normalize()
}

func (b *Board) normalize() {
	// Stable keeps older entries ahead on score ties.
	sort.SliceStable(b.entries, func(i, j int) bool {
		return b.entries[i].Score > b.entries[j].Score
	})
	if len(b.entries) > Cap {
		b.entries = b.entries[:Cap]
	}
}

// Entries returns the board contents, best first. The caller gets a
// copy and may keep it.
func (b Board) Entries() []Entry {
	return append([]Entry(nil), b.entries...)
}

// Len returns the number of entries on the board.
func (b Board) Len() int {
	return len(b.entries)
}

// Best returns the top score, or 0 for an empty board.
func (b Board) Best() int {
	if len(b.entries) == 0 {
		return 0
	}
	return b.entries[0].Score
}

// Qualifies reports whether a score would make it onto the board.
func (b Board) Qualifies(score int) bool {
	if len(b.entries) < Cap {
		return true
	}
	return score > b.entries[len(b.entries)-1].Score
}
