package leaderboard

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBoardSortedAndCapped(t *testing.T) {
	var b Board

	// 15 distinct scores; only the top 10 survive.
	for i := 1; i <= 15; i++ {
		b.Add(Entry{Name: "p", Score: i * 10, When: time.Now()})
	}

	entries := b.Entries()
	if len(entries) != Cap {
		t.Fatalf("Board length = %d, want %d", len(entries), Cap)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Score > entries[i-1].Score {
			t.Errorf("Board not sorted descending at %d: %d > %d", i, entries[i].Score, entries[i-1].Score)
		}
	}
	if entries[len(entries)-1].Score != 60 {
		t.Errorf("Lowest surviving score = %d, want 60", entries[len(entries)-1].Score)
	}
}

func TestBoardDropsBelowTenth(t *testing.T) {
	var b Board
	for i := 0; i < Cap; i++ {
		b.Add(Entry{Name: "p", Score: 100 + i})
	}

	b.Add(Entry{Name: "loser", Score: 1})
	for _, e := range b.Entries() {
		if e.Name == "loser" {
			t.Error("Score below the 10th-highest must not appear on the board")
		}
	}

	if b.Qualifies(1) {
		t.Error("Qualifies(1) should be false on a full board of 100+")
	}
	if !b.Qualifies(200) {
		t.Error("Qualifies(200) should be true")
	}
}

func TestBoardTiesKeepOlderFirst(t *testing.T) {
	var b Board
	b.Add(Entry{Name: "first", Score: 50})
	b.Add(Entry{Name: "second", Score: 50})

	entries := b.Entries()
	if entries[0].Name != "first" {
		t.Errorf("Tie order not stable: got %q first", entries[0].Name)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	var b Board
	b.Add(Entry{Name: "alice", Score: 12, When: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)})
	b.Add(Entry{Name: "bob", Score: 30, When: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)})

	if err := store.Save(b); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	entries := loaded.Entries()
	if len(entries) != 2 {
		t.Fatalf("Loaded %d entries, want 2", len(entries))
	}
	if entries[0].Name != "bob" || entries[0].Score != 30 {
		t.Errorf("Top entry = %+v, want bob/30", entries[0])
	}
	if entries[1].Name != "alice" || entries[1].Score != 12 {
		t.Errorf("Second entry = %+v, want alice/12", entries[1])
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	var b Board
	b.Add(Entry{Name: "old", Score: 5})
	if err := store.Save(b); err != nil {
		t.Fatalf("First Save() failed: %v", err)
	}

	b.Add(Entry{Name: "new", Score: 9})
	if err := store.Save(b); err != nil {
		t.Fatalf("Second Save() failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.Len() != 2 {
		t.Errorf("Save should replace, not append: got %d entries", loaded.Len())
	}
	if loaded.Best() != 9 {
		t.Errorf("Best = %d, want 9", loaded.Best())
	}
}

func TestStoreCreatesParentDirs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreLoadEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	b, err := store.Load()
	if err != nil {
		t.Fatalf("Load() on fresh database failed: %v", err)
	}
	if b.Len() != 0 {
		t.Errorf("Fresh database should load an empty board, got %d entries", b.Len())
	}
}
