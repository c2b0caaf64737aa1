package leaderboard

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store persists the board in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at the given path, creating parent
// directories and running migrations as needed. A leading ~ expands to
// the home directory.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("leaderboard: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("leaderboard: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("leaderboard: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("leaderboard: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS leaderboard (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_top ON leaderboard(score DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the persisted board. Rows that fail to scan are skipped
// with a warning rather than failing the load: malformed score data
// degrades to a shorter (or empty) board, never to a dead game.
func (s *Store) Load() (Board, error) {
	rows, err := s.db.Query(
		`SELECT name, score, created_at
		 FROM leaderboard
		 ORDER BY score DESC
		 LIMIT ?`,
		Cap,
	)
	if err != nil {
		return Board{}, fmt.Errorf("leaderboard: cannot query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt any
		if err := rows.Scan(&e.Name, &e.Score, &createdAt); err != nil {
			log.Warn("leaderboard: skipping malformed row", "error", err)
			continue
		}

		// SQLite hands back DATETIME as either time.Time or string
		switch v := createdAt.(type) {
		case time.Time:
			e.When = v
		case string:
			if parsed, perr := time.Parse("2006-01-02 15:04:05", v); perr == nil {
				e.When = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return Board{}, fmt.Errorf("leaderboard: row iteration error: %w", err)
	}

	return NewBoard(entries), nil
}

// Save replaces the persisted board with the given one, transactionally.
func (s *Store) Save(b Board) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("leaderboard: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM leaderboard"); err != nil {
		return fmt.Errorf("leaderboard: cannot clear entries: %w", err)
	}

	for _, e := range b.Entries() {
		if _, err := tx.Exec(
			"INSERT INTO leaderboard (name, score, created_at) VALUES (?, ?, ?)",
			e.Name, e.Score, e.When.UTC().Format("2006-01-02 15:04:05"),
		); err != nil {
			return fmt.Errorf("leaderboard: cannot insert entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("leaderboard: cannot commit: %w", err)
	}
	return nil
}
