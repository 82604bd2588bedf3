// Package archive keeps a local SQLite record of every item confirmed
// written to Zotero, for offline inspection via the history command.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one archived import.
type Entry struct {
	PMID       string
	Topic      string
	Title      string
	Journal    string
	PubDate    string
	ImportedAt string
}

// Archive wraps the SQLite archive database.
type Archive struct {
	db *sql.DB
}

// Open opens or creates the archive database at the given path.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	schema := `
		CREATE TABLE IF NOT EXISTS items (
			pmid        TEXT NOT NULL,
			topic       TEXT NOT NULL,
			title       TEXT,
			journal     TEXT,
			pubdate     TEXT,
			imported_at TEXT NOT NULL,
			PRIMARY KEY (pmid, topic)
		);

		CREATE INDEX IF NOT EXISTS idx_items_imported_at ON items(imported_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the archive database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Record stores entries for confirmed writes. Re-recording an already
// archived (pmid, topic) pair is a no-op.
func (a *Archive) Record(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO items (pmid, topic, title, journal, pubdate, imported_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Format(time.RFC3339)
	for _, e := range entries {
		importedAt := e.ImportedAt
		if importedAt == "" {
			importedAt = now
		}
		if _, err := stmt.Exec(e.PMID, e.Topic, e.Title, e.Journal, e.PubDate, importedAt); err != nil {
			return fmt.Errorf("inserting %s/%s: %w", e.Topic, e.PMID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing archive entries: %w", err)
	}
	return nil
}

// Recent returns the most recently imported entries, newest first.
func (a *Archive) Recent(limit int) ([]Entry, error) {
	rows, err := a.db.Query(`
		SELECT pmid, topic, title, journal, pubdate, imported_at
		FROM items
		ORDER BY imported_at DESC, pmid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.PMID, &e.Topic, &e.Title, &e.Journal, &e.PubDate, &e.ImportedAt); err != nil {
			return nil, fmt.Errorf("scanning archive row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading archive rows: %w", err)
	}

	return entries, nil
}

// Count returns the number of archived items.
func (a *Archive) Count() (int, error) {
	var n int
	if err := a.db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting archive items: %w", err)
	}
	return n, nil
}
