// Package archivecache wraps a reader.Reader with a SQLite-backed,
// content-hash-keyed cache of parsed archives: re-running the CLI against
// the same archive skips re-parsing entirely. Purely a pre-step
// optimization — the Merge Engine never sees this package.
package archivecache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure Go SQLite driver

	"jmatch/internal/logging"
)

// DB wraps a SQLite connection tuned for a single-writer, read-heavy cache
// workload.
type DB struct {
	conn   *sql.DB
	logger *logging.Logger
}

// Open opens or creates the cache database at dbPath, creating its parent
// directory if needed.
func Open(dbPath string, logger *logging.Logger) (*DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
		"PRAGMA cache_size=-64000",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA mmap_size=268435456",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	db := &DB{conn: conn, logger: logger}
	if err := db.initializeSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}
	return db, nil
}

func (db *DB) initializeSchema() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS archive_cache (
			content_hash TEXT PRIMARY KEY,
			archive_path TEXT NOT NULL,
			environment_json TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`)
	return err
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// WithTx runs fn inside a transaction, rolling back on error or panic.
func (db *DB) WithTx(fn func(*sql.Tx) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Error("failed to rollback cache transaction", map[string]interface{}{
				"error": err.Error(), "rollback_error": rbErr.Error(),
			})
		}
		return err
	}
	return tx.Commit()
}
