package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Register driver
)

// sqliteTime matches SQLite's CURRENT_TIMESTAMP layout.
const sqliteTime = "2006-01-02 15:04:05"

// DB wraps the sql.DB connection.
type DB struct {
	*sql.DB
}

// Init opens the database and runs migrations.
func Init(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000;"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	d := &DB{db}
	// Single connection avoids SQLITE_BUSY on concurrent writes.
	db.SetMaxOpenConns(1)

	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return d, nil
}

// GetAudio returns a cached clip and its format.
func (d *DB) GetAudio(ctx context.Context, key string) (data []byte, format string, ok bool, err error) {
	row := d.QueryRowContext(ctx, "SELECT value, format FROM audio_cache WHERE key = ?", key)
	if err := row.Scan(&data, &format); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", false, nil
		}
		return nil, "", false, fmt.Errorf("failed to read audio cache: %w", err)
	}
	return data, format, true, nil
}

// PutAudio stores a clip, replacing any previous entry for key.
func (d *DB) PutAudio(ctx context.Context, key, provider, format string, data []byte) error {
	_, err := d.ExecContext(ctx,
		`INSERT INTO audio_cache (key, provider, format, value, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET provider = excluded.provider, format = excluded.format,
		 value = excluded.value, created_at = excluded.created_at`,
		key, provider, format, data, time.Now().UTC().Format(sqliteTime))
	if err != nil {
		return fmt.Errorf("failed to write audio cache: %w", err)
	}
	return nil
}

// PruneCache removes audio entries older than the specified duration and
// returns how many were removed.
func (d *DB) PruneCache(olderThan time.Duration) (int64, error) {
	deadline := time.Now().Add(-olderThan).UTC().Format(sqliteTime)
	res, err := d.Exec("DELETE FROM audio_cache WHERE created_at < ?", deadline)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetState returns a persisted value.
func (d *DB) GetState(ctx context.Context, key string) (string, bool) {
	var val string
	err := d.QueryRowContext(ctx, "SELECT value FROM persistent_state WHERE key = ?", key).Scan(&val)
	if err != nil {
		return "", false
	}
	return val, true
}

// SetState persists a value.
func (d *DB) SetState(ctx context.Context, key, val string) error {
	_, err := d.ExecContext(ctx,
		`INSERT INTO persistent_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, val)
	return err
}

func (d *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS persistent_state (
			key TEXT PRIMARY KEY,
			value TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS audio_cache (
			key TEXT PRIMARY KEY,
			provider TEXT,
			format TEXT,
			value BLOB,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_audio_cache_created ON audio_cache(created_at);`,
	}

	for _, q := range queries {
		if _, err := d.Exec(q); err != nil {
			return fmt.Errorf("exec error: %w query: %s", err, q)
		}
	}

	// Older databases predate the provider column.
	var colCount int
	err := d.QueryRow("SELECT count(*) FROM pragma_table_info('audio_cache') WHERE name='provider'").Scan(&colCount)
	if err == nil && colCount == 0 {
		if _, err := d.Exec("ALTER TABLE audio_cache ADD COLUMN provider TEXT"); err != nil {
			return fmt.Errorf("failed to add provider column: %w", err)
		}
	}

	return nil
}
