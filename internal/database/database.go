// Package database manages the SQLite mirror of generated datasets.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrClosed is returned when the database has already been closed.
var ErrClosed = errors.New("database is closed")

// DB wraps a sql.DB with transaction and lifecycle helpers.
type DB struct {
	*sql.DB
	path string

	mu     sync.RWMutex
	closed bool
}

const memoryPath = ":memory:"

// filePragmas tune a file database for one bulk writer.
var filePragmas = []string{
	"journal_mode=WAL",
	"synchronous=NORMAL",
	"busy_timeout=5000",
	"foreign_keys=ON",
	"cache_size=-16000",
	"temp_store=MEMORY",
}

// Open opens the database file at dbPath with WAL mode and safety pragmas,
// creating the parent directory if needed.
func Open(dbPath string) (*DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	return open("file:"+dbPath+"?_txlock=immediate", dbPath, filePragmas)
}

// NewInMemory creates an in-memory database for tests. Only foreign keys are
// enabled and no migrations are run.
func NewInMemory() (*DB, error) {
	return open(memoryPath, memoryPath, []string{"foreign_keys=ON"})
}

func open(dsn, path string, pragmas []string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection: SQLite has a single writer, and each :memory:
	// connection would be a separate database.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	for _, pragma := range pragmas {
		if _, err := sqlDB.Exec("PRAGMA " + pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("setting pragma %s: %w", pragma, err)
		}
	}

	return &DB{DB: sqlDB, path: path}, nil
}

// Checkpoint forces a WAL checkpoint to sync all changes to the main database file.
func (db *DB) Checkpoint(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}

// Close performs a final WAL checkpoint and closes the connection.
// Closing twice is a no-op.
func (db *DB) Close() error {
	db.mu.Lock()
	if db.closed {
		db.mu.Unlock()
		return nil
	}
	db.closed = true
	db.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if db.path != memoryPath {
		if err := db.Checkpoint(ctx); err != nil {
			slog.Warn("final checkpoint failed", "error", err)
		}
	}

	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}

	slog.Debug("database closed", "path", db.path)
	return nil
}

// IsClosed returns true if the database has been closed.
func (db *DB) IsClosed() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.closed
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// BeginTx starts a transaction with the given options.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	if db.IsClosed() {
		return nil, ErrClosed
	}
	return db.DB.BeginTx(ctx, opts)
}

// WithTransaction executes a function within a transaction.
// The transaction is committed if the function returns nil, otherwise rolled back.
func (db *DB) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
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
			return fmt.Errorf("rolling back after error %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// HealthCheck runs a quick integrity check of the database.
func (db *DB) HealthCheck(ctx context.Context) error {
	if db.IsClosed() {
		return ErrClosed
	}

	var check string
	if err := db.QueryRowContext(ctx, "PRAGMA quick_check").Scan(&check); err != nil {
		return fmt.Errorf("health check query: %w", err)
	}
	if check != "ok" {
		return fmt.Errorf("integrity check failed: %s", check)
	}

	return nil
}

// Stats describes the database file.
type Stats struct {
	Path        string
	SizeBytes   int64
	PageCount   int64
	PageSize    int64
	JournalMode string
}

// GetStats retrieves current database statistics.
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Path: db.path}
	if info, err := os.Stat(db.path); err == nil {
		stats.SizeBytes = info.Size()
	}

	for pragma, dest := range map[string]any{
		"page_count":   &stats.PageCount,
		"page_size":    &stats.PageSize,
		"journal_mode": &stats.JournalMode,
	} {
		if err := db.QueryRowContext(ctx, "PRAGMA "+pragma).Scan(dest); err != nil {
			return nil, fmt.Errorf("reading %s: %w", pragma, err)
		}
	}

	return stats, nil
}
