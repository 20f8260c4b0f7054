package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func newMigratedDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	m, err := NewMigrator(db)
	if err != nil {
		t.Fatalf("NewMigrator failed: %v", err)
	}
	if _, err := m.MigrateUp(context.Background()); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	return db
}

func tableExists(t *testing.T, db *DB, name string) bool {
	t.Helper()

	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&count)
	if err != nil {
		t.Fatalf("querying sqlite_master: %v", err)
	}
	return count == 1
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "students.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if db.Path() != path {
		t.Errorf("expected path %s, got %s", path, db.Path())
	}

	stats, err := db.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.JournalMode != "wal" {
		t.Errorf("expected wal journal mode, got %s", stats.JournalMode)
	}
	if stats.PageSize == 0 {
		t.Error("expected non-zero page size")
	}
}

func TestClose_Idempotent(t *testing.T) {
	db, err := NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory failed: %v", err)
	}

	if err := db.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if !db.IsClosed() {
		t.Error("expected database to report closed")
	}
	if err := db.HealthCheck(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if _, err := db.BeginTx(context.Background(), nil); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed from BeginTx, got %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	db := newMigratedDB(t)
	if err := db.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
}

func TestWithTransaction(t *testing.T) {
	db := newMigratedDB(t)
	ctx := context.Background()

	insertRun := func(id string) func(tx *sql.Tx) error {
		return func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO generation_runs (id, seed, salary_policy) VALUES (?, 1, 'occupation')", id)
			return err
		}
	}

	if err := db.WithTransaction(ctx, insertRun("committed")); err != nil {
		t.Fatalf("WithTransaction failed: %v", err)
	}

	boom := errors.New("boom")
	err := db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := insertRun("rolled-back")(tx); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM generation_runs").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 committed run, got %d", count)
	}
}

func TestMigrator(t *testing.T) {
	db, err := NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory failed: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	m, err := NewMigrator(db)
	if err != nil {
		t.Fatalf("NewMigrator failed: %v", err)
	}

	pending, err := m.PendingMigrations(ctx)
	if err != nil {
		t.Fatalf("PendingMigrations failed: %v", err)
	}
	if len(pending) == 0 {
		t.Fatal("expected pending migrations on a fresh database")
	}
	if pending[0].Version != 1 || pending[0].Description != "students" {
		t.Errorf("unexpected first migration %+v", pending[0])
	}

	result, err := m.MigrateUp(ctx)
	if err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}
	if len(result.Applied) != len(pending) {
		t.Errorf("expected %d applied, got %d", len(pending), len(result.Applied))
	}
	for _, table := range []string{"students", "generation_runs"} {
		if !tableExists(t, db, table) {
			t.Errorf("expected table %s to exist", table)
		}
	}

	// A second run is a no-op.
	again, err := m.MigrateUp(ctx)
	if err != nil {
		t.Fatalf("second MigrateUp failed: %v", err)
	}
	if len(again.Applied) != 0 {
		t.Errorf("expected no migrations applied, got %d", len(again.Applied))
	}

	status, err := m.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	for _, mig := range status {
		if !mig.Applied {
			t.Errorf("migration %d not marked applied", mig.Version)
		}
	}

	if _, err := m.MigrateDown(ctx); err != nil {
		t.Fatalf("MigrateDown failed: %v", err)
	}
	if tableExists(t, db, "students") {
		t.Error("expected students table to be dropped")
	}
}

func TestParseMigration(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantUp   string
		wantDown string
	}{
		{
			name:     "up and down",
			content:  "-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;",
			wantUp:   "CREATE TABLE a (x);",
			wantDown: "DROP TABLE a;",
		},
		{
			name:    "up only",
			content: "-- +migrate Up\nCREATE TABLE a (x);",
			wantUp:  "CREATE TABLE a (x);",
		},
		{
			name:    "no markers",
			content: "CREATE TABLE a (x);\n",
			wantUp:  "CREATE TABLE a (x);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, down := parseMigration(tt.content)
			if up != tt.wantUp {
				t.Errorf("up = %q, want %q", up, tt.wantUp)
			}
			if down != tt.wantDown {
				t.Errorf("down = %q, want %q", down, tt.wantDown)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements("CREATE TABLE a (x TEXT DEFAULT 'a;b');\nINSERT INTO a VALUES ('c');  ")
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(got), got)
	}
	if got[0] != "CREATE TABLE a (x TEXT DEFAULT 'a;b')" {
		t.Errorf("unexpected first statement %q", got[0])
	}
}
