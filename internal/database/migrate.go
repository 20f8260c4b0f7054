package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

var migrationName = regexp.MustCompile(`^(\d{3})_(.+)\.sql$`)

// Migration is one embedded schema change.
type Migration struct {
	Version     int
	Description string
	Up          []string
	Down        []string

	Applied   bool
	AppliedAt time.Time
}

// MigrationResult reports a MigrateUp or MigrateDown call.
type MigrationResult struct {
	Applied []Migration
	From    int
	To      int
}

// Migrator applies the embedded migrations to a database.
type Migrator struct {
	db         *DB
	migrations []Migration
}

// NewMigrator loads the embedded migrations and prepares the version table.
func NewMigrator(db *DB) (*Migrator, error) {
	migrations, err := loadMigrations(migrationsFS)
	if err != nil {
		return nil, fmt.Errorf("loading migrations: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version     INTEGER PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at  TEXT NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		return nil, fmt.Errorf("creating migrations table: %w", err)
	}

	return &Migrator{db: db, migrations: migrations}, nil
}

func loadMigrations(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return nil, err
	}

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		m := migrationName.FindStringSubmatch(path.Base(name))
		if m == nil {
			slog.Warn("skipping invalid migration filename", "name", name)
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		version, _ := strconv.Atoi(m[1])
		up, down := parseMigration(string(content))
		migrations = append(migrations, Migration{
			Version:     version,
			Description: strings.ReplaceAll(m[2], "_", " "),
			Up:          splitStatements(up),
			Down:        splitStatements(down),
		})
	}

	slices.SortFunc(migrations, func(a, b Migration) int { return a.Version - b.Version })
	return migrations, nil
}

// parseMigration splits a migration file into its Up and Down sections.
// A file without markers is entirely Up.
func parseMigration(content string) (up, down string) {
	_, body, found := strings.Cut(content, upMarker)
	if !found {
		return strings.TrimSpace(content), ""
	}
	up, down, _ = strings.Cut(body, downMarker)
	return strings.TrimSpace(up), strings.TrimSpace(down)
}

// CurrentVersion returns the highest applied version, or zero.
func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	var version int
	err := m.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("querying current version: %w", err)
	}
	return version, nil
}

// PendingMigrations returns the migrations newer than the current version.
func (m *Migrator) PendingMigrations(ctx context.Context) ([]Migration, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	i := slices.IndexFunc(m.migrations, func(mig Migration) bool { return mig.Version > current })
	if i < 0 {
		return nil, nil
	}
	return slices.Clone(m.migrations[i:]), nil
}

// MigrateUp applies every pending migration, each in its own transaction.
func (m *Migrator) MigrateUp(ctx context.Context) (*MigrationResult, error) {
	pending, err := m.PendingMigrations(ctx)
	if err != nil {
		return nil, err
	}

	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	result := &MigrationResult{From: current, To: current}

	if len(pending) == 0 {
		slog.Debug("database schema is up to date", "version", current)
		return result, nil
	}

	for _, mig := range pending {
		slog.Info("applying migration", "version", mig.Version, "description", mig.Description)

		err := m.step(ctx, mig.Up,
			"INSERT INTO schema_migrations (version, description) VALUES (?, ?)",
			mig.Version, mig.Description)
		if err != nil {
			return result, fmt.Errorf("migration %d: %w", mig.Version, err)
		}

		mig.Applied = true
		mig.AppliedAt = time.Now()
		result.Applied = append(result.Applied, mig)
		result.To = mig.Version
	}

	return result, nil
}

// MigrateDown rolls back the most recent migration.
func (m *Migrator) MigrateDown(ctx context.Context) (*MigrationResult, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	result := &MigrationResult{From: current, To: current}

	if current == 0 {
		return result, errors.New("no migrations to roll back")
	}

	i := slices.IndexFunc(m.migrations, func(mig Migration) bool { return mig.Version == current })
	if i < 0 {
		return result, fmt.Errorf("migration %d not found", current)
	}
	mig := m.migrations[i]
	if len(mig.Down) == 0 {
		return result, fmt.Errorf("migration %d has no rollback SQL", current)
	}

	slog.Info("rolling back migration", "version", mig.Version, "description", mig.Description)

	if err := m.step(ctx, mig.Down, "DELETE FROM schema_migrations WHERE version = ?", mig.Version); err != nil {
		return result, fmt.Errorf("rollback %d: %w", mig.Version, err)
	}

	result.Applied = []Migration{mig}
	result.To = 0
	if i > 0 {
		result.To = m.migrations[i-1].Version
	}
	return result, nil
}

// step runs statements and the bookkeeping query in one transaction.
func (m *Migrator) step(ctx context.Context, statements []string, record string, args ...any) error {
	return m.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("executing statement: %w\nSQL: %s", err, stmt)
			}
		}
		if _, err := tx.ExecContext(ctx, record, args...); err != nil {
			return fmt.Errorf("recording version: %w", err)
		}
		return nil
	})
}

// Status lists every known migration with its applied state.
func (m *Migrator) Status(ctx context.Context) ([]Migration, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT version, applied_at FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("querying applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var (
			version int
			at      string
		)
		if err := rows.Scan(&version, &at); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		applied[version], _ = time.Parse(time.DateTime, at)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	status := slices.Clone(m.migrations)
	for i := range status {
		status[i].AppliedAt, status[i].Applied = applied[status[i].Version]
	}
	return status, nil
}

// splitStatements splits SQL on semicolons outside quoted strings.
func splitStatements(sql string) []string {
	var (
		statements []string
		start      int
		quote      byte
	)

	flush := func(end int) {
		if stmt := strings.TrimSpace(sql[start:end]); stmt != "" {
			statements = append(statements, stmt)
		}
		start = end + 1
	}

	for i := 0; i < len(sql); i++ {
		switch c := sql[i]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ';':
			flush(i)
		}
	}
	if start < len(sql) {
		flush(len(sql))
	}

	return statements
}
