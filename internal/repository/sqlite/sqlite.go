package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mhollis/footprint/internal/domain"
	"github.com/mhollis/footprint/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database handle and hands out repositories bound to it.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Enable foreign key enforcement; the calculations table relies on
	// ON DELETE CASCADE and on FK violations surfacing as errors.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// Set a reasonable connection pool for SQLite.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies all unapplied schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.SqlDB)
}

// Close closes the underlying database handle.
func (db *DB) Close() error {
	return db.SqlDB.Close()
}

// Users returns the user repository.
func (db *DB) Users() domain.UserRepository {
	return &userRepo{db: db.SqlDB}
}

// Calculations returns the calculation repository.
func (db *DB) Calculations() domain.CalculationRepository {
	return &calculationRepo{db: db.SqlDB}
}

// FlowSessions returns the flow session store.
func (db *DB) FlowSessions() domain.FlowSessionRepository {
	return &flowSessionRepo{db: db.SqlDB}
}

// isUniqueViolation checks whether err is a SQLite unique constraint
// violation on the named column (e.g. "users.email").
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}

// isForeignKeyViolation checks whether err is a SQLite foreign key
// constraint violation.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
