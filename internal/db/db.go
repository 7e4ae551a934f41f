package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Open opens (or creates) the SQLite database at path, applies the
// pragmas the server relies on and creates any missing tables.
//
// The connection pool is capped at a single connection: the store is an
// embedded single-writer database and every statement executes serially
// against it.
//
// Foreign key enforcement is intentionally left off (the SQLite
// default). Task rows keep weak references to developers, and deleting
// a developer must leave those references dangling rather than fail.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func initSchema(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS developers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			avatar_url TEXT NOT NULL DEFAULT '',
			role TEXT CHECK(role IN ('Frontend', 'Backend', 'Fullstack', 'DevOps')),
			skills TEXT,
			joined_date TIMESTAMP,
			total_tasks_completed INTEGER NOT NULL DEFAULT 0,
			current_streak INTEGER NOT NULL DEFAULT 0,
			achievement_badges TEXT,
			focus_time_today INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT CHECK(status IN ('backlog', 'todo', 'in-progress', 'review', 'testing', 'done')) DEFAULT 'backlog',
			priority TEXT CHECK(priority IN ('low', 'medium', 'high')) DEFAULT 'medium',
			difficulty INTEGER CHECK(difficulty BETWEEN 1 AND 5) DEFAULT 3,
			tech_stack TEXT,
			assigned_to TEXT,
			created_by TEXT,
			created_at TIMESTAMP,
			updated_at TIMESTAMP,
			estimated_hours REAL NOT NULL DEFAULT 0,
			actual_hours REAL NOT NULL DEFAULT 0,
			due_date TIMESTAMP,
			code_snippet TEXT NOT NULL DEFAULT '',
			sprint_number INTEGER,
			FOREIGN KEY (assigned_to) REFERENCES developers(id),
			FOREIGN KEY (created_by) REFERENCES developers(id)
		)`,
		`CREATE TABLE IF NOT EXISTS task_history (
			id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			action TEXT NOT NULL,
			performed_by TEXT,
			timestamp TIMESTAMP,
			old_value TEXT,
			new_value TEXT,
			FOREIGN KEY (task_id) REFERENCES tasks(id),
			FOREIGN KEY (performed_by) REFERENCES developers(id)
		)`,
		`CREATE TABLE IF NOT EXISTS code_reviews (
			id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			reviewer_id TEXT NOT NULL,
			status TEXT CHECK(status IN ('pending', 'approved', 'changes_requested')) DEFAULT 'pending',
			comments TEXT,
			reviewed_at TIMESTAMP,
			FOREIGN KEY (task_id) REFERENCES tasks(id),
			FOREIGN KEY (reviewer_id) REFERENCES developers(id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
