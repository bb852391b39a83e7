package schedule

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/easycal/easycal/internal/planner"
)

// SQLiteStore provides SQLite-backed storage for the schedule.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the SQLite database at dbPath and
// ensures the schedule table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createTable(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func createTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schedule_items (
			id               TEXT    PRIMARY KEY,
			title            TEXT    NOT NULL,
			description      TEXT    NOT NULL DEFAULT '',
			location         TEXT    NOT NULL DEFAULT '',
			start_at         TEXT    NOT NULL,
			end_at           TEXT    NOT NULL DEFAULT '',
			all_day          INTEGER NOT NULL DEFAULT 0,
			reminder_minutes INTEGER NOT NULL DEFAULT 0,
			position         INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the stored schedule in its saved order.
func (s *SQLiteStore) Load() ([]planner.ScheduleItem, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, location, start_at, end_at, all_day, reminder_minutes
		FROM schedule_items ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	defer rows.Close()

	var items []planner.ScheduleItem
	for rows.Next() {
		var item planner.ScheduleItem
		var allDay int
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Location,
			&item.Start, &item.End, &allDay, &item.ReminderMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.AllDay = allDay != 0
		items = append(items, item)
	}
	return items, rows.Err()
}

// Save replaces the stored schedule with the given snapshot in one
// transaction, so a crash never leaves a half-written schedule.
func (s *SQLiteStore) Save(items []planner.ScheduleItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM schedule_items`); err != nil {
		return fmt.Errorf("failed to clear schedule: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO schedule_items (id, title, description, location, start_at, end_at, all_day, reminder_minutes, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		allDay := 0
		if item.AllDay {
			allDay = 1
		}
		if _, err := stmt.Exec(item.ID, item.Title, item.Description, item.Location,
			item.Start, item.End, allDay, item.ReminderMinutes, i); err != nil {
			return fmt.Errorf("failed to insert item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schedule: %w", err)
	}
	return nil
}
